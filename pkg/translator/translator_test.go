package translator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/require"

	"schedsync/pkg/translator"
)

func TestInitTranslator_LoadsMessages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.toml"), []byte(`hello = "Hello english"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fr.toml"), []byte(`hello = "Bonjour"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	err := translator.InitTranslator(translator.Config{
		TranslationFolder:  dir,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})
	require.NoError(t, err)

	msg, err := i18n.NewLocalizer(translator.Translator, translator.LanguageFr).Localize(&i18n.LocalizeConfig{MessageID: "hello"})
	require.NoError(t, err)
	require.Equal(t, "Bonjour", msg)
}

func TestInitTranslator_InvalidFolder(t *testing.T) {
	err := translator.InitTranslator(translator.Config{TranslationFolder: "/path/does/not/exist"})
	require.Error(t, err)
}

func TestInitTranslator_ShippedFiles(t *testing.T) {
	err := translator.InitTranslator(translator.Config{
		TranslationFolder:  "translation",
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})
	require.NoError(t, err)

	for _, lang := range []string{translator.LanguageEn, translator.LanguageFr} {
		msg, err := i18n.NewLocalizer(translator.Translator, lang).Localize(&i18n.LocalizeConfig{MessageID: "generationInProgress"})
		require.NoError(t, err, lang)
		require.NotEmpty(t, msg)
	}
}

func TestNegotiate(t *testing.T) {
	tests := map[string]string{
		"":                        translator.LanguageEn,
		"fr-CA,fr;q=0.9,en;q=0.8": translator.LanguageFr,
		"de-DE,de;q=0.9":          translator.LanguageEn,
		"en-GB":                   translator.LanguageEn,
	}
	for header, want := range tests {
		require.Equal(t, want, translator.Negotiate(header), header)
	}
}
