package apierrors

import (
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"

	"schedsync/pkg/translator"
)

// JsonErr is the error envelope returned by every API endpoint.
type JsonErr struct {
	ErrDetails Err `json:"error"`
}

type Err struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// Field names the offending request field for validation failures.
	Field string `json:"field,omitempty"`
}

func (e JsonErr) Error() string {
	if e.ErrDetails.Field != "" {
		return fmt.Sprintf("Code: %d, Message: %s, Field: %s", e.ErrDetails.Code, e.ErrDetails.Message, e.ErrDetails.Field)
	}
	return fmt.Sprintf("Code: %d, Message: %s", e.ErrDetails.Code, e.ErrDetails.Message)
}

// CreateError builds an envelope with the message translated into lang.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return JsonErr{ErrDetails: Err{Code: code, Message: GetTransErrorMsg(msgKey, lang)}}
}

func CreateFieldError(code int, msgKey string, lang string, field string) JsonErr {
	err := CreateError(code, msgKey, lang)
	err.ErrDetails.Field = field
	return err
}

// GetTransErrorMsg falls back to English, then to the key itself.
func GetTransErrorMsg(msgKey string, lang string) string {
	localizer := i18n.NewLocalizer(translator.Translator, lang, translator.LanguageEn)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: msgKey})
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
