package middleware

import (
	"github.com/gin-gonic/gin"

	"schedsync/pkg/translator"
)

const langKey = "lang"

// LanguageMiddleware resolves Accept-Language to a supported language.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(langKey, translator.Negotiate(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(langKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
