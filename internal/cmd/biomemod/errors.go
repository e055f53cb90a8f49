package biomemod

import (
	apperrors "github.com/louisbranch/biomemod/internal/platform/errors"
	"github.com/louisbranch/biomemod/internal/platform/errors/i18n"
)

// UserMessage renders err for the terminal. Coded errors lead with the
// catalog message for locale; the full chain follows in parentheses.
func UserMessage(err error, locale string) string {
	if err == nil {
		return ""
	}
	code := apperrors.CodeOf(err)
	if code == apperrors.CodeUnknown {
		return err.Error()
	}
	message := i18n.GetCatalog(locale).Format(string(code), apperrors.MetadataOf(err))
	return message + " (" + err.Error() + ")"
}
