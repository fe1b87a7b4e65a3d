package entitlement

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/pkg/i18n"
)

// LimitMessage renders the limit for r on plan in the default language.
func LimitMessage(r Resource, plan profile.Plan) (string, error) {
	return LocalizedLimitMessage(i18n.Default, r, plan)
}

// LocalizedLimitMessage renders the limit for r on plan in lang.
func LocalizedLimitMessage(lang language.Tag, r Resource, plan profile.Plan) (string, error) {
	limit, err := Limit(r, plan)
	if err != nil {
		return "", err
	}
	planName := strings.ToUpper(string(plan))
	if limit == Unlimited {
		return i18n.Sprintf(lang, i18n.NoLimit, planName, string(r)), nil
	}
	if r == ResourceProperty {
		return i18n.Sprintf(lang, i18n.PropertyLimit, limit, planName), nil
	}
	return i18n.Sprintf(lang, i18n.RoomLimit, limit, planName), nil
}
