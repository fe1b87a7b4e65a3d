// Package i18n negotiates the response language and holds the message
// catalog for user-facing strings.
package i18n

import (
	"context"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. The English text doubles as the key.
const (
	PropertyLimit  = "You have reached the limit of %d property(ies) for the %s plan"
	RoomLimit      = "You have reached the limit of %d rooms for the %s plan"
	NoLimit        = "The %s plan has no %s limit"
	PastDueNotice  = "Your last payment failed. Update your payment method to keep full access."
	ExpiredNotice  = "Your trial has ended. Choose a plan to keep managing your properties."
	CanceledNotice = "Your subscription was canceled. Your account is back on the Basic plan."

	PastDueSubject  = "Action needed: payment failed"
	CanceledSubject = "Your subscription was canceled"
)

var supported = []language.Tag{
	language.English,
	language.French,
	language.Indonesian,
}

var matcher = language.NewMatcher(supported)

var catalog = map[language.Tag]map[string]string{
	language.French: {
		PropertyLimit:   "Vous avez atteint la limite de %d propriété(s) pour le plan %s",
		RoomLimit:       "Vous avez atteint la limite de %d chambres pour le plan %s",
		NoLimit:         "Le plan %s n'a pas de limite de %s",
		PastDueNotice:   "Votre dernier paiement a échoué. Mettez à jour votre moyen de paiement pour conserver l'accès.",
		ExpiredNotice:   "Votre période d'essai est terminée. Choisissez un plan pour continuer.",
		CanceledNotice:  "Votre abonnement a été résilié. Votre compte repasse au plan Basic.",
		PastDueSubject:  "Action requise : échec du paiement",
		CanceledSubject: "Votre abonnement a été résilié",
	},
	language.Indonesian: {
		PropertyLimit:   "Anda telah mencapai batas %d properti untuk paket %s",
		RoomLimit:       "Anda telah mencapai batas %d kamar untuk paket %s",
		NoLimit:         "Paket %s tidak memiliki batas %s",
		PastDueNotice:   "Pembayaran terakhir Anda gagal. Perbarui metode pembayaran agar akses tetap aktif.",
		ExpiredNotice:   "Masa uji coba Anda telah berakhir. Pilih paket untuk melanjutkan.",
		CanceledNotice:  "Langganan Anda telah dibatalkan. Akun Anda kembali ke paket Basic.",
		PastDueSubject:  "Perlu tindakan: pembayaran gagal",
		CanceledSubject: "Langganan Anda telah dibatalkan",
	},
}

func init() {
	for _, key := range []string{PropertyLimit, RoomLimit, NoLimit, PastDueNotice, ExpiredNotice, CanceledNotice, PastDueSubject, CanceledSubject} {
		_ = message.SetString(language.English, key, key)
	}
	for tag, entries := range catalog {
		for key, msg := range entries {
			_ = message.SetString(tag, key, msg)
		}
	}
}

// Default is the language used when negotiation fails
var Default = language.English

// Negotiate picks the best supported language for an Accept-Language header.
func Negotiate(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	return supported[idx]
}

// Sprintf formats the message for key in the given language.
func Sprintf(tag language.Tag, key string, args ...interface{}) string {
	return message.NewPrinter(tag).Sprintf(key, args...)
}

type ctxKey struct{}

// WithLanguage stores the negotiated language on ctx.
func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, tag)
}

// FromContext returns the language stored by WithLanguage, or Default.
func FromContext(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(ctxKey{}).(language.Tag); ok {
		return tag
	}
	return Default
}
