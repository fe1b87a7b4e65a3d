package i18n

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   language.Tag
	}{
		{name: "empty header", header: "", want: language.English},
		{name: "french region", header: "fr-FR,fr;q=0.9,en;q=0.8", want: language.French},
		{name: "indonesian", header: "id", want: language.Indonesian},
		{name: "unsupported falls back", header: "ja-JP", want: language.English},
		{name: "garbage", header: ";;;", want: language.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Negotiate(tt.header); got != tt.want {
				t.Errorf("Negotiate(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestSprintf(t *testing.T) {
	got := Sprintf(language.French, RoomLimit, 10, "BASIC")
	if !strings.HasPrefix(got, "Vous avez atteint la limite de 10 chambres") {
		t.Errorf("Sprintf() = %q", got)
	}

	got = Sprintf(language.English, PropertyLimit, 1, "BASIC")
	if got != "You have reached the limit of 1 property(ies) for the BASIC plan" {
		t.Errorf("Sprintf() = %q", got)
	}
}

func TestLanguageContext(t *testing.T) {
	if got := FromContext(context.Background()); got != Default {
		t.Errorf("FromContext(empty) = %v, want %v", got, Default)
	}
	ctx := WithLanguage(context.Background(), language.Indonesian)
	if got := FromContext(ctx); got != language.Indonesian {
		t.Errorf("FromContext() = %v, want %v", got, language.Indonesian)
	}
}
