package i18n

import (
	"strings"
	"testing"
)

func TestDetectLang(t *testing.T) {
	tests := []struct {
		code string
		want Lang
	}{
		{"ru", RU},
		{"ru-RU", RU},
		{"uz", UZ},
		{"uz-Cyrl-UZ", UZ},
		{"en", EN},
		{"en-US", EN},
		{"de", EN},
		{"", EN},
	}

	for _, tt := range tests {
		if got := DetectLang(tt.code); got != tt.want {
			t.Errorf("DetectLang(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestParseLang(t *testing.T) {
	tests := []struct {
		stored string
		want   Lang
	}{
		{"ru", RU},
		{"uz", UZ},
		{"en", EN},
		{"fr", EN},
		{"", EN},
	}

	for _, tt := range tests {
		if got := ParseLang(tt.stored); got != tt.want {
			t.Errorf("ParseLang(%q) = %q, want %q", tt.stored, got, tt.want)
		}
	}
}

func TestMessagesCoverAllLanguages(t *testing.T) {
	langs := []Lang{EN, RU, UZ}

	messages := map[string]func(Lang) string{
		"login_prompt":   MsgLoginPrompt,
		"login_success":  MsgLoginSuccess,
		"login_wrong":    MsgLoginWrongCode,
		"login_expired":  MsgLoginExpired,
		"login_consumed": MsgLoginConsumed,
		"login_banned":   MsgLoginBanned,
		"welcome":        MsgWelcome,
		"error":          MsgError,
	}

	for name, fn := range messages {
		seen := make(map[string]bool)
		for _, lang := range langs {
			text := fn(lang)
			if text == "" {
				t.Errorf("%s(%s) is empty", name, lang)
			}
			if seen[text] {
				t.Errorf("%s produced the same text for two languages", name)
			}
			seen[text] = true
		}
	}
}

func TestNotificationsEscapeUserContent(t *testing.T) {
	// Ad titles and rejection reasons are free-form user input and must not
	// break the HTML parse mode.
	title := `<script>alert("x")</script>`

	got := MsgAdRejected(EN, title, `policy <violation> & more`)

	if strings.Contains(got, "<script>") {
		t.Error("user content should be HTML-escaped")
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Error("escaped title should survive in the message")
	}
	if !strings.Contains(got, "&amp; more") {
		t.Error("escaped reason should survive in the message")
	}
}

func TestNotificationAmounts(t *testing.T) {
	got := MsgWithdrawCompleted(EN, "$47.00", "0xabc123")
	if !strings.Contains(got, "$47.00") {
		t.Error("amount should appear verbatim")
	}
	if !strings.Contains(got, "<code>0xabc123</code>") {
		t.Error("transaction hash should be rendered as code")
	}

	got = MsgDepositCredited(RU, "$58.50")
	if !strings.Contains(got, "$58.50") {
		t.Error("credited amount should appear verbatim")
	}
}
