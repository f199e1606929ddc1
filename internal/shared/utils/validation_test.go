package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateMediaURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid https", "https://cdn.example.com/banner.jpg", false},
		{"valid http", "http://example.com/a.png", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"ftp scheme", "ftp://example.com/a.png", true},
		{"no host", "https:///a.png", true},
		{"localhost", "https://localhost/a.png", true},
		{"localhost subdomain", "https://foo.localhost/a.png", true},
		{"internal suffix", "https://db.internal/a.png", true},
		{"loopback ip", "http://127.0.0.1/a.png", true},
		{"private ip", "http://10.0.0.5/a.png", true},
		{"link local metadata", "http://169.254.169.254/latest", true},
		{"cgnat range", "http://100.64.1.1/a.png", true},
		{"ipv4 mapped ipv6 loopback", "http://[::ffff:127.0.0.1]/a.png", true},
		{"public ip", "http://93.184.216.34/a.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMediaURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMediaURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateButtonURL(t *testing.T) {
	if err := ValidateButtonURL("tg://resolve?domain=somebot"); err != nil {
		t.Errorf("tg deep link should be allowed, got %v", err)
	}
	if err := ValidateButtonURL("https://example.com/landing"); err != nil {
		t.Errorf("public https should be allowed, got %v", err)
	}
	if err := ValidateButtonURL("http://192.168.1.1/admin"); err == nil {
		t.Error("private IP button target should be rejected")
	}
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"58.5", "$58.50"},
		{"0", "$0.00"},
		{"12.345", "$12.34"},
		{"1000", "$1000.00"},
	}
	for _, tt := range tests {
		got := FormatUSD(decimal.RequireFromString(tt.in))
		if got != tt.want {
			t.Errorf("FormatUSD(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"user@example.com", "u***@example.com"},
		{"a@example.com", "a***@example.com"},
		{"not-an-email", "***"},
	}
	for _, tt := range tests {
		if got := MaskEmail(tt.in); got != tt.want {
			t.Errorf("MaskEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
