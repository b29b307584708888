package locale

import (
	"testing"
)

func TestInferCountryFromPhone(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		wantCode string
		wantNil  bool
	}{
		{
			name:     "Finnish mobile",
			phone:    "+358401234567",
			wantCode: "FI",
		},
		{
			name:     "Finnish mobile without plus",
			phone:    "358401234567",
			wantCode: "FI",
		},
		{
			name:     "Swedish mobile",
			phone:    "+46701234567",
			wantCode: "SE",
		},
		{
			name:     "UK mobile",
			phone:    "+447911123456",
			wantCode: "GB",
		},
		{
			name:    "country outside the list",
			phone:   "+81312345678",
			wantNil: true,
		},
		{
			name:    "empty phone",
			phone:   "",
			wantNil: true,
		},
		{
			name:    "invalid phone",
			phone:   "not-a-phone",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferCountryFromPhone(tt.phone)
			if tt.wantNil {
				if got != nil {
					t.Errorf("InferCountryFromPhone(%q) = %v, want nil", tt.phone, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("InferCountryFromPhone(%q) = nil, want %s", tt.phone, tt.wantCode)
			}
			if got.Code != tt.wantCode {
				t.Errorf("InferCountryFromPhone(%q).Code = %s, want %s", tt.phone, got.Code, tt.wantCode)
			}
		})
	}
}

func TestInferTimezoneFromPhone(t *testing.T) {
	if got := InferTimezoneFromPhone("+358401234567"); got != "Europe/Helsinki" {
		t.Errorf("expected Europe/Helsinki, got %s", got)
	}
	if got := InferTimezoneFromPhone("garbage"); got != DefaultTimezone {
		t.Errorf("expected %s, got %s", DefaultTimezone, got)
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver("en", []string{"en", "fi", "sv"})

	tests := []struct {
		name           string
		referer        string
		acceptLanguage string
		want           string
	}{
		{
			name:    "referer locale segment",
			referer: "https://club.example/fi/members/bookings",
			want:    "fi",
		},
		{
			name:    "referer segment is case-insensitive",
			referer: "https://club.example/SV/members",
			want:    "sv",
		},
		{
			name:           "referer wins over accept-language",
			referer:        "https://club.example/sv/members",
			acceptLanguage: "fi-FI,fi;q=0.9",
			want:           "sv",
		},
		{
			name:           "unsupported referer segment falls through",
			referer:        "https://club.example/members/bookings",
			acceptLanguage: "fi-FI,fi;q=0.9,en;q=0.5",
			want:           "fi",
		},
		{
			name:           "accept-language respects quality",
			acceptLanguage: "de;q=0.9,sv;q=0.8,fi;q=0.3",
			want:           "sv",
		},
		{
			name:           "nothing supported",
			referer:        "https://club.example/",
			acceptLanguage: "de-DE",
			want:           "en",
		},
		{
			name:           "malformed inputs",
			referer:        "://bad",
			acceptLanguage: ";;;",
			want:           "en",
		},
		{
			name: "no hints",
			want: "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.referer, tt.acceptLanguage); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.referer, tt.acceptLanguage, got, tt.want)
			}
		})
	}
}
