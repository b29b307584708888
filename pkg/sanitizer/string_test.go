package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Circuit training  ",
			want:  "Circuit training",
		},
		{
			name:  "multiple spaces between words",
			input: "Circuit    training",
			want:  "Circuit training",
		},
		{
			name:  "tabs and newlines",
			input: "Circuit\t\ntraining",
			want:  "Circuit training",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Lento Ähtäri–Halli ✈ ",
			want:  "Lento Ähtäri–Halli ✈",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeMultiline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single line",
			input: "  fuel   to tabs ",
			want:  "fuel to tabs",
		},
		{
			name:  "keeps line breaks",
			input: "line one\nline   two",
			want:  "line one\nline two",
		},
		{
			name:  "windows line endings",
			input: "a\r\nb",
			want:  "a\nb",
		},
		{
			name:  "collapses blank runs",
			input: "\n\na\n\n\n\nb\n\n",
			want:  "a\n\nb",
		},
		{
			name:  "empty",
			input: " \n \n",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeMultiline(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeMultiline(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeMultiline(got); again != got {
				t.Errorf("NormalizeMultiline not idempotent: %q then %q", got, again)
			}
		})
	}
}

func TestNormalizeRegistration(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"oh-abc", "OH-ABC"},
		{" OH - XYZ ", "OH-XYZ"},
		{"se\tkbl", "SEKBL"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeRegistration(tt.input); got != tt.want {
			t.Errorf("NormalizeRegistration(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeAirportAndEmail(t *testing.T) {
	if got := NormalizeAirport(" efhk "); got != "EFHK" {
		t.Errorf("NormalizeAirport = %q, want EFHK", got)
	}
	if got := NormalizeEmail(" Pilot@Club.FI "); got != "pilot@club.fi" {
		t.Errorf("NormalizeEmail = %q, want pilot@club.fi", got)
	}
}
