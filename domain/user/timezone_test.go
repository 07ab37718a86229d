package user

import "testing"

func TestGuessTimezone(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{"+972501234567", "Asia/Jerusalem"},
		{"whatsapp:+972501234567", "Asia/Jerusalem"},
		{"+14155550100", "America/New_York"},
		{"+447911123456", "Europe/London"},
		{"+4915123456789", "Europe/Berlin"},
		{"+33612345678", "Europe/Paris"},
		{"+393312345678", "Europe/Rome"},
		{"+919876543210", "Asia/Kolkata"},
		{"+8613912345678", "UTC"},
		{"12345", "UTC"},
		{"", "UTC"},
		{"  +44 trailing spaces", "Europe/London"},
	}

	for _, tt := range tests {
		if got := GuessTimezone(tt.phone); got != tt.want {
			t.Errorf("GuessTimezone(%q) = %q, want %q", tt.phone, got, tt.want)
		}
	}
}
