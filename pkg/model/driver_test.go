package model

import "testing"

func TestNormalizeDriverID(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		want     string
	}{
		{name: "simple", fullName: "Lewis Hamilton", want: "lewis_hamilton"},
		{name: "surrounding whitespace", fullName: "  Max Verstappen ", want: "max_verstappen"},
		{name: "multiple spaces", fullName: "Carlos  Sainz", want: "carlos_sainz"},
		{name: "accents stripped", fullName: "Sergio Pérez", want: "sergio_prez"},
		{name: "already normalized", fullName: "lando_norris", want: "lando_norris"},
		{name: "empty", fullName: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDriverID(tt.fullName); got != tt.want {
				t.Errorf("NormalizeDriverID(%q) = %q, want %q",
					tt.fullName, got, tt.want)
			}
		})
	}
}

func TestNormalizeDriverIDStable(t *testing.T) {
	once := NormalizeDriverID("Charles Leclerc")
	twice := NormalizeDriverID(once)
	if once != twice {
		t.Errorf("normalization not stable: %q != %q", once, twice)
	}
}
