package country

import "testing"

func TestCleanISO(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"FRA", "FRA", true},
		{"fra", "FRA", true},
		{" nor ", "NOR", true},
		{"FR", "FRA", true},
		{"de", "DEU", true},
		{"XX", "", false},
		{"-99", "", false},
		{"FRAN", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := CleanISO(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("CleanISO(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"France", "FRA", true},
		{"germany", "DEU", true},
		{"United States", "USA", true},
		{"South Korea", "KOR", true},
		{"Ivory Coast", "CIV", true},
		{"DR Congo", "COD", true},
		{"Russia", "RUS", true},
		{"Vietnam", "VNM", true},
		{"Czech Republic", "CZE", true},
		// Three-letter strings pass through as codes.
		{"NOR", "NOR", true},
		{"Atlantis", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := FromName(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("FromName(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Korea, South ", "korea south"},
		{"Côte d'Ivoire", "c te divoire"},
		{"U.S.A.", "usa"},
		{"many   spaces", "many spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := normalizeName(tt.in); got != tt.want {
				t.Fatalf("normalizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
