package config

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "trims and lowercases",
			in:   "  Port Link-Type ACCESS  ",
			want: "port link-type access",
		},
		{
			name: "collapses internal whitespace",
			in:   "description   Uplink   to    Core",
			want: "description uplink-core",
		},
		{
			name: "to keyword becomes hyphen",
			in:   "10 to 20",
			want: "10-20",
		},
		{
			name: "spaced hyphen tightened",
			in:   "10 - 20",
			want: "10-20",
		},
		{
			name: "en dash becomes space",
			in:   "vlan 10–20",
			want: "vlan 10 20",
		},
		{
			name: "trunk vlan list sorted by range start",
			in:   "port trunk allow-pass vlan 20 10-15",
			want: "port trunk allow-pass vlan 10-15 20",
		},
		{
			name: "hybrid tagged list sorted",
			in:   "port hybrid tagged vlan 200 100",
			want: "port hybrid tagged vlan 100 200",
		},
		{
			name: "unsorted list with to syntax",
			in:   "port trunk allow-pass vlan 55 10 to 20",
			want: "port trunk allow-pass vlan 10-20 55",
		},
		{
			name: "empty line",
			in:   "   ",
			want: "",
		},
		{
			name: "malformed vlan tokens pass through",
			in:   "port trunk allow-pass vlan foo 10",
			want: "port trunk allow-pass vlan 10 foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Equivalence(t *testing.T) {
	pairs := [][2]string{
		{"port trunk allow-pass vlan 20 10-15", "port trunk allow-pass vlan 10-15 20"},
		{"port trunk allow-pass vlan 10 to 12 20", "port trunk allow-pass vlan 20 10-12"},
		{"10 to 20", "10-20"},
	}
	for _, p := range pairs {
		if Normalize(p[0]) != Normalize(p[1]) {
			t.Errorf("Normalize(%q) = %q, Normalize(%q) = %q; want equal",
				p[0], Normalize(p[0]), p[1], Normalize(p[1]))
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"port trunk allow-pass vlan 20 10 to 15",
		"  Description Uplink – Core  ",
		"clock timezone CET add 1",
		"",
		"port trunk allow-pass vlan foo bar 10",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
