package config

import "testing"

func TestParseEnvLine(t *testing.T) {
	cases := []struct {
		line string
		key  string
		val  string
		ok   bool
	}{
		{"PORT=8080", "PORT", "8080", true},
		{"export OCR_BASE_URL=http://localhost:9000", "OCR_BASE_URL", "http://localhost:9000", true},
		{`JWT_SECRET="s3cret"`, "JWT_SECRET", "s3cret", true},
		{"DEFAULT_USER_ROLE='موظف'", "DEFAULT_USER_ROLE", "موظف", true},
		{"# comment", "", "", false},
		{"", "", "", false},
		{"not-a-pair", "", "", false},
		{"=orphan", "", "", false},
	}
	for _, tc := range cases {
		key, val, ok := parseEnvLine(tc.line)
		if ok != tc.ok || key != tc.key || val != tc.val {
			t.Fatalf("parseEnvLine(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.line, key, val, ok, tc.key, tc.val, tc.ok)
		}
	}
}
