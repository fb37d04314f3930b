package ids

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"canonical uuid unchanged", "0d1f9f9e-8a5e-4c58-9a3b-2f4f4f4f4f4f", "0d1f9f9e-8a5e-4c58-9a3b-2f4f4f4f4f4f"},
		{"uppercase uuid lowered", "0D1F9F9E-8A5E-4C58-9A3B-2F4F4F4F4F4F", "0d1f9f9e-8a5e-4c58-9a3b-2f4f4f4f4f4f"},
		{"surrounding whitespace trimmed", "  abc123  ", "abc123"},
		{"opaque id passed through", "not-a-uuid", "not-a-uuid"},
		{"empty id passed through", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNewIsCanonical(t *testing.T) {
	id := New()
	if id == "" {
		t.Fatalf("expected non-empty id")
	}
	if got := Normalize(id); got != id {
		t.Fatalf("expected canonical id, Normalize changed %q to %q", id, got)
	}
}
