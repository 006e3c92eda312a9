package auth

import "testing"

func TestLegacyDigest(t *testing.T) {
	// fixed vector, the digest is unsalted and deterministic on purpose
	const want = "f52fbd32b2b3b86ff88ef6c490628285f482af15ddcb29541f94bcf526a3f6c7"
	if got := LegacyDigest("hunter2"); got != want {
		t.Fatalf("LegacyDigest(hunter2) = %v, want %v", got, want)
	}
	if LegacyDigest("hunter2") != LegacyDigest("hunter2") {
		t.Fatal("digest must be deterministic")
	}
	if LegacyDigest("hunter2") == LegacyDigest("hunter3") {
		t.Fatal("distinct inputs must not collide on trivial cases")
	}
}

func TestSafeCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"", "", true},
		{"abc", "abc", true},
		{"abc", "abd", false},
		{"abc", "ab", false},
		{"", "x", false},
		{"long-input-one-side", "", false},
	}
	for _, c := range cases {
		if got := SafeCompare(c.a, c.b); got != c.want {
			t.Errorf("SafeCompare(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
