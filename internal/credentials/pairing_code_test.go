package credentials

import "testing"

func TestGeneratePairingCode(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		code, err := GeneratePairingCode()
		if err != nil {
			t.Fatalf("GeneratePairingCode() error = %v", err)
		}

		if len(code) != 6 {
			t.Fatalf("code %q has length %d, want 6", code, len(code))
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("code %q contains non-digit %q", code, c)
			}
		}

		seen[code] = true
	}

	// 100 draws from a million-code space colliding down to a handful
	// would mean the generator is broken
	if len(seen) < 90 {
		t.Errorf("only %d distinct codes out of 100 draws", len(seen))
	}
}
