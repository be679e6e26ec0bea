package utils

import (
	"testing"
)

func TestRand16BytesToBase62(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		token := Rand16BytesToBase62()
		if token == "" {
			t.Fatal("empty token")
		}
		if len(token) > 22 {
			t.Fatalf("token longer than 16 bytes in base62: %q", token)
		}
		for _, r := range token {
			if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
				t.Fatalf("token %q is not URL-safe", token)
			}
		}
		if seen[token] {
			t.Fatalf("duplicate token after %d draws: %q", i, token)
		}
		seen[token] = true
	}
}
