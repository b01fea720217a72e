package world

import (
	"math/rand"
	"testing"
)

func TestNewRoomCodeCharset(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 100; i++ {
		code := NewRoomCode(rng)
		if len(code) != 6 {
			t.Fatalf("code %q has length %d, want 6", code, len(code))
		}
		if !ValidRoomCode(code) {
			t.Fatalf("generated code %q fails its own validation", code)
		}
	}
}

func TestValidRoomCode(t *testing.T) {
	cases := []struct {
		code string
		want bool
	}{
		{"ABC123", true},
		{"ZZZZZZ", true},
		{"000000", true},
		{"abc123", false}, // lowercase
		{"ABC12", false},  // too short
		{"ABC1234", false},
		{"ABC-12", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ValidRoomCode(c.code); got != c.want {
			t.Errorf("ValidRoomCode(%q) = %v, want %v", c.code, got, c.want)
		}
	}
}

func TestPlayerColorDeterministic(t *testing.T) {
	c0, b0 := PlayerColor(0)
	c6, b6 := PlayerColor(6) // palette wraps at 6
	if c0 != c6 || b0 != b6 {
		t.Fatalf("palette should wrap: slot 0 = (%s,%s), slot 6 = (%s,%s)", c0, b0, c6, b6)
	}
	c1, _ := PlayerColor(1)
	if c0 == c1 {
		t.Fatal("adjacent slots should differ")
	}
	if b0 == "" {
		t.Fatal("every palette color needs a border shade")
	}
}
