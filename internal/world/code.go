package world

import "math/rand"

const roomCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const roomCodeLen = 6

// NewRoomCode generates a 6-character join code. The rand source is injected
// so tests get reproducible codes.
func NewRoomCode(rng *rand.Rand) string {
	buf := make([]byte, roomCodeLen)
	for i := range buf {
		buf[i] = roomCodeChars[rng.Intn(len(roomCodeChars))]
	}
	return string(buf)
}

// ValidRoomCode reports whether a client-supplied code is usable as-is.
func ValidRoomCode(code string) bool {
	if len(code) != roomCodeLen {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
