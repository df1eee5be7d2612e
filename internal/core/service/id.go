package service

import (
	"crypto/rand"
	"fmt"
	"time"
)

// generateID returns a unique record id in the format <prefix>-XXXXXXXXXXXX.
func generateID(prefix string) string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%s-%012X", prefix, time.Now().UnixNano()&0xFFFFFFFFFFFF)
	}
	return fmt.Sprintf("%s-%012X", prefix, b)
}
