package waitinglist

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewNotifyToken returns a fresh opaque claim token. 16 random bytes keep it
// unguessable; the timestamp suffix keeps it unique even if the entropy
// source misbehaves.
func NewNotifyToken() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("wl-fallback-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
