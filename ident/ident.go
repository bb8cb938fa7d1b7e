// Package ident generates identifiers for new commits.
package ident

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"
)

// Generator produces unique identifiers from a seed string.
type Generator interface {
	Generate(seed string) string
}

// Hasher mixes a high resolution timestamp and a sequence number into the
// seed before hashing, so identical seeds still produce distinct IDs.
type Hasher struct {
	// Now is the clock used for the timestamp.  Defaults to time.Now.
	Now func() time.Time
}

// Default is the Hasher used when no other Generator is supplied.
var Default = &Hasher{}

var seq uint64

// Generate returns a hex encoded SHA256 of the seed, the current time and a sequence number.
func (h *Hasher) Generate(seed string) string {
	now := time.Now
	if h != nil && h.Now != nil {
		now = h.Now
	}
	var b bytes.Buffer
	b.WriteString(seed)
	b.WriteByte(0)
	b.WriteString(now().UTC().Format(time.RFC3339Nano))
	b.WriteByte(0)
	b.WriteString(strconv.FormatUint(atomic.AddUint64(&seq, 1), 10))
	s := sha256.Sum256(b.Bytes())
	return hex.EncodeToString(s[:])
}

// Generate is shorthand for Default.Generate.
func Generate(seed string) string {
	return Default.Generate(seed)
}

// Short returns the abbreviated form of an ID used in user visible output.
func Short(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}
