package store

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

func idExists(st *State, id string) bool {
	for _, it := range st.Items {
		if it.ID == id {
			return true
		}
	}
	for _, c := range st.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

var idSeq int

// NextID allocates a fresh identifier with the given prefix (item-xxx,
// cat-xxx). Collisions are vanishingly rare but checked anyway.
func NextID(st *State, prefix string) string {
	for i := 0; i < 10; i++ {
		id, err := newRandomID(prefix)
		if err != nil {
			break
		}
		if !idExists(st, id) {
			return id
		}
	}
	// Fallback when crypto/rand fails or keeps colliding.
	for {
		idSeq++
		id := fmt.Sprintf("%s-%d", prefix, idSeq)
		if !idExists(st, id) {
			return id
		}
	}
}
