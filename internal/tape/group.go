package tape

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// Group lists the entries that share one key, in occurrence order. Groups are
// returned in order of first appearance.
type Group struct {
	Key     int // token index of the first occurrence's key
	Entries []Entry
}

// GroupEntries groups entries by exact key bytes. Parameter keys never match
// scalar keys.
func (t *Tape) GroupEntries(entries []Entry) []Group {
	if len(entries) == 0 {
		return nil
	}
	groups := make([]Group, 0, len(entries))
	// hash -> group indices; more than one index only on hash collision
	seen := make(map[uint64][]int, len(entries))
	for _, e := range entries {
		h := t.keyHash(e.Key)
		slot := -1
		for _, gi := range seen[h] {
			if t.SameKey(groups[gi].Key, e.Key) {
				slot = gi
				break
			}
		}
		if slot < 0 {
			seen[h] = append(seen[h], len(groups))
			groups = append(groups, Group{Key: e.Key, Entries: []Entry{e}})
			continue
		}
		groups[slot].Entries = append(groups[slot].Entries, e)
	}
	return groups
}

// SameKey reports whether the key tokens a and b are the same key.
func (t *Tape) SameKey(a, b int) bool {
	if keyClass(t.toks[a].Kind) != keyClass(t.toks[b].Kind) {
		return false
	}
	return bytes.Equal(t.Bytes(a), t.Bytes(b))
}

func (t *Tape) keyHash(i int) uint64 {
	h := xxhash.Sum64(t.Bytes(i))
	return h ^ uint64(keyClass(t.toks[i].Kind))
}

// keyClass separates scalar keys from defined and undefined parameters.
func keyClass(k Kind) uint8 {
	switch k {
	case KindParameter:
		return 1
	case KindUndefinedParameter:
		return 2
	}
	return 0
}
