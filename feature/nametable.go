package feature

import (
	"errors"
	"fmt"

	"github.com/arloliu/featspace/internal/hash"
	"github.com/arloliu/featspace/store"
)

// ErrFrozen reports an attempt to intern a new name in a frozen table.
var ErrFrozen = errors.New("feature: name table is frozen")

// NameTable interns feature names, assigning each distinct name a stable
// dense index. Sparse spaces use it to map names to feature identifiers
// and back.
//
// Lookups go through an xxhash digest of the name; hash collisions are
// resolved by comparing the stored strings, so interning stays correct
// even for adversarial name sets.
//
// The table follows the same single-writer-then-many-readers discipline
// as Space: intern during setup, Freeze, then share freely.
type NameTable struct {
	byID   map[uint64][]int32
	names  []string
	frozen bool
}

// NewNameTable creates an empty table.
func NewNameTable() *NameTable {
	return &NameTable{byID: make(map[uint64][]int32)}
}

// Intern returns the index of name, assigning the next free index the
// first time a name is seen. Interning a new name into a frozen table
// fails with ErrFrozen; names already present keep resolving.
func (t *NameTable) Intern(name string) (int32, error) {
	id := hash.NameID(name)
	for _, idx := range t.byID[id] {
		if t.names[idx] == name {
			return idx, nil
		}
	}

	if t.frozen {
		return 0, ErrFrozen
	}

	idx := int32(len(t.names))
	t.names = append(t.names, name)
	t.byID[id] = append(t.byID[id], idx)

	return idx, nil
}

// Lookup returns the index of name without interning it.
func (t *NameTable) Lookup(name string) (int32, bool) {
	id := hash.NameID(name)
	for _, idx := range t.byID[id] {
		if t.names[idx] == name {
			return idx, true
		}
	}

	return 0, false
}

// Name returns the name stored at idx.
func (t *NameTable) Name(idx int32) (string, error) {
	if idx < 0 || int(idx) >= len(t.names) {
		return "", fmt.Errorf("feature: name index %d out of range [0, %d)", idx, len(t.names))
	}

	return t.names[idx], nil
}

// Len returns the number of interned names.
func (t *NameTable) Len() int {
	return len(t.names)
}

// Freeze forbids interning of further names. Irreversible.
func (t *NameTable) Freeze() {
	t.frozen = true
}

// Frozen reports whether the table has been frozen.
func (t *NameTable) Frozen() bool {
	return t.frozen
}

// MakeCopy returns an independent copy. The copy is never frozen, so it
// can serve as the mutable scratch version of a published table.
func (t *NameTable) MakeCopy() *NameTable {
	c := &NameTable{
		byID:  make(map[uint64][]int32, len(t.byID)),
		names: append([]string(nil), t.names...),
	}
	for id, idxs := range t.byID {
		c.byID[id] = append([]int32(nil), idxs...)
	}

	return c
}

// Serialize writes the interned names in index order, preceded by a
// compact-size count and the frozen flag.
func (t *NameTable) Serialize(w *store.Writer) error {
	frozen := byte(0)
	if t.frozen {
		frozen = 1
	}
	if err := w.WriteByte(frozen); err != nil {
		return err
	}

	if err := w.WriteCompact(uint64(len(t.names))); err != nil {
		return err
	}
	for _, name := range t.names {
		if err := w.WriteString(name); err != nil {
			return err
		}
	}

	return nil
}

// Reconstitute replaces the table's contents with a serialized table.
func (t *NameTable) Reconstitute(r *store.Reader) error {
	frozen, err := r.ReadByte()
	if err != nil {
		return err
	}

	count, err := r.ReadCompact()
	if err != nil {
		return err
	}

	byID := make(map[uint64][]int32, count)
	names := make([]string, 0, count)
	for i := range count {
		name, err := r.ReadString()
		if err != nil {
			return err
		}

		id := hash.NameID(name)
		byID[id] = append(byID[id], int32(i))
		names = append(names, name)
	}

	t.byID = byID
	t.names = names
	t.frozen = frozen != 0

	return nil
}
