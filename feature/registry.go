package feature

import (
	"fmt"
	"sync"

	"github.com/arloliu/featspace/store"
)

// SerializeSpace writes a space with its class id as the leading token, so
// the stream carries enough information to pick the right variant on the
// way back in.
func SerializeSpace(w *store.Writer, s Space) error {
	if err := w.WriteString(s.ClassID()); err != nil {
		return err
	}

	return s.Serialize(w)
}

// ReconstituteSpace reads a space written by SerializeSpace into the given
// instance. A class id mismatch fails with *SchemaError before any of the
// instance's state is touched.
func ReconstituteSpace(r *store.Reader, s Space) error {
	id, err := r.ReadString()
	if err != nil {
		return err
	}

	if id != s.ClassID() {
		return &SchemaError{Want: s.ClassID(), Got: id}
	}

	return s.Reconstitute(r)
}

// Factory creates an empty instance of one Space variant, ready for
// Reconstitute.
type Factory func() Space

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register associates a class id with a factory for its Space variant.
// Registration normally happens from an init function of the package that
// defines the variant. Registering the same id twice panics.
func Register(classID string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[classID]; exists {
		panic(fmt.Sprintf("feature: space class %q registered twice", classID))
	}
	registry[classID] = factory
}

// ReconstituteAny reads a space written by SerializeSpace, using the
// registry to construct the matching variant.
func ReconstituteAny(r *store.Reader) (Space, error) {
	id, err := r.ReadString()
	if err != nil {
		return nil, err
	}

	registryMu.RLock()
	factory, ok := registry[id]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("feature: no space registered for class id %q", id)
	}

	s := factory()
	if err := s.Reconstitute(r); err != nil {
		return nil, err
	}

	return s, nil
}
