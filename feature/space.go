package feature

import (
	"fmt"

	"github.com/arloliu/featspace/format"
	"github.com/arloliu/featspace/parse"
	"github.com/arloliu/featspace/store"
)

// Space binds opaque features to metadata and to text and binary
// encodings. Implementations range from dense layouts (features implicit
// in a fixed column order) to sparse ones (features interned by name);
// the Default* functions in this package supply the behavior most
// variants share.
//
// # Concurrency
//
// A Space follows a single-writer-then-many-readers discipline: construct
// and populate it in one goroutine, optionally Freeze it, then publish it.
// After publication all non-mutating operations are safe for
// unsynchronized concurrent use. The discipline is a caller obligation;
// nothing here enforces it internally.
type Space interface {
	// Info returns how the given feature's value is used. It is called
	// frequently and must not do heavy computation.
	Info(f Feature) (FeatureInfo, error)

	// ClassID returns the polymorphic type tag for this variant. It is
	// written as the first token when the space itself is serialized and
	// checked on reconstitution.
	ClassID() string

	// Type reports the broad layout category of the space.
	Type() format.SpaceType

	// PrintFeature renders a feature in the escaped name grammar (see
	// EscapeName); the result parses back through ExpectFeature.
	PrintFeature(f Feature) (string, error)

	// ExpectFeature parses a printed feature, failing with an error that
	// leaves the cursor unchanged when no valid feature is present.
	ExpectFeature(c *parse.Cursor) (Feature, error)

	// ParseFeature is the probing counterpart of ExpectFeature: it
	// reports false and restores the cursor instead of failing, so
	// callers can use it to detect the end of a feature list.
	ParseFeature(c *parse.Cursor) (Feature, bool)

	// PrintValue renders one value of the given feature (the category
	// name for categorical features, the float text otherwise).
	PrintValue(f Feature, v float32) (string, error)

	// ParseValue maps printed value text back to the value.
	ParseValue(f Feature, text string) (float32, error)

	// SerializeFeature writes the feature to a binary store; the default
	// representation is three compact-size integers.
	SerializeFeature(w *store.Writer, f Feature) error

	// ReconstituteFeature reads a feature written by SerializeFeature.
	ReconstituteFeature(r *store.Reader) (Feature, error)

	// SerializeValue writes one value of the given feature: a binary
	// float, or a length-prefixed string for string-typed features so no
	// global interning table needs to be serialized alongside.
	SerializeValue(w *store.Writer, f Feature, v float32) error

	// ReconstituteValue reads a value written by SerializeValue.
	ReconstituteValue(r *store.Reader, f Feature) (float32, error)

	// PrintSet renders a whole feature set as a single line of
	// space-separated feature:value pairs.
	PrintSet(set *Set) (string, error)

	// SerializeSet writes a whole feature set. Spaces may store sets more
	// compactly than entry-by-entry (dense layouts omit the features).
	SerializeSet(w *store.Writer, set *Set) error

	// ReconstituteSet reads a set written by SerializeSet.
	ReconstituteSet(r *store.Reader) (*Set, error)

	// Serialize writes the space's own parameters. The class id is not
	// written here; SerializeSpace frames it.
	Serialize(w *store.Writer) error

	// Reconstitute reads the parameters written by Serialize.
	Reconstitute(r *store.Reader) error

	// MakeCopy returns a clone deep enough to be mutated independently.
	MakeCopy() Space

	// Freeze irreversibly forbids creation of new feature identifiers,
	// bounding the growth of any internal name table. Implementations
	// without such tables may make it a no-op.
	Freeze()
}

// MutableSpace is a feature space that can still be modified. Mutations
// must be confined to the single-threaded setup phase before the space is
// published to readers.
type MutableSpace interface {
	Space

	// SetInfo replaces the metadata of an existing feature.
	SetInfo(f Feature, info FeatureInfo) error

	// MakeFeature creates a feature with the given name, or returns the
	// existing one without overwriting its info (idempotent).
	MakeFeature(name string, info FeatureInfo) (Feature, error)

	// GetFeature returns the feature registered under name, failing with
	// *UnknownFeatureError if the name was never registered.
	GetFeature(name string) (Feature, error)

	// Import merges another space's features into this one, doing any
	// necessary sparse/dense translation.
	Import(from Space) error
}

// SchemaError reports a class-id mismatch during binary reconstitution.
// It is fatal: binary streams offer no recovery point.
type SchemaError struct {
	Want string
	Got  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("feature space class id mismatch: want %q, got %q", e.Want, e.Got)
}

// UnknownFeatureError reports a lookup of a feature name that was never
// registered.
type UnknownFeatureError struct {
	Name string
}

func (e *UnknownFeatureError) Error() string {
	return fmt.Sprintf("unknown feature %q", e.Name)
}
