package feature

import (
	"strconv"
	"strings"

	"github.com/arloliu/featspace/format"
	"github.com/arloliu/featspace/internal/pool"
	"github.com/arloliu/featspace/parse"
	"github.com/arloliu/featspace/store"
)

// Default implementations of the Space operations, shared by variants
// that do not need to specialize them. A variant embeds nothing; it simply
// delegates the methods it does not override to these functions, passing
// itself where the operation needs Info lookups.

// DefaultPrintFeature renders a feature the same way as the tuple it is
// based on: "(type arg1 arg2)".
func DefaultPrintFeature(f Feature) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(strconv.FormatInt(int64(f.Type), 10))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatInt(int64(f.Arg1), 10))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatInt(int64(f.Arg2), 10))
	sb.WriteByte(')')

	return sb.String()
}

// DefaultExpectFeature parses the representation produced by
// DefaultPrintFeature, leaving the cursor unchanged on failure.
func DefaultExpectFeature(c *parse.Cursor) (Feature, error) {
	cp := c.Checkpoint()
	defer cp.Rollback()

	if err := c.ExpectByte('('); err != nil {
		return Feature{}, err
	}

	var fields [3]int32
	for i := range fields {
		skipLineSpaces(c)
		v, err := expectInt32(c)
		if err != nil {
			return Feature{}, err
		}
		fields[i] = v
	}

	skipLineSpaces(c)
	if err := c.ExpectByte(')'); err != nil {
		return Feature{}, err
	}

	cp.Commit()

	return Feature{Type: fields[0], Arg1: fields[1], Arg2: fields[2]}, nil
}

// DefaultParseFeature is the probing counterpart of DefaultExpectFeature.
func DefaultParseFeature(c *parse.Cursor) (Feature, bool) {
	f, err := DefaultExpectFeature(c)
	if err != nil {
		return Feature{}, false
	}

	return f, true
}

// DefaultPrintValue renders a value as a float.
func DefaultPrintValue(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// DefaultParseValue parses the representation produced by
// DefaultPrintValue.
func DefaultParseValue(text string) (float32, error) {
	v, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return 0, &parse.Error{Offset: 0, Msg: "invalid feature value " + strconv.Quote(text)}
	}

	return float32(v), nil
}

// DefaultSerializeFeature writes each of the three tuple fields as a
// compact-size integer.
func DefaultSerializeFeature(w *store.Writer, f Feature) error {
	if err := w.WriteCompactSigned(int64(f.Type)); err != nil {
		return err
	}
	if err := w.WriteCompactSigned(int64(f.Arg1)); err != nil {
		return err
	}

	return w.WriteCompactSigned(int64(f.Arg2))
}

// DefaultReconstituteFeature reads a feature written by
// DefaultSerializeFeature.
func DefaultReconstituteFeature(r *store.Reader) (Feature, error) {
	var fields [3]int64
	for i := range fields {
		v, err := r.ReadCompactSigned()
		if err != nil {
			return Feature{}, err
		}
		fields[i] = v
	}

	return Feature{Type: int32(fields[0]), Arg1: int32(fields[1]), Arg2: int32(fields[2])}, nil
}

// DefaultSerializeValue writes the value as a binary float, or as a
// length-prefixed string for string-typed features. The feature itself is
// not written.
func DefaultSerializeValue(s Space, w *store.Writer, f Feature, v float32) error {
	info, err := s.Info(f)
	if err != nil {
		return err
	}

	if info.Type == TypeString {
		text, err := s.PrintValue(f, v)
		if err != nil {
			return err
		}

		return w.WriteString(text)
	}

	return w.WriteFloat32(v)
}

// DefaultReconstituteValue reads a value written by DefaultSerializeValue.
func DefaultReconstituteValue(s Space, r *store.Reader, f Feature) (float32, error) {
	info, err := s.Info(f)
	if err != nil {
		return 0, err
	}

	if info.Type == TypeString {
		text, err := r.ReadString()
		if err != nil {
			return 0, err
		}

		return s.ParseValue(f, text)
	}

	return r.ReadFloat32()
}

// PrintPair renders one feature:value pair using the space's feature and
// value printers. The value text goes through the same escaping grammar as
// feature names so category names stay embeddable.
func PrintPair(s Space, f Feature, v float32) (string, error) {
	ftext, err := s.PrintFeature(f)
	if err != nil {
		return "", err
	}

	vtext, err := s.PrintValue(f, v)
	if err != nil {
		return "", err
	}
	escaped, err := EscapeName(vtext)
	if err != nil {
		return "", err
	}

	return ftext + ":" + escaped, nil
}

// ExpectPair parses one feature:value pair.
func ExpectPair(s Space, c *parse.Cursor) (Feature, float32, error) {
	f, err := s.ExpectFeature(c)
	if err != nil {
		return Feature{}, 0, err
	}

	if err := c.ExpectByte(':'); err != nil {
		return Feature{}, 0, err
	}

	token, err := ExpectName(c)
	if err != nil {
		return Feature{}, 0, err
	}

	v, err := s.ParseValue(f, token)
	if err != nil {
		return Feature{}, 0, err
	}

	return f, v, nil
}

// DefaultPrintSet writes a set in the sparse text format: feature, colon,
// value, with pairs separated by single spaces, all on one line.
func DefaultPrintSet(s Space, set *Set) (string, error) {
	var sb strings.Builder

	first := true
	for f, v := range set.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false

		pair, err := PrintPair(s, f, v)
		if err != nil {
			return "", err
		}
		sb.WriteString(pair)
	}

	return sb.String(), nil
}

// ParseSetText parses a one-line printed feature set, stopping at the
// first token that does not parse as a feature (end of line or input).
func ParseSetText(s Space, c *parse.Cursor) (*Set, error) {
	set := NewSet(8)

	for {
		skipLineSpaces(c)
		if c.AtEnd() {
			break
		}

		// A token that does not parse as a feature ends the list rather
		// than failing it.
		f, ok := s.ParseFeature(c)
		if !ok {
			break
		}

		if err := c.ExpectByte(':'); err != nil {
			return nil, err
		}
		token, err := ExpectName(c)
		if err != nil {
			return nil, err
		}
		v, err := s.ParseValue(f, token)
		if err != nil {
			return nil, err
		}
		set.Add(f, v)
	}

	return set, nil
}

// DefaultSerializeSet writes a compact-size entry count followed by each
// feature and its value.
func DefaultSerializeSet(s Space, w *store.Writer, set *Set) error {
	if err := w.WriteCompact(uint64(set.Len())); err != nil {
		return err
	}

	for f, v := range set.All() {
		if err := s.SerializeFeature(w, f); err != nil {
			return err
		}
		if err := s.SerializeValue(w, f, v); err != nil {
			return err
		}
	}

	return nil
}

// DefaultReconstituteSet reads a set written by DefaultSerializeSet.
func DefaultReconstituteSet(s Space, r *store.Reader) (*Set, error) {
	count, err := r.ReadCompact()
	if err != nil {
		return nil, err
	}

	set := NewSet(int(count))
	for range count {
		f, err := s.ReconstituteFeature(r)
		if err != nil {
			return nil, err
		}

		v, err := s.ReconstituteValue(r, f)
		if err != nil {
			return nil, err
		}

		set.Add(f, v)
	}

	return set, nil
}

// SerializeSetCompressed stages the set's binary form in a pooled buffer
// and writes it as one compressed block, for bulk archival of collected
// training data.
func SerializeSetCompressed(s Space, w *store.Writer, set *Set, compression format.CompressionType) error {
	staging := pool.GetStoreBuffer()
	defer pool.PutStoreBuffer(staging)

	inner, err := store.NewWriter(staging)
	if err != nil {
		return err
	}
	if err := s.SerializeSet(inner, set); err != nil {
		return err
	}

	return w.WriteBlock(staging.Bytes(), compression)
}

// ReconstituteSetCompressed reads a set written by SerializeSetCompressed.
func ReconstituteSetCompressed(s Space, r *store.Reader) (*Set, error) {
	payload, err := r.ReadBlock()
	if err != nil {
		return nil, err
	}

	inner, err := store.NewReader(payload)
	if err != nil {
		return nil, err
	}

	return s.ReconstituteSet(inner)
}

// skipLineSpaces consumes spaces and tabs, but never CR or LF: feature
// set text is a strictly one-line format.
func skipLineSpaces(c *parse.Cursor) {
	for !c.AtEnd() {
		b := c.Peek()
		if b != ' ' && b != '\t' {
			return
		}
		c.Advance()
	}
}

func expectInt32(c *parse.Cursor) (int32, error) {
	start := c.Offset()

	negative := c.MatchByte('-')

	var digits int
	var v int64
	for !c.AtEnd() {
		b := c.Peek()
		if b < '0' || b > '9' {
			break
		}
		c.Advance()
		digits++

		v = v*10 + int64(b-'0')
		if v > 1<<31 {
			return 0, &parse.Error{Offset: start, Msg: "integer out of range"}
		}
	}

	if digits == 0 {
		return 0, c.Errorf("expected integer")
	}

	if negative {
		v = -v
	}
	if v < -(1<<31) || v > 1<<31-1 {
		return 0, &parse.Error{Offset: start, Msg: "integer out of range"}
	}

	return int32(v), nil
}
