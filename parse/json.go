package parse

import (
	"errors"

	"github.com/arloliu/featspace/buffer"
)

// The scanner supports the JSON subset needed by the toolkit's data files:
// null/bool literals, escaped strings (including \uXXXX), arrays, and
// objects, with insignificant whitespace between tokens. Trailing content
// after a parsed value is not validated here; that is the caller's
// responsibility.

// maxObjectKeyLength bounds keys delivered by ExpectJSONObjectASCII.
const maxObjectKeyLength = 1024

// SkipJSONWhitespace consumes space, tab, CR and LF characters. It is
// idempotent and a no-op at end of input.
func SkipJSONWhitespace(c *Cursor) {
	// Fast path for the usual case of no whitespace.
	if !c.AtEnd() {
		b := c.Peek()
		if b > ' ' {
			return
		}
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return
		}
	}

	for !c.AtEnd() {
		switch c.Peek() {
		case ' ', '\t', '\n', '\r':
			c.Advance()
		default:
			return
		}
	}
}

// AppendJSONEscape appends the quoted, escape-safe form of s to dst and
// returns the extended slice.
//
// Tab, newline, CR, form feed and backspace map to their two-character
// escapes; quote and backslash are backslash-escaped; printable ASCII
// passes through unchanged. Any other control byte is an encoding error:
// this is not a general UTF-8 encoder, and the caller is responsible for
// ensuring the input is escapable.
func AppendJSONEscape(dst []byte, s string) ([]byte, error) {
	dst = append(dst, '"')

	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= ' ' && b < 127 && b != '"' && b != '\\' {
			dst = append(dst, b)
			continue
		}

		switch b {
		case '\t':
			dst = append(dst, '\\', 't')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '"', '\\':
			dst = append(dst, '\\', b)
		default:
			return nil, &Error{Offset: i, Msg: "invalid character in JSON string"}
		}
	}

	return append(dst, '"'), nil
}

// JSONEscape returns the quoted, escape-safe form of s.
// See AppendJSONEscape for the escaping rules.
func JSONEscape(s string) (string, error) {
	dst, err := AppendJSONEscape(make([]byte, 0, len(s)+2), s)
	if err != nil {
		return "", err
	}

	return string(dst), nil
}

// fromHex decodes a single hexadecimal digit, rejecting anything else with
// a parse error naming the offending character.
func fromHex(c *Cursor) (uint16, error) {
	if c.AtEnd() {
		return 0, c.Errorf("invalid hexadecimal: end of input")
	}

	b := c.Advance()
	switch {
	case b >= '0' && b <= '9':
		return uint16(b - '0'), nil
	case b >= 'a' && b <= 'f':
		return uint16(b-'a') + 10, nil
	case b >= 'A' && b <= 'F':
		return uint16(b-'A') + 10, nil
	default:
		return 0, c.Errorf("invalid hexadecimal: %c", b)
	}
}

// fromHex16 decodes four hex digits into a UTF-16 code unit.
func fromHex16(c *Cursor) (uint16, error) {
	var code uint16
	for range 4 {
		digit, err := fromHex(c)
		if err != nil {
			return 0, err
		}
		code = code<<4 | digit
	}

	return code, nil
}

// ReadJSONString scans one double-quoted string, delivering plain bytes to
// onByte and \uXXXX code units to onUTF16.
//
// The two-callback split lets callers choose ASCII-only strictness versus
// full decoding without duplicating the scan loop. A non-nil error from
// either callback aborts the scan.
func ReadJSONString(c *Cursor, onByte func(byte) error, onUTF16 func(uint16) error) error {
	SkipJSONWhitespace(c)
	if err := c.ExpectByte('"'); err != nil {
		return err
	}

	for !c.MatchByte('"') {
		if c.AtEnd() {
			return c.Errorf("unterminated JSON string")
		}

		b := c.Advance()
		if b != '\\' {
			if err := onByte(b); err != nil {
				return err
			}
			continue
		}

		if c.AtEnd() {
			return c.Errorf("unterminated escape sequence")
		}

		b = c.Advance()
		switch b {
		case 't':
			err := onByte('\t')
			if err != nil {
				return err
			}
		case 'n':
			err := onByte('\n')
			if err != nil {
				return err
			}
		case 'r':
			err := onByte('\r')
			if err != nil {
				return err
			}
		case 'f':
			err := onByte('\f')
			if err != nil {
				return err
			}
		case 'b':
			err := onByte('\b')
			if err != nil {
				return err
			}
		case '/', '\\', '"':
			err := onByte(b)
			if err != nil {
				return err
			}
		case 'u':
			code, err := fromHex16(c)
			if err != nil {
				return err
			}
			if err := onUTF16(code); err != nil {
				return err
			}
		default:
			return c.Errorf("invalid escape sequence: \\%c", b)
		}
	}

	return nil
}

// readJSONStringASCII funnels both plain bytes and \uXXXX code units of one
// string into a single code-unit callback.
func readJSONStringASCII(c *Cursor, push func(uint16) error) error {
	return ReadJSONString(c,
		func(b byte) error { return push(uint16(b)) },
		push,
	)
}

// ExpectJSONStringASCII scans one string and returns it, rejecting any code
// unit above 127 with a parse error.
func ExpectJSONStringASCII(c *Cursor) (string, error) {
	result := buffer.NewGrowing()
	err := readJSONStringASCII(c, func(code uint16) error {
		if code > 127 {
			return c.Errorf("non-ASCII string character")
		}
		result.AppendByte(byte(code))

		return nil
	})
	if err != nil {
		return "", err
	}

	return result.String(), nil
}

// ExpectJSONStringASCIIPermissive scans one string, substituting
// replacement for any code unit above 127 instead of failing.
func ExpectJSONStringASCIIPermissive(c *Cursor, replacement byte) (string, error) {
	result := buffer.NewGrowing()
	err := readJSONStringASCII(c, func(code uint16) error {
		if code > 127 {
			code = uint16(replacement)
		}
		result.AppendByte(byte(code))

		return nil
	})
	if err != nil {
		return "", err
	}

	return result.String(), nil
}

// ExpectJSONStringASCIIInto scans one string into caller-supplied storage
// and returns the number of bytes written.
//
// When the string does not fit, it returns -1 and an error wrapping
// buffer.ErrOverflow, so callers can treat "too long" as a recoverable
// condition distinct from a malformed string.
func ExpectJSONStringASCIIInto(c *Cursor, storage []byte) (int, error) {
	result := buffer.NewExternal(storage)
	err := readJSONStringASCII(c, func(code uint16) error {
		if code > 127 {
			return c.Errorf("non-ASCII string character")
		}

		return result.AppendByte(byte(code))
	})
	if err != nil {
		return -1, err
	}

	return result.Len(), nil
}

// MatchJSONString is the probing counterpart of ExpectJSONStringASCII: it
// returns ("", false) and restores the cursor if the input is not a
// well-formed ASCII string.
func MatchJSONString(c *Cursor) (string, bool) {
	cp := c.Checkpoint()
	defer cp.Rollback()

	s, err := ExpectJSONStringASCII(c)
	if err != nil {
		return "", false
	}

	cp.Commit()

	return s, true
}

// MatchJSONNull consumes a literal null, reporting whether one was found.
func MatchJSONNull(c *Cursor) bool {
	SkipJSONWhitespace(c)
	return c.MatchLiteral("null")
}

// ExpectJSONBool scans a true or false literal.
func ExpectJSONBool(c *Cursor) (bool, error) {
	SkipJSONWhitespace(c)
	if c.MatchLiteral("true") {
		return true, nil
	}
	if c.MatchLiteral("false") {
		return false, nil
	}

	return false, c.Errorf("expected bool (true or false)")
}

// ExpectJSONArray scans a JSON array, invoking onEntry with each element
// index and the cursor positioned at the start of the corresponding value.
//
// The callback must consume exactly one value; the traversal does not
// validate this. A literal null in place of the array is treated as empty.
func ExpectJSONArray(c *Cursor, onEntry func(index int, c *Cursor) error) error {
	SkipJSONWhitespace(c)

	if c.MatchLiteral("null") {
		return nil
	}

	if err := c.ExpectByte('['); err != nil {
		return err
	}
	SkipJSONWhitespace(c)
	if c.MatchByte(']') {
		return nil
	}

	for i := 0; ; i++ {
		SkipJSONWhitespace(c)

		if err := onEntry(i, c); err != nil {
			return err
		}

		SkipJSONWhitespace(c)

		if !c.MatchByte(',') {
			break
		}
	}

	SkipJSONWhitespace(c)

	return c.ExpectByte(']')
}

// ExpectJSONObject scans a JSON object, invoking onEntry with each key and
// the cursor positioned at the start of the corresponding value.
//
// The callback must consume exactly one value; the traversal does not
// validate this. A literal null in place of the object is treated as empty.
func ExpectJSONObject(c *Cursor, onEntry func(key string, c *Cursor) error) error {
	SkipJSONWhitespace(c)

	if c.MatchLiteral("null") {
		return nil
	}

	if err := c.ExpectByte('{'); err != nil {
		return err
	}
	SkipJSONWhitespace(c)
	if c.MatchByte('}') {
		return nil
	}

	for {
		SkipJSONWhitespace(c)

		key, err := ExpectJSONStringASCII(c)
		if err != nil {
			return err
		}

		SkipJSONWhitespace(c)
		if err := c.ExpectByte(':'); err != nil {
			return err
		}
		SkipJSONWhitespace(c)

		if err := onEntry(key, c); err != nil {
			return err
		}

		SkipJSONWhitespace(c)

		if !c.MatchByte(',') {
			break
		}
	}

	SkipJSONWhitespace(c)

	return c.ExpectByte('}')
}

// ExpectJSONObjectASCII behaves like ExpectJSONObject but scans keys into a
// fixed-size buffer, turning oversized keys into a parse error instead of
// growing without bound.
func ExpectJSONObjectASCII(c *Cursor, onEntry func(key string, c *Cursor) error) error {
	SkipJSONWhitespace(c)

	if c.MatchLiteral("null") {
		return nil
	}

	if err := c.ExpectByte('{'); err != nil {
		return err
	}
	SkipJSONWhitespace(c)
	if c.MatchByte('}') {
		return nil
	}

	var keyStorage [maxObjectKeyLength]byte
	for {
		SkipJSONWhitespace(c)

		n, err := ExpectJSONStringASCIIInto(c, keyStorage[:])
		if err != nil {
			if errors.Is(err, buffer.ErrOverflow) {
				return c.Errorf("JSON key is too long")
			}

			return err
		}
		key := string(keyStorage[:n])

		SkipJSONWhitespace(c)
		if err := c.ExpectByte(':'); err != nil {
			return err
		}
		SkipJSONWhitespace(c)

		if err := onEntry(key, c); err != nil {
			return err
		}

		SkipJSONWhitespace(c)

		if !c.MatchByte(',') {
			break
		}
	}

	SkipJSONWhitespace(c)

	return c.ExpectByte('}')
}

// MatchJSONObject is the probing counterpart of ExpectJSONObject: it
// returns false and restores the cursor instead of failing when the input
// is not a well-formed object, supporting "try one of several shapes" call
// patterns.
//
// The callback may itself return false to abort the whole match; the
// cursor is restored in that case as well. A literal null matches as an
// empty object.
func MatchJSONObject(c *Cursor, onEntry func(key string, c *Cursor) bool) bool {
	cp := c.Checkpoint()
	defer cp.Rollback()

	SkipJSONWhitespace(c)

	if c.MatchLiteral("null") {
		cp.Commit()
		return true
	}

	if !c.MatchByte('{') {
		return false
	}
	SkipJSONWhitespace(c)
	if c.MatchByte('}') {
		cp.Commit()
		return true
	}

	for {
		SkipJSONWhitespace(c)

		key, ok := MatchJSONString(c)
		if !ok {
			return false
		}

		SkipJSONWhitespace(c)
		if !c.MatchByte(':') {
			return false
		}
		SkipJSONWhitespace(c)

		if !onEntry(key, c) {
			return false
		}

		SkipJSONWhitespace(c)

		if !c.MatchByte(',') {
			break
		}
	}

	SkipJSONWhitespace(c)
	if !c.MatchByte('}') {
		return false
	}

	cp.Commit()

	return true
}
