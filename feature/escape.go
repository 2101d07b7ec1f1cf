package feature

import (
	"strings"

	"github.com/arloliu/featspace/buffer"
	"github.com/arloliu/featspace/parse"
)

// Feature names are printed into line-oriented, colon/pipe-delimited data
// files, so they follow a narrower textual grammar than JSON strings:
//
//   - ':', '|' and '\' are backslash-escaped
//   - a token beginning with '"' is a backslash-escaped quoted string
//     (chosen by the encoder when the name contains spaces or is empty)
//   - raw CR or LF is forbidden anywhere, in either direction
//
// This keeps printed features safely embeddable in one-line records.

// EscapeName returns the printable form of a feature name.
// Names containing CR or LF cannot be printed and fail.
func EscapeName(name string) (string, error) {
	if strings.ContainsAny(name, "\r\n") {
		return "", &parse.Error{Offset: 0, Msg: "feature name contains CR or LF"}
	}

	if name == "" || name[0] == '"' || strings.ContainsAny(name, " \t") {
		return quoteName(name), nil
	}

	var sb strings.Builder
	sb.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == ':' || c == '|' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}

	return sb.String(), nil
}

func quoteName(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '"' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')

	return sb.String()
}

// ExpectName scans one printed feature name, undoing the escaping done by
// EscapeName. The scan stops at the first unescaped delimiter (colon, pipe,
// whitespace) or end of input.
func ExpectName(c *parse.Cursor) (string, error) {
	if !c.AtEnd() && c.Peek() == '"' {
		return expectQuotedName(c)
	}

	result := buffer.NewGrowing()
	for !c.AtEnd() {
		b := c.Peek()
		if b == ':' || b == '|' || b == ' ' || b == '\t' {
			break
		}
		if b == '\r' || b == '\n' {
			return "", c.Errorf("feature name contains CR or LF")
		}

		c.Advance()
		if b == '\\' {
			if c.AtEnd() {
				return "", c.Errorf("unterminated escape in feature name")
			}
			b = c.Advance()
		}
		result.AppendByte(b)
	}

	if result.Len() == 0 {
		return "", c.Errorf("expected feature name")
	}

	return result.String(), nil
}

func expectQuotedName(c *parse.Cursor) (string, error) {
	if err := c.ExpectByte('"'); err != nil {
		return "", err
	}

	result := buffer.NewGrowing()
	for {
		if c.AtEnd() {
			return "", c.Errorf("unterminated quoted feature name")
		}

		b := c.Advance()
		switch b {
		case '"':
			return result.String(), nil
		case '\r', '\n':
			return "", c.Errorf("feature name contains CR or LF")
		case '\\':
			if c.AtEnd() {
				return "", c.Errorf("unterminated escape in feature name")
			}
			result.AppendByte(c.Advance())
		default:
			result.AppendByte(b)
		}
	}
}

// MatchName is the probing counterpart of ExpectName: it returns
// ("", false) and restores the cursor when no well-formed name is present.
func MatchName(c *parse.Cursor) (string, bool) {
	cp := c.Checkpoint()
	defer cp.Rollback()

	name, err := ExpectName(c)
	if err != nil {
		return "", false
	}

	cp.Commit()

	return name, true
}
