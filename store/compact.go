// Package store implements the sequential binary transport used by feature
// space serialization: a canonical variable-length integer codec plus
// Writer/Reader pairs for length-prefixed primitives.
//
// Reads either fully succeed or fail with a *FormatError; there is no
// speculative binary read, and a Reader is unrecoverable after any decode
// error since binary streams offer no resynchronization point.
package store

import "fmt"

// MaxCompact is the largest value the compact-size codec represents.
// Behavior above 2^62-1 is out of range by construction; both encode and
// decode check the bound explicitly.
const MaxCompact = uint64(1)<<62 - 1

// FormatError is a committed binary decode (or encode range) failure.
// It carries the stream offset at which the failure was detected.
type FormatError struct {
	Offset int
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("binary store error at offset %d: %s", e.Offset, e.Msg)
}

// The compact-size encoding stores an unsigned integer in 1 to 9 bytes.
// The count of leading one bits in the first byte gives the number of
// continuation bytes, so a reader always knows the encoded length from the
// first byte alone. The remaining bits of the first byte and all
// continuation bytes hold the value, big-endian.
//
//	1 byte:  0xxxxxxx                  7 bits
//	2 bytes: 10xxxxxx + 1 byte        14 bits
//	...
//	8 bytes: 11111110 + 7 bytes       56 bits
//	9 bytes: 11111111 + 8 bytes       62 bits (capped)
//
// Encoding is canonical: each value has exactly one representation, the
// shortest that fits, so encode and decode form a bijection on [0, 2^62).

// compactLen returns the encoded byte length for v. v must be <= MaxCompact.
func compactLen(v uint64) int {
	for k := 0; k < 8; k++ {
		if v < uint64(1)<<(7*(k+1)) {
			return k + 1
		}
	}

	return 9
}

// AppendCompact appends the compact-size encoding of v to dst.
// Values above MaxCompact are rejected with a *FormatError.
func AppendCompact(dst []byte, v uint64) ([]byte, error) {
	if v > MaxCompact {
		return nil, &FormatError{Offset: len(dst), Msg: fmt.Sprintf("value %d exceeds compact-size range", v)}
	}

	length := compactLen(v)
	if length == 1 {
		return append(dst, byte(v)), nil
	}

	// First byte: (length-1) leading ones, a zero bit, then the top bits
	// of the value.
	cont := length - 1
	marker := byte(0xFF) << (8 - cont) //nolint:gosec
	top := byte(v >> (8 * cont))       //nolint:gosec
	dst = append(dst, marker|top)

	for i := cont - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>(8*i))) //nolint:gosec
	}

	return dst, nil
}

// DecodeCompact decodes one compact-size integer from the start of data,
// returning the value and the number of bytes consumed.
//
// Truncated input, non-canonical encodings, and values above MaxCompact
// are all rejected with a *FormatError.
func DecodeCompact(data []byte) (uint64, int, error) {
	if len(data) == 0 {
		return 0, 0, &FormatError{Offset: 0, Msg: "compact-size integer truncated"}
	}

	first := data[0]
	if first < 0x80 {
		return uint64(first), 1, nil
	}

	// Count the leading one bits to get the continuation byte count.
	cont := 0
	for mask := byte(0x80); mask > 0 && first&mask != 0; mask >>= 1 {
		cont++
	}

	if len(data) < cont+1 {
		return 0, 0, &FormatError{Offset: len(data), Msg: "compact-size integer truncated"}
	}

	var v uint64
	if cont < 8 {
		v = uint64(first & (0x7F >> cont))
	}
	for i := 1; i <= cont; i++ {
		v = v<<8 | uint64(data[i])
	}

	if v > MaxCompact {
		return 0, 0, &FormatError{Offset: 0, Msg: fmt.Sprintf("value %d exceeds compact-size range", v)}
	}
	if compactLen(v) != cont+1 {
		return 0, 0, &FormatError{Offset: 0, Msg: "non-canonical compact-size encoding"}
	}

	return v, cont + 1, nil
}

// AppendCompactSigned appends the zigzag compact-size encoding of v to dst.
//
// Zigzag maps small magnitudes of either sign to small unsigned values
// (-1 becomes 1, 1 becomes 2), so the usual near-zero integers stay short.
// The representable range is [-2^61, 2^61).
func AppendCompactSigned(dst []byte, v int64) ([]byte, error) {
	uval := uint64(v<<1) ^ uint64(v>>63) //nolint:gosec
	return AppendCompact(dst, uval)
}

// DecodeCompactSigned decodes one zigzag compact-size integer from the
// start of data, returning the value and the number of bytes consumed.
func DecodeCompactSigned(data []byte) (int64, int, error) {
	uval, n, err := DecodeCompact(data)
	if err != nil {
		return 0, 0, err
	}

	return int64(uval>>1) ^ -int64(uval&1), n, nil //nolint:gosec
}
