// Package codec implements the obfuscation scheme used by the on-disk vault:
// a repeating-key XOR transform plus an uppercase-hex text encoding so the
// result is safe to store as a plain text file.
//
// XOR with the same key is self-inverse, so Obfuscate doubles as the
// deobfuscation step. This is an encoding, not real cryptography.
package codec

import "fmt"

// DecodeError reports malformed printable input.
type DecodeError struct {
	Pos    int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("codec: invalid input at offset %d: %s", e.Pos, e.Reason)
}

// Obfuscate XORs data with key, cycling the key when it is shorter than the
// data. An empty key returns a copy of the input unchanged. Applying
// Obfuscate twice with the same key yields the original bytes.
func Obfuscate(data []byte, key string) []byte {
	out := make([]byte, len(data))
	if key == "" {
		copy(out, data)
		return out
	}
	for i, b := range data {
		out[i] = b ^ key[i%len(key)]
	}
	return out
}

const hexDigits = "0123456789ABCDEF"

// ToPrintable encodes data as uppercase hex, two characters per byte, no
// separators.
func ToPrintable(data []byte) string {
	out := make([]byte, 0, len(data)*2)
	for _, b := range data {
		out = append(out, hexDigits[b>>4], hexDigits[b&0xF])
	}
	return string(out)
}

// FromPrintable decodes the uppercase-hex form produced by ToPrintable.
// Odd-length input and non-hex characters are rejected with a *DecodeError
// rather than silently truncated.
func FromPrintable(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, &DecodeError{Pos: len(s) - 1, Reason: "odd number of hex characters"}
	}
	out := make([]byte, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		hi, ok := hexValue(s[i])
		if !ok {
			return nil, &DecodeError{Pos: i, Reason: fmt.Sprintf("not a hex digit: %q", s[i])}
		}
		lo, ok := hexValue(s[i+1])
		if !ok {
			return nil, &DecodeError{Pos: i + 1, Reason: fmt.Sprintf("not a hex digit: %q", s[i+1])}
		}
		out = append(out, hi<<4|lo)
	}
	return out, nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		// lowercase accepted on read; ToPrintable always emits uppercase
		return c - 'a' + 10, true
	}
	return 0, false
}
