package codec

import (
	"bytes"
	"errors"
	"testing"
)

func TestObfuscateRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		key  string
	}{
		{"short key cycles", []byte("Hello, world"), "key"},
		{"key longer than data", []byte("hi"), "a much longer passphrase"},
		{"binary data", []byte{0x00, 0xFF, 0x7F, 0x80, 0x0A}, "secret"},
		{"empty data", nil, "secret"},
		{"single byte key", []byte("ledger contents"), "x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			enc := Obfuscate(tc.data, tc.key)
			dec := Obfuscate(enc, tc.key)
			if !bytes.Equal(dec, tc.data) {
				t.Fatalf("round trip mismatch: got %v want %v", dec, tc.data)
			}
		})
	}
}

func TestObfuscateEmptyKeyIsIdentity(t *testing.T) {
	data := []byte("plain text stays plain")
	out := Obfuscate(data, "")
	if !bytes.Equal(out, data) {
		t.Fatalf("empty key should be identity, got %q", out)
	}
	// returned slice must be a copy, not an alias
	out[0] = 'X'
	if data[0] == 'X' {
		t.Fatal("Obfuscate returned an alias of its input")
	}
}

func TestObfuscateChangesBytes(t *testing.T) {
	data := []byte("Hello")
	enc := Obfuscate(data, "key")
	if bytes.Equal(enc, data) {
		t.Fatal("expected obfuscated output to differ from input")
	}
}

func TestPrintableRoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte("hello"),
		{0x00},
		{0xFF, 0x00, 0xAB},
		nil,
		[]byte("a longer sequence with spaces and symbols !@#"),
	}
	for _, in := range inputs {
		s := ToPrintable(in)
		if len(s) != len(in)*2 {
			t.Fatalf("ToPrintable(%v) length = %d, want %d", in, len(s), len(in)*2)
		}
		back, err := FromPrintable(s)
		if err != nil {
			t.Fatalf("FromPrintable(%q): %v", s, err)
		}
		if !bytes.Equal(back, in) {
			t.Fatalf("round trip mismatch: got %v want %v", back, in)
		}
	}
}

func TestToPrintableUppercase(t *testing.T) {
	if got := ToPrintable([]byte{0xAB, 0xCD, 0xEF}); got != "ABCDEF" {
		t.Fatalf("ToPrintable = %q, want ABCDEF", got)
	}
}

func TestFromPrintableRejectsMalformed(t *testing.T) {
	cases := []string{
		"ABC",   // odd length
		"GG",    // non-hex
		"12 34", // separator
		"12ZZ",
	}
	for _, in := range cases {
		_, err := FromPrintable(in)
		if err == nil {
			t.Fatalf("FromPrintable(%q): expected error", in)
		}
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("FromPrintable(%q): error %v is not a *DecodeError", in, err)
		}
	}
}

func TestFromPrintableAcceptsLowercase(t *testing.T) {
	got, err := FromPrintable("abcdef")
	if err != nil {
		t.Fatalf("FromPrintable: %v", err)
	}
	if !bytes.Equal(got, []byte{0xAB, 0xCD, 0xEF}) {
		t.Fatalf("got %v", got)
	}
}
