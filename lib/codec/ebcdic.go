package codec

import (
	"golang.org/x/text/encoding/charmap"
)

// EBCDIC is the code page used for EBCDIC text headers. SEG-Y doesn't
// specify one, but code page 037 is what nearly every writer produces and it
// agrees with the other common choice, 500, on every letter and digit.
var EBCDIC = charmap.CodePage037

// ebcdicQuestion is '?' in code page 037.
const ebcdicQuestion = 0x6f

// EBCDICToASCII decodes EBCDIC bytes as ASCII text. Characters outside of
// ASCII, like the cent sign, are replaced with '?', so the result always has
// exactly as many bytes as b.
func EBCDICToASCII(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = ToASCII(EBCDIC.DecodeByte(c))
	}
	return string(out)
}

// ToASCII returns r as an ASCII byte, or '?' if r isn't ASCII.
func ToASCII(r rune) byte {
	if r < 0 || r > 0x7f {
		return '?'
	}
	return byte(r)
}

// ASCIIToEBCDIC encodes text as EBCDIC. Runes with no EBCDIC equivalent are
// written as '?'.
func ASCIIToEBCDIC(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		c, ok := EBCDIC.EncodeRune(r)
		if !ok {
			c = ebcdicQuestion
		}
		out = append(out, c)
	}
	return out
}

// IsPrintable returns true if r is a printable ASCII character.
func IsPrintable(r rune) bool {
	return r >= 0x20 && r <= 0x7e
}
