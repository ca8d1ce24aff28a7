//go:build go1.18

package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseGlobalID tests that parsing never panics on arbitrary input
// and always returns either a valid ID or an error.
func FuzzParseGlobalID(f *testing.F) {
	f.Add("")
	f.Add("76561198000000000")
	f.Add("0")
	f.Add("18446744073709551615")
	f.Add("18446744073709551616")
	f.Add("'; DROP TABLE identities;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		gid, err := ParseGlobalID(input)
		if err == nil {
			if gid.IsNil() {
				t.Error("accepted a zero global id")
			}
			roundTrip, err2 := ParseGlobalID(gid.String())
			if err2 != nil {
				t.Errorf("valid ID failed round-trip: %v", err2)
			}
			if roundTrip != gid {
				t.Error("round-trip changed ID value")
			}
		}
		if !utf8.ValidString(input) && err == nil {
			t.Error("non-UTF8 input was accepted")
		}
	})
}

// FuzzParseVoiceIdentity checks that accepted voice identities are always safe to embed
// in the space-delimited exchange protocol.
func FuzzParseVoiceIdentity(f *testing.F) {
	f.Add("xGq2h+FN3sK1eSp8pXq7gEYyG0A=")
	f.Add("")
	f.Add("a b")

	f.Fuzz(func(t *testing.T, input string) {
		v, err := ParseVoiceIdentity(input)
		if err != nil {
			return
		}
		for _, r := range v.String() {
			if r <= ' ' {
				t.Fatalf("accepted whitespace in %q", input)
			}
		}
	})
}
