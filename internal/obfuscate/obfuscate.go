// Package obfuscate hides the daily answer from casual inspection of the
// saved game. It is a reversible XOR over a shared secret and provides no
// confidentiality whatsoever.
//
// The unit of operation is the Unicode code point: rune i of the input is
// XORed with rune i%len(secret) of the secret. For an ASCII secret only the
// low seven bits change, so valid code points stay valid and Encode and
// Decode are the same involution.
package obfuscate

// DefaultSecret is the secret used when none is configured.
const DefaultSecret = "wordle_secret_key_2025"

// Codec applies the XOR transform with a fixed secret.
type Codec struct {
	key []rune
}

// Default is a Codec over DefaultSecret.
var Default = New(DefaultSecret)

// New returns a Codec for secret. An empty secret yields the identity codec.
func New(secret string) Codec {
	return Codec{key: []rune(secret)}
}

// Encode obfuscates plain.
func (c Codec) Encode(plain string) string { return c.xor(plain) }

// Decode reverses Encode.
func (c Codec) Decode(cipher string) string { return c.xor(cipher) }

func (c Codec) xor(s string) string {
	if len(c.key) == 0 || s == "" {
		return s
	}
	in := []rune(s)
	out := make([]rune, len(in))
	for i, r := range in {
		out[i] = r ^ c.key[i%len(c.key)]
	}
	return string(out)
}
