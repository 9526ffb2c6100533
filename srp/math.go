package srp

import (
	"crypto/rand"
	"crypto/sha256"
	"math/big"
)

// hashLen is the digest size of the SRP hash function, H = SHA-256.
const hashLen = sha256.Size

func h(parts ...[]byte) []byte {
	hh := sha256.New()
	for _, p := range parts {
		hh.Write(p)
	}
	return hh.Sum(nil)
}

func hInt(parts ...[]byte) *big.Int {
	return new(big.Int).SetBytes(h(parts...))
}

// pad left-pads n's big-endian encoding to byteLen(N) bytes, as
// required before hashing any group element together with others
// (RFC 5054 §2.5.4).
func pad(n *big.Int) []byte {
	nLen := (N.BitLen() + 7) / 8
	b := n.Bytes()
	if len(b) >= nLen {
		return b
	}
	out := make([]byte, nLen)
	copy(out[nLen-len(b):], b)
	return out
}

// k is the SRP-6a multiplier, k = H(N, g), both padded to the group's
// byte length.
func computeK() *big.Int {
	return hInt(pad(N), pad(g))
}

// randomExponent returns a random value in [1, N).
func randomExponent() (*big.Int, error) {
	max := new(big.Int).Sub(N, big.NewInt(1))
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return nil, err
	}
	return v.Add(v, big.NewInt(1)), nil
}

// modExp computes base^exp mod N.
func modExp(base, exp *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, N)
}

// modN reduces n into [0, N), handling the negative intermediate
// values that occur in the client premaster secret computation.
func modN(n *big.Int) *big.Int {
	r := new(big.Int).Mod(n, N)
	return r
}
