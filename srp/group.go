package srp

import "math/big"

// The 1024-bit SRP group from RFC 5054 §A, the smallest group it
// defines. BLE Unlock targets small embedded peripherals, so the
// lightest standard group is the appropriate choice; nothing in the
// retrieved examples defines an SRP group of its own; see DESIGN.md.
const nHex = "" +
	"EEAF0AB9ADB38DD69C33F80AFA8FC5E86072618775FF3C0B9EA2314C9C25657" +
	"6D674DF7496EA81D3383B4813D692C6E0E0D5D8E250B98BE48E495C1D6089DA" +
	"D15DC7D7B46154D6B6CE8EF4AD69B15D4982559B297BCF1885C529F566660E5" +
	"7EC68EDBC3C05726CC02FD4CBF4976EAA9AFD5138FE8376435B9FC61D2FC0EB" +
	"06E3"

// N is the RFC 5054 1024-bit safe prime modulus, and g the group
// generator.
var (
	N = mustParseHex(nHex)
	g = big.NewInt(2)
)

func mustParseHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("srp: invalid group modulus")
	}
	return n
}
