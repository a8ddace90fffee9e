package chain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/utils"
	"github.com/ethereum/go-ethereum/common/math"
)

const shortStringMaxLen = 31

var (
	maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	maxU64  = new(big.Int).SetUint64(^uint64(0))
)

// HexToFelt parses a 0x-prefixed hex string (or a decimal string) into a felt.
func HexToFelt(s string) (*felt.Felt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty felt value")
	}
	f, err := utils.HexToFelt(s)
	if err != nil {
		return nil, fmt.Errorf("invalid felt %q: %w", s, err)
	}
	return f, nil
}

// MustHexToFelt is HexToFelt for package-level constants.
func MustHexToFelt(s string) *felt.Felt {
	f, err := HexToFelt(s)
	if err != nil {
		panic(err)
	}
	return f
}

func BigToFelt(v *big.Int) *felt.Felt {
	return new(felt.Felt).SetBigInt(v)
}

func FeltToBig(f *felt.Felt) *big.Int {
	return f.BigInt(new(big.Int))
}

func Uint64ToFelt(v uint64) *felt.Felt {
	return new(felt.Felt).SetUint64(v)
}

// U256 is a Cairo u256: two 128-bit limbs.
type U256 struct {
	Low  *felt.Felt
	High *felt.Felt
}

// SplitU256 converts v into its low/high limbs. v must be within [0, 2^256).
func SplitU256(v *big.Int) (U256, error) {
	if v == nil {
		return U256{}, fmt.Errorf("u256 value is nil")
	}
	if v.Sign() < 0 {
		return U256{}, fmt.Errorf("u256 value is negative: %s", v)
	}
	if v.Cmp(math.MaxBig256) > 0 {
		return U256{}, fmt.Errorf("value exceeds u256: %s", v)
	}
	low := new(big.Int).And(v, maxU128)
	high := new(big.Int).Rsh(v, 128)
	return U256{Low: BigToFelt(low), High: BigToFelt(high)}, nil
}

// Big joins the limbs back together.
func (u U256) Big() *big.Int {
	high := new(big.Int).Lsh(FeltToBig(u.High), 128)
	return high.Or(high, FeltToBig(u.Low))
}

// ShortStringToFelt encodes an ASCII string of at most 31 characters as Cairo does,
// e.g. "SN_MAIN" -> 0x534e5f4d41494e.
func ShortStringToFelt(s string) (*felt.Felt, error) {
	if len(s) > shortStringMaxLen {
		return nil, fmt.Errorf("short string %q longer than %d characters", s, shortStringMaxLen)
	}
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return nil, fmt.Errorf("short string %q is not ASCII", s)
		}
	}
	return new(felt.Felt).SetBytes([]byte(s)), nil
}

// FeltToShortString is the inverse of ShortStringToFelt.
func FeltToShortString(f *felt.Felt) string {
	return string(FeltToBig(f).Bytes())
}

// ChainIDToFelt accepts either the decoded chain id ("SN_SEPOLIA") or its hex form.
func ChainIDToFelt(chainID string) (*felt.Felt, error) {
	if strings.HasPrefix(chainID, "0x") || strings.HasPrefix(chainID, "0X") {
		return HexToFelt(chainID)
	}
	return ShortStringToFelt(chainID)
}
