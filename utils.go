package arksdk

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/shopspring/decimal"

	"github.com/ArkProjectNFTs/ark-project-sub001/chain"
)

const MaxDecimals = 18

var hundred = decimal.NewFromInt(100)

// ParseAmount converts a human-readable amount ("0.015") into base units of a
// token with the given decimals. Extra fractional digits are truncated.
func ParseAmount(amount string, decimals int32) (*big.Int, error) {
	if decimals < 0 || decimals > MaxDecimals {
		return nil, invalidParam(fmt.Sprintf("decimals must be between 0 and %d, got: %d", MaxDecimals, decimals))
	}
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, invalidParam(fmt.Sprintf("invalid amount %q", amount))
	}
	if d.IsNegative() {
		return nil, invalidParam(fmt.Sprintf("amount must not be negative, got: %s", amount))
	}
	result := d.Shift(decimals).Truncate(0).BigInt()
	if result.Cmp(math.MaxBig256) > 0 {
		return nil, invalidParam(fmt.Sprintf("amount too large for u256: %s", result))
	}
	return result, nil
}

// FormatAmount is the inverse of ParseAmount.
func FormatAmount(amount *big.Int, decimals int32) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -decimals).String()
}

// FormatFeesPercentage renders numerator/denominator*100 with two decimals.
// A zero denominator (unset fees) formats as "0.00".
func FormatFeesPercentage(numerator, denominator *big.Int) string {
	if numerator == nil || denominator == nil || denominator.Sign() == 0 {
		return "0.00"
	}
	n := decimal.NewFromBigInt(numerator, 0)
	d := decimal.NewFromBigInt(denominator, 0)
	return n.Mul(hundred).DivRound(d, 2).StringFixed(2)
}

// ValidateFeesRatio checks the ratio locally so invalid fees never reach the network.
func ValidateFeesRatio(ratio FeesRatio) error {
	if ratio.Numerator == nil || ratio.Denominator == nil {
		return newError(ErrKindValidation, "fees numerator and denominator are required", docsFees, ErrInvalidFeesRatio)
	}
	if ratio.Numerator.Sign() < 0 || ratio.Denominator.Sign() < 0 {
		return newError(ErrKindValidation, "fees must not be negative", docsFees, ErrInvalidFeesRatio)
	}
	if ratio.Denominator.Sign() == 0 {
		return newError(ErrKindValidation, "fees denominator must be positive", docsFees, ErrInvalidFeesRatio)
	}
	if ratio.Numerator.Cmp(ratio.Denominator) > 0 {
		return newError(ErrKindValidation,
			fmt.Sprintf("invalid fees ratio %s/%s", ratio.Numerator, ratio.Denominator),
			docsFees, ErrInvalidFeesRatio)
	}
	if ratio.Denominator.Cmp(math.MaxBig256) > 0 {
		return newError(ErrKindValidation, "fees denominator exceeds u256", docsFees, ErrInvalidFeesRatio)
	}
	return nil
}

func toFees(r chain.FeesRatio) Fees {
	return Fees{
		Numerator:     r.Numerator,
		Denominator:   r.Denominator,
		FormattedFees: FormatFeesPercentage(r.Numerator, r.Denominator),
	}
}

// requireAddress parses a mandatory address parameter.
func requireAddress(field, value string) (*felt.Felt, error) {
	if strings.TrimSpace(value) == "" {
		return nil, invalidParam(field + " is required")
	}
	f, err := chain.HexToFelt(value)
	if err != nil {
		return nil, invalidParam(fmt.Sprintf("%s is not a valid address: %v", field, err))
	}
	return f, nil
}

// optionalAddress parses value, falling back to def when empty.
func optionalAddress(field, value string, def *felt.Felt) (*felt.Felt, error) {
	if strings.TrimSpace(value) == "" {
		return def, nil
	}
	return requireAddress(field, value)
}

func requireTokenID(tokenID *big.Int) error {
	if tokenID == nil {
		return invalidParam("tokenId is required")
	}
	if tokenID.Sign() < 0 {
		return invalidParam("tokenId must be a non-negative integer")
	}
	return nil
}

func requireAmount(field string, amount *big.Int) error {
	if amount == nil {
		return invalidParam(field + " is required")
	}
	if amount.Sign() < 0 {
		return invalidParam(field + " must be a non-negative integer")
	}
	return nil
}

func requireOrderHash(hash *felt.Felt) error {
	if hash == nil || hash.IsZero() {
		return invalidParam("orderHash is required")
	}
	return nil
}
