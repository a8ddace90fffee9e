package chain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/NethermindEth/juno/core/felt"
)

// DefaultOrderDuration is the validity window applied when no end date is given.
const DefaultOrderDuration = 30 * 24 * time.Hour

// OrderParams is the caller-controlled part of an OrderV1.
type OrderParams struct {
	Route           RouteType
	Offerer         *felt.Felt
	BrokerID        *felt.Felt
	CurrencyAddress *felt.Felt
	TokenAddress    *felt.Felt
	TokenID         *big.Int
	StartAmount     *big.Int
	EndAmount       *big.Int
	StartDate       int64
	EndDate         int64
}

// OrderBuilder fills in chain ids, salt, quantity and dates to produce OrderV1 values.
type OrderBuilder struct {
	chainID *felt.Felt
	now     func() time.Time
	salt    func() (*felt.Felt, error)
}

// NewOrderBuilder creates a new OrderBuilder for orders settled on chainID.
func NewOrderBuilder(chainID *felt.Felt) *OrderBuilder {
	return &OrderBuilder{
		chainID: chainID,
		now:     time.Now,
		salt:    generateSalt,
	}
}

// WithClock replaces the clock used for default dates.
func (ob *OrderBuilder) WithClock(now func() time.Time) *OrderBuilder {
	ob.now = now
	return ob
}

// WithSalt replaces the salt source.
func (ob *OrderBuilder) WithSalt(salt func() (*felt.Felt, error)) *OrderBuilder {
	ob.salt = salt
	return ob
}

// BuildOrder validates params and applies the builder's defaults.
func (ob *OrderBuilder) BuildOrder(params OrderParams) (*OrderV1, error) {
	if err := ob.validateInputs(params); err != nil {
		return nil, err
	}

	now := ob.now()
	startDate := params.StartDate
	if startDate == 0 {
		startDate = now.Unix()
	}
	endDate := params.EndDate
	if endDate == 0 {
		endDate = now.Add(DefaultOrderDuration).Unix()
	}
	if startDate < 0 || endDate <= startDate {
		return nil, fmt.Errorf("end date %d must be after start date %d", endDate, startDate)
	}

	endAmount := params.EndAmount
	if endAmount == nil {
		endAmount = new(big.Int)
	}

	salt, err := ob.salt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	return &OrderV1{
		Route:           params.Route,
		CurrencyAddress: params.CurrencyAddress,
		CurrencyChainID: ob.chainID,
		Salt:            salt,
		Offerer:         params.Offerer,
		TokenChainID:    ob.chainID,
		TokenAddress:    params.TokenAddress,
		TokenID:         params.TokenID,
		Quantity:        big.NewInt(1),
		StartAmount:     params.StartAmount,
		EndAmount:       endAmount,
		StartDate:       uint64(startDate),
		EndDate:         uint64(endDate),
		BrokerID:        params.BrokerID,
		AdditionalData:  []*felt.Felt{},
	}, nil
}

func (ob *OrderBuilder) validateInputs(params OrderParams) error {
	if ob.chainID == nil {
		return fmt.Errorf("chain id is required")
	}
	if params.Offerer == nil {
		return fmt.Errorf("offerer is required")
	}
	if params.BrokerID == nil {
		return fmt.Errorf("brokerId is required")
	}
	if params.CurrencyAddress == nil {
		return fmt.Errorf("currencyAddress is required")
	}
	if params.TokenAddress == nil {
		return fmt.Errorf("tokenAddress is required")
	}
	if params.StartAmount == nil || params.StartAmount.Sign() < 0 {
		return fmt.Errorf("startAmount must be a non-negative integer")
	}
	if params.EndAmount != nil && params.EndAmount.Sign() < 0 {
		return fmt.Errorf("endAmount must be a non-negative integer")
	}
	if params.TokenID != nil && params.TokenID.Sign() < 0 {
		return fmt.Errorf("tokenId must be a non-negative integer")
	}
	if params.Route != RouteErc20ToErc721 && params.Route != RouteErc721ToErc20 {
		return fmt.Errorf("invalid route %s", params.Route)
	}
	return nil
}

// generateSalt returns a random non-zero 248-bit felt.
func generateSalt() (*felt.Felt, error) {
	var buf [31]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, err
		}
		salt := new(felt.Felt).SetBytes(buf[:])
		if !salt.IsZero() {
			return salt, nil
		}
	}
}
