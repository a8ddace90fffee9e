package chain

import (
	"fmt"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
)

// Cairo Option variant indexes.
const (
	optionSome uint64 = 0
	optionNone uint64 = 1
)

// Encoder serializes values into Cairo calldata. The first error sticks and is
// reported by Calldata.
type Encoder struct {
	out []*felt.Felt
	err error
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Felt(f *felt.Felt) *Encoder {
	if e.err != nil {
		return e
	}
	if f == nil {
		e.err = fmt.Errorf("calldata: nil felt at position %d", len(e.out))
		return e
	}
	e.out = append(e.out, f)
	return e
}

func (e *Encoder) Uint64(v uint64) *Encoder {
	return e.Felt(Uint64ToFelt(v))
}

// Bool encodes a Cairo bool (0 or 1).
func (e *Encoder) Bool(b bool) *Encoder {
	if b {
		return e.Uint64(1)
	}
	return e.Uint64(0)
}

func (e *Encoder) U256(v *big.Int) *Encoder {
	if e.err != nil {
		return e
	}
	u, err := SplitU256(v)
	if err != nil {
		e.err = fmt.Errorf("calldata: %w", err)
		return e
	}
	e.out = append(e.out, u.Low, u.High)
	return e
}

// OptionU256 encodes Option<u256>; a nil value is None.
func (e *Encoder) OptionU256(v *big.Int) *Encoder {
	if v == nil {
		return e.Uint64(optionNone)
	}
	return e.Uint64(optionSome).U256(v)
}

// OptionFelt encodes Option<felt252>; a nil value is None.
func (e *Encoder) OptionFelt(f *felt.Felt) *Encoder {
	if f == nil {
		return e.Uint64(optionNone)
	}
	return e.Uint64(optionSome).Felt(f)
}

// Span encodes Span<felt252> / Array<felt252> as length followed by items.
func (e *Encoder) Span(items []*felt.Felt) *Encoder {
	e.Uint64(uint64(len(items)))
	for _, item := range items {
		e.Felt(item)
	}
	return e
}

// Enum encodes a payload-less enum variant.
func (e *Encoder) Enum(variant uint64) *Encoder {
	return e.Uint64(variant)
}

func (e *Encoder) Calldata() ([]*felt.Felt, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.out, nil
}

// Decoder reads Cairo return data.
type Decoder struct {
	in  []*felt.Felt
	pos int
	err error
}

func NewDecoder(in []*felt.Felt) *Decoder {
	return &Decoder{in: in}
}

func (d *Decoder) next() *felt.Felt {
	if d.err != nil {
		return new(felt.Felt)
	}
	if d.pos >= len(d.in) {
		d.err = fmt.Errorf("return data: expected more than %d felts", len(d.in))
		return new(felt.Felt)
	}
	f := d.in[d.pos]
	d.pos++
	return f
}

func (d *Decoder) Felt() *felt.Felt {
	return d.next()
}

func (d *Decoder) Uint64() uint64 {
	v := FeltToBig(d.next())
	if v.Cmp(maxU64) > 0 {
		if d.err == nil {
			d.err = fmt.Errorf("return data: %s overflows u64", v)
		}
		return 0
	}
	return v.Uint64()
}

func (d *Decoder) U256() *big.Int {
	low := d.next()
	high := d.next()
	return U256{Low: low, High: high}.Big()
}

func (d *Decoder) Bool() bool {
	return !d.next().IsZero()
}

func (d *Decoder) Err() error {
	return d.err
}

// Remaining reports how many felts have not been consumed.
func (d *Decoder) Remaining() int {
	return len(d.in) - d.pos
}
