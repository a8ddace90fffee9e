package chain

import (
	"context"
	"strings"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var (
	// ErrNoABI is returned when the contract class at an address publishes no ABI.
	ErrNoABI = errors.New("no ABI found for contract")

	// ErrEntrypointNotFound is returned when the ABI does not declare the requested function.
	ErrEntrypointNotFound = errors.New("entrypoint not found in contract ABI")
)

// ContractABI is the set of external functions a contract class declares.
type ContractABI struct {
	functions map[string]bool
	fallback  bool
}

// ParseABI reads a Sierra or Cairo 0 ABI document. Functions nested in
// interface items are included.
func ParseABI(raw string) (*ContractABI, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || !gjson.Valid(raw) {
		return nil, ErrNoABI
	}
	doc := gjson.Parse(raw)
	if !doc.IsArray() || len(doc.Array()) == 0 {
		return nil, ErrNoABI
	}

	abi := &ContractABI{functions: make(map[string]bool)}
	var walk func(items gjson.Result)
	walk = func(items gjson.Result) {
		items.ForEach(func(_, item gjson.Result) bool {
			switch item.Get("type").String() {
			case "function":
				name := item.Get("name").String()
				abi.functions[name] = true
				if name == defaultEntrypoint {
					abi.fallback = true
				}
			case "interface":
				walk(item.Get("items"))
			}
			return true
		})
	}
	walk(doc)
	return abi, nil
}

// Has reports whether the contract can serve name. Proxies exposing
// __default__ are assumed to forward anything.
func (a *ContractABI) Has(name string) bool {
	return a.fallback || a.functions[name]
}

// ABIResolver fetches contract ABIs, optionally caching them per address.
type ABIResolver struct {
	provider Provider
	cache    *cache.Cache
}

// NewABIResolver creates a resolver. A ttl <= 0 disables caching so every
// lookup goes back to the provider.
func NewABIResolver(provider Provider, ttl time.Duration) *ABIResolver {
	r := &ABIResolver{provider: provider}
	if ttl > 0 {
		r.cache = cache.New(ttl, 2*ttl)
	}
	return r
}

// Resolve returns the ABI of the class deployed at address.
func (r *ABIResolver) Resolve(ctx context.Context, address *felt.Felt) (*ContractABI, error) {
	key := address.String()
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			return cached.(*ContractABI), nil
		}
	}

	raw, err := r.provider.ClassABI(ctx, address)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch class at %s", key)
	}
	abi, err := ParseABI(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "contract %s", key)
	}

	if r.cache != nil {
		r.cache.SetDefault(key, abi)
	}
	return abi, nil
}

// Invalidate drops the cached ABI for address, e.g. after a redeploy.
func (r *ABIResolver) Invalidate(address *felt.Felt) {
	if r.cache != nil {
		r.cache.Delete(address.String())
	}
}
