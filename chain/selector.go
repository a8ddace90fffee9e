package chain

import (
	"sync"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/utils"
)

const (
	defaultEntrypoint   = "__default__"
	l1DefaultEntrypoint = "__l1_default__"
)

var selectorCache sync.Map

// GetSelectorFromName returns the entry point selector for a Cairo function
// name. Selectors are cached per name.
func GetSelectorFromName(name string) *felt.Felt {
	if name == defaultEntrypoint || name == l1DefaultEntrypoint {
		return new(felt.Felt)
	}
	if cached, ok := selectorCache.Load(name); ok {
		return cached.(*felt.Felt)
	}
	selector := utils.GetSelectorFromNameFelt(name)
	selectorCache.Store(name, selector)
	return selector
}
