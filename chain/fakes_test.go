package chain

import (
	"context"
	"sync"
	"time"

	"github.com/NethermindEth/juno/core/felt"
)

type fakeProvider struct {
	mu       sync.Mutex
	abi      string
	chainID  string
	result   []*felt.Felt
	err      error
	calls    []FunctionCall
	abiLoads int
}

func (p *fakeProvider) Call(_ context.Context, call FunctionCall) ([]*felt.Felt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, call)
	return p.result, p.err
}

func (p *fakeProvider) ChainID(context.Context) (string, error) {
	return p.chainID, nil
}

func (p *fakeProvider) ClassABI(context.Context, *felt.Felt) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.abiLoads++
	return p.abi, nil
}

type fakeAccount struct {
	address  *felt.Felt
	txHash   *felt.Felt
	executed [][]Call
	waited   int
	waitErr  error
}

func (a *fakeAccount) Address() *felt.Felt { return a.address }

func (a *fakeAccount) Execute(_ context.Context, calls []Call) (*felt.Felt, error) {
	a.executed = append(a.executed, calls)
	return a.txHash, nil
}

func (a *fakeAccount) WaitForTransaction(context.Context, *felt.Felt, time.Duration) error {
	a.waited++
	return a.waitErr
}

type fakeConfirmer struct {
	waited int
}

func (c *fakeConfirmer) WaitForTransaction(context.Context, *felt.Felt, time.Duration) error {
	c.waited++
	return nil
}

const testABI = `[
  {"type": "impl", "name": "ExecutorImpl", "interface_name": "ark::IExecutor"},
  {"type": "interface", "name": "ark::IExecutor", "items": [
    {"type": "function", "name": "create_order", "inputs": [], "outputs": [], "state_mutability": "external"},
    {"type": "function", "name": "get_ark_fees", "inputs": [], "outputs": [], "state_mutability": "view"}
  ]},
  {"type": "function", "name": "version", "inputs": [], "outputs": [], "state_mutability": "view"}
]`
