package arksdk

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/NethermindEth/juno/core/felt"

	"github.com/ArkProjectNFTs/ark-project-sub001/chain"
)

const (
	testExecutor  = "0xe0"
	testCurrency  = "0xe7"
	testToken     = "0x7ec"
	testBroker    = "0xb40"
	testOrderbook = "0xb0"
)

var testEntrypoints = []string{
	"create_order", "cancel_order", "fulfill_order",
	"set_ark_fees", "get_ark_fees", "set_broker_fees", "get_broker_fees",
	"set_collection_creator_fees", "get_collection_creator_fees",
	"set_default_creator_fees", "get_default_creator_fees", "get_fees_amount",
	"get_order_status", "get_order_type", "get_order_signer", "get_order_hash",
	"approve", "allowance", "balanceOf", "owner_of", "mint",
}

func abiFor(names ...string) string {
	items := make([]string, 0, len(names))
	for _, n := range names {
		items = append(items, fmt.Sprintf(`{"type":"function","name":%q,"inputs":[],"outputs":[]}`, n))
	}
	return "[" + strings.Join(items, ",") + "]"
}

// fakeProvider answers view calls by entrypoint name.
type fakeProvider struct {
	mu        sync.Mutex
	abi       string
	chainID   string
	responses map[string][]*felt.Felt
	calls     []chain.FunctionCall
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		abi:       abiFor(testEntrypoints...),
		chainID:   "SN_MAIN",
		responses: make(map[string][]*felt.Felt),
	}
}

func (p *fakeProvider) respond(entrypoint string, values ...uint64) {
	out := make([]*felt.Felt, 0, len(values))
	for _, v := range values {
		out = append(out, chain.Uint64ToFelt(v))
	}
	p.responses[chain.GetSelectorFromName(entrypoint).String()] = out
}

func (p *fakeProvider) Call(_ context.Context, call chain.FunctionCall) ([]*felt.Felt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, call)
	result, ok := p.responses[call.EntryPointSelector.String()]
	if !ok {
		return nil, fmt.Errorf("no response for selector %s", call.EntryPointSelector)
	}
	return result, nil
}

func (p *fakeProvider) ChainID(context.Context) (string, error) {
	return p.chainID, nil
}

func (p *fakeProvider) ClassABI(context.Context, *felt.Felt) (string, error) {
	return p.abi, nil
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

type fakeAccount struct {
	address  *felt.Felt
	executed [][]chain.Call
	waited   int
	waitErr  error
}

func newFakeAccount(address string) *fakeAccount {
	return &fakeAccount{address: chain.MustHexToFelt(address)}
}

func (a *fakeAccount) Address() *felt.Felt { return a.address }

func (a *fakeAccount) Execute(_ context.Context, calls []chain.Call) (*felt.Felt, error) {
	a.executed = append(a.executed, calls)
	return chain.Uint64ToFelt(uint64(0x7a00 + len(a.executed))), nil
}

func (a *fakeAccount) WaitForTransaction(context.Context, *felt.Felt, time.Duration) error {
	a.waited++
	return a.waitErr
}

func (a *fakeAccount) lastBatch(t *testing.T) []chain.Call {
	t.Helper()
	if len(a.executed) == 0 {
		t.Fatal("no transaction executed")
	}
	return a.executed[len(a.executed)-1]
}

type testEnv struct {
	client   *Client
	starknet *fakeProvider
	arkchain *fakeProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, ConfigOptions{
		Network:           NetworkDev,
		ExecutorContract:  testExecutor,
		OrderbookContract: testOrderbook,
		CurrencyContract:  testCurrency,
	})
}

// newTestEnvWith injects fake providers into opts.
func newTestEnvWith(t *testing.T, opts ConfigOptions) *testEnv {
	t.Helper()
	starknet := newFakeProvider()
	arkchain := newFakeProvider()
	opts.StarknetProvider = starknet
	opts.ArkchainProvider = arkchain
	opts.ABICacheTTL = -1
	config, err := NewConfig(opts)
	if err != nil {
		t.Fatal(err)
	}
	client, err := NewClient(context.Background(), config)
	if err != nil {
		t.Fatal(err)
	}
	client.now = func() time.Time { return time.Unix(1700000000, 0) }
	client.salt = func() (*felt.Felt, error) { return chain.MustHexToFelt("0x5a17"), nil }
	return &testEnv{client: client, starknet: starknet, arkchain: arkchain}
}

func feltsEqual(t *testing.T, got []*felt.Felt, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d felts %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Errorf("felt[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
