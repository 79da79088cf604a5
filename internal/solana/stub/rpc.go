package stub

import (
	"context"
	"errors"
	"sync"

	"github.com/TraderofBozz/Anubis-Bot/internal/solana"
)

// ErrUnavailable is returned while injected page failures remain.
var ErrUnavailable = errors.New("stub: source unavailable")

// RPCClient implements solana.RPCClient for testing.
// Signatures are stored newest first and paged with the before cursor.
type RPCClient struct {
	mu           sync.Mutex
	Transactions map[string]*solana.Transaction
	Signatures   map[string][]solana.SignatureInfo
	Accounts     map[string]*solana.AccountInfo

	// SignatureFailures makes the next N GetSignaturesForAddress calls fail.
	SignatureFailures int
	// SignatureCalls records the before cursor of every signatures call.
	SignatureCalls []string
}

var _ solana.RPCClient = (*RPCClient)(nil)

// NewRPCClient creates a new stub RPC client.
func NewRPCClient() *RPCClient {
	return &RPCClient{
		Transactions: make(map[string]*solana.Transaction),
		Signatures:   make(map[string][]solana.SignatureInfo),
		Accounts:     make(map[string]*solana.AccountInfo),
	}
}

// GetTransaction retrieves a transaction by signature from the stub store.
// Unknown signatures return nil, nil like a node that has pruned them.
func (c *RPCClient) GetTransaction(_ context.Context, signature string) (*solana.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Transactions[signature], nil
}

// GetSignaturesForAddress pages stored signatures for an address.
func (c *RPCClient) GetSignaturesForAddress(_ context.Context, address string, opts *solana.SignaturesOpts) ([]solana.SignatureInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := ""
	if opts != nil {
		before = opts.Before
	}
	c.SignatureCalls = append(c.SignatureCalls, before)

	if c.SignatureFailures > 0 {
		c.SignatureFailures--
		return nil, ErrUnavailable
	}

	sigs := c.Signatures[address]
	start := 0
	if before != "" {
		// Search from the end so repeated entries cannot loop the cursor.
		start = len(sigs)
		for i := len(sigs) - 1; i >= 0; i-- {
			if sigs[i].Signature == before {
				start = i + 1
				break
			}
		}
	}
	page := sigs[start:]

	if opts != nil && opts.Limit > 0 && opts.Limit < len(page) {
		page = page[:opts.Limit]
	}

	out := make([]solana.SignatureInfo, len(page))
	copy(out, page)
	return out, nil
}

// GetAccountInfo retrieves account data from the stub store.
func (c *RPCClient) GetAccountInfo(_ context.Context, pubkey string) (*solana.AccountInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Accounts[pubkey], nil
}

// AddTransaction adds a transaction to the stub store.
func (c *RPCClient) AddTransaction(tx *solana.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Transactions[tx.Signature] = tx
}

// AddSignatures appends signatures (newest first) for an address.
func (c *RPCClient) AddSignatures(address string, sigs ...solana.SignatureInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Signatures[address] = append(c.Signatures[address], sigs...)
}

// AddAccount adds account data to the stub store.
func (c *RPCClient) AddAccount(pubkey string, info *solana.AccountInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Accounts[pubkey] = info
}
