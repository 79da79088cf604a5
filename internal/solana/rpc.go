package solana

import "context"

// RPCClient defines the Solana RPC HTTP interface used by the scanner.
type RPCClient interface {
	// GetTransaction retrieves a transaction by signature.
	// Returns nil, nil if the node does not know the transaction.
	GetTransaction(ctx context.Context, signature string) (*Transaction, error)

	// GetSignaturesForAddress retrieves signatures for an address with pagination.
	// Results are ordered newest first.
	GetSignaturesForAddress(ctx context.Context, address string, opts *SignaturesOpts) ([]SignatureInfo, error)

	// GetAccountInfo retrieves account data. Returns nil, nil if the account does not exist.
	GetAccountInfo(ctx context.Context, pubkey string) (*AccountInfo, error)
}

// Transaction represents a Solana transaction.
type Transaction struct {
	Slot      int64
	Signature string
	BlockTime *int64 // Unix timestamp (seconds), nil if the node has none
	Meta      *TransactionMeta
	Message   *TransactionMessage
}

// Failed reports whether the transaction carries an execution error.
func (tx *Transaction) Failed() bool {
	return tx.Meta != nil && tx.Meta.Err != nil
}

// LogMessages returns the execution log, or nil without meta.
func (tx *Transaction) LogMessages() []string {
	if tx.Meta == nil {
		return nil
	}
	return tx.Meta.LogMessages
}

// TransactionMeta contains transaction metadata.
type TransactionMeta struct {
	Err          interface{}
	LogMessages  []string
	PreBalances  []uint64 // lamports, indexed like AccountKeys
	PostBalances []uint64
}

// TransactionMessage contains the parsed transaction message.
type TransactionMessage struct {
	AccountKeys []AccountKey
}

// AccountKey is one account reference of a transaction message.
type AccountKey struct {
	Pubkey   string
	Signer   bool
	Writable bool
}
