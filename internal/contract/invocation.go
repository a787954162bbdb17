package contract

import "github.com/ethereum/go-ethereum/common"

// Invocation is the operation a Caller has pending: either *ReadOnlyCall or
// *Transaction. The set is closed.
type Invocation interface {
	invocation()
}

// ReadOnlyCall is a view call dispatched with eth_call.
type ReadOnlyCall struct {
	Function *Function
	Args     []any
}

// Transaction is a state-changing call dispatched as a signed transaction.
// Descriptor is filled on first resolution and dropped after submission.
type Transaction struct {
	Function   *Function
	Args       []any
	Options    CallOptions
	Descriptor *TxDescriptor
}

func (*ReadOnlyCall) invocation() {}
func (*Transaction) invocation()  {}

// Result is what Caller.Send produced: decoded values for a read-only call,
// a transaction hash for a transaction.
type Result struct {
	Values []any
	TxHash common.Hash
}

// Submitted reports whether a transaction was sent.
func (r *Result) Submitted() bool {
	return r.TxHash != (common.Hash{})
}
