package contract

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/zjkal/web3-model/internal/wallet"
)

// Caller accumulates one pending contract invocation and dispatches it.
// Build methods chain; the first error is kept and returned by Send or
// EstimateGasFee. Building again replaces whatever was pending.
//
//	res, err := contract.NewCaller(c, w).
//		BuildTx("transfer", contract.CallOptions{}, to, amount).
//		Send(ctx)
type Caller struct {
	contract *Contract
	wallet   *wallet.Wallet
	pending  Invocation
	err      error
}

// NewCaller creates a Caller for c. w may be nil for read-only use.
func NewCaller(c *Contract, w *wallet.Wallet) *Caller {
	return &Caller{contract: c, wallet: w}
}

// Build prepares a read-only call.
func (c *Caller) Build(name string, args ...any) *Caller {
	c.reset()
	fn, err := c.lookup(name, args)
	if err != nil {
		c.err = err
		return c
	}
	c.pending = &ReadOnlyCall{Function: fn, Args: args}
	return c
}

// BuildTx prepares a state-changing call. Gas, gas price and nonce left at
// zero in opts are resolved on EstimateGasFee or Send.
func (c *Caller) BuildTx(name string, opts CallOptions, args ...any) *Caller {
	c.reset()
	if c.wallet == nil {
		c.err = ErrNoWallet
		return c
	}
	fn, err := c.lookup(name, args)
	if err != nil {
		c.err = err
		return c
	}
	c.pending = &Transaction{Function: fn, Args: args, Options: opts}
	return c
}

// Pending returns the pending invocation, or nil.
func (c *Caller) Pending() Invocation {
	return c.pending
}

// Err returns the first build error.
func (c *Caller) Err() error {
	return c.err
}

// EstimateGasFee returns the gas units the pending invocation needs. For a
// transaction the resolved descriptor is kept for Send.
func (c *Caller) EstimateGasFee(ctx context.Context) (uint64, error) {
	if c.err != nil {
		return 0, c.err
	}
	switch p := c.pending.(type) {
	case *ReadOnlyCall:
		data, err := p.Function.Pack(p.Args...)
		if err != nil {
			return 0, err
		}
		to := c.contract.address
		msg := ethereum.CallMsg{To: &to, Data: data}
		if c.wallet != nil {
			msg.From = c.wallet.Address
		}
		return c.contract.estimateOrFallback(ctx, msg), nil
	case *Transaction:
		tx, err := c.resolve(ctx, p)
		if err != nil {
			return 0, err
		}
		return tx.Gas, nil
	case nil:
		return 0, ErrNoPending
	default:
		panic(fmt.Sprintf("contract: unhandled invocation %T", p))
	}
}

// Send dispatches the pending invocation.
func (c *Caller) Send(ctx context.Context) (*Result, error) {
	if c.err != nil {
		return nil, c.err
	}
	switch p := c.pending.(type) {
	case *ReadOnlyCall:
		values, err := p.Function.Call(ctx, p.Args...)
		if err != nil {
			return nil, err
		}
		return &Result{Values: values}, nil
	case *Transaction:
		tx, err := c.resolve(ctx, p)
		if err != nil {
			return nil, err
		}
		// A descriptor is never reused: its nonce is spent once submitted.
		p.Descriptor = nil
		hash, err := c.contract.SignAndSend(ctx, c.wallet.PrivateKey, tx)
		if err != nil {
			return nil, err
		}
		return &Result{TxHash: hash}, nil
	case nil:
		return nil, ErrNoPending
	default:
		panic(fmt.Sprintf("contract: unhandled invocation %T", p))
	}
}

func (c *Caller) resolve(ctx context.Context, p *Transaction) (*TxDescriptor, error) {
	if p.Descriptor != nil {
		return p.Descriptor, nil
	}
	opts, err := p.Function.TxOptions(p.Options, p.Args...)
	if err != nil {
		return nil, err
	}
	tx, err := c.contract.BuildTx(ctx, c.wallet.Address, opts)
	if err != nil {
		return nil, err
	}
	p.Descriptor = tx
	return tx, nil
}

func (c *Caller) lookup(name string, args []any) (*Function, error) {
	fn, err := c.contract.Function(name)
	if err != nil {
		return nil, err
	}
	if err := fn.CheckArgs(args); err != nil {
		return nil, err
	}
	return fn, nil
}

func (c *Caller) reset() {
	c.pending = nil
	c.err = nil
}
