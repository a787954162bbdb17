package contract

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"
	"github.com/zjkal/web3-model/internal/chain"
	"github.com/zjkal/web3-model/internal/wallet"
)

// Contract binds an ABI and an address to a chain backend. The function table
// is built once from the parsed ABI at construction.
type Contract struct {
	*Transactor

	address   common.Address
	abiJSON   string
	abi       abi.ABI
	functions map[string]*Function
}

// CallOptions tune a state-changing contract call. Zero values resolve from
// the chain as in TxOptions.
type CallOptions struct {
	Value    *big.Int
	Gas      uint64
	GasPrice *big.Int
	Nonce    *uint64
}

// New loads the ABI file at abiPath (raw array or build artifact) and binds
// it to address.
func New(backend chain.Backend, address, abiPath string, opts ...Option) (*Contract, error) {
	abiJSON, err := LoadABIFile(abiPath)
	if err != nil {
		return nil, err
	}
	return NewFromABI(backend, address, abiJSON, opts...)
}

// NewFromABI binds raw ABI JSON text to address.
func NewFromABI(backend chain.Backend, address, abiJSON string, opts ...Option) (*Contract, error) {
	addr, err := wallet.ParseAddress(address)
	if err != nil {
		return nil, err
	}

	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidABI, err)
	}

	c := &Contract{
		Transactor: NewTransactor(backend, opts...),
		address:    addr,
		abiJSON:    abiJSON,
		abi:        parsed,
		functions:  make(map[string]*Function, len(parsed.Methods)),
	}
	for name, method := range parsed.Methods {
		c.functions[name] = &Function{Method: method, contract: c}
	}

	c.log.WithFields(logrus.Fields{
		"address":   addr.Hex(),
		"functions": len(c.functions),
	}).Debug("Bound contract")

	return c, nil
}

// Address returns the checksummed contract address.
func (c *Contract) Address() common.Address {
	return c.address
}

// ABI returns the raw ABI text the contract was built from.
func (c *Contract) ABI() string {
	return c.abiJSON
}

// Functions returns the callable function names, sorted.
func (c *Contract) Functions() []string {
	names := make([]string, 0, len(c.functions))
	for name := range c.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Function looks up a function by name. Overloads are named as go-ethereum
// names them: transfer, transfer0, transfer1, ...
func (c *Contract) Function(name string) (*Function, error) {
	fn, ok := c.functions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	return fn, nil
}

// EncodeABI returns the hex calldata for calling name with args.
func (c *Contract) EncodeABI(name string, args ...any) (string, error) {
	fn, err := c.Function(name)
	if err != nil {
		return "", err
	}
	data, err := fn.Pack(args...)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(data), nil
}

// Call performs a read-only call and returns the decoded outputs.
func (c *Contract) Call(ctx context.Context, name string, args ...any) ([]any, error) {
	fn, err := c.Function(name)
	if err != nil {
		return nil, err
	}
	return fn.Call(ctx, args...)
}

// CallByTx sends name(args...) as a signed transaction from w.
func (c *Contract) CallByTx(ctx context.Context, w *wallet.Wallet, name string, opts CallOptions, args ...any) (common.Hash, error) {
	fn, err := c.Function(name)
	if err != nil {
		return common.Hash{}, err
	}
	return fn.Transact(ctx, w, opts, args...)
}

// CallWithValue is CallByTx with value attached and everything else resolved.
func (c *Contract) CallWithValue(ctx context.Context, w *wallet.Wallet, name string, value *big.Int, args ...any) (common.Hash, error) {
	return c.CallByTx(ctx, w, name, CallOptions{Value: value}, args...)
}

// Function is one ABI method bound to its contract.
type Function struct {
	Method   abi.Method
	contract *Contract
}

// Name returns the (overload-disambiguated) function name.
func (f *Function) Name() string {
	return f.Method.Name
}

// ReadOnly reports whether the function is view or pure.
func (f *Function) ReadOnly() bool {
	return f.Method.IsConstant()
}

// CheckArgs validates argument count against the ABI inputs.
func (f *Function) CheckArgs(args []any) error {
	if len(args) != len(f.Method.Inputs) {
		return fmt.Errorf("%w: %s takes %d, got %d", ErrArgumentCount, f.Method.Sig, len(f.Method.Inputs), len(args))
	}
	return nil
}

// Pack encodes selector and arguments.
func (f *Function) Pack(args ...any) ([]byte, error) {
	if err := f.CheckArgs(args); err != nil {
		return nil, err
	}
	data, err := f.contract.abi.Pack(f.Method.Name, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArgument, f.Method.Sig, err)
	}
	return data, nil
}

// Call runs the function with eth_call at the latest block.
func (f *Function) Call(ctx context.Context, args ...any) ([]any, error) {
	data, err := f.Pack(args...)
	if err != nil {
		return nil, err
	}

	to := f.contract.address
	out, err := f.contract.backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", f.Method.Name, chain.Classify(err))
	}

	values, err := f.Method.Outputs.Unpack(out)
	if err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", f.Method.Name, err)
	}
	return values, nil
}

// TxOptions builds the transaction options for calling f with args.
func (f *Function) TxOptions(opts CallOptions, args ...any) (TxOptions, error) {
	data, err := f.Pack(args...)
	if err != nil {
		return TxOptions{}, err
	}
	to := f.contract.address
	return TxOptions{
		To:       &to,
		Value:    opts.Value,
		Data:     hexutil.Encode(data),
		GasPrice: opts.GasPrice,
		Gas:      opts.Gas,
		Nonce:    opts.Nonce,
	}, nil
}

// Transact sends the function call as a transaction signed by w.
func (f *Function) Transact(ctx context.Context, w *wallet.Wallet, opts CallOptions, args ...any) (common.Hash, error) {
	if w == nil {
		return common.Hash{}, ErrNoWallet
	}
	txOpts, err := f.TxOptions(opts, args...)
	if err != nil {
		return common.Hash{}, err
	}
	return f.contract.BuildAndSendTx(ctx, w, txOpts)
}
