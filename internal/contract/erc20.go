package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zjkal/web3-model/internal/chain"
	"github.com/zjkal/web3-model/internal/wallet"
)

// MaxUint256 is the approval amount used when none is given.
var MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// ERC20 is a Contract with the EIP-20 operations named. It adds no checks of
// its own: reverts and allowance races surface from the node.
type ERC20 struct {
	*Contract
}

// NewERC20 binds the standard ERC-20 ABI to address.
func NewERC20(backend chain.Backend, address string, opts ...Option) (*ERC20, error) {
	c, err := NewFromABI(backend, address, ERC20ABI, opts...)
	if err != nil {
		return nil, err
	}
	return &ERC20{Contract: c}, nil
}

// NewERC20FromFile binds the ABI file at abiPath, for tokens with extensions.
func NewERC20FromFile(backend chain.Backend, address, abiPath string, opts ...Option) (*ERC20, error) {
	c, err := New(backend, address, abiPath, opts...)
	if err != nil {
		return nil, err
	}
	return &ERC20{Contract: c}, nil
}

// Approve lets spender move amount of w's tokens. A nil amount approves
// MaxUint256.
func (t *ERC20) Approve(ctx context.Context, w *wallet.Wallet, spender common.Address, amount *big.Int) (common.Hash, error) {
	if amount == nil {
		amount = new(big.Int).Set(MaxUint256)
	}
	return t.CallByTx(ctx, w, "approve", CallOptions{}, spender, amount)
}

// Allowance returns how much spender may still move on owner's behalf.
func (t *ERC20) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	return t.callBig(ctx, "allowance", owner, spender)
}

// BalanceOf returns owner's balance in base units.
func (t *ERC20) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	return t.callBig(ctx, "balanceOf", owner)
}

// Transfer moves amount base units from w to to. Zero gas estimates.
func (t *ERC20) Transfer(ctx context.Context, w *wallet.Wallet, to common.Address, amount *big.Int, gas uint64) (common.Hash, error) {
	return t.CallByTx(ctx, w, "transfer", CallOptions{Gas: gas}, to, amount)
}

// TotalSupply returns the token supply in base units.
func (t *ERC20) TotalSupply(ctx context.Context) (*big.Int, error) {
	return t.callBig(ctx, "totalSupply")
}

// Decimals returns the token's decimal places.
func (t *ERC20) Decimals(ctx context.Context) (uint8, error) {
	out, err := t.callOne(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	d, ok := out.(uint8)
	if !ok {
		return 0, fmt.Errorf("decimals: unexpected result type %T", out)
	}
	return d, nil
}

// Symbol returns the token symbol.
func (t *ERC20) Symbol(ctx context.Context) (string, error) {
	return t.callString(ctx, "symbol")
}

// Name returns the token name.
func (t *ERC20) Name(ctx context.Context) (string, error) {
	return t.callString(ctx, "name")
}

func (t *ERC20) callOne(ctx context.Context, name string, args ...any) (any, error) {
	out, err := t.Call(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: empty result", name)
	}
	return out[0], nil
}

func (t *ERC20) callBig(ctx context.Context, name string, args ...any) (*big.Int, error) {
	out, err := t.callOne(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	n, ok := out.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result type %T", name, out)
	}
	return n, nil
}

func (t *ERC20) callString(ctx context.Context, name string) (string, error) {
	out, err := t.callOne(ctx, name)
	if err != nil {
		return "", err
	}
	s, ok := out.(string)
	if !ok {
		return "", fmt.Errorf("%s: unexpected result type %T", name, out)
	}
	return s, nil
}
