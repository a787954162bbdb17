package contract

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"
	"github.com/zjkal/web3-model/internal/chain"
	"github.com/zjkal/web3-model/internal/wallet"
)

// DefaultGasFallback is the gas limit used when estimation fails.
const DefaultGasFallback uint64 = 2_100_000

// TxOptions are the caller-supplied transaction fields. Zero values mean
// "resolve from the chain": nil GasPrice asks the node, nil Nonce reads the
// account's transaction count, zero Gas estimates.
type TxOptions struct {
	To       *common.Address
	Value    *big.Int
	Data     string // hex calldata, 0x prefix optional
	GasPrice *big.Int
	Gas      uint64
	Nonce    *uint64
}

// Transactor builds, signs and submits transactions against a backend.
// Chain metadata (chain id, gas price, nonce) is queried fresh on every build.
type Transactor struct {
	backend chain.Backend
	log     *logrus.Logger
}

// Option configures a Transactor (and anything embedding one).
type Option func(*Transactor)

// WithLogger sets the logger. Defaults to logrus.StandardLogger().
func WithLogger(log *logrus.Logger) Option {
	return func(t *Transactor) {
		if log != nil {
			t.log = log
		}
	}
}

// NewTransactor creates a Transactor for backend.
func NewTransactor(backend chain.Backend, opts ...Option) *Transactor {
	t := &Transactor{
		backend: backend,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Backend returns the underlying chain client.
func (t *Transactor) Backend() chain.Backend {
	return t.backend
}

// BuildTx resolves a transaction descriptor for from.
func (t *Transactor) BuildTx(ctx context.Context, from common.Address, opts TxOptions) (*TxDescriptor, error) {
	chainID, err := t.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching chain id: %w", chain.Classify(err))
	}

	tx := &TxDescriptor{
		ChainID: chainID,
		From:    from,
	}

	if opts.GasPrice != nil {
		tx.GasPrice = new(big.Int).Set(opts.GasPrice)
	} else {
		tx.GasPrice, err = t.backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching gas price: %w", chain.Classify(err))
		}
	}

	if opts.Nonce != nil {
		tx.Nonce = *opts.Nonce
	} else {
		tx.Nonce, err = t.backend.NonceAt(ctx, from, nil)
		if err != nil {
			return nil, fmt.Errorf("fetching nonce: %w", chain.Classify(err))
		}
	}

	if opts.To != nil {
		to := *opts.To
		tx.To = &to
	}
	if opts.Value != nil && opts.Value.Sign() != 0 {
		tx.Value = new(big.Int).Set(opts.Value)
	}
	if opts.Data != "" {
		data, err := decodeHex(opts.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: data: %w", ErrInvalidArgument, err)
		}
		if len(data) > 0 {
			tx.Data = data
		}
	}

	tx.Gas = opts.Gas
	if tx.Gas == 0 {
		tx.Gas = t.EstimateGas(ctx, tx)
	}

	t.log.WithFields(logrus.Fields{
		"chain_id":  tx.ChainID,
		"from":      tx.From.Hex(),
		"nonce":     tx.Nonce,
		"gas":       tx.Gas,
		"gas_price": tx.GasPrice,
	}).Debug("Built transaction")

	return tx, nil
}

// EstimateGas asks the node for a gas limit, falling back to
// DefaultGasFallback when estimation fails.
func (t *Transactor) EstimateGas(ctx context.Context, tx *TxDescriptor) uint64 {
	return t.estimateOrFallback(ctx, tx.CallMsg())
}

// SignAndSend signs tx with privateKey and submits it. Node rejections wrap
// ErrSubmission; the node's own error stays in the chain.
func (t *Transactor) SignAndSend(ctx context.Context, privateKey string, tx *TxDescriptor) (common.Hash, error) {
	signer, err := wallet.ParseSigner(privateKey)
	if err != nil {
		return common.Hash{}, err
	}

	signed, err := signer.SignTx(tx.Transaction(), tx.ChainID)
	if err != nil {
		return common.Hash{}, err
	}

	if err := t.backend.SendTransaction(ctx, signed); err != nil {
		if chain.IsNodeError(err) {
			return common.Hash{}, fmt.Errorf("%w: %w", ErrSubmission, err)
		}
		return common.Hash{}, fmt.Errorf("sending transaction: %w", chain.Classify(err))
	}

	t.log.WithFields(logrus.Fields{
		"hash":  signed.Hash().Hex(),
		"from":  signer.Address().Hex(),
		"nonce": signed.Nonce(),
	}).Debug("Submitted transaction")

	return signed.Hash(), nil
}

// BuildAndSendTx builds a transaction from w and submits it.
func (t *Transactor) BuildAndSendTx(ctx context.Context, w *wallet.Wallet, opts TxOptions) (common.Hash, error) {
	if w == nil {
		return common.Hash{}, ErrNoWallet
	}
	tx, err := t.BuildTx(ctx, w.Address, opts)
	if err != nil {
		return common.Hash{}, err
	}
	return t.SignAndSend(ctx, w.PrivateKey, tx)
}

func (t *Transactor) estimateOrFallback(ctx context.Context, msg ethereum.CallMsg) uint64 {
	gas, err := t.estimate(ctx, msg)
	if err != nil {
		t.log.WithFields(logrus.Fields{
			"from":     msg.From.Hex(),
			"fallback": DefaultGasFallback,
		}).WithError(err).Warn("Gas estimation failed, using fallback")
		return DefaultGasFallback
	}
	return gas
}

func (t *Transactor) estimate(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	gas, err := t.backend.EstimateGas(ctx, msg)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrEstimation, chain.Classify(err))
	}
	return gas, nil
}

// decodeHex accepts hex with or without the 0x prefix.
func decodeHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}
