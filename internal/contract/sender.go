package contract

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zjkal/web3-model/internal/wallet"
)

// Transfer is a pending value transfer. Descriptor is filled on first
// resolution and dropped after submission.
type Transfer struct {
	Options    TxOptions
	Descriptor *TxDescriptor
}

// Sender accumulates one value transfer and submits it. Like Caller, the
// first build error is kept and returned later.
type Sender struct {
	transactor *Transactor
	wallet     *wallet.Wallet
	pending    *Transfer
	err        error
}

// NewSender creates a Sender that signs with w.
func NewSender(t *Transactor, w *wallet.Wallet) *Sender {
	return &Sender{transactor: t, wallet: w}
}

// Build prepares a transfer of value wei to to.
func (s *Sender) Build(to common.Address, value *big.Int) *Sender {
	return s.BuildTx(TxOptions{To: &to, Value: value})
}

// BuildTx prepares a transfer with explicit options. opts.To is required.
func (s *Sender) BuildTx(opts TxOptions) *Sender {
	s.pending, s.err = nil, nil
	switch {
	case s.wallet == nil:
		s.err = ErrNoWallet
	case opts.To == nil:
		s.err = ErrMissingRecipient
	default:
		s.pending = &Transfer{Options: opts}
	}
	return s
}

// Pending returns the pending transfer, or nil.
func (s *Sender) Pending() *Transfer {
	return s.pending
}

// EstimateGasFee returns gas × gas price in wei for the pending transfer.
// The resolved descriptor is kept for Send.
func (s *Sender) EstimateGasFee(ctx context.Context) (*big.Int, error) {
	tx, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return tx.Fee(), nil
}

// Send signs and submits the pending transfer.
func (s *Sender) Send(ctx context.Context) (common.Hash, error) {
	tx, err := s.resolve(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	s.pending.Descriptor = nil
	return s.transactor.SignAndSend(ctx, s.wallet.PrivateKey, tx)
}

func (s *Sender) resolve(ctx context.Context) (*TxDescriptor, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.pending == nil {
		return nil, ErrNoPending
	}
	if s.pending.Descriptor != nil {
		return s.pending.Descriptor, nil
	}
	tx, err := s.transactor.BuildTx(ctx, s.wallet.Address, s.pending.Options)
	if err != nil {
		return nil, err
	}
	s.pending.Descriptor = tx
	return tx, nil
}
