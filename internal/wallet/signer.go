package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer signs EVM transactions with a single private key.
type Signer struct {
	key *ecdsa.PrivateKey
}

// NewSigner creates a signer for key.
func NewSigner(key *ecdsa.PrivateKey) *Signer {
	return &Signer{key: key}
}

// ParseSigner creates a signer from a hex private key (0x prefix optional).
func ParseSigner(hexKey string) (*Signer, error) {
	key, err := parseKey(hexKey)
	if err != nil {
		return nil, err
	}
	return NewSigner(key), nil
}

// SignTx signs tx for chainID (EIP-155) and returns the signed transaction.
func (s *Signer) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	if chainID == nil {
		return nil, fmt.Errorf("signing transaction: missing chain id")
	}
	signed, err := types.SignTx(tx, types.NewEIP155Signer(chainID), s.key)
	if err != nil {
		return nil, fmt.Errorf("signing transaction: %w", err)
	}
	return signed, nil
}

// SignRawTx signs tx and returns the raw bytes ready for eth_sendRawTransaction.
func (s *Signer) SignRawTx(tx *types.Transaction, chainID *big.Int) ([]byte, error) {
	signed, err := s.SignTx(tx, chainID)
	if err != nil {
		return nil, err
	}
	raw, err := signed.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshaling signed tx: %w", err)
	}
	return raw, nil
}

// Address returns the address derived from the signing key.
func (s *Signer) Address() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}
