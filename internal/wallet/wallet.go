package wallet

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Errors.
var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidKey     = errors.New("invalid private key")
)

// Wallet is an address plus the hex private key that controls it.
// Address is always stored checksummed (EIP-55).
type Wallet struct {
	Address    common.Address
	PrivateKey string
}

// New builds a wallet from known credentials. The key is only parsed when
// something is signed with it.
func New(address, privateKey string) (*Wallet, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return nil, err
	}
	return &Wallet{Address: addr, PrivateKey: privateKey}, nil
}

// FromPrivateKey derives the wallet address from a hex private key.
func FromPrivateKey(privateKey string) (*Wallet, error) {
	key, err := parseKey(privateKey)
	if err != nil {
		return nil, err
	}
	return &Wallet{
		Address:    crypto.PubkeyToAddress(key.PublicKey),
		PrivateKey: privateKey,
	}, nil
}

// Create generates a fresh account. The caller owns persisting the key.
func Create() (*Wallet, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}
	return &Wallet{
		Address:    crypto.PubkeyToAddress(key.PublicKey),
		PrivateKey: hexutil.Encode(crypto.FromECDSA(key)),
	}, nil
}

// Hex returns the checksummed address string.
func (w *Wallet) Hex() string {
	return w.Address.Hex()
}

// Signer returns a transaction signer backed by the wallet key.
func (w *Wallet) Signer() (*Signer, error) {
	return ParseSigner(w.PrivateKey)
}

// ParseAddress validates a 0x-prefixed (or bare) 40 hex char address.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s), nil
}

// ToChecksumAddress returns the EIP-55 form of s.
func ToChecksumAddress(s string) (string, error) {
	addr, err := ParseAddress(s)
	if err != nil {
		return "", err
	}
	return addr.Hex(), nil
}

func parseKey(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(stripHexPrefix(strings.TrimSpace(hexKey)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return key, nil
}

func stripHexPrefix(s string) string {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}
