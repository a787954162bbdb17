package ens

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/zjkal/web3-model/internal/chain"
	"github.com/zjkal/web3-model/internal/contract"
)

// RegistryAddress is the ENS registry, the same on Ethereum mainnet and Sepolia.
var RegistryAddress = common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")

// ErrNoRecord is returned when a name or address has no resolver or record.
var ErrNoRecord = errors.New("ens: no record")

const registryABI = `[
  {"type":"function","name":"resolver","stateMutability":"view",
   "inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"address"}]}
]`

const resolverABI = `[
  {"type":"function","name":"addr","stateMutability":"view",
   "inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"name","stateMutability":"view",
   "inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"string"}]}
]`

// Resolver looks up ENS names through the registry's per-name resolvers.
type Resolver struct {
	backend  chain.Backend
	registry *contract.Contract
	opts     []contract.Option
}

// NewResolver binds the ENS registry at RegistryAddress.
func NewResolver(backend chain.Backend, opts ...contract.Option) (*Resolver, error) {
	return NewResolverAt(backend, RegistryAddress, opts...)
}

// NewResolverAt binds a registry deployed at registry.
func NewResolverAt(backend chain.Backend, registry common.Address, opts ...contract.Option) (*Resolver, error) {
	c, err := contract.NewFromABI(backend, registry.Hex(), registryABI, opts...)
	if err != nil {
		return nil, err
	}
	return &Resolver{backend: backend, registry: c, opts: opts}, nil
}

// Resolve returns the address record of name.
func (r *Resolver) Resolve(ctx context.Context, name string) (common.Address, error) {
	node := Namehash(name)
	res, err := r.resolverFor(ctx, node)
	if err != nil {
		return common.Address{}, fmt.Errorf("resolving %q: %w", name, err)
	}
	out, err := res.Call(ctx, "addr", [32]byte(node))
	if err != nil {
		return common.Address{}, fmt.Errorf("resolving %q: %w", name, err)
	}
	addr, ok := out[0].(common.Address)
	if !ok || addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: no address for %q", ErrNoRecord, name)
	}
	return addr, nil
}

// ReverseLookup returns the primary name of addr via <addr>.addr.reverse.
func (r *Resolver) ReverseLookup(ctx context.Context, addr common.Address) (string, error) {
	node := Namehash(strings.ToLower(addr.Hex()[2:]) + ".addr.reverse")
	res, err := r.resolverFor(ctx, node)
	if err != nil {
		return "", fmt.Errorf("reverse lookup of %s: %w", addr.Hex(), err)
	}
	out, err := res.Call(ctx, "name", [32]byte(node))
	if err != nil {
		return "", fmt.Errorf("reverse lookup of %s: %w", addr.Hex(), err)
	}
	name, _ := out[0].(string)
	if name == "" {
		return "", fmt.Errorf("%w: no name for %s", ErrNoRecord, addr.Hex())
	}
	return name, nil
}

func (r *Resolver) resolverFor(ctx context.Context, node common.Hash) (*contract.Contract, error) {
	out, err := r.registry.Call(ctx, "resolver", [32]byte(node))
	if err != nil {
		return nil, err
	}
	addr, ok := out[0].(common.Address)
	if !ok || addr == (common.Address{}) {
		return nil, fmt.Errorf("%w: no resolver set", ErrNoRecord)
	}
	return contract.NewFromABI(r.backend, addr.Hex(), resolverABI, r.opts...)
}

// Namehash implements the EIP-137 namehash. Names are hashed as given;
// normalization is the caller's job.
func Namehash(name string) common.Hash {
	var node common.Hash
	if name == "" {
		return node
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		label := crypto.Keccak256([]byte(labels[i]))
		node = common.BytesToHash(crypto.Keccak256(node[:], label))
	}
	return node
}

// IsName reports whether s looks like an ENS name rather than a hex address.
func IsName(s string) bool {
	s = strings.TrimSpace(s)
	return strings.Contains(s, ".") && !common.IsHexAddress(s)
}
