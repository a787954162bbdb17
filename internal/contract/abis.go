package contract

import (
	"fmt"
	"sort"

	"github.com/zjkal/web3-model/internal/chain"
)

// BuiltinKind describes a contract type whose ABI ships with the module.
// New built-ins register themselves via init() in their own <name>_abi.go.
type BuiltinKind struct {
	ID          string // machine key, e.g. "erc20"
	Name        string // human label
	Description string // one-line summary
	ABI         string // ABI JSON
}

var builtinRegistry = map[string]BuiltinKind{}

// RegisterBuiltin adds a built-in ABI to the registry.
// Call this from init() in the file that defines the ABI.
func RegisterBuiltin(b BuiltinKind) {
	builtinRegistry[b.ID] = b
}

// GetBuiltin returns a built-in by ID. ok is false if not found.
func GetBuiltin(id string) (BuiltinKind, bool) {
	b, ok := builtinRegistry[id]
	return b, ok
}

// AllBuiltins returns all registered built-ins sorted by ID.
func AllBuiltins() []BuiltinKind {
	out := make([]BuiltinKind, 0, len(builtinRegistry))
	for _, b := range builtinRegistry {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NewBuiltin binds the built-in ABI id to address.
func NewBuiltin(backend chain.Backend, id, address string, opts ...Option) (*Contract, error) {
	b, ok := GetBuiltin(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuiltin, id)
	}
	return NewFromABI(backend, address, b.ABI, opts...)
}
