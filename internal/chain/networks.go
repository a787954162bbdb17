package chain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ErrNetworkNotFound is returned when a network name or chain ID is unknown.
var ErrNetworkNotFound = errors.New("network not found")

// Network is a known EVM chain with a public RPC endpoint.
type Network struct {
	Name           string `json:"name"`
	DisplayName    string `json:"display_name"`
	ChainID        int64  `json:"chain_id"`
	NativeCurrency string `json:"native_currency"`
	RPC            string `json:"rpc"`
	Explorer       string `json:"explorer"`
}

// TxURL returns the explorer link for hash, or "" when the network has no
// explorer.
func (n *Network) TxURL(hash common.Hash) string {
	if n.Explorer == "" {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s", strings.TrimRight(n.Explorer, "/"), hash.Hex())
}

// AddressURL returns the explorer link for addr, or "".
func (n *Network) AddressURL(addr common.Address) string {
	if n.Explorer == "" {
		return ""
	}
	return fmt.Sprintf("%s/address/%s", strings.TrimRight(n.Explorer, "/"), addr.Hex())
}

var (
	networksByName = map[string]*Network{}
	networksByID   = map[int64]*Network{}
)

func init() {
	for i := range knownNetworks {
		n := &knownNetworks[i]
		networksByName[n.Name] = n
		networksByID[n.ChainID] = n
	}
}

// LookupNetwork finds a network by slug ("ethereum", "base-sepolia", ...).
func LookupNetwork(name string) (*Network, error) {
	n, ok := networksByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNetworkNotFound, name)
	}
	return n, nil
}

// NetworkByChainID finds a network by its numeric chain ID.
func NetworkByChainID(id int64) (*Network, error) {
	n, ok := networksByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: chain id %d", ErrNetworkNotFound, id)
	}
	return n, nil
}

// Networks returns all known networks sorted by name.
func Networks() []Network {
	out := make([]Network, len(knownNetworks))
	copy(out, knownNetworks)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

var knownNetworks = []Network{
	{Name: "ethereum", DisplayName: "Ethereum", ChainID: 1, NativeCurrency: "ETH",
		RPC: "https://ethereum-rpc.publicnode.com", Explorer: "https://etherscan.io"},
	{Name: "sepolia", DisplayName: "Sepolia", ChainID: 11155111, NativeCurrency: "ETH",
		RPC: "https://ethereum-sepolia-rpc.publicnode.com", Explorer: "https://sepolia.etherscan.io"},
	{Name: "base", DisplayName: "Base", ChainID: 8453, NativeCurrency: "ETH",
		RPC: "https://mainnet.base.org", Explorer: "https://basescan.org"},
	{Name: "base-sepolia", DisplayName: "Base Sepolia", ChainID: 84532, NativeCurrency: "ETH",
		RPC: "https://sepolia.base.org", Explorer: "https://sepolia.basescan.org"},
	{Name: "polygon", DisplayName: "Polygon", ChainID: 137, NativeCurrency: "POL",
		RPC: "https://polygon-bor-rpc.publicnode.com", Explorer: "https://polygonscan.com"},
	{Name: "arbitrum", DisplayName: "Arbitrum", ChainID: 42161, NativeCurrency: "ETH",
		RPC: "https://arb1.arbitrum.io/rpc", Explorer: "https://arbiscan.io"},
	{Name: "optimism", DisplayName: "Optimism", ChainID: 10, NativeCurrency: "ETH",
		RPC: "https://mainnet.optimism.io", Explorer: "https://optimistic.etherscan.io"},
	{Name: "bnb", DisplayName: "BNB Chain", ChainID: 56, NativeCurrency: "BNB",
		RPC: "https://bsc-dataseed.binance.org", Explorer: "https://bscscan.com"},
	{Name: "avalanche", DisplayName: "Avalanche C-Chain", ChainID: 43114, NativeCurrency: "AVAX",
		RPC: "https://api.avax.network/ext/bc/C/rpc", Explorer: "https://snowtrace.io"},
	{Name: "linea", DisplayName: "Linea", ChainID: 59144, NativeCurrency: "ETH",
		RPC: "https://rpc.linea.build", Explorer: "https://lineascan.build"},
	{Name: "local", DisplayName: "Local node", ChainID: 31337, NativeCurrency: "ETH",
		RPC: "http://127.0.0.1:8545"},
}
