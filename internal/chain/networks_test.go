package chain_test

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zjkal/web3-model/internal/chain"
)

func TestLookupNetwork(t *testing.T) {
	tests := []struct {
		name    string
		chainID int64
	}{
		{"ethereum", 1},
		{"sepolia", 11155111},
		{"base", 8453},
		{"polygon", 137},
		{"arbitrum", 42161},
		{"optimism", 10},
		{"bnb", 56},
		{"local", 31337},
		{"  Base-Sepolia ", 84532},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := chain.LookupNetwork(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.chainID, n.ChainID)
		})
	}
}

func TestLookupUnknownNetwork(t *testing.T) {
	_, err := chain.LookupNetwork("solana")
	assert.ErrorIs(t, err, chain.ErrNetworkNotFound)

	_, err = chain.NetworkByChainID(999999)
	assert.ErrorIs(t, err, chain.ErrNetworkNotFound)
}

func TestNetworkByChainID(t *testing.T) {
	n, err := chain.NetworkByChainID(8453)
	require.NoError(t, err)
	assert.Equal(t, "base", n.Name)
}

func TestNetworksSortedAndComplete(t *testing.T) {
	nets := chain.Networks()
	require.NotEmpty(t, nets)
	seen := map[int64]bool{}
	for i, n := range nets {
		if i > 0 {
			assert.Less(t, nets[i-1].Name, n.Name)
		}
		assert.False(t, seen[n.ChainID], "duplicate chain id %d", n.ChainID)
		seen[n.ChainID] = true
		assert.True(t, strings.HasPrefix(n.RPC, "http"), "network %s has no RPC", n.Name)
	}
}

func TestNetworkURLs(t *testing.T) {
	n, err := chain.LookupNetwork("ethereum")
	require.NoError(t, err)

	hash := common.HexToHash("0x01")
	assert.Equal(t, "https://etherscan.io/tx/"+hash.Hex(), n.TxURL(hash))

	a := common.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
	assert.Equal(t, "https://etherscan.io/address/0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", n.AddressURL(a))

	local, err := chain.LookupNetwork("local")
	require.NoError(t, err)
	assert.Empty(t, local.TxURL(hash))
}
