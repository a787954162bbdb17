package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsRegistered(t *testing.T) {
	var ids []string
	for _, b := range AllBuiltins() {
		ids = append(ids, b.ID)
		assert.NotEmpty(t, b.Name)
		assert.NotEmpty(t, b.Description)
	}
	assert.Equal(t, []string{"erc20", "erc20-mintable"}, ids)
}

func TestNewBuiltin(t *testing.T) {
	m := newRPCMock(t, nil)

	tests := []struct {
		id   string
		want []string
	}{
		{"erc20", []string{"allowance", "approve", "balanceOf", "decimals", "name", "symbol", "totalSupply", "transfer", "transferFrom"}},
		{"erc20-mintable", []string{"allowance", "approve", "balanceOf", "burn", "burnFrom", "decimals", "mint", "name", "owner", "renounceOwnership", "symbol", "totalSupply", "transfer", "transferFrom", "transferOwnership"}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			c, err := NewBuiltin(dialMock(t, m), tt.id, testTokenAddr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Functions())
		})
	}
}

func TestNewBuiltinUnknown(t *testing.T) {
	m := newRPCMock(t, nil)
	_, err := NewBuiltin(dialMock(t, m), "erc721", testTokenAddr)
	assert.ErrorIs(t, err, ErrUnknownBuiltin)
}

func TestGetBuiltin(t *testing.T) {
	b, ok := GetBuiltin("erc20")
	require.True(t, ok)
	assert.Equal(t, ERC20ABI, b.ABI)

	_, ok = GetBuiltin("missing")
	assert.False(t, ok)
}
