package cmd

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// convertAmount
// ---------------------------------------------------------------------------

func pairValue(t *testing.T, pairs [][2]string, key string) string {
	t.Helper()
	for _, p := range pairs {
		if p[0] == key {
			return p[1]
		}
	}
	t.Fatalf("no %q in %v", key, pairs)
	return ""
}

func TestConvertAmount_ETH(t *testing.T) {
	title, pairs, err := convertAmount("1.5", "eth")
	require.NoError(t, err)
	assert.Equal(t, "Unit Conversion", title)
	assert.Contains(t, pairValue(t, pairs, "Wei"), "1500000000000000000 wei")
	assert.Contains(t, pairValue(t, pairs, "Gwei"), "1500000000 gwei")
	assert.Contains(t, pairValue(t, pairs, "Hex"), "0x14d1120d7b160000")
}

func TestConvertAmount_Gwei(t *testing.T) {
	_, pairs, err := convertAmount("50", "gwei")
	require.NoError(t, err)
	assert.Contains(t, pairValue(t, pairs, "Wei"), "50000000000 wei")
	assert.Contains(t, pairValue(t, pairs, "ETH"), "0.00000005 ETH")
}

func TestConvertAmount_WeiIsExact(t *testing.T) {
	_, pairs, err := convertAmount("123456789012345678901234567890", "wei")
	require.NoError(t, err)
	assert.Contains(t, pairValue(t, pairs, "ETH"), "123456789012.34567890123456789 ETH")
}

func TestConvertAmount_HexWithoutUnit(t *testing.T) {
	title, pairs, err := convertAmount("0xff", "")
	require.NoError(t, err)
	assert.Equal(t, "Hex → Decimal", title)
	assert.Contains(t, pairValue(t, pairs, "Decimal"), "255")
}

func TestConvertAmount_DecimalToHex(t *testing.T) {
	title, pairs, err := convertAmount("255", "decimal")
	require.NoError(t, err)
	assert.Equal(t, "Decimal → Hex", title)
	assert.Contains(t, pairValue(t, pairs, "Hex"), "0xff")
}

func TestConvertAmount_Errors(t *testing.T) {
	tests := []struct {
		name, amount, unit string
	}{
		{"unknown unit", "1", "btc"},
		{"bad eth", "one", "eth"},
		{"fractional wei", "1.5", "wei"},
		{"bad hex", "0xzz", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := convertAmount(tc.amount, tc.unit)
			assert.Error(t, err)
		})
	}
}

// ---------------------------------------------------------------------------
// parseInteger
// ---------------------------------------------------------------------------

func TestParseInteger(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"42", "42"},
		{"010", "10"},
		{"0x10", "16"},
		{"0XFF", "255"},
		{" 7 ", "7"},
		{"115792089237316195423570985008687907853269984665640564039457584007913129639935",
			"115792089237316195423570985008687907853269984665640564039457584007913129639935"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			n, err := parseInteger(tc.in)
			require.NoError(t, err)
			want, _ := new(big.Int).SetString(tc.want, 10)
			assert.Equal(t, 0, want.Cmp(n))
		})
	}
}

func TestParseInteger_Invalid(t *testing.T) {
	for _, in := range []string{"", "1.5", "abc", "0x"} {
		_, err := parseInteger(in)
		assert.Error(t, err, in)
	}
}

// ---------------------------------------------------------------------------
// to-base / from-base
// ---------------------------------------------------------------------------

func TestConvertToBase(t *testing.T) {
	t.Cleanup(func() { convertDecimals = -1 })

	out := mustExecute(t, "convert", "to-base", "12.5", "--decimals", "6")
	assert.Equal(t, "12500000", strings.TrimSpace(out))
}

func TestConvertFromBase(t *testing.T) {
	t.Cleanup(func() { convertDecimals = -1 })

	out := mustExecute(t, "convert", "from-base", "12500000", "--decimals", "6")
	assert.Equal(t, "12.5", strings.TrimSpace(out))
}

func TestConvertToBase_DefaultsToConfigDecimals(t *testing.T) {
	convertDecimals = -1
	out := mustExecute(t, "convert", "to-base", "1")
	assert.Equal(t, "1000000000000000000", strings.TrimSpace(out))
}

func TestConvertCommand(t *testing.T) {
	out := mustExecute(t, "convert", "1", "eth")
	assert.Contains(t, out, "1000000000000000000 wei")
}
