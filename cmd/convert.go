package cmd

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zjkal/web3-model/internal/ui"
	"github.com/zjkal/web3-model/internal/units"
)

var convertDecimals int32

var convertCmd = &cobra.Command{
	Use:   "convert <amount> [unit]",
	Short: "Convert between ETH, Gwei, Wei, and hex/decimal",
	Long: `Convert between denomination units and hex/decimal formats.

Units: eth, gwei, wei, hex, decimal
If no unit is given and the value starts with 0x, it's treated as hex.
Token amounts with other precisions use the to-base / from-base subcommands.

Examples:
  web3model convert 1.5 eth                       # gwei + wei
  web3model convert 50 gwei                       # eth + wei
  web3model convert 0xff                          # 255
  web3model convert to-base 12.5 --decimals 6     # 12500000
  web3model convert from-base 12500000 --decimals 6`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		unit := ""
		if len(args) > 1 {
			unit = strings.ToLower(args[1])
		}
		title, pairs, err := convertAmount(args[0], unit)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock(title, pairs))
		return nil
	},
}

var convertToBaseCmd = &cobra.Command{
	Use:   "to-base <amount>",
	Short: "Scale a decimal amount to integer base units",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := units.ParseAmount(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), units.ToBaseUnits(amount, resolveDecimals()).String())
		return nil
	},
}

var convertFromBaseCmd = &cobra.Command{
	Use:   "from-base <integer>",
	Short: "Scale integer base units down to a decimal amount",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseInteger(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), units.FromBaseUnits(n, resolveDecimals()).String())
		return nil
	},
}

// resolveDecimals returns --decimals when given, else the configured default.
func resolveDecimals() int32 {
	if convertDecimals >= 0 {
		return convertDecimals
	}
	return cfg.Decimals
}

// convertAmount renders amount (in unit) in every other unit.
func convertAmount(amount, unit string) (string, [][2]string, error) {
	if unit == "" && strings.HasPrefix(strings.ToLower(amount), "0x") {
		n, ok := new(big.Int).SetString(amount[2:], 16)
		if !ok {
			return "", nil, fmt.Errorf("invalid hex value: %s", amount)
		}
		return "Hex → Decimal", [][2]string{
			{"Hex", ui.Val(amount)},
			{"Decimal", ui.Val(n.String())},
		}, nil
	}

	var wei *big.Int
	switch unit {
	case "eth", "ether":
		d, err := units.ParseAmount(amount)
		if err != nil {
			return "", nil, err
		}
		wei = units.ToWei(d)
	case "gwei":
		d, err := units.ParseAmount(amount)
		if err != nil {
			return "", nil, err
		}
		wei = units.ToBaseUnits(d, units.GweiDecimals)
	case "wei", "":
		n, err := parseInteger(amount)
		if err != nil {
			return "", nil, err
		}
		wei = n
	case "hex", "decimal", "dec":
		n, err := parseInteger(amount)
		if err != nil {
			return "", nil, err
		}
		return "Decimal → Hex", [][2]string{
			{"Decimal", ui.Val(n.String())},
			{"Hex", ui.Val("0x" + n.Text(16))},
		}, nil
	default:
		return "", nil, fmt.Errorf("unknown unit %q: use eth, gwei, wei, hex, or decimal", unit)
	}

	return "Unit Conversion", [][2]string{
		{"ETH", ui.Val(units.FromWei(wei).String() + " ETH")},
		{"Gwei", ui.Val(units.FromBaseUnits(wei, units.GweiDecimals).String() + " gwei")},
		{"Wei", ui.Val(wei.String() + " wei")},
		{"Hex", ui.Val("0x" + wei.Text(16))},
	}, nil
}

// parseInteger accepts a base-10 integer or 0x hex.
func parseInteger(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("invalid integer: %q", s)
	}
	return n, nil
}

func init() {
	for _, c := range []*cobra.Command{convertToBaseCmd, convertFromBaseCmd} {
		c.Flags().Int32Var(&convertDecimals, "decimals", -1, "decimal places (default: config decimals)")
	}
	convertCmd.AddCommand(convertToBaseCmd, convertFromBaseCmd)
}
