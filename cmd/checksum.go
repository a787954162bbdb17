package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zjkal/web3-model/internal/ui"
	"github.com/zjkal/web3-model/internal/wallet"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum <address>",
	Short: "Validate or convert an address to EIP-55 checksum format",
	Long: `Convert any address to its EIP-55 checksummed form and report whether
the input was already correctly checksummed.

Examples:
  web3model checksum 0xd8da6bf26964af9d7eed9e03e53415d37aa96045
  web3model checksum d8da6bf26964af9d7eed9e03e53415d37aa96045`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, err := checksumReport(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock("EIP-55 Checksum", pairs))
		return nil
	},
}

// checksumVerdict classifies input against its checksummed form.
func checksumVerdict(input, checksummed string) string {
	bare := strings.TrimPrefix(strings.TrimPrefix(input, "0x"), "0X")
	switch {
	case "0x"+bare == checksummed:
		return "valid"
	case bare == strings.ToLower(bare) || bare == strings.ToUpper(bare):
		return "unchecksummed"
	default:
		return "mismatch"
	}
}

func checksumReport(input string) ([][2]string, error) {
	checksummed, err := wallet.ToChecksumAddress(input)
	if err != nil {
		return nil, err
	}

	pairs := [][2]string{
		{"Input", input},
		{"Checksummed", ui.Addr(checksummed)},
	}
	switch checksumVerdict(input, checksummed) {
	case "valid":
		pairs = append(pairs, [2]string{"Valid", ui.Success("address is correctly checksummed")})
	case "unchecksummed":
		pairs = append(pairs, [2]string{"Valid", ui.Warn("valid address but not checksummed")})
	default:
		pairs = append(pairs, [2]string{"Valid", ui.Err("checksum mismatch")})
	}
	return pairs, nil
}
