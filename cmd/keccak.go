package cmd

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/zjkal/web3-model/internal/ui"
	"golang.org/x/crypto/sha3"
)

var keccakCmd = &cobra.Command{
	Use:   "keccak <input>",
	Short: "Compute the Keccak-256 hash and 4-byte selector of text or hex",
	Long: `Compute the Keccak-256 hash of the given input. Input starting with 0x
is hashed as raw bytes, anything else as UTF-8 text.

Examples:
  web3model keccak "transfer(address,uint256)"    # selector 0xa9059cbb
  web3model keccak 0xdeadbeef`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]

		data := []byte(input)
		inputType := "text"
		if strings.HasPrefix(input, "0x") || strings.HasPrefix(input, "0X") {
			raw, err := hexutil.Decode("0x" + input[2:])
			if err != nil {
				return fmt.Errorf("invalid hex input: %w", err)
			}
			data = raw
			inputType = "hex"
		}

		hash := keccak256(data)
		fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock("Keccak-256", [][2]string{
			{"Input", input},
			{"Type", inputType},
			{"Hash", ui.Val(hexutil.Encode(hash))},
			{"Selector", hexutil.Encode(hash[:4])},
		}))
		return nil
	},
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}
