package cmd

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zjkal/web3-model/internal/contract"
	"github.com/zjkal/web3-model/internal/ui"
	"github.com/zjkal/web3-model/internal/units"
)

var (
	sendGas      uint64
	sendGasPrice string
	sendNonce    int64
	sendData     string
	sendYes      bool
	sendDryRun   bool
)

var sendCmd = &cobra.Command{
	Use:   "send <to|name.eth> <amount>",
	Short: "Send native currency from the configured key",
	Long: `Send native currency (ETH, POL, BNB, ...) to an address. The amount is
in whole units, e.g. 0.05. Unset gas, gas price and nonce are read from the
node; a failed gas estimate falls back to 2,100,000.

Examples:
  web3model send 0x7099...79C8 0.05
  web3model send 0x7099...79C8 1 --network sepolia --gas-price 2.5 --yes
  web3model send 0x7099...79C8 0 --data 0xdeadbeef --dry-run
  web3model send vitalik.eth 0.01`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := signingWallet()
		if err != nil {
			return err
		}
		amount, err := units.ParseAmount(args[1])
		if err != nil {
			return err
		}

		opts := contract.TxOptions{
			Value: units.ToWei(amount),
			Data:  sendData,
			Gas:   sendGas,
		}
		if sendGasPrice != "" {
			gwei, err := units.ParseAmount(sendGasPrice)
			if err != nil {
				return fmt.Errorf("invalid --gas-price: %w", err)
			}
			opts.GasPrice = units.ToBaseUnits(gwei, units.GweiDecimals)
		}
		if sendNonce >= 0 {
			n := uint64(sendNonce)
			opts.Nonce = &n
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		client, err := dial(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		to, err := resolveRecipient(ctx, client, args[0])
		if err != nil {
			return err
		}
		opts.To = &to

		sender := contract.NewSender(contract.NewTransactor(client, contractOptions()...), w).BuildTx(opts)
		fee, err := sender.EstimateGasFee(ctx)
		if err != nil {
			return err
		}
		tx := sender.Pending().Descriptor

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.KeyValueBlock("Transaction Preview", [][2]string{
			{"From", ui.Addr(w.Hex())},
			{"To", ui.Addr(to.Hex())},
			{"Value", ui.Val(formatNative(opts.Value))},
			{"Chain ID", tx.ChainID.String()},
			{"Nonce", strconv.FormatUint(tx.Nonce, 10)},
			{"Gas Limit", strconv.FormatUint(tx.Gas, 10)},
			{"Gas Price", formatGwei(tx.GasPrice)},
			{"Max Fee", formatNative(fee)},
		}))

		if sendDryRun {
			return nil
		}
		if !sendYes && !ui.Confirm("Broadcast this transaction?") {
			fmt.Fprintln(out, ui.Meta("Cancelled."))
			return nil
		}

		spin := ui.NewSpinner("Broadcasting transaction...")
		spin.Start()
		hash, err := sender.Send(ctx)
		spin.Stop()
		if err != nil {
			return err
		}
		printSubmitted(cmd, hash.Hex(), txLink(hash))
		return nil
	},
}

func formatGwei(wei *big.Int) string {
	if wei == nil {
		wei = new(big.Int)
	}
	return units.FromBaseUnits(wei, units.GweiDecimals).String() + " Gwei"
}

func init() {
	sendCmd.Flags().Uint64Var(&sendGas, "gas", 0, "gas limit (default: estimate)")
	sendCmd.Flags().StringVar(&sendGasPrice, "gas-price", "", "gas price in Gwei (default: node suggestion)")
	sendCmd.Flags().Int64Var(&sendNonce, "nonce", -1, "nonce (default: account nonce at the latest block)")
	sendCmd.Flags().StringVar(&sendData, "data", "", "hex calldata to attach")
	sendCmd.Flags().BoolVarP(&sendYes, "yes", "y", false, "skip the confirmation prompt")
	sendCmd.Flags().BoolVar(&sendDryRun, "dry-run", false, "resolve and preview without sending")
}
