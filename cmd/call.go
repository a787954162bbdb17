package cmd

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zjkal/web3-model/internal/chain"
	"github.com/zjkal/web3-model/internal/contract"
	"github.com/zjkal/web3-model/internal/ui"
	"github.com/zjkal/web3-model/internal/units"
)

var (
	callABIPath  string
	callBuiltin  string
	callSend     bool
	callEstimate bool
	callValue    string
	callGas      uint64
	callYes      bool
)

var callCmd = &cobra.Command{
	Use:   "call <address> <function> [args...]",
	Short: "Call a contract function through its ABI",
	Long: `Call a contract function by name. Arguments are given as strings and
converted using the function's ABI types (address, bool, string, bytes,
bytesN, intN, uintN).

Without --send the function runs as eth_call and its decoded outputs are
printed. With --send it is signed with WEB3MODEL_PRIVATE_KEY and submitted.

The ABI comes from --abi (a raw ABI array or a Hardhat/Foundry artifact) or
a built-in (--builtin erc20, the default).

Examples:
  web3model call 0xA0b8...eB48 symbol
  web3model call 0xA0b8...eB48 balanceOf 0xd8dA...6045
  web3model call 0xVault deposit --abi Vault.json --send --value 0.1
  web3model call 0xToken mint 0xMe 1000 --builtin erc20-mintable --send --estimate`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		client, err := dial(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		c, err := bindContract(client, args[0])
		if err != nil {
			return err
		}
		fn, err := c.Function(args[1])
		if err != nil {
			return fmt.Errorf("%w (available: %v)", err, c.Functions())
		}
		callArgs, err := fn.ParseArgs(args[2:])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		pairs := [][2]string{
			{"Contract", ui.Addr(c.Address().Hex())},
			{"Function", ui.Val(fn.Method.Sig)},
		}

		if !callSend {
			caller := contract.NewCaller(c, nil).Build(fn.Name(), callArgs...)
			if callEstimate {
				gas, err := caller.EstimateGasFee(ctx)
				if err != nil {
					return err
				}
				pairs = append(pairs, [2]string{"Gas", ui.Val(strconv.FormatUint(gas, 10))})
				fmt.Fprintln(out, ui.KeyValueBlock("Gas Estimate", pairs))
				return nil
			}

			spin := ui.NewSpinner(fmt.Sprintf("Calling %s...", fn.Name()))
			spin.Start()
			res, err := caller.Send(ctx)
			spin.Stop()
			if err != nil {
				return err
			}
			pairs = append(pairs, resultPairs(res.Values)...)
			fmt.Fprintln(out, ui.KeyValueBlock("Contract Call", pairs))
			if !fn.ReadOnly() {
				fmt.Fprintln(out, ui.Hint("state-changing function simulated only; add --send to submit"))
			}
			return nil
		}

		w, err := signingWallet()
		if err != nil {
			return err
		}
		opts := contract.CallOptions{Gas: callGas}
		if callValue != "" {
			v, err := units.ParseAmount(callValue)
			if err != nil {
				return err
			}
			opts.Value = units.ToWei(v)
		}

		caller := contract.NewCaller(c, w).BuildTx(fn.Name(), opts, callArgs...)
		gas, err := caller.EstimateGasFee(ctx)
		if err != nil {
			return err
		}
		pending := caller.Pending().(*contract.Transaction)

		pairs = append(pairs,
			[2]string{"From", ui.Addr(w.Hex())},
			[2]string{"Value", formatNative(opts.Value)},
			[2]string{"Gas Limit", strconv.FormatUint(gas, 10)},
			[2]string{"Max Fee", formatNative(pending.Descriptor.Fee())},
		)
		fmt.Fprintln(out, ui.KeyValueBlock("Transaction Preview", pairs))

		if callEstimate {
			return nil
		}
		if !callYes && !ui.Confirm("Broadcast this transaction?") {
			fmt.Fprintln(out, ui.Meta("Cancelled."))
			return nil
		}

		res, err := caller.Send(ctx)
		if err != nil {
			return err
		}
		printSubmitted(cmd, res.TxHash.Hex(), txLink(res.TxHash))
		return nil
	},
}

// bindContract binds --abi or --builtin to address.
func bindContract(backend chain.Backend, address string) (*contract.Contract, error) {
	if callABIPath != "" {
		return contract.New(backend, address, callABIPath, contractOptions()...)
	}
	return contract.NewBuiltin(backend, callBuiltin, address, contractOptions()...)
}

// formatNative renders wei as a native-currency amount.
func formatNative(wei *big.Int) string {
	if wei == nil {
		wei = new(big.Int)
	}
	return units.FromWei(wei).String() + " " + nativeCurrency()
}

func printSubmitted(cmd *cobra.Command, hash, link string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Success("Transaction sent!"))
	fmt.Fprintln(out, ui.Addr("Hash: "+hash))
	if link != "" {
		fmt.Fprintln(out, ui.Meta(link))
	}
}

func builtinIDs() []string {
	var ids []string
	for _, b := range contract.AllBuiltins() {
		ids = append(ids, b.ID)
	}
	return ids
}

func init() {
	callCmd.Flags().StringVar(&callABIPath, "abi", "", "ABI JSON file (raw array or build artifact)")
	callCmd.Flags().StringVar(&callBuiltin, "builtin", "erc20", fmt.Sprintf("built-in ABI %v", builtinIDs()))
	callCmd.Flags().BoolVar(&callSend, "send", false, "sign and submit as a transaction")
	callCmd.Flags().BoolVar(&callEstimate, "estimate", false, "only estimate gas")
	callCmd.Flags().StringVar(&callValue, "value", "", "native value to attach, e.g. 0.1")
	callCmd.Flags().Uint64Var(&callGas, "gas", 0, "gas limit (default: estimate)")
	callCmd.Flags().BoolVarP(&callYes, "yes", "y", false, "skip the confirmation prompt")
	callCmd.MarkFlagsMutuallyExclusive("abi", "builtin")
}
