package cmd

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/zjkal/web3-model/internal/chain"
	"github.com/zjkal/web3-model/internal/ens"
	"github.com/zjkal/web3-model/internal/ui"
	"github.com/zjkal/web3-model/internal/wallet"
)

var ensCmd = &cobra.Command{
	Use:   "ens",
	Short: "Resolve ENS names (Ethereum mainnet and Sepolia)",
}

var ensResolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Resolve a name such as vitalik.eth to an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		client, err := dial(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		r, err := ens.NewResolver(client, contractOptions()...)
		if err != nil {
			return err
		}
		addr, err := r.Resolve(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock("ENS", [][2]string{
			{"Name", args[0]},
			{"Address", ui.Addr(addr.Hex())},
		}))
		return nil
	},
}

var ensLookupCmd = &cobra.Command{
	Use:   "lookup <address>",
	Short: "Find the primary name of an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := wallet.ParseAddress(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		client, err := dial(ctx)
		if err != nil {
			return err
		}
		defer client.Close()

		r, err := ens.NewResolver(client, contractOptions()...)
		if err != nil {
			return err
		}
		name, err := r.ReverseLookup(ctx, addr)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock("ENS", [][2]string{
			{"Address", ui.Addr(addr.Hex())},
			{"Name", name},
		}))
		return nil
	},
}

// resolveRecipient accepts a hex address or an ENS name. Names are looked up
// on backend; hex addresses never touch the network.
func resolveRecipient(ctx context.Context, backend chain.Backend, s string) (common.Address, error) {
	if !ens.IsName(s) {
		return wallet.ParseAddress(s)
	}
	r, err := ens.NewResolver(backend, contractOptions()...)
	if err != nil {
		return common.Address{}, err
	}
	addr, err := r.Resolve(ctx, s)
	if err != nil {
		return common.Address{}, err
	}
	log.WithField("name", s).WithField("address", addr.Hex()).Debug("Resolved ENS name")
	return addr, nil
}

func init() {
	ensCmd.AddCommand(ensResolveCmd, ensLookupCmd)
}
