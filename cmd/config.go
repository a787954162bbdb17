package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zjkal/web3-model/internal/config"
	"github.com/zjkal/web3-model/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"list"},
	Short:   "Show the effective configuration",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.KeyValueBlock("Current Configuration", configPairs(cfg)))
		fmt.Fprintln(out, ui.Meta("Config directory: "+cfg.Dir()))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a key in config.json (network, rpc_url, decimals, timeout)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("%s set to %q", args[0], args[1])))
		return nil
	},
}

// configPairs lists c for display. The private key is only reported as
// present or not.
func configPairs(c *config.Config) [][2]string {
	rpc := c.RPCURL
	if rpc == "" {
		rpc = ui.Meta("(network default)")
	}
	key := ui.Meta("not set")
	if c.PrivateKey != "" {
		key = ui.Warn("set (hidden)")
	}
	return [][2]string{
		{config.KeyNetwork, ui.ChainName(c.Network)},
		{config.KeyRPCURL, rpc},
		{config.KeyDecimals, strconv.Itoa(int(c.Decimals))},
		{config.KeyTimeout, c.Timeout.String()},
		{config.KeyPrivateKey, key},
	}
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
}
