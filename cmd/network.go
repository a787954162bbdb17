package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zjkal/web3-model/internal/chain"
	"github.com/zjkal/web3-model/internal/ui"
)

var networksCheck bool

var networksCmd = &cobra.Command{
	Use:     "networks",
	Aliases: []string{"network"},
	Short:   "List known networks",
	Long: `List the networks --network accepts. Each has a public RPC endpoint
used when rpc_url is not set, and an explorer for transaction links.

With --check every endpoint is pinged in parallel and its latency, head block
and health are shown. An endpoint is unhealthy when it fails, reports the
wrong chain ID, or lags behind.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		networks := chain.Networks()
		if !networksCheck {
			fmt.Fprintln(cmd.OutOrStdout(), networksTable(networks, cfg.Network).Render())
			return nil
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		urls := make([]string, len(networks))
		for i, n := range networks {
			urls[i] = n.RPC
		}
		spin := ui.NewSpinner(fmt.Sprintf("Probing %d endpoints...", len(urls)))
		spin.Start()
		results := chain.ProbeAll(ctx, urls)
		spin.Stop()

		fmt.Fprintln(cmd.OutOrStdout(), probeTable(networks, results).Render())
		return nil
	},
}

// networksTable renders networks, marking current with a star.
func networksTable(networks []chain.Network, current string) *ui.Table {
	t := ui.NewTable([]ui.Column{
		{Title: "", Width: 1},
		{Title: "Name", Width: 14},
		{Title: "Display", Width: 18},
		{Title: "Chain ID", Width: 10},
		{Title: "Currency", Width: 8},
		{Title: "RPC", Width: 44},
	})
	for _, n := range networks {
		mark := ""
		if n.Name == current {
			mark = "*"
		}
		t.AddRow(ui.Row{
			mark,
			ui.ChainName(n.Name),
			n.DisplayName,
			strconv.FormatInt(n.ChainID, 10),
			n.NativeCurrency,
			n.RPC,
		})
	}
	return t
}

// probeTable pairs networks with their probe results by index.
func probeTable(networks []chain.Network, results []chain.ProbeResult) *ui.Table {
	t := ui.NewTable([]ui.Column{
		{Title: "Name", Width: 14},
		{Title: "Chain ID", Width: 10},
		{Title: "Latency", Width: 10},
		{Title: "Block", Width: 12},
		{Title: "Status", Width: 30},
	})
	for i, n := range networks {
		r := results[i]
		latency, block := "-", "-"
		if r.Err == nil {
			latency = fmt.Sprintf("%dms", r.Latency.Milliseconds())
			block = strconv.FormatUint(r.BlockNumber, 10)
		}
		t.AddRow(ui.Row{
			ui.ChainName(n.Name),
			strconv.FormatInt(n.ChainID, 10),
			latency,
			block,
			probeStatus(n, r),
		})
	}
	return t
}

func probeStatus(n chain.Network, r chain.ProbeResult) string {
	switch {
	case r.Err != nil:
		return ui.Err("unreachable")
	case !r.ServesChain(n.ChainID):
		return ui.Err("chain id " + r.ChainID.String())
	case r.Stale:
		return ui.Warn("behind head")
	default:
		return ui.Success("ok")
	}
}

func init() {
	networksCmd.Flags().BoolVar(&networksCheck, "check", false, "ping every endpoint")
}
