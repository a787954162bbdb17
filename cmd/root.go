package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zjkal/web3-model/internal/chain"
	"github.com/zjkal/web3-model/internal/config"
	"github.com/zjkal/web3-model/internal/contract"
	"github.com/zjkal/web3-model/internal/wallet"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/zjkal/web3-model/cmd.Version=1.2.3" .
var Version = "0.1.0"

// errNoKey is returned by commands that sign when no key is configured.
var errNoKey = errors.New("no private key: set " + config.EnvPrefix + "_PRIVATE_KEY in the environment or a .env file")

var (
	cfgDir      string
	cfg         *config.Config
	verbose     bool
	rpcURL      string
	networkName string

	log = logrus.New()
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "web3model",
	Short: "Wallets, contract calls and transfers over EVM JSON-RPC",
	Long: `web3model talks to any EVM JSON-RPC node: create wallets, call and
transact with contracts through their ABI, move ERC-20 tokens and native
value, and convert between human and base units.

Settings come from <config>/config.json, then .env files, then
WEB3MODEL_* environment variables. The signing key is only ever read from
WEB3MODEL_PRIVATE_KEY.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		log.SetOutput(cmd.ErrOrStderr())
		log.SetLevel(logrus.WarnLevel)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}

		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if networkName != "" {
			if err := cfg.Set(config.KeyNetwork, networkName); err != nil {
				return err
			}
			// An explicit network wins over a configured rpc_url.
			cfg.RPCURL = ""
		}
		if rpcURL != "" {
			cfg.RPCURL = rpcURL
		}

		log.WithFields(logrus.Fields{
			"config_dir": cfg.Dir(),
			"network":    cfg.Network,
			"rpc_url":    cfg.RPCURL,
		}).Debug("Loaded config")
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default: ~/.web3model)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log RPC-derived values")
	rootCmd.PersistentFlags().StringVar(&rpcURL, "rpc", "", "JSON-RPC endpoint (overrides network)")
	rootCmd.PersistentFlags().StringVarP(&networkName, "network", "n", "", "known network name (see `web3model networks`)")

	rootCmd.AddCommand(
		walletCmd,
		checksumCmd,
		keccakCmd,
		convertCmd,
		callCmd,
		tokenCmd,
		sendCmd,
		networksCmd,
		ensCmd,
		configCmd,
	)
}

// --- helpers shared by chain-facing commands ---

// commandContext bounds a command's RPC work by the configured timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	if cfg.Timeout <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), cfg.Timeout)
}

// dial connects to the configured endpoint.
func dial(ctx context.Context) (*ethclient.Client, error) {
	endpoint, err := cfg.Endpoint()
	if err != nil {
		return nil, err
	}
	log.WithField("endpoint", endpoint).Debug("Dialing node")
	return chain.Dial(ctx, endpoint)
}

// contractOptions are the options every contract binding gets.
func contractOptions() []contract.Option {
	return []contract.Option{contract.WithLogger(log)}
}

// signingWallet derives the wallet from the configured private key.
func signingWallet() (*wallet.Wallet, error) {
	if cfg.PrivateKey == "" {
		return nil, errNoKey
	}
	return wallet.FromPrivateKey(cfg.PrivateKey)
}

// txLink returns an explorer URL for hash when the node is a known network's
// public endpoint.
func txLink(hash common.Hash) string {
	if cfg.RPCURL != "" {
		return ""
	}
	n, err := chain.LookupNetwork(cfg.Network)
	if err != nil {
		return ""
	}
	return n.TxURL(hash)
}

// nativeCurrency returns the configured network's currency symbol.
func nativeCurrency() string {
	if n, err := chain.LookupNetwork(cfg.Network); err == nil {
		return n.NativeCurrency
	}
	return "ETH"
}
