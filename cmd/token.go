package cmd

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zjkal/web3-model/internal/contract"
	"github.com/zjkal/web3-model/internal/ui"
	"github.com/zjkal/web3-model/internal/units"
	"github.com/zjkal/web3-model/internal/wallet"
)

// ── flag vars ─────────────────────────────────────────────────────────────────

var (
	tokenGas uint64
	tokenYes bool
	tokenRaw bool
)

// ── root token command ────────────────────────────────────────────────────────

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Read and move ERC-20 tokens",
	Long: `Read ERC-20 metadata and balances, transfer tokens and manage
allowances. Amounts are in whole tokens scaled by the token's decimals()
unless --raw is given, in which case they are base units.`,
}

// tokenSession is one dialed token binding plus its decimals.
type tokenSession struct {
	token    *contract.ERC20
	decimals int32
}

// withToken dials the node, binds the ERC-20 at address and runs fn.
func withToken(cmd *cobra.Command, address string, fn func(ctx context.Context, s *tokenSession) error) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	client, err := dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	token, err := contract.NewERC20(client, address, contractOptions()...)
	if err != nil {
		return err
	}

	s := &tokenSession{token: token, decimals: cfg.Decimals}
	if !tokenRaw {
		d, err := token.Decimals(ctx)
		if err != nil {
			return fmt.Errorf("reading decimals: %w", err)
		}
		s.decimals = int32(d)
	}
	return fn(ctx, s)
}

// amount parses a user amount into base units.
func (s *tokenSession) amount(raw string) (*big.Int, error) {
	if tokenRaw {
		return parseInteger(raw)
	}
	d, err := units.ParseAmount(raw)
	if err != nil {
		return nil, err
	}
	return units.ToBaseUnits(d, s.decimals), nil
}

// format renders base units for display.
func (s *tokenSession) format(n *big.Int) string {
	if tokenRaw {
		return n.String()
	}
	return units.FromBaseUnits(n, s.decimals).String()
}

// ── token info ────────────────────────────────────────────────────────────────

var tokenInfoCmd = &cobra.Command{
	Use:   "info <token>",
	Short: "Show name, symbol, decimals and total supply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withToken(cmd, args[0], func(ctx context.Context, s *tokenSession) error {
			name, err := s.token.Name(ctx)
			if err != nil {
				return err
			}
			symbol, err := s.token.Symbol(ctx)
			if err != nil {
				return err
			}
			supply, err := s.token.TotalSupply(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock("ERC-20 Token", [][2]string{
				{"Address", ui.Addr(s.token.Address().Hex())},
				{"Name", name},
				{"Symbol", symbol},
				{"Decimals", strconv.Itoa(int(s.decimals))},
				{"Total Supply", ui.Val(s.format(supply) + " " + symbol)},
			}))
			return nil
		})
	},
}

// ── token balance ─────────────────────────────────────────────────────────────

var tokenBalanceCmd = &cobra.Command{
	Use:   "balance <token> [owner]",
	Short: "Show a token balance (default owner: the configured key's address)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := ownerArg(args[1:])
		if err != nil {
			return err
		}
		return withToken(cmd, args[0], func(ctx context.Context, s *tokenSession) error {
			bal, err := s.token.BalanceOf(ctx, owner.Address)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.format(bal))
			return nil
		})
	},
}

// ── token allowance ───────────────────────────────────────────────────────────

var tokenAllowanceCmd = &cobra.Command{
	Use:   "allowance <token> <owner> <spender>",
	Short: "Show how much spender may move on owner's behalf",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := wallet.ParseAddress(args[1])
		if err != nil {
			return err
		}
		spender, err := wallet.ParseAddress(args[2])
		if err != nil {
			return err
		}
		return withToken(cmd, args[0], func(ctx context.Context, s *tokenSession) error {
			n, err := s.token.Allowance(ctx, owner, spender)
			if err != nil {
				return err
			}
			if n.Cmp(contract.MaxUint256) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "unlimited")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.format(n))
			return nil
		})
	},
}

// ── token transfer ────────────────────────────────────────────────────────────

var tokenTransferCmd = &cobra.Command{
	Use:   "transfer <token> <to|name.eth> <amount>",
	Short: "Transfer tokens from the configured key",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := signingWallet()
		if err != nil {
			return err
		}
		return withToken(cmd, args[0], func(ctx context.Context, s *tokenSession) error {
			to, err := resolveRecipient(ctx, s.token.Backend(), args[1])
			if err != nil {
				return err
			}
			amount, err := s.amount(args[2])
			if err != nil {
				return err
			}
			if !confirmToken(cmd, "Token Transfer", [][2]string{
				{"Token", ui.Addr(s.token.Address().Hex())},
				{"From", ui.Addr(w.Hex())},
				{"To", ui.Addr(to.Hex())},
				{"Amount", ui.Val(s.format(amount))},
			}) {
				return nil
			}
			hash, err := s.token.Transfer(ctx, w, to, amount, tokenGas)
			if err != nil {
				return err
			}
			printSubmitted(cmd, hash.Hex(), txLink(hash))
			return nil
		})
	},
}

// ── token approve ─────────────────────────────────────────────────────────────

var tokenApproveCmd = &cobra.Command{
	Use:   "approve <token> <spender> [amount]",
	Short: "Approve spender (no amount: unlimited)",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := signingWallet()
		if err != nil {
			return err
		}
		return withToken(cmd, args[0], func(ctx context.Context, s *tokenSession) error {
			spender, err := resolveRecipient(ctx, s.token.Backend(), args[1])
			if err != nil {
				return err
			}
			var amount *big.Int
			shown := "unlimited"
			if len(args) == 3 {
				if amount, err = s.amount(args[2]); err != nil {
					return err
				}
				shown = s.format(amount)
			}
			if !confirmToken(cmd, "Token Approval", [][2]string{
				{"Token", ui.Addr(s.token.Address().Hex())},
				{"Owner", ui.Addr(w.Hex())},
				{"Spender", ui.Addr(spender.Hex())},
				{"Amount", ui.Val(shown)},
			}) {
				return nil
			}
			hash, err := s.token.Approve(ctx, w, spender, amount)
			if err != nil {
				return err
			}
			printSubmitted(cmd, hash.Hex(), txLink(hash))
			return nil
		})
	},
}

// ownerArg returns the address in args, or the configured key's address.
func ownerArg(args []string) (*wallet.Wallet, error) {
	if len(args) > 0 {
		return wallet.New(args[0], "")
	}
	return signingWallet()
}

func confirmToken(cmd *cobra.Command, title string, pairs [][2]string) bool {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.KeyValueBlock(title, pairs))
	if tokenYes || ui.Confirm("Broadcast this transaction?") {
		return true
	}
	fmt.Fprintln(out, ui.Meta("Cancelled."))
	return false
}

func init() {
	tokenCmd.PersistentFlags().BoolVar(&tokenRaw, "raw", false, "amounts are base units, skip decimals()")
	for _, c := range []*cobra.Command{tokenTransferCmd, tokenApproveCmd} {
		c.Flags().BoolVarP(&tokenYes, "yes", "y", false, "skip the confirmation prompt")
	}
	tokenTransferCmd.Flags().Uint64Var(&tokenGas, "gas", 0, "gas limit (default: estimate)")

	tokenCmd.AddCommand(tokenInfoCmd, tokenBalanceCmd, tokenAllowanceCmd, tokenTransferCmd, tokenApproveCmd)
}
