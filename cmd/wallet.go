package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/zjkal/web3-model/internal/ui"
	"github.com/zjkal/web3-model/internal/wallet"
)

var walletVerifyAddr string

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Create accounts and sign messages",
}

var walletNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a fresh account",
	Long: `Generate a new secp256k1 key and print its address and private key.
Nothing is written to disk: store the key yourself, e.g. in a .env file as
WEB3MODEL_PRIVATE_KEY.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := wallet.Create()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.KeyValueBlock("New Wallet", [][2]string{
			{"Address", ui.Addr(w.Hex())},
			{"Private Key", w.PrivateKey},
		}))
		fmt.Fprintln(out, ui.Warn("The key is shown once and not stored. Anyone holding it controls the funds."))
		return nil
	},
}

var walletAddressCmd = &cobra.Command{
	Use:   "address",
	Short: "Show the address of the configured private key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := signingWallet()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), w.Hex())
		return nil
	},
}

var walletSignCmd = &cobra.Command{
	Use:   "sign <message>",
	Short: "Sign a message with EIP-191 (personal_sign)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := signingWallet()
		if err != nil {
			return err
		}
		signer, err := w.Signer()
		if err != nil {
			return err
		}
		sig, err := signer.SignMessage([]byte(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock("Signed Message", [][2]string{
			{"Signer", ui.Addr(w.Hex())},
			{"Message", args[0]},
			{"Signature", ui.Val(hexutil.Encode(sig))},
		}))
		return nil
	},
}

var walletVerifyCmd = &cobra.Command{
	Use:   "verify <message> <signature>",
	Short: "Recover the signer of an EIP-191 signature",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sig, err := hexutil.Decode(args[1])
		if err != nil {
			return fmt.Errorf("invalid signature hex: %w", err)
		}
		signer, err := wallet.VerifyMessage([]byte(args[0]), sig)
		if err != nil {
			return err
		}

		pairs := [][2]string{{"Signer", ui.Addr(signer.Hex())}}
		if walletVerifyAddr != "" {
			want, err := wallet.ParseAddress(walletVerifyAddr)
			if err != nil {
				return err
			}
			if want == signer {
				pairs = append(pairs, [2]string{"Valid", ui.Success("signed by " + want.Hex())})
			} else {
				pairs = append(pairs, [2]string{"Valid", ui.Err("not signed by " + want.Hex())})
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.KeyValueBlock("Signature", pairs))
		return nil
	},
}

func init() {
	walletVerifyCmd.Flags().StringVar(&walletVerifyAddr, "address", "", "expected signer")

	walletCmd.AddCommand(walletNewCmd, walletAddressCmd, walletSignCmd, walletVerifyCmd)
}
