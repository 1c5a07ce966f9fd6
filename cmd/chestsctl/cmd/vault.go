package cmd

import (
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/citychests/citychests-app/x/chests/types"
)

const tokenAccountFlag = "token-account"

type vaultCheckOutput struct {
	Vault   solana.PublicKey   `json:"vault"`
	Account types.TokenAccount `json:"account"`
	Valid   bool               `json:"valid"`
	Error   string             `json:"error,omitempty"`
}

func vaultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Inspect the vault's token accounts",
	}
	cmd.AddCommand(vaultATACmd(), vaultCheckCmd())
	return cmd
}

func vaultATACmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ata [mint]",
		Short: "Print the vault's associated token account for mint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx := getClientContext(cmd)
			vault, err := clientCtx.vault()
			if err != nil {
				return err
			}
			mint, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return err
			}
			ata, _, err := solana.FindAssociatedTokenAddress(vault, mint)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]solana.PublicKey{
				"vault":               vault,
				"mint":                mint,
				"vault_token_account": ata,
			})
		},
	}
}

func vaultCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [mint]",
		Short: "Check that the vault holds exactly one unit of mint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx := getClientContext(cmd)
			vault, err := clientCtx.vault()
			if err != nil {
				return err
			}
			mint, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return err
			}

			address, _, err := solana.FindAssociatedTokenAddress(vault, mint)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed(tokenAccountFlag) {
				if address, err = publicKeyFlag(cmd, tokenAccountFlag); err != nil {
					return err
				}
			}

			account, err := clientCtx.reader().GetTokenAccount(cmd.Context(), address)
			if err != nil {
				return err
			}

			out := vaultCheckOutput{Vault: vault, Account: account, Valid: true}
			checkErr := types.ValidateVaultAccount(account, vault, mint)
			if checkErr != nil {
				out.Valid = false
				out.Error = checkErr.Error()
			}
			if err := printJSON(cmd, out); err != nil {
				return err
			}
			return checkErr
		},
	}
	cmd.Flags().String(tokenAccountFlag, "", "Token account to check instead of the associated token account")
	return cmd
}
