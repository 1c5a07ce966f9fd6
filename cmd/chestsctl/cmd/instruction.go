package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/citychests/citychests-app/x/chests/types"
)

const (
	adminFlag             = "admin"
	recipientFlag         = "recipient"
	rarityFlag            = "rarity"
	nonceFlag             = "nonce"
	mintFlag              = "mint"
	vaultTokenAccountFlag = "vault-token-account"
)

type instructionMsg interface {
	types.Msg
	InstructionData() ([]byte, error)
	InstructionAccounts(programID solana.PublicKey) ([]solana.PublicKey, error)
}

type accountMeta struct {
	PublicKey  solana.PublicKey `json:"pubkey"`
	IsSigner   bool             `json:"is_signer"`
	IsWritable bool             `json:"is_writable"`
}

type instructionOutput struct {
	ProgramID solana.PublicKey `json:"program_id"`
	Name      string           `json:"name"`
	Accounts  []accountMeta    `json:"accounts"`
	Data      string           `json:"data"`
	DataB64   string           `json:"data_base64"`
	Msg       types.Msg        `json:"message"`
}

func instructionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instruction",
		Aliases: []string{"ix"},
		Short:   "Build instruction data and account lists for the chests program",
	}
	cmd.AddCommand(
		initConfigInstructionCmd(),
		createRecordInstructionCmd(),
		confirmMintInstructionCmd(),
	)
	return cmd
}

func initConfigInstructionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "initialize-config",
		Short: "Build initialize_config; the admin pays and becomes the administrator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientCtx := getClientContext(cmd)
			admin, err := publicKeyFlag(cmd, adminFlag)
			if err != nil {
				return err
			}
			vault, err := clientCtx.vault()
			if err != nil {
				return err
			}
			return printInstruction(cmd, "initialize_config", types.NewMsgInitializeConfig(admin, vault), []bool{true, true, false})
		},
	}
	cmd.Flags().String(adminFlag, "", "Administrator identity (required)")
	_ = cmd.MarkFlagRequired(adminFlag)
	return cmd
}

func createRecordInstructionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-mint-record",
		Short: "Build create_mint_record for a recipient and client nonce",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			admin, err := publicKeyFlag(cmd, adminFlag)
			if err != nil {
				return err
			}
			recipient, err := publicKeyFlag(cmd, recipientFlag)
			if err != nil {
				return err
			}
			rarity, err := cmd.Flags().GetUint8(rarityFlag)
			if err != nil {
				return err
			}
			nonce, err := cmd.Flags().GetUint64(nonceFlag)
			if err != nil {
				return err
			}
			return printInstruction(cmd, "create_mint_record", types.NewMsgCreateMintRecord(admin, recipient, rarity, nonce), []bool{false, true, true, false})
		},
	}
	cmd.Flags().String(adminFlag, "", "Administrator identity (required)")
	cmd.Flags().String(recipientFlag, "", "Recipient identity (required)")
	cmd.Flags().Uint8(rarityFlag, 0, "Opaque rarity tier")
	cmd.Flags().Uint64(nonceFlag, 0, "Client nonce")
	_ = cmd.MarkFlagRequired(adminFlag)
	_ = cmd.MarkFlagRequired(recipientFlag)
	return cmd
}

func confirmMintInstructionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confirm-mint",
		Short: "Build confirm_mint; the vault token account defaults to the vault's associated token account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientCtx := getClientContext(cmd)
			admin, err := publicKeyFlag(cmd, adminFlag)
			if err != nil {
				return err
			}
			recipient, err := publicKeyFlag(cmd, recipientFlag)
			if err != nil {
				return err
			}
			mint, err := publicKeyFlag(cmd, mintFlag)
			if err != nil {
				return err
			}
			nonce, err := cmd.Flags().GetUint64(nonceFlag)
			if err != nil {
				return err
			}

			var vaultTokenAccount solana.PublicKey
			if cmd.Flags().Changed(vaultTokenAccountFlag) {
				if vaultTokenAccount, err = publicKeyFlag(cmd, vaultTokenAccountFlag); err != nil {
					return err
				}
			} else {
				vault, err := clientCtx.vault()
				if err != nil {
					return err
				}
				if vaultTokenAccount, _, err = solana.FindAssociatedTokenAddress(vault, mint); err != nil {
					return err
				}
			}

			msg := types.NewMsgConfirmMint(admin, recipient, nonce, mint, vaultTokenAccount)
			return printInstruction(cmd, "confirm_mint", msg, []bool{false, true, false, false})
		},
	}
	cmd.Flags().String(adminFlag, "", "Administrator identity (required)")
	cmd.Flags().String(recipientFlag, "", "Recipient identity (required)")
	cmd.Flags().String(mintFlag, "", "Freshly minted asset (required)")
	cmd.Flags().Uint64(nonceFlag, 0, "Client nonce")
	cmd.Flags().String(vaultTokenAccountFlag, "", "Vault token account holding the asset")
	_ = cmd.MarkFlagRequired(adminFlag)
	_ = cmd.MarkFlagRequired(recipientFlag)
	_ = cmd.MarkFlagRequired(mintFlag)
	return cmd
}

// printInstruction encodes msg, checks that it decodes back to itself and
// prints it. writable lists the writable accounts in instruction order; the
// admin is always the only signer.
func printInstruction(cmd *cobra.Command, name string, msg instructionMsg, writable []bool) error {
	clientCtx := getClientContext(cmd)

	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	data, err := msg.InstructionData()
	if err != nil {
		return err
	}
	accounts, err := msg.InstructionAccounts(clientCtx.programID)
	if err != nil {
		return err
	}
	if _, err := types.DecodeInstruction(clientCtx.programID, data, accounts); err != nil {
		return fmt.Errorf("instruction does not round trip: %w", err)
	}

	metas := make([]accountMeta, len(accounts))
	for i, account := range accounts {
		metas[i] = accountMeta{
			PublicKey:  account,
			IsSigner:   account.Equals(msg.GetSigner()),
			IsWritable: writable[i],
		}
	}

	clientCtx.logger.Debug().Str("instruction", name).Int("accounts", len(accounts)).Msg("built instruction")

	return printJSON(cmd, instructionOutput{
		ProgramID: clientCtx.programID,
		Name:      name,
		Accounts:  metas,
		Data:      hex.EncodeToString(data),
		DataB64:   base64.StdEncoding.EncodeToString(data),
		Msg:       msg,
	})
}

func publicKeyFlag(cmd *cobra.Command, name string) (solana.PublicKey, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return solana.PublicKey{}, err
	}
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid --%s %q: %w", name, s, err)
	}
	return key, nil
}
