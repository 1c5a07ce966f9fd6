package cmd

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/citychests/citychests-app/x/chests/types"
)

type derivedAddress struct {
	Address solana.PublicKey `json:"address"`
	Bump    uint8            `json:"bump"`
}

type deriveOutput struct {
	ProgramID solana.PublicKey `json:"program_id"`
	Config    derivedAddress   `json:"config"`
	Record    *derivedAddress  `json:"record,omitempty"`
}

func deriveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "derive [recipient] [client-nonce]",
		Short: "Derive the Config address and, given a recipient and nonce, the MintRecord address",
		Args:  cobra.MatchAll(cobra.MaximumNArgs(2), recordKeyArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx := getClientContext(cmd)

			configAddr, configBump, err := types.ConfigAddress(clientCtx.programID)
			if err != nil {
				return err
			}
			out := deriveOutput{
				ProgramID: clientCtx.programID,
				Config:    derivedAddress{Address: configAddr, Bump: configBump},
			}

			if len(args) == 2 {
				recipient, nonce, err := parseRecordKey(args[0], args[1])
				if err != nil {
					return err
				}
				recordAddr, recordBump, err := types.MintRecordAddress(clientCtx.programID, recipient, nonce)
				if err != nil {
					return err
				}
				out.Record = &derivedAddress{Address: recordAddr, Bump: recordBump}
			}

			return printJSON(cmd, out)
		},
	}
}

func recordKeyArgs(_ *cobra.Command, args []string) error {
	if len(args) == 1 {
		return fmt.Errorf("a recipient requires a client nonce")
	}
	return nil
}

func parseRecordKey(recipientArg, nonceArg string) (solana.PublicKey, uint64, error) {
	recipient, err := solana.PublicKeyFromBase58(recipientArg)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("invalid recipient %q: %w", recipientArg, err)
	}
	nonce, err := cast.ToUint64E(nonceArg)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("invalid client nonce %q: %w", nonceArg, err)
	}
	return recipient, nonce, nil
}
