package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/citychests/citychests-app/x/chests/types"
)

const encodingFlag = "encoding"

type decodedConfig struct {
	Address solana.PublicKey `json:"address"`
	types.Config
}

type decodedMintRecord struct {
	Address solana.PublicKey `json:"address"`
	Status  string           `json:"status"`
	types.MintRecord
}

func decodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "decode [config|record] [account-data]",
		Short:     "Decode raw Config or MintRecord account data",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"config", "record"},
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx := getClientContext(cmd)

			encoding, err := cmd.Flags().GetString(encodingFlag)
			if err != nil {
				return err
			}
			data, err := decodeAccountData(args[1], encoding)
			if err != nil {
				return err
			}

			switch args[0] {
			case "config":
				config, err := types.UnmarshalConfig(data)
				if err != nil {
					return err
				}
				address, bump, err := types.ConfigAddress(clientCtx.programID)
				if err != nil {
					return err
				}
				if config.Bump != bump {
					clientCtx.logger.Warn().Uint8("stored_bump", config.Bump).Uint8("derived_bump", bump).Msg("config was not derived under this program id")
				}
				return printJSON(cmd, decodedConfig{Address: address, Config: config})

			case "record":
				record, err := types.UnmarshalMintRecord(data)
				if err != nil {
					return err
				}
				address, _, err := types.MintRecordAddress(clientCtx.programID, record.Recipient, record.ClientNonce)
				if err != nil {
					return err
				}
				return printJSON(cmd, decodedMintRecord{Address: address, Status: record.Status().String(), MintRecord: record})

			default:
				return fmt.Errorf("unknown account kind %q, expected config or record", args[0])
			}
		},
	}

	cmd.Flags().String(encodingFlag, "base64", "Encoding of the account data (base64|hex)")
	return cmd
}

func decodeAccountData(s, encoding string) ([]byte, error) {
	s = strings.TrimSpace(s)
	switch encoding {
	case "base64":
		return base64.StdEncoding.DecodeString(s)
	case "hex":
		return hex.DecodeString(strings.TrimPrefix(s, "0x"))
	default:
		return nil, fmt.Errorf("unknown encoding %q, expected base64 or hex", encoding)
	}
}
