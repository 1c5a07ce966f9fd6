// Package cmd implements chestsctl, the operator tool for the chests
// registry: address derivation, record decoding, instruction building and
// vault audits against a ledger node.
package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the chestsctl root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "chestsctl",
		Short:         "Operate the CityChests mint registry",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			clientCtx, err := newClientContext(cmd, config)
			if err != nil {
				return err
			}
			setClientContext(cmd, clientCtx)
			return nil
		},
	}
	addPersistentFlags(rootCmd)

	rootCmd.AddCommand(
		deriveCmd(),
		decodeCmd(),
		instructionCmd(),
		vaultCmd(),
		auditCmd(),
		configCmd(),
	)
	return rootCmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
