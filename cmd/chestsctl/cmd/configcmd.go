package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

const forceFlag = "force"

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the chestsctl config file",
	}
	cmd.AddCommand(configInitCmd(), configShowCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			force, err := cmd.Flags().GetBool(forceFlag)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; pass --%s to overwrite", path, forceFlag)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			bz, err := toml.Marshal(DefaultConfig())
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, bz, 0o644); err != nil {
				return err
			}

			clientCtx := getClientContext(cmd)
			clientCtx.logger.Info().Str("path", path).Msg("wrote config")
			return nil
		},
	}
	cmd.Flags().Bool(forceFlag, false, "Overwrite an existing file")
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bz, err := toml.Marshal(getClientContext(cmd).config)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(bz)
			return err
		},
	}
}
