package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/citychests/citychests-app/pkg/tokenreader"
	"github.com/citychests/citychests-app/x/chests/types"
)

// EnvPrefix is the prefix of every environment variable chestsctl reads.
const EnvPrefix = "CHESTS"

const (
	configFlag      = "config"
	envFileFlag     = "env-file"
	rpcURLFlag      = "rpc-url"
	programIDFlag   = "program-id"
	vaultFlag       = "vault"
	logLevelFlag    = "log-level"
	concurrencyFlag = "concurrency"
)

// Config is the resolved chestsctl configuration. Values come from flags,
// then environment, then the config file.
type Config struct {
	RPCURL      string `mapstructure:"rpc_url" toml:"rpc_url"`
	ProgramID   string `mapstructure:"program_id" toml:"program_id"`
	Vault       string `mapstructure:"vault" toml:"vault"`
	LogLevel    string `mapstructure:"log_level" toml:"log_level"`
	Concurrency int    `mapstructure:"concurrency" toml:"concurrency"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		RPCURL:      tokenreader.DefaultEndpoint,
		ProgramID:   types.DefaultProgramID.String(),
		LogLevel:    zerolog.InfoLevel.String(),
		Concurrency: 8,
	}
}

// clientContext is what every subcommand runs with.
type clientContext struct {
	config    Config
	programID solana.PublicKey
	logger    zerolog.Logger
}

type clientContextKey struct{}

func addPersistentFlags(cmd *cobra.Command) {
	defaults := DefaultConfig()

	cmd.PersistentFlags().String(configFlag, "", "Path to a TOML config file")
	cmd.PersistentFlags().String(envFileFlag, ".env", "Path to a dotenv file; ignored if it does not exist")
	cmd.PersistentFlags().String(rpcURLFlag, defaults.RPCURL, "JSON-RPC endpoint of the ledger node")
	cmd.PersistentFlags().String(programIDFlag, defaults.ProgramID, "Program id the chests records are derived under")
	cmd.PersistentFlags().String(vaultFlag, defaults.Vault, "Vault identity that holds minted assets")
	cmd.PersistentFlags().String(logLevelFlag, defaults.LogLevel, "Log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Int(concurrencyFlag, defaults.Concurrency, "Maximum number of concurrent RPC reads")
}

// loadConfig resolves the configuration of cmd. The unprefixed RPC_URL,
// PROGRAM_ID and VAULT variables are accepted for compatibility with the
// operator scripts.
func loadConfig(cmd *cobra.Command) (Config, error) {
	envFile, err := cmd.Flags().GetString(envFileFlag)
	if err != nil {
		return Config{}, err
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	bindings := []struct {
		key, flag, legacyEnv string
	}{
		{"rpc_url", rpcURLFlag, "RPC_URL"},
		{"program_id", programIDFlag, "PROGRAM_ID"},
		{"vault", vaultFlag, "VAULT"},
		{"log_level", logLevelFlag, ""},
		{"concurrency", concurrencyFlag, ""},
	}
	for _, b := range bindings {
		envs := []string{b.key, EnvPrefix + "_" + strings.ToUpper(b.key)}
		if b.legacyEnv != "" {
			envs = append(envs, b.legacyEnv)
		}
		if err := v.BindEnv(envs...); err != nil {
			return Config{}, err
		}
		if err := v.BindPFlag(b.key, cmd.Flags().Lookup(b.flag)); err != nil {
			return Config{}, err
		}
	}

	configPath, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return Config{}, err
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", configPath, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return config, nil
}

func newClientContext(cmd *cobra.Command, config Config) (clientContext, error) {
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		return clientContext{}, fmt.Errorf("invalid %s: %w", logLevelFlag, err)
	}
	programID, err := solana.PublicKeyFromBase58(config.ProgramID)
	if err != nil {
		return clientContext{}, fmt.Errorf("invalid %s %q: %w", programIDFlag, config.ProgramID, err)
	}
	if config.Concurrency < 1 {
		return clientContext{}, fmt.Errorf("%s must be positive, got %d", concurrencyFlag, config.Concurrency)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(level).
		With().
		Timestamp().
		Str("program_id", programID.String()).
		Logger()

	return clientContext{
		config:    config,
		programID: programID,
		logger:    logger,
	}, nil
}

func getClientContext(cmd *cobra.Command) clientContext {
	if ctx, ok := cmd.Context().Value(clientContextKey{}).(clientContext); ok {
		return ctx
	}
	panic("client context not set; PersistentPreRunE did not run")
}

func setClientContext(cmd *cobra.Command, clientCtx clientContext) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, clientContextKey{}, clientCtx))
}

// vault returns the configured vault identity.
func (c clientContext) vault() (solana.PublicKey, error) {
	if c.config.Vault == "" {
		return solana.PublicKey{}, fmt.Errorf("no vault configured; set --%s, %s_VAULT or VAULT", vaultFlag, EnvPrefix)
	}
	vault, err := solana.PublicKeyFromBase58(c.config.Vault)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid %s %q: %w", vaultFlag, c.config.Vault, err)
	}
	return vault, nil
}

func (c clientContext) reader() *tokenreader.Reader {
	return tokenreader.NewFromEndpoint(c.config.RPCURL, tokenreader.WithLogger(c.logger))
}
