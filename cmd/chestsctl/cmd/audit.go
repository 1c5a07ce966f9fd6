package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/citychests/citychests-app/x/chests/types"
)

const (
	metricsFileFlag = "metrics-file"

	// maxAuditNonces bounds the nonce ranges a single audit expands.
	maxAuditNonces = 10_000
)

// Audit outcomes of a single record.
const (
	auditPending   = "pending"
	auditConfirmed = "confirmed"
	auditMissing   = "missing"
	auditInvalid   = "invalid"
)

var errAuditFailed = errors.New("audit found invalid records")

type auditResult struct {
	Recipient   solana.PublicKey  `json:"recipient"`
	ClientNonce uint64            `json:"client_nonce"`
	Address     solana.PublicKey  `json:"address"`
	Outcome     string            `json:"outcome"`
	Mint        *solana.PublicKey `json:"mint,omitempty"`
	Error       string            `json:"error,omitempty"`
}

type auditOutput struct {
	Config  solana.PublicKey `json:"config"`
	Vault   solana.PublicKey `json:"vault"`
	Summary map[string]int   `json:"summary"`
	Records []auditResult    `json:"records"`
}

func auditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [recipient] [nonce|from-to]...",
		Short: "Check a recipient's records on the ledger; confirmed records must still be held by the vault",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx := getClientContext(cmd)
			logger := clientCtx.logger

			recipient, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return fmt.Errorf("invalid recipient %q: %w", args[0], err)
			}
			nonces, err := parseNonces(args[1:])
			if err != nil {
				return err
			}

			reader := clientCtx.reader()
			config, configAddr, err := reader.GetConfig(cmd.Context(), clientCtx.programID)
			if err != nil {
				return err
			}
			if clientCtx.config.Vault != "" && clientCtx.config.Vault != config.Vault.String() {
				logger.Warn().Str("configured", clientCtx.config.Vault).Str("stored", config.Vault.String()).Msg("configured vault differs from the stored config; auditing against the stored vault")
			}

			results := make([]auditResult, len(nonces))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(clientCtx.config.Concurrency)
			for i, nonce := range nonces {
				g.Go(func() error {
					result := auditResult{Recipient: recipient, ClientNonce: nonce}
					defer func() { results[i] = result }()

					record, address, err := reader.GetMintRecord(ctx, clientCtx.programID, recipient, nonce)
					result.Address = address
					switch {
					case errors.Is(err, types.ErrRecordNotFound):
						result.Outcome = auditMissing
						return nil
					case errors.Is(err, types.ErrInvalidAccountData):
						result.Outcome = auditInvalid
						result.Error = err.Error()
						return nil
					case err != nil:
						return err
					}

					if !record.Minted {
						result.Outcome = auditPending
						return nil
					}
					result.Mint = &record.Mint

					ata, _, err := solana.FindAssociatedTokenAddress(config.Vault, record.Mint)
					if err != nil {
						return err
					}
					account, err := reader.GetTokenAccount(ctx, ata)
					if err == nil {
						err = types.ValidateVaultAccount(account, config.Vault, record.Mint)
					}
					switch {
					case err == nil:
						result.Outcome = auditConfirmed
					case errors.Is(err, types.ErrTokenAccountNotFound), errors.Is(err, types.ErrInvalidAccountData),
						errors.Is(err, types.ErrWrongVaultOwner), errors.Is(err, types.ErrWrongMint), errors.Is(err, types.ErrWrongAmount):
						result.Outcome = auditInvalid
						result.Error = err.Error()
					default:
						return err
					}

					logger.Debug().Uint64("client_nonce", nonce).Str("outcome", result.Outcome).Msg("audited record")
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := auditOutput{
				Config:  configAddr,
				Vault:   config.Vault,
				Summary: map[string]int{auditPending: 0, auditConfirmed: 0, auditMissing: 0, auditInvalid: 0},
				Records: results,
			}
			for _, result := range results {
				out.Summary[result.Outcome]++
			}

			metricsFile, err := cmd.Flags().GetString(metricsFileFlag)
			if err != nil {
				return err
			}
			if metricsFile != "" {
				if err := writeAuditMetrics(metricsFile, out.Summary); err != nil {
					return err
				}
			}

			target, err := reportTargetFromFlags(cmd, recipient.String())
			if err != nil {
				return err
			}
			if target != nil {
				location, err := uploadReport(cmd.Context(), *target, out)
				if err != nil {
					return err
				}
				logger.Info().Str("location", location).Msg("uploaded audit report")
			}

			logger.Info().
				Int("pending", out.Summary[auditPending]).
				Int("confirmed", out.Summary[auditConfirmed]).
				Int("missing", out.Summary[auditMissing]).
				Int("invalid", out.Summary[auditInvalid]).
				Msg("audit finished")

			if err := printJSON(cmd, out); err != nil {
				return err
			}
			if out.Summary[auditInvalid] > 0 {
				return fmt.Errorf("%w: %d of %d", errAuditFailed, out.Summary[auditInvalid], len(results))
			}
			return nil
		},
	}
	cmd.Flags().String(metricsFileFlag, "", "Write audit gauges to this file in the Prometheus text format")
	addReportFlags(cmd)
	return cmd
}

// parseNonces expands single nonces and inclusive from-to ranges into a
// sorted, de-duplicated list.
func parseNonces(args []string) ([]uint64, error) {
	seen := make(map[uint64]struct{})
	for _, arg := range args {
		from, to, isRange := strings.Cut(arg, "-")
		if !isRange {
			to = from
		}
		start, err := cast.ToUint64E(from)
		if err != nil {
			return nil, fmt.Errorf("invalid nonce %q: %w", arg, err)
		}
		end, err := cast.ToUint64E(to)
		if err != nil {
			return nil, fmt.Errorf("invalid nonce %q: %w", arg, err)
		}
		if end < start {
			return nil, fmt.Errorf("invalid nonce range %q", arg)
		}
		if end-start >= maxAuditNonces || len(seen)+int(end-start) >= maxAuditNonces {
			return nil, fmt.Errorf("audit is limited to %d nonces", maxAuditNonces)
		}
		for n := start; ; n++ {
			seen[n] = struct{}{}
			if n == end {
				break
			}
		}
	}

	nonces := make([]uint64, 0, len(seen))
	for n := range seen {
		nonces = append(nonces, n)
	}
	sort.Slice(nonces, func(i, j int) bool { return nonces[i] < nonces[j] })
	return nonces, nil
}

func writeAuditMetrics(path string, summary map[string]int) error {
	registry := prometheus.NewRegistry()
	records := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.ModuleName,
		Name:      "audit_records",
		Help:      "Number of audited mint records by outcome.",
	}, []string{"outcome"})
	registry.MustRegister(records)

	for outcome, count := range summary {
		records.WithLabelValues(outcome).Set(float64(count))
	}
	return prometheus.WriteToTextfile(path, registry)
}
