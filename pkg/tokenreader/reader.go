// Package tokenreader reads vault token accounts and chests records from a
// ledger node over JSON-RPC.
package tokenreader

import (
	"context"
	"errors"

	errorsmod "cosmossdk.io/errors"
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"

	"github.com/citychests/citychests-app/x/chests/types"
)

// DefaultEndpoint is used when no RPC endpoint is configured.
const DefaultEndpoint = rpc.DevNet_RPC

var _ types.TokenKeeper = (*Reader)(nil)

// Reader implements types.TokenKeeper on top of a JSON-RPC client.
type Reader struct {
	client     *rpc.Client
	commitment rpc.CommitmentType
	logger     zerolog.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithCommitment sets the commitment level accounts are read at.
func WithCommitment(commitment rpc.CommitmentType) Option {
	return func(r *Reader) {
		r.commitment = commitment
	}
}

// WithLogger sets the logger of the Reader.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Reader) {
		r.logger = logger
	}
}

// New creates a Reader using client. Accounts are read at confirmed
// commitment unless overridden.
func New(client *rpc.Client, opts ...Option) *Reader {
	r := &Reader{
		client:     client,
		commitment: rpc.CommitmentConfirmed,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewFromEndpoint creates a Reader talking to the node at endpoint.
func NewFromEndpoint(endpoint string, opts ...Option) *Reader {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return New(rpc.New(endpoint), opts...)
}

// GetTokenAccount implements types.TokenKeeper.
func (r *Reader) GetTokenAccount(ctx context.Context, address solana.PublicKey) (types.TokenAccount, error) {
	data, err := r.accountData(ctx, address, solana.TokenProgramID)
	if errors.Is(err, rpc.ErrNotFound) {
		return types.TokenAccount{}, errorsmod.Wrapf(types.ErrTokenAccountNotFound, "no token account at %s", address)
	}
	if err != nil {
		return types.TokenAccount{}, err
	}

	var account token.Account
	if err := account.UnmarshalWithDecoder(bin.NewBinDecoder(data)); err != nil {
		r.logger.Debug().Err(err).Str("address", address.String()).Int("size", len(data)).Msg("failed to decode token account")
		return types.TokenAccount{}, errorsmod.Wrapf(types.ErrInvalidAccountData, "token account %s: %s", address, err)
	}

	r.logger.Debug().
		Str("address", address.String()).
		Str("owner", account.Owner.String()).
		Str("mint", account.Mint.String()).
		Uint64("amount", account.Amount).
		Msg("read token account")

	return types.TokenAccount{
		Address: address,
		Owner:   account.Owner,
		Mint:    account.Mint,
		Amount:  account.Amount,
	}, nil
}

// GetConfig reads the Config record stored under programID.
func (r *Reader) GetConfig(ctx context.Context, programID solana.PublicKey) (types.Config, solana.PublicKey, error) {
	address, _, err := types.ConfigAddress(programID)
	if err != nil {
		return types.Config{}, solana.PublicKey{}, err
	}

	data, err := r.accountData(ctx, address, programID)
	if errors.Is(err, rpc.ErrNotFound) {
		return types.Config{}, address, errorsmod.Wrapf(types.ErrConfigNotFound, "no config at %s", address)
	}
	if err != nil {
		return types.Config{}, address, err
	}

	config, err := types.UnmarshalConfig(data)
	return config, address, err
}

// GetMintRecord reads the record for (recipient, clientNonce) stored under programID.
func (r *Reader) GetMintRecord(ctx context.Context, programID, recipient solana.PublicKey, clientNonce uint64) (types.MintRecord, solana.PublicKey, error) {
	address, _, err := types.MintRecordAddress(programID, recipient, clientNonce)
	if err != nil {
		return types.MintRecord{}, solana.PublicKey{}, err
	}

	data, err := r.accountData(ctx, address, programID)
	if errors.Is(err, rpc.ErrNotFound) {
		return types.MintRecord{}, address, errorsmod.Wrapf(types.ErrRecordNotFound, "no record at %s for %s/%d", address, recipient, clientNonce)
	}
	if err != nil {
		return types.MintRecord{}, address, err
	}

	record, err := types.UnmarshalMintRecord(data)
	return record, address, err
}

// accountData returns the raw data of the account at address after checking
// that it is owned by owner.
func (r *Reader) accountData(ctx context.Context, address, owner solana.PublicKey) ([]byte, error) {
	out, err := r.client.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: r.commitment,
	})
	if err != nil {
		return nil, err
	}
	if out == nil || out.Value == nil {
		return nil, rpc.ErrNotFound
	}
	if !out.Value.Owner.Equals(owner) {
		return nil, errorsmod.Wrapf(types.ErrInvalidAccountData, "account %s is owned by %s, expected %s", address, out.Value.Owner, owner)
	}
	return out.Value.Data.GetBinary(), nil
}
