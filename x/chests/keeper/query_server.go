package keeper

import (
	"context"
	"errors"

	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/gagliardetto/solana-go"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/citychests/citychests-app/x/chests/types"
)

var _ types.QueryServer = queryServer{}

type queryServer struct {
	k *Keeper
}

// NewQueryServerImpl creates and returns a new module QueryServer instance.
func NewQueryServerImpl(k *Keeper) types.QueryServer {
	return queryServer{k}
}

// Config returns the Config record.
func (q queryServer) Config(ctx context.Context, _ *types.QueryConfigRequest) (*types.QueryConfigResponse, error) {
	config, err := q.k.GetConfig(ctx)
	if errors.Is(err, types.ErrConfigNotFound) {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to read config: %s", err.Error())
	}

	return &types.QueryConfigResponse{
		Address: q.k.configAddress,
		Config:  config,
	}, nil
}

// MintRecord returns a single record given by its (recipient, client nonce) pair.
func (q queryServer) MintRecord(ctx context.Context, req *types.QueryMintRecordRequest) (*types.QueryMintRecordResponse, error) {
	if req == nil {
		return nil, status.Errorf(codes.InvalidArgument, "request cannot be empty")
	}

	record, address, err := q.k.GetMintRecord(ctx, req.Recipient, req.ClientNonce)
	if errors.Is(err, types.ErrRecordNotFound) {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to read mint record: %s", err.Error())
	}

	return &types.QueryMintRecordResponse{
		Address: address,
		Record:  record,
	}, nil
}

// MintRecords returns stored records in address order, optionally filtered
// by lifecycle state.
func (q queryServer) MintRecords(ctx context.Context, req *types.QueryMintRecordsRequest) (*types.QueryMintRecordsResponse, error) {
	if req == nil {
		return nil, status.Errorf(codes.InvalidArgument, "request cannot be empty")
	}
	if req.Pagination != nil && req.Pagination.Limit > types.MaxPaginationLimit {
		return nil, status.Errorf(codes.InvalidArgument, "pagination limit %d exceeds maximum %d", req.Pagination.Limit, types.MaxPaginationLimit)
	}
	if req.Status > types.StatusConfirmed {
		return nil, status.Errorf(codes.InvalidArgument, "unknown record status %s", req.Status)
	}

	records, pagination, err := query.CollectionFilteredPaginate(
		ctx,
		q.k.records,
		req.Pagination,
		func(_ []byte, record types.MintRecord) (bool, error) {
			return req.Status.Matches(record), nil
		},
		func(key []byte, record types.MintRecord) (types.AddressedMintRecord, error) {
			return types.AddressedMintRecord{
				Address: solana.PublicKeyFromBytes(key),
				Record:  record,
			}, nil
		},
	)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	return &types.QueryMintRecordsResponse{
		Records:    records,
		Pagination: pagination,
	}, nil
}

// DerivedAddresses returns the Config address and the record address for a
// (recipient, client nonce) pair without reading state.
func (q queryServer) DerivedAddresses(_ context.Context, req *types.QueryDerivedAddressesRequest) (*types.QueryDerivedAddressesResponse, error) {
	if req == nil {
		return nil, status.Errorf(codes.InvalidArgument, "request cannot be empty")
	}

	recordAddress, recordBump, err := q.k.MintRecordAddress(req.Recipient, req.ClientNonce)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to derive record address: %s", err.Error())
	}

	return &types.QueryDerivedAddressesResponse{
		ConfigAddress: q.k.configAddress,
		ConfigBump:    q.k.configBump,
		RecordAddress: recordAddress,
		RecordBump:    recordBump,
	}, nil
}
