package types

import (
	"context"

	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/gagliardetto/solana-go"
)

// QueryServer is the server API for the chests module's queries.
type QueryServer interface {
	Config(context.Context, *QueryConfigRequest) (*QueryConfigResponse, error)
	MintRecord(context.Context, *QueryMintRecordRequest) (*QueryMintRecordResponse, error)
	MintRecords(context.Context, *QueryMintRecordsRequest) (*QueryMintRecordsResponse, error)
	DerivedAddresses(context.Context, *QueryDerivedAddressesRequest) (*QueryDerivedAddressesResponse, error)
}

type QueryConfigRequest struct{}

type QueryConfigResponse struct {
	Address solana.PublicKey `json:"address"`
	Config  Config           `json:"config"`
}

type QueryMintRecordRequest struct {
	Recipient   solana.PublicKey `json:"recipient"`
	ClientNonce uint64           `json:"client_nonce"`
}

type QueryMintRecordResponse struct {
	Address solana.PublicKey `json:"address"`
	Record  MintRecord       `json:"record"`
}

type QueryMintRecordsRequest struct {
	Status     RecordStatus       `json:"status"`
	Pagination *query.PageRequest `json:"pagination,omitempty"`
}

// AddressedMintRecord is a MintRecord together with the address it is stored at.
type AddressedMintRecord struct {
	Address solana.PublicKey `json:"address"`
	Record  MintRecord       `json:"record"`
}

type QueryMintRecordsResponse struct {
	Records    []AddressedMintRecord `json:"records"`
	Pagination *query.PageResponse   `json:"pagination,omitempty"`
}

type QueryDerivedAddressesRequest struct {
	Recipient   solana.PublicKey `json:"recipient"`
	ClientNonce uint64           `json:"client_nonce"`
}

type QueryDerivedAddressesResponse struct {
	ConfigAddress solana.PublicKey `json:"config_address"`
	ConfigBump    uint8            `json:"config_bump"`
	RecordAddress solana.PublicKey `json:"record_address"`
	RecordBump    uint8            `json:"record_bump"`
}
