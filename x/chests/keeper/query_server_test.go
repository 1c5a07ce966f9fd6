package keeper_test

import (
	"github.com/cosmos/cosmos-sdk/types/query"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/citychests/citychests-app/test/util/testfactory"
	"github.com/citychests/citychests-app/x/chests/types"
)

func (suite *KeeperTestSuite) TestQueryConfig() {
	_, err := suite.queryServer.Config(suite.ctx, &types.QueryConfigRequest{})
	suite.Require().Equal(codes.NotFound, status.Code(err))

	suite.InitConfig()

	res, err := suite.queryServer.Config(suite.ctx, &types.QueryConfigRequest{})
	suite.Require().NoError(err)

	addr, bump := suite.keeper.ConfigAddress()
	suite.Require().Equal(addr, res.Address)
	suite.Require().Equal(types.Config{Admin: suite.id.Admin, Vault: suite.id.Vault, Bump: bump}, res.Config)
}

func (suite *KeeperTestSuite) TestQueryMintRecord() {
	suite.InitConfig()
	addr := suite.CreateRecord(4, 2)

	testCases := []struct {
		name    string
		req     *types.QueryMintRecordRequest
		expCode codes.Code
	}{
		{
			name:    "success",
			req:     &types.QueryMintRecordRequest{Recipient: suite.id.Recipient, ClientNonce: 4},
			expCode: codes.OK,
		},
		{
			name:    "unknown nonce",
			req:     &types.QueryMintRecordRequest{Recipient: suite.id.Recipient, ClientNonce: 5},
			expCode: codes.NotFound,
		},
		{
			name:    "unknown recipient",
			req:     &types.QueryMintRecordRequest{Recipient: testfactory.RandomPublicKey(), ClientNonce: 4},
			expCode: codes.NotFound,
		},
		{
			name:    "nil request",
			req:     nil,
			expCode: codes.InvalidArgument,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			res, err := suite.queryServer.MintRecord(suite.ctx, tc.req)
			suite.Require().Equal(tc.expCode, status.Code(err))
			if tc.expCode != codes.OK {
				suite.Require().Nil(res)
				return
			}

			suite.Require().Equal(addr, res.Address)
			suite.Require().Equal(uint8(2), res.Record.Rarity)
			suite.Require().Equal(types.StatusPending, res.Record.Status())
		})
	}
}

func (suite *KeeperTestSuite) TestQueryMintRecords() {
	suite.InitConfig()
	for nonce := uint64(0); nonce < 6; nonce++ {
		suite.CreateRecord(nonce, 1)
	}

	for _, nonce := range []uint64{1, 3} {
		mint := testfactory.RandomPublicKey()
		ata := suite.tokenKeeper.SetVaultHolding(suite.id.Vault, mint, 1)
		_, err := suite.msgServer.ConfirmMint(suite.ctx, types.NewMsgConfirmMint(suite.id.Admin, suite.id.Recipient, nonce, mint, ata))
		suite.Require().NoError(err)
	}

	testCases := []struct {
		name     string
		req      *types.QueryMintRecordsRequest
		expCount int
		expCode  codes.Code
	}{
		{
			name:     "all records",
			req:      &types.QueryMintRecordsRequest{},
			expCount: 6,
		},
		{
			name:     "pending records",
			req:      &types.QueryMintRecordsRequest{Status: types.StatusPending},
			expCount: 4,
		},
		{
			name:     "confirmed records",
			req:      &types.QueryMintRecordsRequest{Status: types.StatusConfirmed},
			expCount: 2,
		},
		{
			name:     "first page",
			req:      &types.QueryMintRecordsRequest{Pagination: &query.PageRequest{Limit: 4}},
			expCount: 4,
		},
		{
			name:    "limit above maximum",
			req:     &types.QueryMintRecordsRequest{Pagination: &query.PageRequest{Limit: types.MaxPaginationLimit + 1}},
			expCode: codes.InvalidArgument,
		},
		{
			name:    "unknown status",
			req:     &types.QueryMintRecordsRequest{Status: types.StatusConfirmed + 1},
			expCode: codes.InvalidArgument,
		},
		{
			name:    "nil request",
			req:     nil,
			expCode: codes.InvalidArgument,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			res, err := suite.queryServer.MintRecords(suite.ctx, tc.req)
			suite.Require().Equal(tc.expCode, status.Code(err))
			if tc.expCode != codes.OK {
				return
			}

			suite.Require().Len(res.Records, tc.expCount)
			for _, record := range res.Records {
				suite.Require().True(tc.req.Status.Matches(record.Record))

				expAddr, _, err := suite.keeper.MintRecordAddress(record.Record.Recipient, record.Record.ClientNonce)
				suite.Require().NoError(err)
				suite.Require().Equal(expAddr, record.Address)
			}
		})
	}
}

func (suite *KeeperTestSuite) TestQueryMintRecordsPaginates() {
	suite.InitConfig()
	for nonce := uint64(0); nonce < 5; nonce++ {
		suite.CreateRecord(nonce, 1)
	}

	seen := make(map[uint64]struct{})
	var nextKey []byte
	for {
		res, err := suite.queryServer.MintRecords(suite.ctx, &types.QueryMintRecordsRequest{
			Pagination: &query.PageRequest{Key: nextKey, Limit: 2},
		})
		suite.Require().NoError(err)
		for _, record := range res.Records {
			seen[record.Record.ClientNonce] = struct{}{}
		}

		nextKey = res.Pagination.NextKey
		if len(nextKey) == 0 {
			break
		}
	}

	suite.Require().Len(seen, 5)
}

func (suite *KeeperTestSuite) TestQueryDerivedAddresses() {
	res, err := suite.queryServer.DerivedAddresses(suite.ctx, &types.QueryDerivedAddressesRequest{
		Recipient:   suite.id.Recipient,
		ClientNonce: 9,
	})
	suite.Require().NoError(err)

	configAddr, configBump, err := types.ConfigAddress(testfactory.ProgramID)
	suite.Require().NoError(err)
	recordAddr, recordBump, err := types.MintRecordAddress(testfactory.ProgramID, suite.id.Recipient, 9)
	suite.Require().NoError(err)

	suite.Require().Equal(&types.QueryDerivedAddressesResponse{
		ConfigAddress: configAddr,
		ConfigBump:    configBump,
		RecordAddress: recordAddr,
		RecordBump:    recordBump,
	}, res)

	_, err = suite.queryServer.DerivedAddresses(suite.ctx, nil)
	suite.Require().Equal(codes.InvalidArgument, status.Code(err))
}
