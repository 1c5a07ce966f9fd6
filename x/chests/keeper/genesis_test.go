package keeper_test

import (
	"github.com/citychests/citychests-app/test/util/testfactory"
	"github.com/citychests/citychests-app/x/chests/types"
)

func (suite *KeeperTestSuite) TestGenesisRoundTrip() {
	suite.InitConfig()
	suite.CreateRecord(1, 1)
	suite.CreateRecord(2, 5)

	ata := suite.tokenKeeper.SetVaultHolding(suite.id.Vault, suite.id.Mint, 1)
	_, err := suite.msgServer.ConfirmMint(suite.ctx, types.NewMsgConfirmMint(suite.id.Admin, suite.id.Recipient, 2, suite.id.Mint, ata))
	suite.Require().NoError(err)

	exported, err := suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().NotNil(exported.Config)
	suite.Require().Len(exported.Records, 2)
	suite.Require().NoError(exported.Validate(testfactory.ProgramID))

	suite.SetupTest()
	suite.Require().NoError(suite.keeper.InitGenesis(suite.ctx, exported))

	reexported, err := suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(exported, reexported)

	record, _, err := suite.keeper.GetMintRecord(suite.ctx, exported.Records[0].Recipient, 2)
	suite.Require().NoError(err)
	suite.Require().True(record.Minted)
}

func (suite *KeeperTestSuite) TestExportDefaultGenesis() {
	exported, err := suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(types.DefaultGenesis(), exported)

	suite.Require().NoError(suite.keeper.InitGenesis(suite.ctx, exported))
	exists, err := suite.keeper.HasConfig(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().False(exists)
}

func (suite *KeeperTestSuite) TestInitGenesisRejectsInvalidState() {
	_, bump := suite.keeper.ConfigAddress()
	record := types.NewMintRecord(suite.id.Recipient, 1, 1, 1)

	gs := types.NewGenesisState(&types.Config{Admin: suite.id.Admin, Vault: suite.id.Vault, Bump: bump}, []types.MintRecord{record, record})
	suite.Require().ErrorIs(suite.keeper.InitGenesis(suite.ctx, gs), types.ErrRecordExists)

	gs = types.NewGenesisState(nil, []types.MintRecord{record})
	suite.Require().ErrorIs(suite.keeper.InitGenesis(suite.ctx, gs), types.ErrConfigNotFound)
}

func (suite *KeeperTestSuite) TestSetMintRecord() {
	record := types.NewMintRecord(testfactory.RandomPublicKey(), 1, 3, 0)

	addr, err := suite.keeper.SetMintRecord(suite.ctx, record)
	suite.Require().NoError(err)

	got, gotAddr, err := suite.keeper.GetMintRecord(suite.ctx, record.Recipient, 3)
	suite.Require().NoError(err)
	suite.Require().Equal(addr, gotAddr)
	suite.Require().Equal(record, got)
}
