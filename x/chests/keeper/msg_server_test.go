package keeper_test

import (
	abci "github.com/cometbft/cometbft/abci/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gagliardetto/solana-go"

	"github.com/citychests/citychests-app/test/util/testfactory"
	"github.com/citychests/citychests-app/x/chests/types"
)

func (suite *KeeperTestSuite) TestInitializeConfig() {
	res, err := suite.msgServer.InitializeConfig(suite.ctx, types.NewMsgInitializeConfig(suite.id.Admin, suite.id.Vault))
	suite.Require().NoError(err)

	expAddr, expBump := suite.keeper.ConfigAddress()
	suite.Require().Equal(expAddr, res.Address)

	config, err := suite.keeper.GetConfig(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(types.Config{Admin: suite.id.Admin, Vault: suite.id.Vault, Bump: expBump}, config)
}

func (suite *KeeperTestSuite) TestInitializeConfigTwice() {
	suite.InitConfig()

	// a second payer must not be able to take over the admin role
	intruder := testfactory.RandomIdentity()
	_, err := suite.msgServer.InitializeConfig(suite.ctx, types.NewMsgInitializeConfig(intruder.Admin, intruder.Vault))
	suite.Require().ErrorIs(err, types.ErrConfigExists)

	config, err := suite.keeper.GetConfig(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(suite.id.Admin, config.Admin)
	suite.Require().Equal(suite.id.Vault, config.Vault)
}

func (suite *KeeperTestSuite) TestCreateMintRecord() {
	var msg *types.MsgCreateMintRecord

	testCases := []struct {
		name      string
		setupTest func()
		expError  error
	}{
		{
			name: "success",
			setupTest: func() {
				suite.InitConfig()
				msg = types.NewMsgCreateMintRecord(suite.id.Admin, suite.id.Recipient, 3, 7)
			},
			expError: nil,
		},
		{
			name: "success with max rarity and nonce",
			setupTest: func() {
				suite.InitConfig()
				msg = types.NewMsgCreateMintRecord(suite.id.Admin, suite.id.Recipient, 255, ^uint64(0))
			},
			expError: nil,
		},
		{
			name: "config not initialized",
			setupTest: func() {
				msg = types.NewMsgCreateMintRecord(suite.id.Admin, suite.id.Recipient, 3, 7)
			},
			expError: types.ErrConfigNotFound,
		},
		{
			name: "caller is not the admin",
			setupTest: func() {
				suite.InitConfig()
				msg = types.NewMsgCreateMintRecord(testfactory.RandomPublicKey(), suite.id.Recipient, 3, 7)
			},
			expError: types.ErrUnauthorized,
		},
		{
			name: "vault is not the admin",
			setupTest: func() {
				suite.InitConfig()
				msg = types.NewMsgCreateMintRecord(suite.id.Vault, suite.id.Recipient, 3, 7)
			},
			expError: types.ErrUnauthorized,
		},
		{
			name: "record already exists",
			setupTest: func() {
				suite.InitConfig()
				suite.CreateRecord(7, 1)
				msg = types.NewMsgCreateMintRecord(suite.id.Admin, suite.id.Recipient, 3, 7)
			},
			expError: types.ErrRecordExists,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset state

			tc.setupTest()
			suite.ctx = suite.ctx.WithEventManager(sdk.NewEventManager())

			res, err := suite.msgServer.CreateMintRecord(suite.ctx, msg)

			if tc.expError != nil {
				suite.Require().ErrorIs(err, tc.expError)
				suite.Require().Nil(res)
				suite.Require().Empty(suite.ctx.EventManager().Events())
				return
			}

			suite.Require().NoError(err)
			expAddr, _, err := suite.keeper.MintRecordAddress(msg.Recipient, msg.ClientNonce)
			suite.Require().NoError(err)
			suite.Require().Equal(expAddr, res.Address)

			record, addr, err := suite.keeper.GetMintRecord(suite.ctx, msg.Recipient, msg.ClientNonce)
			suite.Require().NoError(err)
			suite.Require().Equal(expAddr, addr)
			suite.Require().Equal(types.NewMintRecord(msg.Recipient, msg.Rarity, msg.ClientNonce, blockTime.Unix()), record)

			events := suite.ctx.EventManager().Events()
			suite.Require().Len(events, 1)
			suite.Require().Equal(types.NewMintRecordCreatedEvent(msg.Recipient, msg.Rarity, msg.ClientNonce), events[0])
		})
	}
}

func (suite *KeeperTestSuite) TestCreateMintRecordUnauthorizedLeavesNoRecord() {
	suite.InitConfig()

	nonAdmin := testfactory.RandomPublicKey()
	_, err := suite.msgServer.CreateMintRecord(suite.ctx, types.NewMsgCreateMintRecord(nonAdmin, suite.id.Recipient, 3, 7))
	suite.Require().ErrorIs(err, types.ErrUnauthorized)

	_, _, err = suite.keeper.GetMintRecord(suite.ctx, suite.id.Recipient, 7)
	suite.Require().ErrorIs(err, types.ErrRecordNotFound)
}

func (suite *KeeperTestSuite) TestCreateMintRecordIndependentKeys() {
	suite.InitConfig()
	other := testfactory.RandomPublicKey()

	addrs := map[solana.PublicKey]struct{}{
		suite.CreateRecord(1, 1): {},
		suite.CreateRecord(2, 1): {},
	}
	res, err := suite.msgServer.CreateMintRecord(suite.ctx, types.NewMsgCreateMintRecord(suite.id.Admin, other, 1, 1))
	suite.Require().NoError(err)
	addrs[res.Address] = struct{}{}

	suite.Require().Len(addrs, 3)
}

func (suite *KeeperTestSuite) TestConfirmMint() {
	var (
		msg    *types.MsgConfirmMint
		other  solana.PublicKey
		nonce  = uint64(7)
		rarity = uint8(3)
	)

	testCases := []struct {
		name      string
		setupTest func()
		expError  error
	}{
		{
			name: "success",
			setupTest: func() {
				ata := suite.tokenKeeper.SetVaultHolding(suite.id.Vault, suite.id.Mint, 1)
				msg = types.NewMsgConfirmMint(suite.id.Admin, suite.id.Recipient, nonce, suite.id.Mint, ata)
			},
			expError: nil,
		},
		{
			name: "caller is not the admin",
			setupTest: func() {
				ata := suite.tokenKeeper.SetVaultHolding(suite.id.Vault, suite.id.Mint, 1)
				msg = types.NewMsgConfirmMint(other, suite.id.Recipient, nonce, suite.id.Mint, ata)
			},
			expError: types.ErrUnauthorized,
		},
		{
			name: "token account owned by someone else",
			setupTest: func() {
				ata := suite.tokenKeeper.SetVaultHolding(other, suite.id.Mint, 1)
				msg = types.NewMsgConfirmMint(suite.id.Admin, suite.id.Recipient, nonce, suite.id.Mint, ata)
			},
			expError: types.ErrWrongVaultOwner,
		},
		{
			name: "token account holds another mint",
			setupTest: func() {
				ata := suite.tokenKeeper.SetVaultHolding(suite.id.Vault, other, 1)
				msg = types.NewMsgConfirmMint(suite.id.Admin, suite.id.Recipient, nonce, suite.id.Mint, ata)
			},
			expError: types.ErrWrongMint,
		},
		{
			name: "token account is empty",
			setupTest: func() {
				ata := suite.tokenKeeper.SetVaultHolding(suite.id.Vault, suite.id.Mint, 0)
				msg = types.NewMsgConfirmMint(suite.id.Admin, suite.id.Recipient, nonce, suite.id.Mint, ata)
			},
			expError: types.ErrWrongAmount,
		},
		{
			name: "token account holds more than one unit",
			setupTest: func() {
				ata := suite.tokenKeeper.SetVaultHolding(suite.id.Vault, suite.id.Mint, 2)
				msg = types.NewMsgConfirmMint(suite.id.Admin, suite.id.Recipient, nonce, suite.id.Mint, ata)
			},
			expError: types.ErrWrongAmount,
		},
		{
			name: "token account does not exist",
			setupTest: func() {
				msg = types.NewMsgConfirmMint(suite.id.Admin, suite.id.Recipient, nonce, suite.id.Mint, other)
			},
			expError: types.ErrTokenAccountNotFound,
		},
		{
			name: "record does not exist",
			setupTest: func() {
				ata := suite.tokenKeeper.SetVaultHolding(suite.id.Vault, suite.id.Mint, 1)
				msg = types.NewMsgConfirmMint(suite.id.Admin, suite.id.Recipient, nonce+1, suite.id.Mint, ata)
			},
			expError: types.ErrRecordNotFound,
		},
		{
			name: "record already confirmed",
			setupTest: func() {
				ata := suite.tokenKeeper.SetVaultHolding(suite.id.Vault, suite.id.Mint, 1)
				_, err := suite.msgServer.ConfirmMint(suite.ctx, types.NewMsgConfirmMint(suite.id.Admin, suite.id.Recipient, nonce, suite.id.Mint, ata))
				suite.Require().NoError(err)

				second := suite.tokenKeeper.SetVaultHolding(suite.id.Vault, other, 1)
				msg = types.NewMsgConfirmMint(suite.id.Admin, suite.id.Recipient, nonce, other, second)
			},
			expError: types.ErrAlreadyConfirmed,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset state
			other = testfactory.RandomPublicKey()

			suite.InitConfig()
			suite.CreateRecord(nonce, rarity)
			tc.setupTest()

			before, _, err := suite.keeper.GetMintRecord(suite.ctx, suite.id.Recipient, nonce)
			suite.Require().NoError(err)
			suite.ctx = suite.ctx.WithEventManager(sdk.NewEventManager())

			res, err := suite.msgServer.ConfirmMint(suite.ctx, msg)

			if tc.expError != nil {
				suite.Require().ErrorIs(err, tc.expError)
				suite.Require().Nil(res)
				suite.Require().Empty(suite.ctx.EventManager().Events())

				after, _, err := suite.keeper.GetMintRecord(suite.ctx, suite.id.Recipient, nonce)
				suite.Require().NoError(err)
				suite.Require().Equal(before, after, "a rejected confirmation must not modify the record")
				return
			}

			suite.Require().NoError(err)
			suite.Require().NotNil(res)

			record, _, err := suite.keeper.GetMintRecord(suite.ctx, suite.id.Recipient, nonce)
			suite.Require().NoError(err)
			suite.Require().True(record.Minted)
			suite.Require().Equal(suite.id.Mint, record.Mint)
			suite.Require().Equal(rarity, record.Rarity)
			suite.Require().Equal(before.CreatedAt, record.CreatedAt)

			events := suite.ctx.EventManager().Events()
			suite.Require().Len(events, 1)
			suite.Require().Equal(types.NewMintConfirmedEvent(suite.id.Recipient, suite.id.Mint, nonce), events[0])
		})
	}
}

func (suite *KeeperTestSuite) TestConfirmMintWithoutConfig() {
	ata := suite.tokenKeeper.SetVaultHolding(suite.id.Vault, suite.id.Mint, 1)

	_, err := suite.msgServer.ConfirmMint(suite.ctx, types.NewMsgConfirmMint(suite.id.Admin, suite.id.Recipient, 1, suite.id.Mint, ata))
	suite.Require().ErrorIs(err, types.ErrConfigNotFound)
}

// TestMintLifecycle walks a record from creation to confirmation the way an
// operator drives it.
func (suite *KeeperTestSuite) TestMintLifecycle() {
	suite.InitConfig()
	suite.CreateRecord(7, 3)

	record, _, err := suite.keeper.GetMintRecord(suite.ctx, suite.id.Recipient, 7)
	suite.Require().NoError(err)
	suite.Require().False(record.Minted)
	suite.Require().True(record.Mint.IsZero())
	suite.Require().Equal(uint8(3), record.Rarity)

	ata := suite.tokenKeeper.SetVaultHolding(suite.id.Vault, suite.id.Mint, 1)
	_, err = suite.msgServer.ConfirmMint(suite.ctx, types.NewMsgConfirmMint(suite.id.Admin, suite.id.Recipient, 7, suite.id.Mint, ata))
	suite.Require().NoError(err)

	record, _, err = suite.keeper.GetMintRecord(suite.ctx, suite.id.Recipient, 7)
	suite.Require().NoError(err)
	suite.Require().True(record.Minted)
	suite.Require().Equal(suite.id.Mint, record.Mint)

	var confirmed []abci.Event
	for _, event := range suite.ctx.EventManager().ABCIEvents() {
		if event.Type == types.EventTypeMintConfirmed {
			confirmed = append(confirmed, event)
		}
	}
	suite.Require().Len(confirmed, 1)
	suite.Require().Equal([]abci.EventAttribute{
		{Key: types.AttributeKeyRecipient, Value: suite.id.Recipient.String()},
		{Key: types.AttributeKeyMint, Value: suite.id.Mint.String()},
		{Key: types.AttributeKeyClientNonce, Value: "7"},
	}, confirmed[0].Attributes)
}
