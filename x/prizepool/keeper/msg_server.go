package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"botarena/x/prizepool/types"
)

type MsgServer struct {
	Keeper
}

func NewMsgServerImpl(k Keeper) MsgServer { return MsgServer{Keeper: k} }

func (s MsgServer) signer(addr, role string) (sdk.AccAddress, error) {
	bz, err := s.addressCodec.StringToBytes(addr)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidAddress, "invalid %s address: %s", role, err)
	}
	return bz, nil
}

// zeroable decodes a non-signer address. Anything undecodable is the zero
// address and is rejected by the keeper with the operation's own error.
func (s MsgServer) zeroable(addr string) sdk.AccAddress {
	bz, err := s.addressCodec.StringToBytes(addr)
	if err != nil {
		return nil
	}
	return bz
}

func (s MsgServer) Deposit(ctx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	depositor, err := s.signer(msg.Depositor, "depositor")
	if err != nil {
		return nil, err
	}
	if err := s.Keeper.Deposit(ctx, depositor, msg.Amount); err != nil {
		return nil, err
	}
	return &types.MsgDepositResponse{}, nil
}

func (s MsgServer) SetTrustedCaller(ctx context.Context, msg *types.MsgSetTrustedCaller) (*types.MsgSetTrustedCallerResponse, error) {
	authority, err := s.signer(msg.Authority, "authority")
	if err != nil {
		return nil, err
	}
	if err := s.Keeper.SetTrustedCaller(ctx, authority, s.zeroable(msg.TrustedCaller)); err != nil {
		return nil, err
	}
	return &types.MsgSetTrustedCallerResponse{}, nil
}

func (s MsgServer) DistributePrize(ctx context.Context, msg *types.MsgDistributePrize) (*types.MsgDistributePrizeResponse, error) {
	caller, err := s.signer(msg.Caller, "caller")
	if err != nil {
		return nil, err
	}
	if err := s.Keeper.DistributePrize(ctx, caller, s.zeroable(msg.Winner), msg.Amount, msg.GameRef); err != nil {
		return nil, err
	}
	return &types.MsgDistributePrizeResponse{}, nil
}

func (s MsgServer) EmergencyWithdraw(ctx context.Context, msg *types.MsgEmergencyWithdraw) (*types.MsgEmergencyWithdrawResponse, error) {
	authority, err := s.signer(msg.Authority, "authority")
	if err != nil {
		return nil, err
	}
	amount, err := s.Keeper.EmergencyWithdraw(ctx, authority)
	if err != nil {
		return nil, err
	}
	return &types.MsgEmergencyWithdrawResponse{Amount: amount}, nil
}

func (s MsgServer) EmergencyWithdrawToken(ctx context.Context, msg *types.MsgEmergencyWithdrawToken) (*types.MsgEmergencyWithdrawTokenResponse, error) {
	authority, err := s.signer(msg.Authority, "authority")
	if err != nil {
		return nil, err
	}
	amount, err := s.Keeper.EmergencyWithdrawToken(ctx, authority, msg.Denom)
	if err != nil {
		return nil, err
	}
	return &types.MsgEmergencyWithdrawTokenResponse{Amount: amount}, nil
}
