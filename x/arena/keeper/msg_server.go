package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"botarena/x/arena/types"
)

// MsgServer decodes signer addresses and dispatches to the keeper.
type MsgServer struct {
	Keeper
}

func NewMsgServerImpl(k Keeper) MsgServer { return MsgServer{Keeper: k} }

func (s MsgServer) address(addr, role string) (sdk.AccAddress, error) {
	bz, err := s.addressCodec.StringToBytes(addr)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidAddress, "invalid %s address: %s", role, err)
	}
	return bz, nil
}

// zeroable decodes a non-signer address. Anything undecodable is the zero
// address, which the keeper rejects with the operation's own error.
func (s MsgServer) zeroable(addr string) sdk.AccAddress {
	bz, err := s.addressCodec.StringToBytes(addr)
	if err != nil {
		return nil
	}
	return bz
}

func (s MsgServer) CreateArena(ctx context.Context, msg *types.MsgCreateArena) (*types.MsgCreateArenaResponse, error) {
	authority, err := s.address(msg.Authority, "authority")
	if err != nil {
		return nil, err
	}
	id, err := s.Keeper.CreateArena(ctx, authority, msg.EntryFee)
	if err != nil {
		return nil, err
	}
	return &types.MsgCreateArenaResponse{ArenaID: id}, nil
}

func (s MsgServer) ToggleArena(ctx context.Context, msg *types.MsgToggleArena) (*types.MsgToggleArenaResponse, error) {
	authority, err := s.address(msg.Authority, "authority")
	if err != nil {
		return nil, err
	}
	if err := s.Keeper.ToggleArena(ctx, authority, msg.ArenaID, msg.Active); err != nil {
		return nil, err
	}
	return &types.MsgToggleArenaResponse{}, nil
}

func (s MsgServer) CreateGame(ctx context.Context, msg *types.MsgCreateGame) (*types.MsgCreateGameResponse, error) {
	creator, err := s.address(msg.Creator, "creator")
	if err != nil {
		return nil, err
	}
	id, err := s.Keeper.CreateGame(ctx, creator, msg.ArenaID)
	if err != nil {
		return nil, err
	}
	return &types.MsgCreateGameResponse{GameID: id}, nil
}

func (s MsgServer) JoinGame(ctx context.Context, msg *types.MsgJoinGame) (*types.MsgJoinGameResponse, error) {
	player, err := s.address(msg.Player, "player")
	if err != nil {
		return nil, err
	}
	count, err := s.Keeper.JoinGame(ctx, player, msg.GameID)
	if err != nil {
		return nil, err
	}
	return &types.MsgJoinGameResponse{ParticipantCount: uint32(count)}, nil
}

func (s MsgServer) CompleteGame(ctx context.Context, msg *types.MsgCompleteGame) (*types.MsgCompleteGameResponse, error) {
	authority, err := s.address(msg.Authority, "authority")
	if err != nil {
		return nil, err
	}
	winnerShare, operatorShare, err := s.Keeper.CompleteGame(ctx, authority, msg.GameID, s.zeroable(msg.Winner))
	if err != nil {
		return nil, err
	}
	return &types.MsgCompleteGameResponse{WinnerShare: winnerShare, OperatorShare: operatorShare}, nil
}

func (s MsgServer) WithdrawOperatorFees(ctx context.Context, msg *types.MsgWithdrawOperatorFees) (*types.MsgWithdrawOperatorFeesResponse, error) {
	authority, err := s.address(msg.Authority, "authority")
	if err != nil {
		return nil, err
	}
	amount, err := s.Keeper.WithdrawOperatorFees(ctx, authority)
	if err != nil {
		return nil, err
	}
	return &types.MsgWithdrawOperatorFeesResponse{Amount: amount}, nil
}
