package types

import math "cosmossdk.io/math"

type MsgDeposit struct {
	Depositor string   `json:"depositor"`
	Amount    math.Int `json:"amount"`
}

type MsgDepositResponse struct{}

type MsgSetTrustedCaller struct {
	Authority     string `json:"authority"`
	TrustedCaller string `json:"trusted_caller"`
}

type MsgSetTrustedCallerResponse struct{}

// MsgDistributePrize pays Amount to Winner. GameRef is carried into the emitted
// event only; repeating it pays again.
type MsgDistributePrize struct {
	Caller  string   `json:"caller"`
	Winner  string   `json:"winner"`
	Amount  math.Int `json:"amount"`
	GameRef string   `json:"game_ref"`
}

type MsgDistributePrizeResponse struct{}

type MsgEmergencyWithdraw struct {
	Authority string `json:"authority"`
}

type MsgEmergencyWithdrawResponse struct {
	Amount math.Int `json:"amount"`
}

type MsgEmergencyWithdrawToken struct {
	Authority string `json:"authority"`
	Denom     string `json:"denom"`
}

type MsgEmergencyWithdrawTokenResponse struct {
	Amount math.Int `json:"amount"`
}
