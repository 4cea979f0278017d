package models

// AccessToken holds the identity server's token response for a customer.
// Created once per orchestration run and never mutated.
type AccessToken struct {
	AccessToken           string `json:"accessToken"`
	AccessTokenExpiresIn  int    `json:"accessTokenExpiresIn"`
	RefreshToken          string `json:"refreshToken"`
	RefreshTokenExpiresIn int    `json:"refreshTokenExpiresIn"`
	TokensIssuedAt        int64  `json:"tokensIssuedAt"`
	IsGuestToken          bool   `json:"isGuestToken"`
	IdmStatusOK           bool   `json:"idmStatusOK"`
}
