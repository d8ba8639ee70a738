package domain

import (
	"errors"
	"os"
)

var (
	MessageFailedBodyRequest  = "failed to process request body"
	MessageFailedGetToken     = "failed to get token"
	MessageFailedTokenInvalid = "failed to token invalid"
	MessageSuccessLogin       = "login successful"
	MessageFailedLogin        = "failed to login"

	JwtSecret = os.Getenv("JWT_SECRET")

	ErrTokenNotFound    = errors.New("failed to token not found")
	ErrTokenInvalid     = errors.New("token is invalid")
	ErrInvalidPasscode  = errors.New("invalid passcode")
	ErrParseID          = errors.New("failed to parse id")
	ErrInvalidDaysRange = errors.New("days must be a non-negative integer")
)
