package auth

import "errors"

var (
	ErrInvalidAPIKey      = errors.New("invalid api key")
	ErrMissingHeader      = errors.New("missing required auth header")
	ErrMalformedTimestamp = errors.New("invalid timestamp format")
	ErrStaleTimestamp     = errors.New("request timestamp outside allowed range")
	ErrReplay             = errors.New("nonce already used")
	ErrInvalidSignature   = errors.New("invalid hmac signature")
)
