package contract

import "errors"

// Errors.
var (
	ErrUnknownFunction  = errors.New("function not found in ABI")
	ErrArgumentCount    = errors.New("argument count mismatch")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidABI       = errors.New("invalid ABI")
	ErrEstimation       = errors.New("gas estimation failed")
	ErrSubmission       = errors.New("transaction rejected")
	ErrNoPending        = errors.New("nothing built")
	ErrNoWallet         = errors.New("no wallet to sign with")
	ErrMissingRecipient = errors.New("transfer has no recipient")
	ErrUnknownBuiltin   = errors.New("unknown built-in ABI")
)
