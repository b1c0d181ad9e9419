package domain

import "fmt"

// ErrorKind classifies an error for transport mapping.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindBusinessRule
	KindUnsupported
)

// Error is an intentional, caller-facing failure. Its Message is safe to
// return to clients verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation builds a validation error with the given message.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Authentication errors
var (
	ErrInvalidCredentials = &Error{Kind: KindUnauthenticated, Message: "Invalid email or password"}
	ErrMissingToken       = &Error{Kind: KindUnauthenticated, Message: "No token provided"}
	ErrMalformedToken     = &Error{Kind: KindUnauthenticated, Message: "Invalid token format"}
	ErrInvalidToken       = &Error{Kind: KindUnauthenticated, Message: "Invalid token"}
	ErrExpiredToken       = &Error{Kind: KindUnauthenticated, Message: "Token expired"}
	ErrAccountGone        = &Error{Kind: KindUnauthenticated, Message: "User not found"}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: "Insufficient permissions"}
)

// Account errors
var (
	ErrEmailTaken           = &Error{Kind: KindConflict, Message: "User already exists with this email"}
	ErrUserNotFound         = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrProfileUnsupported   = &Error{Kind: KindUnsupported, Message: "Profile updates not supported for this role"}
	ErrDashboardUnsupported = &Error{Kind: KindUnsupported, Message: "Dashboard data only available for users"}
)

// Ledger errors
var (
	ErrRewardNotFound     = &Error{Kind: KindNotFound, Message: "Reward not found"}
	ErrInsufficientPoints = &Error{Kind: KindBusinessRule, Message: "Insufficient points"}
	ErrOutOfStock         = &Error{Kind: KindBusinessRule, Message: "Reward out of stock"}
)

// Tournament errors
var (
	ErrTournamentNotFound      = &Error{Kind: KindNotFound, Message: "Tournament not found"}
	ErrRegistrationClosed      = &Error{Kind: KindBusinessRule, Message: "Tournament registration is closed"}
	ErrAlreadyRegistered       = &Error{Kind: KindBusinessRule, Message: "Already registered for this tournament"}
	ErrTournamentFull          = &Error{Kind: KindBusinessRule, Message: "Tournament is full"}
	ErrInvalidTournamentStatus = &Error{Kind: KindValidation, Message: "Invalid status"}
)

// Game errors
var (
	ErrGameNotFound      = &Error{Kind: KindNotFound, Message: "Game not found"}
	ErrInvalidGameStatus = &Error{Kind: KindValidation, Message: "Invalid status"}
)
