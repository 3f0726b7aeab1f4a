package errors

import "errors"

// Kind is a stable, machine readable error category.
type Kind string

const (
	KindInvalidCredentials       Kind = "invalid_credentials"
	KindNotFound                 Kind = "not_found"
	KindEmailTaken               Kind = "email_taken"
	KindWeakCredential           Kind = "weak_credential"
	KindProfileCreateFailed      Kind = "profile_create_failed"
	KindAccountNotFound          Kind = "account_not_found"
	KindInvalidAmount            Kind = "invalid_amount"
	KindConcurrentUpdateConflict Kind = "concurrent_update_conflict"
	KindCodeGenerationExhausted  Kind = "code_generation_exhausted"
	KindAlreadyExists            Kind = "already_exists"
	KindReferralCodeTaken        Kind = "referral_code_taken"
	KindInternal                 Kind = "internal"
)

// Error is a domain failure carrying a kind and a human readable message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any domain error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	ErrInvalidCredentials       = newError(KindInvalidCredentials, "invalid email or password")
	ErrNotFound                 = newError(KindNotFound, "not found")
	ErrEmailTaken               = newError(KindEmailTaken, "email is already registered")
	ErrWeakCredential           = newError(KindWeakCredential, "password is too weak")
	ErrProfileCreateFailed      = newError(KindProfileCreateFailed, "failed to create account profile")
	ErrAccountNotFound          = newError(KindAccountNotFound, "account not found")
	ErrInvalidAmount            = newError(KindInvalidAmount, "amount must be positive")
	ErrConcurrentUpdateConflict = newError(KindConcurrentUpdateConflict, "account was modified concurrently")
	ErrCodeGenerationExhausted  = newError(KindCodeGenerationExhausted, "could not generate a unique referral code")
	ErrAlreadyExists            = newError(KindAlreadyExists, "already exists")
	ErrReferralCodeTaken        = newError(KindReferralCodeTaken, "referral code is already in use")
)

// Wrap attaches cause to a copy of the sentinel so errors.Is still matches the sentinel.
func Wrap(sentinel *Error, cause error) error {
	return &Error{Kind: sentinel.Kind, Message: sentinel.Message, cause: cause}
}

// KindOf reports the domain kind of err, or KindInternal for anything else.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the human readable message for err without internal causes.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
