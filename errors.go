package arksdk

import (
	"github.com/pkg/errors"

	"github.com/ArkProjectNFTs/ark-project-sub001/chain"
)

const (
	docsBase   = "https://docs.arkproject.dev/sdk/core"
	docsConfig = docsBase + "/config"
	docsOrders = docsBase + "/orders"
	docsFees   = docsBase + "/fees"
)

var (
	// ErrInvalidParam represents an invalid parameter error
	ErrInvalidParam = errors.New("invalid parameter")

	// ErrInvalidFeesRatio is returned when a fee numerator exceeds its denominator.
	ErrInvalidFeesRatio = errors.New("fees numerator must be less than or equal to denominator")

	ErrUnknownNetwork  = errors.New("unknown network")
	ErrMissingExecutor = errors.New("missing executor contract address")
	ErrMissingContract = errors.New("missing contract address")

	// ErrNoABI and ErrEntrypointNotFound come from ABI resolution.
	ErrNoABI              = chain.ErrNoABI
	ErrEntrypointNotFound = chain.ErrEntrypointNotFound
)

// ErrorKind classifies SDK errors.
type ErrorKind int

const (
	ErrKindConfig ErrorKind = iota + 1
	ErrKindABI
	ErrKindValidation
	ErrKindTransaction
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindConfig:
		return "config"
	case ErrKindABI:
		return "abi"
	case ErrKindValidation:
		return "validation"
	case ErrKindTransaction:
		return "transaction"
	default:
		return "unknown"
	}
}

// Error is returned by every Client operation.
type Error struct {
	Kind    ErrorKind
	Message string
	DocsURL string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.DocsURL != "" {
		msg += " (see " + e.DocsURL + ")"
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind ErrorKind, message, docsURL string, cause error) *Error {
	return &Error{Kind: kind, Message: message, DocsURL: docsURL, Cause: cause}
}

func invalidParam(message string) *Error {
	return newError(ErrKindValidation, message, docsOrders, ErrInvalidParam)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// remoteError classifies a failure returned by a network call.
func remoteError(message string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, chain.ErrNoABI) || errors.Is(err, chain.ErrEntrypointNotFound) {
		return newError(ErrKindABI, message, "", err)
	}
	return newError(ErrKindTransaction, message, "", err)
}
