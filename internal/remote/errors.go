package remote

import (
	"errors"
	"fmt"
)

// Kind classifies a failed API call.
type Kind int

const (
	// KindNetwork covers timeouts, refused connections and other transport failures.
	KindNetwork Kind = iota + 1
	// KindServer is a 5xx response.
	KindServer
	// KindProtocol is a response that does not follow the envelope contract.
	KindProtocol
	// KindValidation is a 4xx rejection of client input.
	KindValidation
	// KindNotFound is a 404 for a specific product.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindProtocol:
		return "protocol"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Error is returned by every Client method that reaches the transport.
type Error struct {
	Kind           Kind
	Op             string
	Status         int
	Code           string
	Message        string
	RequiredFields []string
	Err            error
}

// Sentinels for errors.Is; they match any *Error of the same Kind.
var (
	ErrNetwork    = &Error{Kind: KindNetwork}
	ErrServer     = &Error{Kind: KindServer}
	ErrProtocol   = &Error{Kind: KindProtocol}
	ErrValidation = &Error{Kind: KindValidation}
	ErrNotFound   = &Error{Kind: KindNotFound}
)

// Error returns the server's message verbatim for business errors so it can
// be shown to users.
func (e *Error) Error() string {
	if (e.Kind == KindValidation || e.Kind == KindNotFound) && e.Message != "" {
		return e.Message
	}

	detail := e.Message
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s error (status %d): %s", e.Op, e.Kind, e.Status, detail)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Op, e.Kind, detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// IsUnavailable reports whether err means the API could not serve the
// request, as opposed to rejecting it.
func IsUnavailable(err error) bool {
	var re *Error
	if !errors.As(err, &re) {
		return false
	}
	switch re.Kind {
	case KindNetwork, KindServer, KindProtocol:
		return true
	}
	return false
}
