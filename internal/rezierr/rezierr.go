// Package rezierr defines the fatal and recoverable error kinds that the
// render pipeline can produce, per the error handling design in spec.md §7.
package rezierr

import "github.com/pkg/errors"

// Kind identifies one of the error categories of §7. It is compared with
// errors.Is, never by matching an error string.
type Kind int

const (
	_ Kind = iota
	ProtocolDecode
	PropValidation
	DuplicateID
	HookOrderMismatch
	UpdateDuringRender
	DepthExceeded
	LayoutImpossible
	BackendWrite
	BackendAckTimeout
)

func (k Kind) String() string {
	switch k {
	case ProtocolDecode:
		return "protocol_decode"
	case PropValidation:
		return "prop_validation"
	case DuplicateID:
		return "duplicate_id"
	case HookOrderMismatch:
		return "hook_order_mismatch"
	case UpdateDuringRender:
		return "update_during_render"
	case DepthExceeded:
		return "depth_exceeded"
	case LayoutImpossible:
		return "layout_impossible"
	case BackendWrite:
		return "backend_write"
	case BackendAckTimeout:
		return "backend_ack_timeout"
	default:
		return "unknown"
	}
}

// Recoverable reports whether an error of this kind leaves the presented
// frame undisturbed and is retried on the next frame, per §7's policy
// column.
func (k Kind) Recoverable() bool {
	return k == BackendWrite || k == BackendAckTimeout
}

// Error is a typed error carrying a Kind, the path to the offending VNode
// (when applicable), and a wrapped cause.
type Error struct {
	Kind    Kind
	Path    string
	cause   error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return e.Kind.String() + " at " + e.Path + ": " + e.cause.Error()
	}
	return e.Kind.String() + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// Is allows errors.Is(err, rezierr.KindOf(rezierr.ProtocolDecode)) style
// checks against a Kind wrapped by KindOf.
func (e *Error) Is(target error) bool {
	if k, ok := target.(interface{ rezierrKind() Kind }); ok {
		return e.Kind == k.rezierrKind()
	}
	return false
}

// New builds a typed Error, wrapping cause with a stack trace via
// pkg/errors so the first log line carries a useful trace.
func New(kind Kind, path string, cause error) *Error {
	return &Error{Kind: kind, Path: path, cause: errors.WithStack(cause)}
}

// Newf builds a typed Error from a format string.
func Newf(kind Kind, path, format string, args ...interface{}) *Error {
	return New(kind, path, errors.Errorf(format, args...))
}

// kindSentinel lets callers write errors.Is(err, rezierr.KindOf(ProtocolDecode)).
type kindSentinel Kind

func (k kindSentinel) Error() string       { return Kind(k).String() }
func (k kindSentinel) rezierrKind() Kind { return Kind(k) }

// KindOf returns a sentinel error usable with errors.Is to test an error's
// Kind without type-asserting to *Error directly.
func KindOf(k Kind) error { return kindSentinel(k) }
