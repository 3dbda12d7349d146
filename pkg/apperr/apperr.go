package apperr

import "errors"

// Sentinel errors shared across the service. Handlers map these onto HTTP
// status codes; lower layers wrap them with %w so errors.Is keeps working
// through the stack. None of them is ever retried automatically.
var (
	// ErrInvalidInput marks malformed or missing caller input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGateway marks a transport-level failure talking to the model
	// gateway: unreachable, timed out, or a non-success response.
	ErrGateway = errors.New("model gateway failure")

	// ErrValidation marks a gateway response that arrived but could not be
	// coerced into the expected shape. Distinct from ErrGateway: the model
	// answered, the contract did not hold.
	ErrValidation = errors.New("model response validation failed")

	// ErrForbidden marks an identity mismatch on an owned resource. The
	// message must not reveal whether the resource exists.
	ErrForbidden = errors.New("not allowed")

	ErrNotFound = errors.New("not found")

	// ErrStorage marks a persistence-layer failure.
	ErrStorage = errors.New("storage failure")
)
