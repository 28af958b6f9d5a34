package backend

import "errors"

// Error kinds surfaced by the gateway's control-plane operations.
// Steady-state Perform failures are absorbed instead (see Perform).
var (
	// ErrNotLoaded reports an operation that needs a loaded model.
	ErrNotLoaded = errors.New("no model loaded")

	// ErrNoPath reports a Reload before any successful Load.
	ErrNoPath = errors.New("no model path set")

	// ErrMethodNotFound reports a method name the model does not declare.
	ErrMethodNotFound = errors.New("method not found in model")

	// ErrAttributeNotFound reports a missing attribute getter or setter.
	ErrAttributeNotFound = errors.New("attribute not found in model")

	// ErrSchemaMissing reports an attribute without a "<name>_params"
	// type schema; such attributes are not gettable or settable.
	ErrSchemaMissing = errors.New("attribute schema not found in model")

	// ErrBadTypeTag reports a schema tag outside the recognized set.
	ErrBadTypeTag = errors.New("bad type id in attribute schema")

	// ErrSetterRejected reports a setter that returned a nonzero status
	// or failed outright.
	ErrSetterRejected = errors.New("attribute setter rejected arguments")

	// ErrArgumentCount reports a mismatch between supplied arguments and
	// the attribute's schema length.
	ErrArgumentCount = errors.New("argument count does not match attribute schema")
)
