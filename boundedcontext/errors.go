package boundedcontext

import "github.com/pkg/errors"

var (
	// ErrInvalidConfiguration is returned or raised when a declaration can never produce a valid bounded context
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrDuplicateRegistration is returned when a bounded context name is registered twice
	ErrDuplicateRegistration = errors.New("duplicate registration")
	// ErrUnresolvedDependencies is returned when the dependency resolver can't supply declared types
	ErrUnresolvedDependencies = errors.New("unresolved dependencies")
)
