package registration

import (
	"github.com/go-foreman/cqrs/boundedcontext"
	"github.com/pkg/errors"
)

var (
	ErrInvalidConfiguration   = boundedcontext.ErrInvalidConfiguration
	ErrDuplicateRegistration  = boundedcontext.ErrDuplicateRegistration
	ErrUnresolvedDependencies = boundedcontext.ErrUnresolvedDependencies
)

// invalidConfiguration builds the value builders panic with on misuse
func invalidConfiguration(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidConfiguration, format, args...)
}
