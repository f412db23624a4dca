package fungeon

import "fmt"

// DuplicateComponentError is returned by Add when the entity already holds a
// component of the same kind. The World is left unchanged.
type DuplicateComponentError struct {
	Entity Entity
	Kind   string
}

func (e *DuplicateComponentError) Error() string {
	return fmt.Sprintf("fungeon: entity %d already has a %s component", e.Entity.id, e.Kind)
}

// ConfigurationError is returned when constraint parameters are malformed or
// a constraint's target chain would point back at its owner. The rejected
// add leaves the entity unaffected.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "fungeon: " + e.Msg
}

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}
