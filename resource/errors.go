package resource

import "fmt"

// ConfigurationError reports a resource definition that cannot work: an
// unknown association in a sort chain, a filter delegate that is not
// registered, a relationship without a target.
type ConfigurationError struct {
	Resource string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Resource == "" {
		return "configuration error: " + e.Reason
	}
	return fmt.Sprintf("resource %s: configuration error: %s", e.Resource, e.Reason)
}

func configErrorf(resource, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Resource: resource, Reason: fmt.Sprintf(format, args...)}
}
