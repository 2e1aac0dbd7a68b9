package profile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrProfileRequired is returned when submitting pro details for a user who
// has not saved a basic profile yet.
var ErrProfileRequired = errors.New("a saved profile is required before joining as a pro")

// FieldErrors maps a profile field to its validation message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

// ValidationError reports the field that kept the onboarding wizard on its current step.
type ValidationError struct {
	Step    Step
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d: %s: %s", e.Step, e.Field, e.Message)
}
