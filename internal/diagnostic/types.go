package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Report holds everything a contract scan found worth telling the user.
type Report struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single finding about one declaration.
type Diagnostic struct {
	// Severity of the finding.
	Severity Severity
	// Contract is the qualified name of the declaration this relates to.
	Contract string
	// Message is the human-readable description.
	Message string
}

// Severity is the level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError records a finding that must stop generation.
func (r *Report) AddError(contract, message string) {
	r.Errors = append(r.Errors, Diagnostic{
		Severity: SeverityError,
		Contract: contract,
		Message:  message,
	})
}

// AddWarning records a finding the user should see but that does not
// stop generation.
func (r *Report) AddWarning(contract, message string) {
	r.Warnings = append(r.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Contract: contract,
		Message:  message,
	})
}

// AddInfo records an informational finding.
func (r *Report) AddInfo(contract, message string) {
	r.Infos = append(r.Infos, Diagnostic{
		Severity: SeverityInfo,
		Contract: contract,
		Message:  message,
	})
}

// HasErrors returns true if any error-level finding was recorded.
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// Err returns all error-level findings combined into one error, or nil.
func (r *Report) Err() error {
	if !r.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(r.Errors))
	for _, d := range r.Errors {
		parts = append(parts, d.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// All returns every finding ordered by descending severity.
func (r *Report) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(r.Errors)+len(r.Warnings)+len(r.Infos))
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	out = append(out, r.Infos...)

	return out
}

// String returns a formatted "severity: [contract] message" line.
func (d Diagnostic) String() string {
	if d.Contract == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}

	return fmt.Sprintf("%s: [%s] %s", d.Severity, d.Contract, d.Message)
}
