package diagnostic

import (
	"fmt"
	"strings"

	"github.com/Oxidefier/oxidefier/internal/yul"
)

// Severity represents the severity level of a diagnostic message
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Diagnostic is a single translation error, warning or info message
type Diagnostic struct {
	Severity Severity
	Message  string
	Src      yul.Location
	Scope    string // object or object::function the message is about
	Hint     string // optional suggestion
}

// Diagnostics manages a collection of diagnostic messages
type Diagnostics struct {
	items []Diagnostic
	scope string
}

// New creates a new empty Diagnostics collection
func New() *Diagnostics {
	return &Diagnostics{
		items: make([]Diagnostic, 0),
	}
}

// SetScope sets the scope recorded on every diagnostic added afterwards and
// returns the previous one.
func (d *Diagnostics) SetScope(scope string) string {
	prev := d.scope
	d.scope = scope
	return prev
}

func (d *Diagnostics) add(sev Severity, src yul.Location, msg, hint string) {
	d.items = append(d.items, Diagnostic{
		Severity: sev,
		Message:  msg,
		Src:      src,
		Scope:    d.scope,
		Hint:     hint,
	})
}

// Errorf adds an error diagnostic with formatted message
func (d *Diagnostics) Errorf(src yul.Location, format string, args ...interface{}) {
	d.add(Error, src, fmt.Sprintf(format, args...), "")
}

// Warningf adds a warning diagnostic with formatted message
func (d *Diagnostics) Warningf(src yul.Location, format string, args ...interface{}) {
	d.add(Warning, src, fmt.Sprintf(format, args...), "")
}

// Infof adds an info diagnostic with formatted message
func (d *Diagnostics) Infof(src yul.Location, format string, args ...interface{}) {
	d.add(Info, src, fmt.Sprintf(format, args...), "")
}

// WarningWithHint adds a warning diagnostic with an optional hint
func (d *Diagnostics) WarningWithHint(src yul.Location, msg, hint string) {
	d.add(Warning, src, msg, hint)
}

// HasErrors returns true if there are any error-level diagnostics
func (d *Diagnostics) HasErrors() bool {
	for _, item := range d.items {
		if item.Severity == Error {
			return true
		}
	}
	return false
}

// Filter returns the diagnostics of one severity
func (d *Diagnostics) Filter(sev Severity) []Diagnostic {
	out := make([]Diagnostic, 0)
	for _, item := range d.items {
		if item.Severity == sev {
			out = append(out, item)
		}
	}
	return out
}

// Errors returns only the error-level diagnostics
func (d *Diagnostics) Errors() []Diagnostic {
	return d.Filter(Error)
}

// Warnings returns only the warning-level diagnostics
func (d *Diagnostics) Warnings() []Diagnostic {
	return d.Filter(Warning)
}

// All returns all diagnostics regardless of severity
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Count returns the total number of diagnostics
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// Merge appends every diagnostic of other
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other != nil {
		d.items = append(d.items, other.items...)
	}
}

// Format returns human-readable messages, one per line.
// Output format:
//
//	warning[counter.json:120:14:0 counter_deployed::fun_f]: call cycle: f -> g -> f
//	  hint: ...
func (d *Diagnostics) Format(filename string) string {
	if len(d.items) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, item := range d.items {
		where := filename
		if item.Src.Valid {
			where += ":" + item.Src.String()
		}
		if item.Scope != "" {
			where += " " + item.Scope
		}

		builder.WriteString(fmt.Sprintf("%s[%s]: %s", item.Severity, where, item.Message))

		if item.Hint != "" {
			builder.WriteString(fmt.Sprintf("\n  hint: %s", item.Hint))
		}

		if i < len(d.items)-1 {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}
