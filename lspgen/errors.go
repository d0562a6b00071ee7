package lspgen

import "strings"

// SchemaError reports a structural problem with the input metaModel: a
// required field missing, or a type expression shape RenderType does not
// understand. A reference to an undefined name is not reported as a
// SchemaError: resolveName gives it a freshly sanitized identifier instead.
// Path identifies where in the schema the problem was found (e.g.
// "structures[2]" or "method[textDocument/rename].params").
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	return e.Path + ": " + e.Message
}

// Errors aggregates the SchemaErrors a single parse or render pass turns
// up, rather than failing on the first one — a run commonly has more than
// one structural problem (two structures each missing a required field,
// say) and reporting all of them at once saves a run-fix-rerun cycle per
// error. Mirrors the accumulate-then-report shape of a multi-error
// aggregator without requiring a pass-wide mutable singleton: callers
// create one Errors value per pass and thread it through explicitly.
type Errors struct {
	errs []*SchemaError
}

// Add appends a SchemaError to the collection.
func (e *Errors) Add(path, message string) {
	e.errs = append(e.errs, &SchemaError{Path: path, Message: message})
}

// Empty reports whether no errors were added.
func (e *Errors) Empty() bool {
	return len(e.errs) == 0
}

// Errs returns the collected errors in the order they were added.
func (e *Errors) Errs() []*SchemaError {
	return e.errs
}

// Error implements the error interface, joining every collected error onto
// its own line.
func (e *Errors) Error() string {
	lines := make([]string, len(e.errs))
	for i, err := range e.errs {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

// ErrOrNil returns e as an error if it is non-empty, or nil otherwise —
// the usual pattern for returning an aggregate from a function whose
// caller expects a plain error.
func (e *Errors) ErrOrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}
