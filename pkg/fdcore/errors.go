// Package fdcore implements the reversible-memory, domain, propagation
// and search core of a finite-domain constraint solver. It deliberately
// excludes the propagator catalogue (alldifferent, cumulative, table, ...),
// model-building facades, and format parsers: those are external
// collaborators built on top of this package.
package fdcore

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Contradiction is raised by any domain mutator whose effect would empty a
// variable's domain. It is expected control flow: the propagation engine
// and search loop catch it at their boundary and never let it surface to
// user code during normal search.
type Contradiction struct {
	Var    *IntVar
	Reason Reason
	msg    string
}

func (c *Contradiction) Error() string {
	if c.Var != nil {
		return fmt.Sprintf("fdcore: contradiction on %s: %s", c.Var.name, c.msg)
	}
	return fmt.Sprintf("fdcore: contradiction: %s", c.msg)
}

func wipeout(v *IntVar, reason Reason, format string, args ...interface{}) *Contradiction {
	return &Contradiction{Var: v, Reason: reason, msg: fmt.Sprintf(format, args...)}
}

// IsContradiction reports whether err is (or wraps) a *Contradiction.
func IsContradiction(err error) bool {
	var c *Contradiction
	return errors.As(err, &c)
}

// ProgrammingError signals API misuse: posting a reified propagator twice,
// unposting an unknown constraint, mixing objects from two models. It is
// not recoverable and is never caught internally.
type ProgrammingError struct {
	Op  string
	msg string
}

func (e *ProgrammingError) Error() string {
	return fmt.Sprintf("fdcore: programming error in %s: %s", e.Op, e.msg)
}

func programmingErrorf(op, format string, args ...interface{}) error {
	return errors.WithStack(&ProgrammingError{Op: op, msg: fmt.Sprintf(format, args...)})
}

// ResourceError signals a capacity limit in the trail, the propagation
// queue, or another internal allocation that failed.
type ResourceError struct {
	Op  string
	msg string
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("fdcore: resource error in %s: %s", e.Op, e.msg)
}

func resourceErrorf(op, format string, args ...interface{}) error {
	return errors.WithStack(&ResourceError{Op: op, msg: fmt.Sprintf(format, args...)})
}

// newValidationErrors aggregates several programming errors discovered
// together, e.g. while validating a model before a search run.
func newValidationErrors() *multierror.Error {
	return &multierror.Error{}
}

func multierrorAppend(errs *multierror.Error, err error) *multierror.Error {
	return multierror.Append(errs, err)
}
