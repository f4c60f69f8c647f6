package check

import "fmt"

// ErrorKind tags the failure modes the checker can surface externally.
// Internal precondition violations (representative-only requirements,
// decomposition ambiguity where none is permitted) are not in this list:
// they panic rather than return a CheckError, per the core's policy that
// they are implementation bugs, not user errors.
type ErrorKind string

const (
	NameUnresolved              ErrorKind = "name_unresolved"
	NoSolution                  ErrorKind = "no_solution"
	OccursCheck                 ErrorKind = "occurs_check"
	InvalidNodeDuringGeneration ErrorKind = "invalid_node_during_generation"
	InvalidNodeDuringApply      ErrorKind = "invalid_node_during_apply"
	CoerceUnconsidered          ErrorKind = "coerce_unconsidered"
)

// CheckError is the error type every externally-visible failure of
// TypeChecker.TypeCheck is reported as.
type CheckError struct {
	Kind    ErrorKind
	Message string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func errNameUnresolved(name string) *CheckError {
	return &CheckError{Kind: NameUnresolved, Message: fmt.Sprintf("failed to resolve: %s", name)}
}

func errNoSolution() *CheckError {
	return &CheckError{Kind: NoSolution, Message: "no solution"}
}

func errOccursCheck() *CheckError {
	return &CheckError{Kind: OccursCheck, Message: "infinite type: a variable occurs within its own binding"}
}

func errInvalidNodeDuringGeneration(kind string) *CheckError {
	return &CheckError{Kind: InvalidNodeDuringGeneration, Message: fmt.Sprintf("invalid node during constraint generation: %s", kind)}
}

func errInvalidNodeDuringApply(kind string) *CheckError {
	return &CheckError{Kind: InvalidNodeDuringApply, Message: fmt.Sprintf("invalid node during apply: %s", kind)}
}

func errCoerceUnconsidered(from, to string) *CheckError {
	return &CheckError{Kind: CoerceUnconsidered, Message: fmt.Sprintf("unconsidered coercion from %s to %s", from, to)}
}

// ErrorList formats several CheckErrors as one error. TypeCheck does not
// build one: it stops at the first failing statement and returns that
// statement's *CheckError.
type ErrorList []*CheckError

func (l ErrorList) Error() string {
	if len(l) == 1 {
		return l[0].Error()
	}
	msg := fmt.Sprintf("%d type errors:", len(l))
	for _, e := range l {
		msg += "\n  " + e.Error()
	}
	return msg
}
