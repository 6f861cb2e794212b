package pattern

import "fmt"

// CompileError reports a regex that the engine rejected. Compile failures
// abort the whole registry build: a silently missing pattern would make
// every downstream count wrong.
type CompileError struct {
	Concept string
	Source  string
	Expr    string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile pattern for concept %q (%s): %v", e.Concept, e.Source, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }
