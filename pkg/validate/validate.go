// Package validate checks the vars directory before a build and the scoping
// of every resolved device after it.
package validate

import (
	"github.com/newtron-network/fabricgen/pkg/util"
)

// Outcome is the verdict of one check.
type Outcome int

const (
	Pass Outcome = iota
	Fail
)

func (o Outcome) String() string {
	if o == Pass {
		return "pass"
	}
	return "fail"
}

// Result is the verdict for one input file. Findings is only populated when
// Outcome is Fail.
type Result struct {
	File     string
	Outcome  Outcome
	Findings []string
}

// Err returns nil for Pass, otherwise a *util.ValidationError carrying every
// finding.
func (r Result) Err() error {
	switch r.Outcome {
	case Pass:
		return nil
	default:
		return &util.ValidationError{Errors: r.Findings}
	}
}

func result(file string, v *util.ValidationBuilder) Result {
	if !v.HasErrors() {
		return Result{File: file, Outcome: Pass}
	}
	return Result{File: file, Outcome: Fail, Findings: v.Messages()}
}

// Failed returns the failing results.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Outcome == Fail {
			out = append(out, r)
		}
	}
	return out
}
