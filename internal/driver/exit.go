package driver

import "zeron/internal/diag"

// Exit statuses, sysexits-style.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitSyntax   = 65 // lexical or syntax errors
	ExitRuntime  = 70
	ExitResolve  = 71
	ExitIOFailed = 74
)

// ExitCodeForBag classifies the errors of a check. Syntax wins over
// resolution: a file that does not parse is never resolved.
func ExitCodeForBag(bag *diag.Bag) int {
	switch {
	case bag == nil:
		return ExitOK
	case bag.HasPhase(diag.PhaseLex), bag.HasPhase(diag.PhaseSyntax):
		return ExitSyntax
	case bag.HasPhase(diag.PhaseSema):
		return ExitResolve
	case bag.HasPhase(diag.PhaseIO):
		return ExitIOFailed
	case bag.HasErrors():
		return ExitResolve
	}
	return ExitOK
}

// ExitCode classifies a whole run.
func (r *RunResult) ExitCode() int {
	if r == nil {
		return ExitOK
	}
	if code := ExitCodeForBag(r.Bag); code != ExitOK {
		return code
	}
	if r.RuntimeErr != nil {
		return ExitRuntime
	}
	return ExitOK
}
