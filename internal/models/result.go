package models

import "fmt"

// Result is the outcome of reconciling a single target of a provider.
type Result struct {
	Provider Provider
	Target   string
	Status   Status
	Err      error
}

func (r Result) String() string {
	s := fmt.Sprintf("%s %s: %s", r.Provider, r.Target, r.Status)
	if r.Err != nil {
		s += ": " + r.Err.Error()
	}
	return s
}
