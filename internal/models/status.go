package models

type Status string

const (
	UPDATED  Status = "updated"
	UPTODATE Status = "up to date"
	NOTFOUND Status = "not found"
	FAIL     Status = "failure"
	SKIPPED  Status = "skipped"
)

// Failed returns true if the status should be reported as a
// failure of the run. A target not found is only a warning.
func (s Status) Failed() bool {
	return s == FAIL || s == SKIPPED
}
