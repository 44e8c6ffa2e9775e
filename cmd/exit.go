package cmd

import "fmt"

// ExitError carries a deliberate process exit code through cobra's error
// return. It is produced only when confirmed findings meet the fail
// threshold under --fail; no other code path may use it.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
