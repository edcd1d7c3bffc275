package smbstatus

import (
	"fmt"
	"strings"
)

// CommandError reports an smbstatus invocation that exited non-zero. It
// carries the captured error stream for diagnosis.
type CommandError struct {
	Stderr string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("smbstatus failed: %s", strings.TrimSpace(e.Stderr))
}
