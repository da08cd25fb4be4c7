package extract

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"gazetted/internal/logging"
)

// Runner lets us stub external commands in tests. Commands are always executed
// as an argument vector; captured output is never interpreted by a shell.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// NewExecRunner returns the os/exec backed Runner used in production.
func NewExecRunner() Runner {
	return execRunner{}
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	// Give the process a short grace period after cancellation before the
	// kill, so no orphans survive the adapter call.
	cmd.WaitDelay = 5 * time.Second
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	dur := time.Since(start)

	if err != nil {
		logging.Errorf("extract: exec failed cmd=%s args=%q duration_ms=%d err=%v stderr=%s",
			name, strings.Join(args, " "), dur.Milliseconds(), err, truncate(errb.String(), 8<<10))
	} else {
		logging.Debugf("extract: exec ok cmd=%s duration_ms=%d stdout_bytes=%d stderr_bytes=%d",
			name, dur.Milliseconds(), out.Len(), errb.Len())
	}

	return out.Bytes(), errb.Bytes(), err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
