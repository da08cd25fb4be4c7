// Package extract drives the two external extraction programs and validates
// their stdout against fixed JSON contracts.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"time"
)

// invoke launches program with args under a hard wall-clock timeout, captures
// its stdio, and returns stdout once it passes JSON and schema validation.
// Every failure mode maps onto exactly one *AdapterError kind.
func invoke(ctx context.Context, r Runner, program string, args []string, timeout time.Duration, schemaMap map[string]any) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, err := r.Run(callCtx, program, args...)
	if callCtx.Err() == context.DeadlineExceeded {
		return nil, &AdapterError{
			Program: program,
			Kind:    FailureTimeout,
			Detail:  timeout.String(),
		}
	}
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, &AdapterError{
			Program:  program,
			Kind:     FailureProcessFailed,
			ExitCode: exitCode,
			Stderr:   truncate(string(stderr), 500),
		}
	}
	if len(bytes.TrimSpace(stdout)) == 0 {
		return nil, &AdapterError{Program: program, Kind: FailureEmptyOutput}
	}

	var probe any
	if err := json.Unmarshal(stdout, &probe); err != nil {
		return nil, &AdapterError{
			Program: program,
			Kind:    FailureMalformedJSON,
			Detail:  err.Error(),
		}
	}
	if err := validateAgainstSchema(schemaMap, stdout); err != nil {
		return nil, &AdapterError{
			Program: program,
			Kind:    FailureContractViolation,
			Detail:  err.Error(),
		}
	}
	return stdout, nil
}
