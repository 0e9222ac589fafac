package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"time"
)

// Serving mirrors the payload the parent process expects
type Serving struct {
	Date   string          `json:"date"`
	Food   string          `json:"food"`
	Amount json.RawMessage `json:"amount"`
}

// RunResult captures one invocation of the binary
type RunResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Same date check the parent process applies to every serving
var validDate = regexp.MustCompile(`^([0-9]{4})-(0[1-9]|1[0-2]|[1-9])-([1-9]|0[1-9]|[1-2]\d|3[0-1])$`)

// runBinary executes the binary with args and extra environment variables
func runBinary(binary string, env []string, args ...string) (*RunResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), parentTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := &RunResult{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		return nil, fmt.Errorf("failed to start %s: %w", binary, err)
	}

	if ctx.Err() != nil {
		return nil, fmt.Errorf("%s did not finish within %v", binary, parentTimeout)
	}

	return result, nil
}

// validateServings parses stdout and applies the parent's validation rules
func validateServings(stdout []byte) ([]Serving, error) {
	if !bytes.HasSuffix(stdout, []byte("\n")) || bytes.Count(stdout, []byte("\n")) != 1 {
		return nil, fmt.Errorf("expected exactly one line on stdout, got %q", truncate(stdout))
	}

	var servings []Serving
	if err := json.Unmarshal(stdout, &servings); err != nil {
		return nil, fmt.Errorf("stdout is not a JSON array: %w (%q)", err, truncate(stdout))
	}
	if servings == nil {
		return nil, fmt.Errorf("expected a JSON array, got null")
	}

	for i, s := range servings {
		if !validDate.MatchString(s.Date) {
			return nil, fmt.Errorf("serving %d: invalid date form %q", i, s.Date)
		}
		if s.Food == "" {
			return nil, fmt.Errorf("serving %d: empty food", i)
		}
		var amount float64
		if err := json.Unmarshal(s.Amount, &amount); err != nil {
			return nil, fmt.Errorf("serving %d: amount %s is not a number", i, s.Amount)
		}
	}

	return servings, nil
}

// truncate shortens output for error messages
func truncate(b []byte) string {
	const maxLen = 200
	if len(b) > maxLen {
		return string(b[:maxLen]) + "..."
	}
	return string(b)
}
