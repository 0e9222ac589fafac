package stdio

import (
	"fmt"
	"os"
	"sync"
)

// mu serializes Mute calls since they swap the process-wide os.Stdout
var mu sync.Mutex

// Mute runs fn with os.Stdout pointed at the null device.
// Stdout is the payload channel to the parent process, so third-party
// diagnostics printed during fn are discarded. os.Stdout is restored
// when fn returns or panics.
func Mute(fn func() error) error {
	mu.Lock()
	defer mu.Unlock()

	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", os.DevNull, err)
	}
	defer devNull.Close()

	original := os.Stdout
	os.Stdout = devNull
	defer func() {
		os.Stdout = original
	}()

	return fn()
}
