package main

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultBinary = "./bin/fetch-servings"
	// The parent process kills the fetch after 15 seconds
	parentTimeout = 15 * time.Second
	maxDuration   = 5 * time.Second
	// The synthetic provider refuses this password
	rejectedPassword = "invalid-password"
)

func main() {
	binary := os.Getenv("FETCH_SERVINGS_BIN")
	if binary == "" {
		binary = defaultBinary
	}

	fmt.Printf("🧪 Running acceptance tests for fetch-servings\n")
	fmt.Printf("Binary: %s\n\n", binary)

	// Test 1: synthetic fetch produces a valid payload
	fmt.Printf("1. Fetching synthetic servings...\n")
	result, err := runBinary(binary, []string{"CRONOMETER_SYNTHETIC=true", "LOG_LEVEL=INFO"}, "user@example.com", "secret")
	if err != nil {
		fail("synthetic fetch: %v", err)
	}
	if result.ExitCode != 0 {
		fail("synthetic fetch exited with %d: %s", result.ExitCode, truncate(result.Stderr))
	}
	if len(result.Stderr) > 0 {
		fail("synthetic fetch wrote to stderr (the parent treats this as failure): %s", truncate(result.Stderr))
	}
	servings, err := validateServings(result.Stdout)
	if err != nil {
		fail("synthetic fetch: %v", err)
	}
	if len(servings) == 0 {
		fail("synthetic fetch returned no servings")
	}
	fetchDuration := result.Duration
	fmt.Printf("✅ %d servings in %v\n\n", len(servings), fetchDuration)

	// Test 2: end date is yesterday
	fmt.Printf("2. Checking the date window...\n")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	first, last := servings[0].Date, servings[len(servings)-1].Date
	if first != "2020-01-01" {
		fail("first serving dated %s, expected 2020-01-01", first)
	}
	if last != yesterday {
		fail("last serving dated %s, expected %s", last, yesterday)
	}
	fmt.Printf("✅ Window %s .. %s\n\n", first, last)

	// Test 3: wrong arguments fail without touching stdout
	fmt.Printf("3. Running with a missing secret (should fail)...\n")
	result, err = runBinary(binary, []string{"CRONOMETER_SYNTHETIC=true"}, "user@example.com")
	if err != nil {
		fail("missing secret: %v", err)
	}
	if result.ExitCode == 0 {
		fail("missing secret: expected a non-zero exit status")
	}
	if len(result.Stdout) > 0 {
		fail("missing secret: stdout must be empty, got %q", truncate(result.Stdout))
	}
	if len(result.Stderr) == 0 {
		fail("missing secret: expected an error on stderr")
	}
	fmt.Printf("✅ Exit status %d, stderr: %s\n\n", result.ExitCode, truncate(result.Stderr))

	// Test 4: a rejected login exits 1 with nothing on stdout
	fmt.Printf("4. Logging in with a rejected password (should fail)...\n")
	result, err = runBinary(binary, []string{"CRONOMETER_SYNTHETIC=true"}, "user@example.com", rejectedPassword)
	if err != nil {
		fail("rejected login: %v", err)
	}
	if result.ExitCode != 1 {
		fail("rejected login: expected exit status 1, got %d", result.ExitCode)
	}
	if len(result.Stdout) > 0 {
		fail("rejected login: stdout must be empty, got %q", truncate(result.Stdout))
	}
	if !strings.Contains(string(result.Stderr), "authenticate:") {
		fail("rejected login: expected an authenticate error on stderr, got %q", truncate(result.Stderr))
	}
	fmt.Printf("✅ Exit status %d, stderr: %s\n", result.ExitCode, truncate(result.Stderr))

	fmt.Printf("\n📊 Synthetic fetch took %v (limit %v)\n", fetchDuration, maxDuration)
	if fetchDuration > maxDuration {
		fail("synthetic fetch exceeded %v", maxDuration)
	}

	fmt.Printf("\n🎉 ALL TESTS PASSED!\n")
}

func fail(format string, args ...interface{}) {
	fmt.Printf("❌ "+format+"\n", args...)
	os.Exit(1)
}
