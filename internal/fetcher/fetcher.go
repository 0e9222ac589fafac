package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jonboulle/clockwork"
	jsoniter "github.com/json-iterator/go"

	"github.com/noot-app/fetch-servings/internal/provider"
	"github.com/noot-app/fetch-servings/internal/servings"
	"github.com/noot-app/fetch-servings/internal/stdio"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Fetcher authenticates against a provider, fetches the servings window
// and reduces the records.
type Fetcher struct {
	provider provider.Provider
	clock    clockwork.Clock
	log      *slog.Logger
}

// New creates a fetcher. The clock decides which day is "yesterday".
func New(p provider.Provider, clock clockwork.Clock, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		provider: p,
		clock:    clock,
		log:      logger,
	}
}

// Fetch returns the servings from 2020-01-01 through yesterday.
// Provider calls run with stdout muted.
func (f *Fetcher) Fetch(ctx context.Context, creds provider.Credentials) ([]servings.Serving, error) {
	start := f.clock.Now()
	window := servings.Window(start)

	f.log.Debug("Authenticating with provider")
	err := stdio.Mute(func() error {
		return f.provider.Authenticate(ctx, creds)
	})
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	f.log.Debug("Fetching servings", "start_date", window.StartDate, "end_date", window.EndDate)
	var raw []servings.RawServing
	err = stdio.Mute(func() error {
		var fetchErr error
		raw, fetchErr = f.provider.GetData(ctx, servings.Dataset, window)
		return fetchErr
	})
	if err != nil {
		return nil, fmt.Errorf("fetch servings: %w", err)
	}

	result, dropped := servings.Transform(raw)
	f.log.Debug("Servings transformed",
		"fetched", len(raw),
		"kept", len(result),
		"dropped", dropped,
		"duration", f.clock.Since(start))

	return result, nil
}

// Run fetches servings and writes them to w as a single JSON array line.
// Nothing is written when fetching fails.
func (f *Fetcher) Run(ctx context.Context, creds provider.Credentials, w io.Writer) error {
	result, err := f.Fetch(ctx, creds)
	if err != nil {
		return err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode servings: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write servings: %w", err)
	}
	return nil
}
