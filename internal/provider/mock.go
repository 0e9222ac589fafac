package provider

import (
	"context"
	"fmt"

	"github.com/noot-app/fetch-servings/internal/servings"
)

// Mock is a Provider for tests with canned records and injectable errors
type Mock struct {
	records  []servings.RawServing
	authErr  error
	fetchErr error

	// Recorded calls
	AuthCalls   int
	FetchCalls  int
	LastCreds   Credentials
	LastDataset string
	LastRange   servings.DateRange
}

// Ensure Mock implements Provider interface
var _ Provider = (*Mock)(nil)

// NewMock creates a mock returning the given records
func NewMock(records ...servings.RawServing) *Mock {
	return &Mock{records: records}
}

// Authenticate records the call and returns the configured auth error
func (m *Mock) Authenticate(ctx context.Context, creds Credentials) error {
	m.AuthCalls++
	m.LastCreds = creds
	if m.authErr != nil {
		return fmt.Errorf("mock login failed: %w", m.authErr)
	}
	return nil
}

// GetData records the call and returns the configured records
func (m *Mock) GetData(ctx context.Context, dataset string, params servings.DateRange) ([]servings.RawServing, error) {
	m.FetchCalls++
	m.LastDataset = dataset
	m.LastRange = params
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.records, nil
}

// SetAuthError sets an error to be returned by Authenticate
func (m *Mock) SetAuthError(err error) {
	m.authErr = err
}

// SetFetchError sets an error to be returned by GetData
func (m *Mock) SetFetchError(err error) {
	m.fetchErr = err
}

// SetRecords sets the records to be returned by GetData
func (m *Mock) SetRecords(records []servings.RawServing) {
	m.records = records
}
