package provider

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noot-app/fetch-servings/internal/config"
	"github.com/noot-app/fetch-servings/internal/servings"
)

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name     string
		creds    Credentials
		contains []string
	}{
		{
			name:  "valid",
			creds: Credentials{Username: "user@example.com", Password: "secret"},
		},
		{
			name:     "missing username",
			creds:    Credentials{Password: "secret"},
			contains: []string{"username is a required field"},
		},
		{
			name:     "missing password",
			creds:    Credentials{Username: "user@example.com"},
			contains: []string{"password is a required field"},
		},
		{
			name:     "missing both",
			creds:    Credentials{},
			contains: []string{"username is a required field", "password is a required field"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if len(tt.contains) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			for _, message := range tt.contains {
				assert.Contains(t, err.Error(), message)
			}
		})
	}
}

func TestNew(t *testing.T) {
	logger := config.NewTestLogger(io.Discard, "")

	t.Run("synthetic", func(t *testing.T) {
		p := New(&config.Config{Synthetic: true}, logger)
		assert.IsType(t, &Synthetic{}, p)
	})

	t.Run("cronometer", func(t *testing.T) {
		p := New(&config.Config{}, logger)
		assert.IsType(t, &Cronometer{}, p)
	})
}

func TestMock(t *testing.T) {
	ctx := context.Background()
	records := []servings.RawServing{{Day: "2022-04-01", FoodName: "Pasta", Amount: "90 g"}}
	window := servings.DateRange{StartDate: "2020-01-01", EndDate: "2022-04-14"}

	m := NewMock(records...)
	require.NoError(t, m.Authenticate(ctx, Credentials{Username: "u", Password: "p"}))

	got, err := m.GetData(ctx, servings.Dataset, window)
	require.NoError(t, err)
	assert.Equal(t, records, got)
	assert.Equal(t, 1, m.AuthCalls)
	assert.Equal(t, 1, m.FetchCalls)
	assert.Equal(t, "u", m.LastCreds.Username)
	assert.Equal(t, servings.Dataset, m.LastDataset)
	assert.Equal(t, window, m.LastRange)

	replaced := []servings.RawServing{{Day: "2022-04-02", FoodName: "Milk", Amount: "250 ml"}}
	m.SetRecords(replaced)
	got, err = m.GetData(ctx, servings.Dataset, window)
	require.NoError(t, err)
	assert.Equal(t, replaced, got)
	assert.Equal(t, 2, m.FetchCalls)

	authErr := errors.New("bad password")
	m.SetAuthError(authErr)
	assert.ErrorIs(t, m.Authenticate(ctx, Credentials{}), authErr)

	fetchErr := errors.New("timeout")
	m.SetFetchError(fetchErr)
	_, err = m.GetData(ctx, servings.Dataset, window)
	assert.ErrorIs(t, err, fetchErr)
}
