package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/noot-app/fetch-servings/internal/servings"
)

// syntheticFood is one entry of the fake food diary
type syntheticFood struct {
	name   string
	amount string
}

var syntheticFoods = []syntheticFood{
	{"Pasta, Dry, Unenriched", "90 g"},
	{"Milk, 2% Fat", "250 ml"},
	{"Orange Juice", "1 cup"},
	{"Oats, Rolled", "40 g"},
	{"Coffee, Brewed", "355 ml"},
	{"Bread, Whole Wheat", "2 slices"},
	{"Banana", "118.5 g"},
	{"Peanut Butter", "2 tbsp"},
}

// SyntheticRejectedPassword is the one password the synthetic provider refuses,
// so the login failure path can be run without a Cronometer account.
const SyntheticRejectedPassword = "invalid-password"

// ErrLoginRejected is returned by the synthetic provider for SyntheticRejectedPassword
var ErrLoginRejected = errors.New("login rejected")

// entriesPerDay is how many synthetic servings are logged each day
const entriesPerDay = 3

// Synthetic returns a deterministic fake food diary without network access
type Synthetic struct {
	log *slog.Logger
}

// Ensure Synthetic implements Provider interface
var _ Provider = (*Synthetic)(nil)

// NewSynthetic creates a synthetic provider
func NewSynthetic(logger *slog.Logger) *Synthetic {
	return &Synthetic{log: logger}
}

// Authenticate accepts any credentials except SyntheticRejectedPassword
func (s *Synthetic) Authenticate(ctx context.Context, creds Credentials) error {
	if creds.Password == SyntheticRejectedPassword {
		return fmt.Errorf("%w for %s", ErrLoginRejected, creds.Username)
	}
	return nil
}

// GetData generates entriesPerDay servings for each day of the range
func (s *Synthetic) GetData(ctx context.Context, dataset string, params servings.DateRange) ([]servings.RawServing, error) {
	if dataset != servings.Dataset {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}

	start, end, err := params.Bounds()
	if err != nil {
		return nil, fmt.Errorf("invalid date range: %w", err)
	}

	var records []servings.RawServing
	for day, i := start, 0; !day.After(end); day, i = day.AddDate(0, 0, 1), i+1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for j := 0; j < entriesPerDay; j++ {
			food := syntheticFoods[(i+j)%len(syntheticFoods)]
			records = append(records, servings.RawServing{
				Day:      day.Format(servings.DateLayout),
				FoodName: food.name,
				Amount:   food.amount,
			})
		}
	}

	s.log.Debug("Generated synthetic servings", "count", len(records))
	return records, nil
}
