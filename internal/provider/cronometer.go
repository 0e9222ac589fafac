package provider

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jrmycanady/gocronometer"

	"github.com/noot-app/fetch-servings/internal/servings"
)

// Column headers of the Cronometer servings export
const (
	columnDay      = "Day"
	columnFoodName = "Food Name"
	columnAmount   = "Amount"
)

// cronometerClient is the subset of *gocronometer.Client used here
type cronometerClient interface {
	Login(ctx context.Context, username string, password string) error
	ExportServings(ctx context.Context, startDate time.Time, endDate time.Time) (string, error)
}

// Cronometer fetches servings from cronometer.com through gocronometer
type Cronometer struct {
	client        cronometerClient
	log           *slog.Logger
	authenticated bool
}

// Ensure Cronometer implements Provider interface
var _ Provider = (*Cronometer)(nil)

// NewCronometer creates a provider backed by a fresh gocronometer client
func NewCronometer(logger *slog.Logger) *Cronometer {
	return newCronometer(gocronometer.NewClient(nil), logger)
}

func newCronometer(client cronometerClient, logger *slog.Logger) *Cronometer {
	return &Cronometer{
		client: client,
		log:    logger,
	}
}

// Authenticate logs in to Cronometer
func (c *Cronometer) Authenticate(ctx context.Context, creds Credentials) error {
	start := time.Now()

	if err := creds.Validate(); err != nil {
		return err
	}

	c.log.Debug("Logging in to Cronometer")
	if err := c.client.Login(ctx, creds.Username, creds.Password); err != nil {
		c.authenticated = false
		return fmt.Errorf("cronometer login failed: %w", err)
	}

	c.authenticated = true
	c.log.Debug("Cronometer login successful", "duration", time.Since(start))
	return nil
}

// GetData exports the servings dataset for the given date range
func (c *Cronometer) GetData(ctx context.Context, dataset string, params servings.DateRange) ([]servings.RawServing, error) {
	if dataset != servings.Dataset {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}
	if !c.authenticated {
		return nil, ErrNotAuthenticated
	}

	startDate, endDate, err := params.Bounds()
	if err != nil {
		return nil, fmt.Errorf("invalid date range: %w", err)
	}

	start := time.Now()
	c.log.Debug("Exporting servings", "start_date", params.StartDate, "end_date", params.EndDate)

	csvData, err := c.client.ExportServings(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("cronometer servings export failed: %w", err)
	}

	records, err := parseServingsCSV(csvData)
	if err != nil {
		return nil, err
	}

	c.log.Debug("Servings exported", "count", len(records), "duration", time.Since(start))
	return records, nil
}

// parseServingsCSV decodes the servings export, locating columns by header name
func parseServingsCSV(csvData string) ([]servings.RawServing, error) {
	reader := csv.NewReader(strings.NewReader(csvData))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	if len(rows) == 0 {
		return []servings.RawServing{}, nil
	}

	header := rows[0]
	dayIdx := findColumn(header, columnDay)
	foodIdx := findColumn(header, columnFoodName)
	amountIdx := findColumn(header, columnAmount)

	if dayIdx == -1 || foodIdx == -1 || amountIdx == -1 {
		return nil, fmt.Errorf("missing required columns in servings export")
	}

	records := make([]servings.RawServing, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) <= max(dayIdx, foodIdx, amountIdx) {
			continue // Skip short rows
		}

		records = append(records, servings.RawServing{
			Day:      row[dayIdx],
			FoodName: row[foodIdx],
			Amount:   row[amountIdx],
		})
	}

	return records, nil
}

// findColumn finds the index of a column by name (case-insensitive, BOM tolerant)
func findColumn(header []string, name string) int {
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		if strings.EqualFold(col, name) {
			return i
		}
	}
	return -1
}
