package servings

import "time"

const (
	// DateLayout is the YYYY-MM-DD form used by the provider and in the output
	DateLayout = "2006-01-02"

	// StartDate is the first day requested from the provider
	StartDate = "2020-01-01"

	// Dataset is the provider dataset holding per-food intake entries
	Dataset = "servings"
)

// DateRange is the parameter object passed to the provider
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Window returns the range from StartDate through the day before now.
// The calendar day is taken in now's location.
func Window(now time.Time) DateRange {
	return DateRange{
		StartDate: StartDate,
		EndDate:   now.AddDate(0, 0, -1).Format(DateLayout),
	}
}

// Bounds parses both ends of the range.
func (d DateRange) Bounds() (start, end time.Time, err error) {
	start, err = time.Parse(DateLayout, d.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end, err = time.Parse(DateLayout, d.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end, nil
}
