package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const minutesPerDay = 24 * 60

// Expression builds the cron schedule expression that fires every n minutes.
// Sub-hour intervals use the */n minute form; exact-hour multiples use the
// hourly form, and a full day collapses to midnight. Intervals cron cannot
// express as a single entry (e.g. 90) are rejected.
func Expression(n int) (string, error) {
	switch {
	case n <= 0:
		return "", fmt.Errorf("%w: %d minutes", ErrInvalidInterval, n)
	case n < 60:
		return fmt.Sprintf("*/%d * * * *", n), nil
	case n == minutesPerDay:
		return "0 0 * * *", nil
	case n%60 == 0 && n < minutesPerDay:
		return fmt.Sprintf("0 */%d * * *", n/60), nil
	default:
		return "", fmt.Errorf("%w: %d minutes has no single cron entry", ErrInvalidInterval, n)
	}
}

// ValidateExpression validates a cron expression
func ValidateExpression(expr string) error {
	_, err := cron.ParseStandard(expr)
	return err
}

// NextRunTime calculates the next run time for a cron expression
func NextRunTime(expr string, from time.Time) (time.Time, error) {
	cronSchedule, err := cron.ParseStandard(expr)
	if err != nil {
		return time.Time{}, err
	}
	return cronSchedule.Next(from), nil
}
