package chain

import (
	"sort"
	"time"

	"github.com/MedusaOnMe/PlyOpt/internal/models"
)

// ExpiryType represents types of expiry.
type ExpiryType string

const (
	ExpiryWeekly  ExpiryType = "WEEKLY"
	ExpiryMonthly ExpiryType = "MONTHLY"
)

const (
	weeklyCount  = 4
	monthlyCount = 2
)

// Expirations generates the expiration schedule as seen from today:
// the next 4 weekly Fridays at 7-day spacing plus the third Friday of
// each of the next 2 months, sorted by daysToExpiry ascending.
//
// Day counts are whole days between UTC midnights, so results do not
// depend on the host timezone. A monthly expiry landing on an already
// generated weekly Friday is merged into a single entry that keeps the
// monthly label, which keeps daysToExpiry strictly increasing.
func Expirations(today time.Time, nearExpiryDays int) []models.Expiration {
	base := utcMidnight(today)
	byDate := make(map[string]models.Expiration, weeklyCount+monthlyCount)

	for i := 1; i <= weeklyCount; i++ {
		d := nextFriday(base.AddDate(0, 0, 7*i))
		byDate[dateKey(d)] = newExpiration(base, d, true, nearExpiryDays)
	}

	for i := 1; i <= monthlyCount; i++ {
		d := thirdFriday(base, i)
		byDate[dateKey(d)] = newExpiration(base, d, false, nearExpiryDays)
	}

	expirations := make([]models.Expiration, 0, len(byDate))
	for _, exp := range byDate {
		expirations = append(expirations, exp)
	}
	sort.Slice(expirations, func(i, j int) bool {
		return expirations[i].DaysToExpiry < expirations[j].DaysToExpiry
	})
	return expirations
}

func newExpiration(base, date time.Time, weekly bool, nearExpiryDays int) models.Expiration {
	days := int(date.Sub(base).Hours() / 24)
	return models.Expiration{
		Date:         date,
		Label:        formatLabel(date, weekly),
		DaysToExpiry: days,
		IsWeekly:     weekly,
		NearExpiry:   days <= nearExpiryDays,
	}
}

func utcMidnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// nextFriday advances d to the next Friday; a Friday stays put.
func nextFriday(d time.Time) time.Time {
	offset := (int(time.Friday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}

// thirdFriday returns the third Friday of the month monthsAhead from base.
func thirdFriday(base time.Time, monthsAhead int) time.Time {
	first := time.Date(base.Year(), base.Month()+time.Month(monthsAhead), 1, 0, 0, 0, 0, time.UTC)
	return nextFriday(first).AddDate(0, 0, 14)
}

func formatLabel(d time.Time, weekly bool) string {
	label := d.Format("Jan 2")
	if !weekly {
		label += " (M)"
	}
	return label
}

func dateKey(d time.Time) string {
	return d.Format("2006-01-02")
}
