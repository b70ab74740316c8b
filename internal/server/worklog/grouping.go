// Package worklog turns a user's flat list of per-day log records into the
// month-grouped view shown by clients and rendered into exports.
package worklog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/worklog/internal/common"
	"github.com/dmitrijs2005/worklog/internal/logging"
	"github.com/dmitrijs2005/worklog/internal/server/models"
)

// MonthKeyLayout renders month keys such as "March 2024".
const MonthKeyLayout = "January 2006"

// MonthGroup holds the records of one calendar month, newest day first.
type MonthGroup struct {
	Month   string
	Records []models.LogRecord
}

// Grouped is an ordered month key → records mapping, newest month first.
// Each month key appears once.
type Grouped []MonthGroup

// Lookup returns the records for month.
func (g Grouped) Lookup(month string) ([]models.LogRecord, bool) {
	for _, mg := range g {
		if mg.Month == month {
			return mg.Records, true
		}
	}
	return nil, false
}

// Keys returns the month keys in display order.
func (g Grouped) Keys() []string {
	keys := make([]string, 0, len(g))
	for _, mg := range g {
		keys = append(keys, mg.Month)
	}
	return keys
}

// Count returns the number of records across all months.
func (g Grouped) Count() int {
	n := 0
	for _, mg := range g {
		n += len(mg.Records)
	}
	return n
}

// ParseDateKey strictly parses a DD-MM-YYYY key: two-digit day and month,
// four-digit year, a real calendar day, and nothing else.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(common.DateKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", key, err)
	}
	return t, nil
}

// FormatDateKey renders t as a DD-MM-YYYY key.
func FormatDateKey(t time.Time) string {
	return t.Format(common.DateKeyLayout)
}

// MonthKey renders the month key ("March 2024") for t.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

type datedRecord struct {
	at     time.Time
	record models.LogRecord
}

// GroupByMonth sorts records newest-first and groups them by month.
//
// Records with a date that is not a strict DD-MM-YYYY key are dropped with a
// warning; they never fail the call. Records sharing a date keep their input
// order. An empty input yields an empty result.
func GroupByMonth(ctx context.Context, log logging.Logger, records []models.LogRecord) Grouped {
	if log == nil {
		log = logging.Nop{}
	}

	dated := make([]datedRecord, 0, len(records))
	for _, r := range records {
		at, err := ParseDateKey(r.Date)
		if err != nil {
			log.Warn(ctx, "skipping log record with invalid date", "date", r.Date, "error", err)
			continue
		}
		dated = append(dated, datedRecord{at: at, record: r})
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].at.After(dated[j].at)
	})

	result := Grouped{}
	index := make(map[string]int)
	for _, d := range dated {
		month := MonthKey(d.at)
		i, ok := index[month]
		if !ok {
			i = len(result)
			index[month] = i
			result = append(result, MonthGroup{Month: month})
		}
		result[i].Records = append(result[i].Records, d.record)
	}

	return result
}

// BuildRecords folds stored comment rows into per-day records. Rows must be
// ordered by insertion sequence within a day; day order follows first
// appearance.
func BuildRecords(rows []models.LogComment) []models.LogRecord {
	records := make([]models.LogRecord, 0)
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.Date]
		if !ok {
			i = len(records)
			index[row.Date] = i
			records = append(records, models.LogRecord{Date: row.Date})
		}
		records[i].Comments = append(records[i].Comments, row.Comment)
	}
	return records
}
