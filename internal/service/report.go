package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/talktobrent/product-api/internal/model"

	"gorm.io/gorm"
)

// ReportService は売上レポートサービスのインターフェース
type ReportService interface {
	SalesReport(ctx context.Context, start, end time.Time, unit string) (map[string][]model.ProductSales, error)
}

// reportServiceImpl は売上レポートサービスの実装
type reportServiceImpl struct {
	db *gorm.DB
}

// NewReportService creates a new sales report service
func NewReportService(db *gorm.DB) ReportService {
	return &reportServiceImpl{db: db}
}

// bucketUnit is one reporting granularity: how the range cursor advances and
// how a date maps to its bucket label.
type bucketUnit struct {
	step func(time.Time) time.Time
	key  func(time.Time) string
}

// unitFor returns the descriptor for unit. Labels mirror strftime fields:
// "%j-%Y" for day, "%W-%Y" for week, "%m-%Y" for month.
func unitFor(unit string) (bucketUnit, error) {
	switch unit {
	case "day":
		return bucketUnit{
			step: func(t time.Time) time.Time { return t.AddDate(0, 0, 1) },
			key:  func(t time.Time) string { return fmt.Sprintf("%03d-%d", t.YearDay(), t.Year()) },
		}, nil
	case "week":
		return bucketUnit{
			step: func(t time.Time) time.Time { return t.AddDate(0, 0, 7) },
			key:  func(t time.Time) string { return fmt.Sprintf("%02d-%d", mondayWeek(t), t.Year()) },
		}, nil
	case "month":
		return bucketUnit{
			step: addMonth,
			key:  func(t time.Time) string { return fmt.Sprintf("%02d-%d", int(t.Month()), t.Year()) },
		}, nil
	}
	return bucketUnit{}, ErrInvalidUnit
}

// mondayWeek is strftime's %W: the week number with Monday as the first day
// of the week, where days before the year's first Monday fall in week 00.
func mondayWeek(t time.Time) int {
	weekday := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return (t.YearDay() - 1 - weekday + 7) / 7
}

// addMonth advances one calendar month, clamping to the last day of shorter
// months instead of normalizing past them (Jan 31 + 1 month = Feb 29 in a
// leap year, not Mar 2).
func addMonth(t time.Time) time.Time {
	year, month, day := t.Date()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// salesRow is one line item joined with its basket's date.
type salesRow struct {
	ProductID int64
	Name      string
	Volume    float64
	Datetime  int64
}

// SalesReport walks [start, end] inclusive in unit steps. Each visited bucket
// label appends the per-product volume sums of every order dated in that
// calendar bucket, whole-bucket even at the range edges. Revisiting a label
// accumulates additively rather than overwriting, which can happen when the
// step granularity and the bucket field disagree across year boundaries.
func (s *reportServiceImpl) SalesReport(ctx context.Context, start, end time.Time, unit string) (map[string][]model.ProductSales, error) {
	u, err := unitFor(unit)
	if err != nil {
		return nil, err
	}

	var rows []salesRow
	if err := s.db.WithContext(ctx).
		Table("order_volumes_dates_view").
		Select("product_id, name, volume, datetime").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query sales rows: %w", err)
	}

	totals := aggregateByBucket(rows, u.key)

	buckets := make(map[string][]model.ProductSales)
	for cursor := start; !cursor.After(end); cursor = u.step(cursor) {
		label := u.key(cursor)
		entries, ok := totals[label]
		if !ok {
			continue
		}
		buckets[label] = append(buckets[label], entries...)
	}

	return buckets, nil
}

// aggregateByBucket sums volumes per product within each bucket label,
// entries ordered by ascending product id.
func aggregateByBucket(rows []salesRow, key func(time.Time) string) map[string][]model.ProductSales {
	type total struct {
		name   string
		volume float64
	}

	sums := make(map[string]map[int64]*total)
	for _, row := range rows {
		label := key(time.Unix(row.Datetime, 0).UTC())
		if sums[label] == nil {
			sums[label] = make(map[int64]*total)
		}
		if t := sums[label][row.ProductID]; t != nil {
			t.volume += row.Volume
		} else {
			sums[label][row.ProductID] = &total{name: row.Name, volume: row.Volume}
		}
	}

	out := make(map[string][]model.ProductSales, len(sums))
	for label, products := range sums {
		ids := make([]int64, 0, len(products))
		for id := range products {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		entries := make([]model.ProductSales, 0, len(ids))
		for _, id := range ids {
			entries = append(entries, model.ProductSales{
				Volume:    products[id].volume,
				Name:      products[id].name,
				ProductID: id,
			})
		}
		out[label] = entries
	}
	return out
}
