package services

import (
	"sort"
	"time"

	"expense-tracker-api/internal/models"

	"github.com/shopspring/decimal"
)

const (
	// DailyTrendDays is the daily chart window
	DailyTrendDays = 30
	// WeeklyTrendWeeks is the weekly chart window
	WeeklyTrendWeeks = 8
	// MonthlyTrendDays is the monthly chart window
	MonthlyTrendDays = 365
	// DefaultTopCategoryLimit bounds the top-categories ranking
	DefaultTopCategoryLimit = 5
)

// categoryPalette assigns chart colors by descending-total rank.
// Colors repeat cyclically past the tenth category.
var categoryPalette = []string{
	"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF",
	"#FF9F40", "#FF6384", "#C9CBCF", "#4BC0C0", "#FF6384",
}

var oneHundred = decimal.NewFromInt(100)

// StatisticsService computes aggregates over expense selections.
// Every method is a pure function of its arguments.
type StatisticsService struct{}

// NewStatisticsService creates a new statistics service
func NewStatisticsService() StatisticsServiceInterface {
	return &StatisticsService{}
}

// Summarize returns count, total and average for a selection.
// An empty selection yields zero for all three figures.
func (s *StatisticsService) Summarize(expenses []models.Expense) models.ExpenseSummary {
	summary := models.ExpenseSummary{
		Count:   int64(len(expenses)),
		Total:   decimal.Zero,
		Average: decimal.Zero,
	}

	if summary.Count == 0 {
		return summary
	}

	for _, expense := range expenses {
		summary.Total = summary.Total.Add(expense.Amount)
	}

	summary.Average = summary.Total.Div(decimal.NewFromInt(summary.Count)).Round(2)

	return summary
}

// CompareMonths compares the calendar month containing now against the one
// before it. The percentage change saturates instead of erroring: a previous
// total of zero yields 100 when the current month has spending and 0 when
// neither month does.
func (s *StatisticsService) CompareMonths(expenses []models.Expense, now time.Time) models.MonthlyComparison {
	currentStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	currentEnd := currentStart.AddDate(0, 1, 0)
	previousStart := currentStart.AddDate(0, -1, 0)

	current := decimal.Zero
	previous := decimal.Zero

	for _, expense := range expenses {
		day := dayOf(expense.Date)
		switch {
		case !day.Before(currentStart) && day.Before(currentEnd):
			current = current.Add(expense.Amount)
		case !day.Before(previousStart) && day.Before(currentStart):
			previous = previous.Add(expense.Amount)
		}
	}

	comparison := models.MonthlyComparison{
		CurrentTotal:  current,
		PreviousTotal: previous,
	}

	switch {
	case previous.IsZero() && current.IsZero():
		comparison.ChangePercent = decimal.Zero
	case previous.IsZero():
		comparison.ChangePercent = oneHundred
	default:
		comparison.ChangePercent = current.Sub(previous).Div(previous).Mul(oneHundred).Round(2)
	}

	return comparison
}

// DailyTrend buckets the last 30 days of spending by calendar day.
// Buckets are sorted ascending and empty days are omitted.
func (s *StatisticsService) DailyTrend(expenses []models.Expense, now time.Time) []models.TrendPoint {
	today := dayOf(now)
	windowStart := today.AddDate(0, 0, -(DailyTrendDays - 1))

	buckets := bucketTotals(expenses, windowStart, today, func(day time.Time) time.Time {
		return day
	})

	return trendPoints(buckets, func(bucket time.Time) string {
		return bucket.Format("01/02")
	})
}

// WeeklyTrend buckets the last 8 weeks of spending by week, with weeks
// starting on Monday.
func (s *StatisticsService) WeeklyTrend(expenses []models.Expense, now time.Time) []models.TrendPoint {
	today := dayOf(now)
	windowStart := mondayOf(today).AddDate(0, 0, -7*(WeeklyTrendWeeks-1))

	buckets := bucketTotals(expenses, windowStart, today, mondayOf)

	return trendPoints(buckets, func(bucket time.Time) string {
		return "Week of " + bucket.Format("Jan 02")
	})
}

// MonthlyTrend buckets the last year of spending by calendar month.
func (s *StatisticsService) MonthlyTrend(expenses []models.Expense, now time.Time) []models.TrendPoint {
	today := dayOf(now)
	windowStart := today.AddDate(0, 0, -MonthlyTrendDays)

	buckets := bucketTotals(expenses, windowStart, today, func(day time.Time) time.Time {
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	})

	return trendPoints(buckets, func(bucket time.Time) string {
		return bucket.Format("Jan 2006")
	})
}

// CategoryDistribution aggregates the selection per category, ordered by
// descending total. Colors are positional: the category with the highest
// total always receives the first palette color.
func (s *StatisticsService) CategoryDistribution(expenses []models.Expense) []models.CategoryBreakdown {
	type accumulator struct {
		name  string
		total decimal.Decimal
		count int64
	}

	totals := make(map[string]*accumulator)
	for _, expense := range expenses {
		key := expense.CategoryID.String()
		acc, ok := totals[key]
		if !ok {
			acc = &accumulator{name: expense.Category.Name, total: decimal.Zero}
			totals[key] = acc
		}
		acc.total = acc.total.Add(expense.Amount)
		acc.count++
	}

	breakdown := make([]models.CategoryBreakdown, 0, len(totals))
	for id, acc := range totals {
		breakdown = append(breakdown, models.CategoryBreakdown{
			CategoryID:   id,
			CategoryName: acc.name,
			Total:        acc.total,
			Count:        acc.count,
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].Total.Equal(breakdown[j].Total) {
			return breakdown[i].Total.GreaterThan(breakdown[j].Total)
		}
		return breakdown[i].CategoryName < breakdown[j].CategoryName
	})

	for i := range breakdown {
		breakdown[i].Color = categoryPalette[i%len(categoryPalette)]
	}

	return breakdown
}

// TopCategories ranks categories by how many expenses they contain
func (s *StatisticsService) TopCategories(expenses []models.Expense, limit int) []models.TopCategory {
	if limit <= 0 {
		limit = DefaultTopCategoryLimit
	}

	type accumulator struct {
		name  string
		count int64
	}

	counts := make(map[string]*accumulator)
	for _, expense := range expenses {
		key := expense.CategoryID.String()
		acc, ok := counts[key]
		if !ok {
			acc = &accumulator{name: expense.Category.Name}
			counts[key] = acc
		}
		acc.count++
	}

	top := make([]models.TopCategory, 0, len(counts))
	for id, acc := range counts {
		top = append(top, models.TopCategory{
			CategoryID:   id,
			CategoryName: acc.name,
			Count:        acc.count,
		})
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].CategoryName < top[j].CategoryName
	})

	if len(top) > limit {
		top = top[:limit]
	}

	return top
}

// BuildChartData assembles every chart series the dashboard renders
func (s *StatisticsService) BuildChartData(expenses []models.Expense, now time.Time) models.ChartData {
	return models.ChartData{
		Daily:        s.DailyTrend(expenses, now),
		Weekly:       s.WeeklyTrend(expenses, now),
		Monthly:      s.MonthlyTrend(expenses, now),
		Distribution: s.CategoryDistribution(expenses),
	}
}

// bucketTotals sums amounts per bucket for expenses whose day falls inside
// [windowStart, windowEnd]
func bucketTotals(expenses []models.Expense, windowStart, windowEnd time.Time, bucketOf func(time.Time) time.Time) map[time.Time]decimal.Decimal {
	buckets := make(map[time.Time]decimal.Decimal)

	for _, expense := range expenses {
		day := dayOf(expense.Date)
		if day.Before(windowStart) || day.After(windowEnd) {
			continue
		}

		bucket := bucketOf(day)
		total, ok := buckets[bucket]
		if !ok {
			total = decimal.Zero
		}
		buckets[bucket] = total.Add(expense.Amount)
	}

	return buckets
}

// trendPoints renders buckets as labelled points in ascending bucket order
func trendPoints(buckets map[time.Time]decimal.Decimal, label func(time.Time) string) []models.TrendPoint {
	keys := make([]time.Time, 0, len(buckets))
	for bucket := range buckets {
		keys = append(keys, bucket)
	}

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Before(keys[j])
	})

	points := make([]models.TrendPoint, 0, len(keys))
	for _, bucket := range keys {
		points = append(points, models.TrendPoint{
			Label: label(bucket),
			Total: buckets[bucket],
		})
	}

	return points
}

// dayOf truncates a timestamp to its calendar day in UTC
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayOf returns the Monday of the week containing the given day
func mondayOf(day time.Time) time.Time {
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return day.AddDate(0, 0, -offset)
}
