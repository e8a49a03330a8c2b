// Package pricing analyzes ingredient price history: least-squares trend,
// projection of future prices and period summaries.
package pricing

import (
	"math"
	"sort"
	"time"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
)

// DefaultNoiseFloor is the daily slope below which a series counts as stable.
const DefaultNoiseFloor = 0.01

const (
	daysPerMonth = 30
	day          = 24 * time.Hour
)

// sortedByDate returns a copy of points in ascending date order.
// Points with equal dates keep their input order.
func sortedByDate(points []entity.PricePoint) []entity.PricePoint {
	out := make([]entity.PricePoint, len(points))
	copy(out, points)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// AnalyzeTrend fits price against time with ordinary least squares using the
// default noise floor.
func AnalyzeTrend(points []entity.PricePoint) entity.TrendAnalysis {
	return AnalyzeTrendWithFloor(points, DefaultNoiseFloor)
}

// AnalyzeTrendWithFloor fits price against days since the first point.
// Fewer than two points yield a stable, all-zero result.
func AnalyzeTrendWithFloor(points []entity.PricePoint, noiseFloor float64) entity.TrendAnalysis {
	if len(points) < 2 {
		return entity.TrendAnalysis{Trend: entity.TrendStable}
	}

	sorted := sortedByDate(points)
	first := sorted[0].Date
	n := float64(len(sorted))

	var sumX, sumY, sumXY, sumXX, sumYY float64
	for _, p := range sorted {
		x := float64(p.Date.Sub(first)) / float64(day)
		y := p.Price
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
		sumYY += y * y
	}

	num := n*sumXY - sumX*sumY
	// every point on the same day leaves x without spread; treat as flat
	slope := 0.0
	if sxx := n*sumXX - sumX*sumX; sxx != 0 {
		slope = num / sxx
	}

	correlation := 0.0
	den := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if den != 0 {
		correlation = num / den
	}
	if math.IsNaN(correlation) {
		correlation = 0
	}
	correlation = math.Max(-1, math.Min(1, correlation))

	mean := sumY / n
	variance := 0.0
	for _, p := range sorted {
		d := p.Price - mean
		variance += d * d
	}
	variance /= n

	return entity.TrendAnalysis{
		Slope:                slope,
		Correlation:          correlation,
		AverageMonthlyChange: slope * daysPerMonth,
		Volatility:           math.Sqrt(variance),
		Trend:                classify(slope, noiseFloor),
	}
}

func classify(slope, noiseFloor float64) entity.TrendDirection {
	switch {
	case slope > noiseFloor:
		return entity.TrendIncreasing
	case slope < -noiseFloor:
		return entity.TrendDecreasing
	default:
		return entity.TrendStable
	}
}
