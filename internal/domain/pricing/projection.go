package pricing

import (
	"math"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
)

// DefaultHorizonMonths is the projection horizon used when none is given.
const DefaultHorizonMonths = 6

const (
	minConfidence   = 0.1
	confidenceScale = 0.8
	confidenceDecay = 0.1
)

// Project extrapolates the price series month by month from its last point.
//
// Prices move by the trend's average monthly change and never go below zero.
// Confidence is |correlation| × 0.8 × e^(−0.1·month), floored at 0.1.
// Fewer than two points or a non-positive horizon produce no projection.
func Project(points []entity.PricePoint, horizonMonths int) []entity.CostProjection {
	return ProjectWithTrend(points, AnalyzeTrend(points), horizonMonths)
}

// ProjectWithTrend projects using an already computed trend of the same series.
func ProjectWithTrend(points []entity.PricePoint, trend entity.TrendAnalysis, horizonMonths int) []entity.CostProjection {
	if len(points) < 2 || horizonMonths <= 0 {
		return []entity.CostProjection{}
	}

	sorted := sortedByDate(points)
	last := sorted[len(sorted)-1]

	out := make([]entity.CostProjection, 0, horizonMonths)
	for month := 1; month <= horizonMonths; month++ {
		m := float64(month)
		out = append(out, entity.CostProjection{
			Date:           last.Date.AddDate(0, month, 0),
			ProjectedPrice: math.Max(0, last.Price+trend.AverageMonthlyChange*m),
			Confidence:     math.Max(minConfidence, math.Abs(trend.Correlation)*confidenceScale*math.Exp(-confidenceDecay*m)),
		})
	}
	return out
}
