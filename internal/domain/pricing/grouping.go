package pricing

import (
	"fmt"
	"sort"
	"time"

	"github.com/rotisserie/eris"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
)

// ErrUnknownPeriod is returned for a period other than monthly, quarterly or yearly.
var ErrUnknownPeriod = eris.New("unknown period")

// ParsePeriod validates a period name.
func ParsePeriod(s string) (entity.Period, error) {
	switch p := entity.Period(s); p {
	case entity.PeriodMonthly, entity.PeriodQuarterly, entity.PeriodYearly:
		return p, nil
	default:
		return "", eris.Wrapf(ErrUnknownPeriod, "%q", s)
	}
}

// PeriodKey returns the bucket key of t: "2006-01", "2006-Q1" or "2006".
func PeriodKey(t time.Time, period entity.Period) (string, error) {
	switch period {
	case entity.PeriodMonthly:
		return t.Format("2006-01"), nil
	case entity.PeriodQuarterly:
		quarter := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("%04d-Q%d", t.Year(), quarter), nil
	case entity.PeriodYearly:
		return fmt.Sprintf("%04d", t.Year()), nil
	default:
		return "", eris.Wrapf(ErrUnknownPeriod, "%q", string(period))
	}
}

// GroupByPeriod buckets price points by period and summarizes each bucket.
// Buckets are sorted by key; the fixed-width keys sort chronologically.
func GroupByPeriod(points []entity.PricePoint, period entity.Period) ([]entity.PeriodBucket, error) {
	if _, err := ParsePeriod(string(period)); err != nil {
		return nil, err
	}

	type acc struct {
		sum, min, max float64
		count         int
	}
	groups := make(map[string]*acc)
	for _, p := range points {
		key, err := PeriodKey(p.Date, period)
		if err != nil {
			return nil, err
		}
		g, ok := groups[key]
		if !ok {
			groups[key] = &acc{sum: p.Price, min: p.Price, max: p.Price, count: 1}
			continue
		}
		g.sum += p.Price
		g.count++
		if p.Price < g.min {
			g.min = p.Price
		}
		if p.Price > g.max {
			g.max = p.Price
		}
	}

	buckets := make([]entity.PeriodBucket, 0, len(groups))
	for key, g := range groups {
		buckets = append(buckets, entity.PeriodBucket{
			Period:       key,
			AveragePrice: g.sum / float64(g.count),
			Count:        g.count,
			MinPrice:     g.min,
			MaxPrice:     g.max,
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Period < buckets[j].Period
	})
	return buckets, nil
}
