package pricing

import (
	"sort"

	"github.com/diillson/kitchen-cost-engine/internal/domain/entity"
)

// CompareSuppliers summarizes the prices charged by each supplier of one
// ingredient, cheapest latest price first.
func CompareSuppliers(points []entity.PricePoint) []entity.SupplierSummary {
	bySupplier := make(map[string][]entity.PricePoint)
	var order []string
	for _, p := range sortedByDate(points) {
		if _, ok := bySupplier[p.Supplier]; !ok {
			order = append(order, p.Supplier)
		}
		bySupplier[p.Supplier] = append(bySupplier[p.Supplier], p)
	}

	out := make([]entity.SupplierSummary, 0, len(order))
	for _, supplier := range order {
		series := bySupplier[supplier]
		first, last := series[0], series[len(series)-1]

		s := entity.SupplierSummary{
			Supplier:    supplier,
			LatestPrice: last.Price,
			LatestDate:  last.Date,
			MinPrice:    first.Price,
			MaxPrice:    first.Price,
			Count:       len(series),
		}
		sum := 0.0
		for _, p := range series {
			sum += p.Price
			if p.Price < s.MinPrice {
				s.MinPrice = p.Price
			}
			if p.Price > s.MaxPrice {
				s.MaxPrice = p.Price
			}
		}
		s.AveragePrice = sum / float64(len(series))
		if first.Price != 0 {
			s.ChangePercent = (last.Price - first.Price) / first.Price * 100
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LatestPrice != out[j].LatestPrice {
			return out[i].LatestPrice < out[j].LatestPrice
		}
		return out[i].Supplier < out[j].Supplier
	})
	return out
}
