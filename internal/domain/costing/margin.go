package costing

// RealMargin returns the margin over the sell price as a percentage.
// A zero or negative sell price has a margin of 0.
func RealMargin(sellPrice, totalCost float64) float64 {
	if sellPrice > 0 {
		return (sellPrice - totalCost) / sellPrice * 100
	}
	return 0
}

// FoodCostPercent (CMV) is the share of the sell price spent on ingredients.
func FoodCostPercent(totalCost, sellPrice float64) float64 {
	if sellPrice > 0 {
		return totalCost / sellPrice * 100
	}
	return 0
}

// SuggestedSellPrice is the price that yields targetMarginPercent over cost.
// Targets of 100% or more cannot be reached and return 0.
func SuggestedSellPrice(totalCost, targetMarginPercent float64) float64 {
	if targetMarginPercent >= 100 {
		return 0
	}
	return totalCost / (1 - targetMarginPercent/100)
}
