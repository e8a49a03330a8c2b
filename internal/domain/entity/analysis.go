package entity

import "time"

// TrendDirection classifies the slope of a price series.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// TrendAnalysis is the least-squares fit of a price series against time.
// Slope is in price units per day.
type TrendAnalysis struct {
	Slope                float64        `json:"slope"`
	Correlation          float64        `json:"correlation"`
	AverageMonthlyChange float64        `json:"average_monthly_change"`
	Volatility           float64        `json:"volatility"`
	Trend                TrendDirection `json:"trend"`
}

// CostProjection is an extrapolated future price.
type CostProjection struct {
	Date           time.Time `json:"date"`
	ProjectedPrice float64   `json:"projected_price"`
	Confidence     float64   `json:"confidence"`
}

// Period is a bucketing granularity for price history.
type Period string

const (
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// PeriodBucket summarizes the price points falling in one period.
type PeriodBucket struct {
	Period       string  `json:"period"`
	AveragePrice float64 `json:"average_price"`
	Count        int     `json:"count"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
}

// SupplierSummary compares what one supplier charged for an ingredient.
type SupplierSummary struct {
	Supplier      string    `json:"supplier"`
	LatestPrice   float64   `json:"latest_price"`
	LatestDate    time.Time `json:"latest_date"`
	AveragePrice  float64   `json:"average_price"`
	MinPrice      float64   `json:"min_price"`
	MaxPrice      float64   `json:"max_price"`
	Count         int       `json:"count"`
	ChangePercent float64   `json:"change_percent"`
}

// PriceReport bundles every analysis of one ingredient's price history.
type PriceReport struct {
	IngredientID   string            `json:"ingredient_id"`
	IngredientName string            `json:"ingredient_name"`
	Supplier       string            `json:"supplier,omitempty"`
	Points         int               `json:"points"`
	Trend          TrendAnalysis     `json:"trend"`
	Projections    []CostProjection  `json:"projections,omitempty"`
	Buckets        []PeriodBucket    `json:"buckets,omitempty"`
	BucketPeriod   Period            `json:"bucket_period,omitempty"`
	Suppliers      []SupplierSummary `json:"suppliers,omitempty"`
}
