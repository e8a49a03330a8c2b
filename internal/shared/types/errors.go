package types

import "github.com/rotisserie/eris"

var (
	ErrNoCatalogSource       = eris.New("no catalog source configured. Use --catalog or set catalog.source in the config file")
	ErrUnsupportedCatalog    = eris.New("unsupported catalog source")
	ErrUnsupportedReportType = eris.New("unsupported report type")
	ErrNoPriceHistory        = eris.New("no price history found for ingredient")
	ErrInvalidPortions       = eris.New("portions must be a positive integer")
	ErrInvalidPortionSize    = eris.New("portion size must be positive")
)
