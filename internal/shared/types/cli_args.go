package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	Catalog    string
	ReportName string
	ReportType []string
	Dir        string
	LogLevel   string
	LogFormat  string

	IDs          []string
	Portions     int
	PortionGrams float64
	PerPortion   bool
	IngredientID string
	Supplier     string
	Months       int
	Period       string
	TargetMargin float64
	ImportTarget string
}
