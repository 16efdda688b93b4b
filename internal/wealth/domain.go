package wealth

// WealthBand describes one net-worth bracket of the global adult population.
type WealthBand struct {
	Band            string  `json:"band" validate:"required"`
	AdultsMillions  float64 `json:"adults_millions" validate:"gte=0"`
	PercentAdults   float64 `json:"percent_adults" validate:"gte=0,lte=100"`
	WealthTrillions float64 `json:"wealth_trillions" validate:"gte=0"`
	PercentWealth   float64 `json:"percent_wealth" validate:"gte=0,lte=100"`
	Order           int     `json:"order" validate:"gte=1"`
}

// HistoricalYear holds the share of adults in each wealth band for one year.
type HistoricalYear struct {
	Year          int     `json:"year" validate:"gte=1900,lte=2100"`
	Projection    bool    `json:"projection"`
	MoreThan1M    float64 `json:"more_than_1m" validate:"gte=0,lte=100"`
	From100kTo1M  float64 `json:"from_100k_to_1m" validate:"gte=0,lte=100"`
	From10kTo100k float64 `json:"from_10k_to_100k" validate:"gte=0,lte=100"`
	LessThan10k   float64 `json:"less_than_10k" validate:"gte=0,lte=100"`
}

// BillionaireBand describes one bracket of the billionaire population.
type BillionaireBand struct {
	Band                     string  `json:"band" validate:"required"`
	Individuals              int     `json:"individuals" validate:"gte=0"`
	PercentBillionaires      float64 `json:"percent_billionaires" validate:"gte=0,lte=100"`
	WealthTrillions          float64 `json:"wealth_trillions" validate:"gte=0"`
	PercentBillionaireWealth float64 `json:"percent_billionaire_wealth" validate:"gte=0,lte=100"`
}

// HeadlineMetric is a pre-formatted scalar shown as a metric card.
type HeadlineMetric struct {
	Label string `json:"label" validate:"required"`
	Value string `json:"value" validate:"required"`
	Delta string `json:"delta"`
}

// SourceInfo attributes the datasets.
type SourceInfo struct {
	Name        string `json:"name"`
	LastUpdated string `json:"last_updated"`
}

// Dataset bundles every table for serialisation.
type Dataset struct {
	WealthBands      []WealthBand      `json:"wealth_bands"`
	Historical       []HistoricalYear  `json:"historical"`
	BillionaireBands []BillionaireBand `json:"billionaire_bands"`
	Metrics          []HeadlineMetric  `json:"metrics"`
	Source           SourceInfo        `json:"source"`
}

// Trend is one wealth band's share of adults across the historical years.
type Trend struct {
	Name   string
	Values []float64
}
