// Package entity defines the domain models for the reports feature.
package entity

// Company is one real-world company as stored in the document collection.
// Optional sub-structures are nil when absent and lists are empty when absent;
// neither case is an error.
type Company struct {
	Name              string             `json:"name"`
	Firmographics     *Firmographics     `json:"firmographics,omitempty"`
	Technographics    []TechEntry        `json:"technographics,omitempty"`
	NTP               []NTPEntry         `json:"ntp,omitempty"`
	FinancialData     *FinancialData     `json:"financialData,omitempty"`
	StockPerformance  *StockPerformance  `json:"stockPerformance,omitempty"`
	Growth            []GrowthEntry      `json:"growth,omitempty"`
	BuyersGroup       []BuyerGroupMember `json:"buyersGroup,omitempty"`
	MutualFundHolders []MutualFundHolder `json:"mutualFundHolders,omitempty"`
}

// Firmographics holds the descriptive profile of a company.
// Stored documents keep it in a list, but only the first entry is ever meaningful.
type Firmographics struct {
	About    *About    `json:"about,omitempty"`
	Location *Location `json:"location,omitempty"`
}

// About is the identity part of Firmographics.
type About struct {
	Name              string   `json:"name,omitempty"`
	Domain            string   `json:"domain,omitempty"`
	Industry          string   `json:"industry,omitempty"`
	FullTimeEmployees *float64 `json:"fullTimeEmployees,omitempty"`
}

// Location is the postal part of Firmographics.
type Location struct {
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// TechEntry is one detected technology. Dates are free-form strings.
type TechEntry struct {
	Category     string `json:"category,omitempty"`
	Keyword      string `json:"keyword,omitempty"` // technology name
	PageURL      string `json:"pageUrl,omitempty"`
	PreviousDate string `json:"previousDate,omitempty"`
	LatestDate   string `json:"latestDate,omitempty"`
	RenewalDate  string `json:"renewalDate,omitempty"`
}

// NTPEntry is a predicted next technology purchase.
type NTPEntry struct {
	Category            string   `json:"category,omitempty"`
	Technology          string   `json:"technology,omitempty"`
	PurchaseProbability *float64 `json:"purchaseProbability,omitempty"` // percent, 0-100
	PurchasePrediction  string   `json:"purchasePrediction,omitempty"`
	Analysis            string   `json:"analysis,omitempty"`
}

// FinancialData groups market and dividend facts. All leaves are free-form strings.
type FinancialData struct {
	Finance  *Finance  `json:"finance,omitempty"`
	Dividend *Dividend `json:"dividend,omitempty"`
}

// Finance holds listing and valuation facts.
// RevenueGrowth and ProfitGrowth are only present in documents written before
// they moved under Dividend.
type Finance struct {
	ID              string `json:"id,omitempty"`
	InvestorWebsite string `json:"investorWebsite,omitempty"`
	Exchange        string `json:"exchange,omitempty"`
	DateTime        string `json:"dateTime,omitempty"`
	CurrentPrice    string `json:"currentPrice,omitempty"`
	MarketCap       string `json:"marketCap,omitempty"`
	TotalRevenue    string `json:"totalRevenue,omitempty"`
	RevenueGrowth   string `json:"revenueGrowth,omitempty"`
	ProfitGrowth    string `json:"profitGrowth,omitempty"`
}

// Dividend holds dividend and growth facts.
type Dividend struct {
	Rate             string `json:"rate,omitempty"`
	Yield            string `json:"yield,omitempty"`
	LastDividendDate string `json:"lastDividendDate,omitempty"`
	FiveYearAvgYield string `json:"fiveYearAvgYield,omitempty"`
	Currency         string `json:"currency,omitempty"`
	RevenueGrowth    string `json:"revenueGrowth,omitempty"`
	ProfitGrowth     string `json:"profitGrowth,omitempty"`
}

// StockPerformance holds five independent, time-bucketed bar lists.
type StockPerformance struct {
	Daily     []Bar `json:"daily,omitempty"`
	Weekly    []Bar `json:"weekly,omitempty"`
	Monthly   []Bar `json:"monthly,omitempty"`
	Quarterly []Bar `json:"quarterly,omitempty"`
	Yearly    []Bar `json:"yearly,omitempty"`
}

// Bar is one OHLCV bar. Price fields are kept as stored strings.
type Bar struct {
	Date      string   `json:"date,omitempty"`
	Open      string   `json:"open,omitempty"`
	High      string   `json:"high,omitempty"`
	Low       string   `json:"low,omitempty"`
	Close     string   `json:"close,omitempty"`
	Volume    *float64 `json:"volume,omitempty"`
	AdjClose  string   `json:"adjClose,omitempty"`
	Dividends string   `json:"dividends,omitempty"`
}

// GrowthEntry is one growth period. Ratio is a fraction (0.12 == 12%).
type GrowthEntry struct {
	Period  string   `json:"period,omitempty"`
	EndDate string   `json:"endDate,omitempty"`
	Ratio   *float64 `json:"ratio,omitempty"`
}

// BuyerGroupMember is one member of the company's buyer group.
type BuyerGroupMember struct {
	Name        string `json:"name,omitempty"`
	Relation    string `json:"relation,omitempty"`
	Shares      string `json:"shares,omitempty"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
}

// MutualFundHolder is one mutual fund holding the company's stock.
// HoldingRatio is a fraction.
type MutualFundHolder struct {
	Date         string   `json:"date,omitempty"`
	Name         string   `json:"name,omitempty"`
	HoldingRatio *float64 `json:"holdingRatio,omitempty"`
	Shares       string   `json:"shares,omitempty"`
}

// Bucket returns the bars of the named performance bucket, or nil.
func (s *StockPerformance) Bucket(b PerformanceBucket) []Bar {
	if s == nil {
		return nil
	}
	switch b {
	case BucketDaily:
		return s.Daily
	case BucketWeekly:
		return s.Weekly
	case BucketMonthly:
		return s.Monthly
	case BucketQuarterly:
		return s.Quarterly
	case BucketYearly:
		return s.Yearly
	}
	return nil
}

// PerformanceBucket names a stock performance time bucket.
type PerformanceBucket string

const (
	BucketDaily     PerformanceBucket = "Daily"
	BucketWeekly    PerformanceBucket = "Weekly"
	BucketMonthly   PerformanceBucket = "Monthly"
	BucketQuarterly PerformanceBucket = "Quarterly"
	BucketYearly    PerformanceBucket = "Yearly"
)
