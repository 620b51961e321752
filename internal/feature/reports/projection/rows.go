// Package projection flattens company documents into the rows of each report view.
//
// Every projector is a pure function over a slice of companies: it never
// mutates its input, emits rows in source order, and resolves every missing
// value to NA instead of failing.
package projection

// NTPRow is one predicted next technology purchase.
type NTPRow struct {
	CompanyName          string `json:"companyName"`
	Domain               string `json:"domain"`
	Category             string `json:"category"`
	Technology           string `json:"technology"`
	PurchaseProbability  Number `json:"purchaseProbability"`
	PurchasePrediction   string `json:"purchasePrediction"`
	NTPAnalysis          string `json:"ntpAnalysis"`
	LatestDetectedDate   string `json:"latestDetectedDate"`
	PreviousDetectedDate string `json:"previousDetectedDate"`
}

// TechnographicsRow is one detected technology together with company context.
type TechnographicsRow struct {
	CompanyName          string `json:"companyName"`
	Region               string `json:"region"`
	Industry             string `json:"industry"`
	EmployeeSize         Number `json:"employeeSize"`
	Category             string `json:"category"`
	Technology           string `json:"technology"`
	Domain               string `json:"domain"`
	PreviousDetectedDate string `json:"previousDetectedDate"`
	LatestDetectedDate   string `json:"latestDetectedDate"`
	RenewalDate          string `json:"renewalDate"`
}

// FinancialBase is the company-level part shared by the wide and long financial rows.
type FinancialBase struct {
	CompanyName              string `json:"companyName"`
	Domain                   string `json:"domain"`
	Industry                 string `json:"industry"`
	FullTimeEmployees        Number `json:"fullTimeEmployees"`
	InvestorWebsite          string `json:"investorWebsite"`
	Exchange                 string `json:"exchange"`
	Address                  string `json:"address"`
	City                     string `json:"city"`
	State                    string `json:"state"`
	Country                  string `json:"country"`
	Contact                  string `json:"contact"`
	DateTime                 string `json:"dateTime"`
	CurrentPrice             string `json:"currentPrice"`
	MarketCap                string `json:"marketCap"`
	TotalRevenue             string `json:"totalRevenue"`
	RevenueGrowth            string `json:"revenueGrowth"`
	ProfitGrowth             string `json:"profitGrowth"`
	DividendRate             string `json:"dividendRate"`
	DividendYield            string `json:"dividendYield"`
	LastDividendDate         string `json:"lastDividendDate"`
	FiveYearAvgDividendYield string `json:"fiveYearAvgDividendYield"`
	Currency                 string `json:"currency"`
}

// PerformanceSnapshot is a bar with every field defaulted to NA.
type PerformanceSnapshot struct {
	Date      string `json:"date"`
	Open      string `json:"open"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Close     string `json:"close"`
	Volume    Number `json:"volume"`
	AdjClose  string `json:"adjClose"`
	Dividends string `json:"dividends"`
}

// FinancialWideRow is the one-row-per-company financial view.
type FinancialWideRow struct {
	FinancialBase
	DailyPerformance     PerformanceSnapshot `json:"dailyPerformance"`
	WeeklyPerformance    PerformanceSnapshot `json:"weeklyPerformance"`
	MonthlyPerformance   PerformanceSnapshot `json:"monthlyPerformance"`
	QuarterlyPerformance PerformanceSnapshot `json:"quarterlyPerformance"`
}

// PerformanceBar is a bar as stored: fields that are absent are omitted, so a
// company without any bars carries an empty object.
type PerformanceBar struct {
	Date      string   `json:"date,omitempty"`
	Open      string   `json:"open,omitempty"`
	High      string   `json:"high,omitempty"`
	Low       string   `json:"low,omitempty"`
	Close     string   `json:"close,omitempty"`
	Volume    *float64 `json:"volume,omitempty"`
	AdjClose  string   `json:"adjClose,omitempty"`
	Dividends string   `json:"dividends,omitempty"`
}

// FinancialLongRow is one (company, bucket, bar) triple.
type FinancialLongRow struct {
	FinancialBase
	PerformanceType string         `json:"performanceType"`
	Performance     PerformanceBar `json:"performance"`
}

// GrowthRow is one growth period of a company.
type GrowthRow struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName"`
	Domain      string `json:"domain"`
	Industry    string `json:"industry"`
	Country     string `json:"country"`
	Period      string `json:"period"`
	EndDate     string `json:"endDate"`
	Growth      string `json:"growth"`
}

// BuyerGroupRow is one buyer group member of a company.
type BuyerGroupRow struct {
	ID             string `json:"id"`
	UniqueID       string `json:"uniqueId"`
	CompanyName    string `json:"companyName"`
	Domain         string `json:"domain"`
	Industry       string `json:"industry"`
	Country        string `json:"country"`
	BuyerGroupName string `json:"buyerGroupName"`
	Relation       string `json:"relation"`
	Shares         string `json:"shares"`
	Description    string `json:"description"`
	Date           string `json:"date"`
}

// MutualFundRow is one mutual fund holder of a company.
type MutualFundRow struct {
	ID          string `json:"id"`
	UniqueID    string `json:"uniqueId"`
	CompanyName string `json:"companyName"`
	Domain      string `json:"domain"`
	Industry    string `json:"industry"`
	Country     string `json:"country"`
	Date        string `json:"date"`
	FundName    string `json:"fundName"`
	Holding     string `json:"holding"`
	Shares      string `json:"shares"`
}
