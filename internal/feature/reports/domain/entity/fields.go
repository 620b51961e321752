package entity

// Stored field names of the company collection. The collection predates this
// service, so the names keep their original spelling and spacing.
const (
	FieldCompanyName       = "Company Name"
	FieldFirmographics     = "Firmographics"
	FieldTechnographics    = "Technographics"
	FieldNTP               = "NTP"
	FieldFinancialData     = "Financial_Data"
	FieldStockPerformance  = "Stock_Performance"
	FieldGrowth            = "Growth"
	FieldBuyersGroup       = "Buyers_Group"
	FieldMutualFundHolders = "Mutual_Fund_Holders"
)

// PerformanceField returns the stored field name of a performance bucket,
// e.g. "Daily_Performance".
func PerformanceField(b PerformanceBucket) string {
	return string(b) + "_Performance"
}
