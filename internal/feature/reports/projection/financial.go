package projection

import "nexora_backend/internal/feature/reports/domain/entity"

// LongBuckets are the performance buckets surfaced by the financial views, in
// emission order. Yearly bars are stored but not reported.
var LongBuckets = []entity.PerformanceBucket{
	entity.BucketDaily,
	entity.BucketWeekly,
	entity.BucketMonthly,
	entity.BucketQuarterly,
}

func financialBase(c entity.Company) FinancialBase {
	a, loc := about(c), location(c)
	f, d := finance(c), dividend(c)
	return FinancialBase{
		CompanyName:              Text(c.Name),
		Domain:                   Text(a.Domain),
		Industry:                 Text(a.Industry),
		FullTimeEmployees:        NumberOf(a.FullTimeEmployees),
		InvestorWebsite:          Text(f.InvestorWebsite),
		Exchange:                 Text(f.Exchange),
		Address:                  Text(loc.Address),
		City:                     Text(loc.City),
		State:                    Text(loc.State),
		Country:                  Text(loc.Country),
		Contact:                  Text(loc.Contact),
		DateTime:                 Text(f.DateTime),
		CurrentPrice:             Text(f.CurrentPrice),
		MarketCap:                Text(f.MarketCap),
		TotalRevenue:             Text(f.TotalRevenue),
		RevenueGrowth:            firstText(d.RevenueGrowth, f.RevenueGrowth),
		ProfitGrowth:             firstText(d.ProfitGrowth, f.ProfitGrowth),
		DividendRate:             Text(d.Rate),
		DividendYield:            Text(d.Yield),
		LastDividendDate:         Text(d.LastDividendDate),
		FiveYearAvgDividendYield: Text(d.FiveYearAvgYield),
		Currency:                 Text(d.Currency),
	}
}

func snapshot(b entity.Bar) PerformanceSnapshot {
	return PerformanceSnapshot{
		Date:      Text(b.Date),
		Open:      Text(b.Open),
		High:      Text(b.High),
		Low:       Text(b.Low),
		Close:     Text(b.Close),
		Volume:    NumberOf(b.Volume),
		AdjClose:  Text(b.AdjClose),
		Dividends: Text(b.Dividends),
	}
}

func performanceBar(b entity.Bar) PerformanceBar {
	return PerformanceBar{
		Date:      b.Date,
		Open:      b.Open,
		High:      b.High,
		Low:       b.Low,
		Close:     b.Close,
		Volume:    b.Volume,
		AdjClose:  b.AdjClose,
		Dividends: b.Dividends,
	}
}

// ProjectFinancialWide emits exactly one row per company, with the first bar of
// each surfaced performance bucket.
func ProjectFinancialWide(companies []entity.Company) []FinancialWideRow {
	rows := make([]FinancialWideRow, 0, len(companies))
	for _, c := range companies {
		sp := c.StockPerformance
		rows = append(rows, FinancialWideRow{
			FinancialBase:        financialBase(c),
			DailyPerformance:     snapshot(firstBar(sp.Bucket(entity.BucketDaily))),
			WeeklyPerformance:    snapshot(firstBar(sp.Bucket(entity.BucketWeekly))),
			MonthlyPerformance:   snapshot(firstBar(sp.Bucket(entity.BucketMonthly))),
			QuarterlyPerformance: snapshot(firstBar(sp.Bucket(entity.BucketQuarterly))),
		})
	}
	return rows
}

// ProjectFinancialLong emits one row per bar across the surfaced buckets.
// A company with no bars at all still gets one row with performanceType NA
// and an empty performance object.
func ProjectFinancialLong(companies []entity.Company) []FinancialLongRow {
	rows := make([]FinancialLongRow, 0, len(companies))
	for _, c := range companies {
		base := financialBase(c)
		emitted := 0
		for _, bucket := range LongBuckets {
			for _, b := range c.StockPerformance.Bucket(bucket) {
				rows = append(rows, FinancialLongRow{
					FinancialBase:   base,
					PerformanceType: string(bucket),
					Performance:     performanceBar(b),
				})
				emitted++
			}
		}
		if emitted == 0 {
			rows = append(rows, FinancialLongRow{FinancialBase: base, PerformanceType: NA})
		}
	}
	return rows
}
