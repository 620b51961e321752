package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"nexora_backend/internal/feature/reports/domain/entity"
)

// mustRaw はテスト用にbson.Mをbson.Rawへ変換します。
func mustRaw(t *testing.T, doc bson.M) bson.Raw {
	t.Helper()
	b, err := bson.Marshal(doc)
	require.NoError(t, err)
	return bson.Raw(b)
}

func TestDecode_FullDocument(t *testing.T) {
	raw := mustRaw(t, bson.M{
		"Company Name": "Acme",
		"Firmographics": bson.A{
			bson.M{
				"About":    bson.M{"Company Name": "Acme Corp", "Domain": "acme.com", "Industry": "Software", "Full Time employees": int32(1200)},
				"Location": bson.M{"Address": "1 Main St", "City": "Springfield", "Country": "US"},
			},
			bson.M{"About": bson.M{"Domain": "ignored.com"}},
		},
		"Technographics": bson.A{
			bson.M{"Category": "CRM", "Keyword": "Salesforce", "Page URL": "https://acme.com", "Previous Date": "2022-01-01", "Latest Date": "2023-01-01", "Renewal Date": "2024-01-01"},
		},
		"NTP": bson.A{
			bson.M{"Category": "CRM", "Technology": "Salesforce", "Purchase Probability (%)": 87.5, "Purchase Prediction": "High", "NTP Analysis": "likely"},
		},
		"Financial_Data": bson.M{
			"Finance":  bson.M{"ID": "ACME", "Exchange": "NYSE", "Current Price": "$20.63", "Market Cap": 12.5},
			"Dividend": bson.M{"Dividend Rate": "0.5", "Currency": "USD", "Revenue Growth": "12%"},
		},
		"Stock_Performance": bson.M{
			"Daily_Performance": bson.A{
				bson.M{"Date": "2024-01-02", "Open": "10", "High": "11", "Low": "9", "Close": "10.5", "Volume": int64(5000), "Adjclose": "10.4"},
			},
			"Yearly_Performance": bson.A{bson.M{"Date": "2023"}},
		},
		"Growth":              bson.A{bson.M{"Period": "1Y", "End Date": "2023-12-31", "Growth": 0.12}},
		"Buyers_Group":        bson.A{bson.M{"Name": "Fund A", "Relation": "Owner", "Shares": int32(100), "Description": "d", "Date": "2023-06-30"}},
		"Mutual_Fund_Holders": bson.A{bson.M{"Date": "2023-06-30", "Name": "MF A", "Holding": 0.0123, "Shares": "1,000"}},
	})

	c := Decode(raw)

	assert.Equal(t, "Acme", c.Name)
	require.NotNil(t, c.Firmographics)
	require.NotNil(t, c.Firmographics.About)
	assert.Equal(t, "acme.com", c.Firmographics.About.Domain, "only the first firmographics entry counts")
	require.NotNil(t, c.Firmographics.About.FullTimeEmployees)
	assert.Equal(t, 1200.0, *c.Firmographics.About.FullTimeEmployees)
	assert.Equal(t, "US", c.Firmographics.Location.Country)

	require.Len(t, c.Technographics, 1)
	assert.Equal(t, entity.TechEntry{
		Category: "CRM", Keyword: "Salesforce", PageURL: "https://acme.com",
		PreviousDate: "2022-01-01", LatestDate: "2023-01-01", RenewalDate: "2024-01-01",
	}, c.Technographics[0])

	require.Len(t, c.NTP, 1)
	assert.Equal(t, 87.5, *c.NTP[0].PurchaseProbability)
	assert.Equal(t, "likely", c.NTP[0].Analysis)

	require.NotNil(t, c.FinancialData.Finance)
	assert.Equal(t, "12.5", c.FinancialData.Finance.MarketCap, "numeric leaves are read as text")
	assert.Equal(t, "12%", c.FinancialData.Dividend.RevenueGrowth)

	require.Len(t, c.StockPerformance.Daily, 1)
	assert.Equal(t, 5000.0, *c.StockPerformance.Daily[0].Volume)
	assert.Equal(t, "10.4", c.StockPerformance.Daily[0].AdjClose)
	assert.Len(t, c.StockPerformance.Yearly, 1)
	assert.Empty(t, c.StockPerformance.Weekly)

	assert.Equal(t, 0.12, *c.Growth[0].Ratio)
	assert.Equal(t, "100", c.BuyersGroup[0].Shares)
	assert.Equal(t, 0.0123, *c.MutualFundHolders[0].HoldingRatio)
}

func TestDecode_MissingEverything(t *testing.T) {
	c := Decode(mustRaw(t, bson.M{}))

	assert.Equal(t, entity.Company{}, c)
}

func TestDecode_ShapeMismatchTreatedAsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		doc   bson.M
		check func(t *testing.T, c entity.Company)
	}{
		{
			name: "technographics is a string",
			doc:  bson.M{"Company Name": "X", "Technographics": "not a list"},
			check: func(t *testing.T, c entity.Company) {
				assert.Empty(t, c.Technographics)
			},
		},
		{
			name: "ntp is a document",
			doc:  bson.M{"NTP": bson.M{"Technology": "CRM"}},
			check: func(t *testing.T, c entity.Company) {
				assert.Empty(t, c.NTP)
			},
		},
		{
			name: "growth list holds scalars",
			doc:  bson.M{"Growth": bson.A{1, "two", bson.M{"Period": "1Y"}}},
			check: func(t *testing.T, c entity.Company) {
				require.Len(t, c.Growth, 1)
				assert.Equal(t, "1Y", c.Growth[0].Period)
				assert.Nil(t, c.Growth[0].Ratio)
			},
		},
		{
			name: "financial data is an array",
			doc:  bson.M{"Financial_Data": bson.A{bson.M{"Finance": bson.M{"ID": "X"}}}},
			check: func(t *testing.T, c entity.Company) {
				assert.Nil(t, c.FinancialData)
			},
		},
		{
			name: "null sub-collections",
			doc:  bson.M{"Buyers_Group": nil, "Mutual_Fund_Holders": nil, "Stock_Performance": nil},
			check: func(t *testing.T, c entity.Company) {
				assert.Empty(t, c.BuyersGroup)
				assert.Empty(t, c.MutualFundHolders)
				assert.Nil(t, c.StockPerformance)
			},
		},
		{
			name: "performance bucket is a number",
			doc:  bson.M{"Stock_Performance": bson.M{"Daily_Performance": 3}},
			check: func(t *testing.T, c entity.Company) {
				require.NotNil(t, c.StockPerformance)
				assert.Empty(t, c.StockPerformance.Daily)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Decode(mustRaw(t, tt.doc))
			tt.check(t, c)
		})
	}
}

func TestDecode_FirmographicsAsSingleDocument(t *testing.T) {
	c := Decode(mustRaw(t, bson.M{
		"Firmographics": bson.M{"About": bson.M{"Domain": "solo.io"}},
	}))

	require.NotNil(t, c.Firmographics)
	assert.Equal(t, "solo.io", c.Firmographics.About.Domain)
	assert.Nil(t, c.Firmographics.Location)
}

// TestDecode_FirmographicsFirstSlotOnly は先頭要素だけを読み、後続の要素で補わないことを検証します。
func TestDecode_FirmographicsFirstSlotOnly(t *testing.T) {
	tests := []struct {
		name  string
		first any
	}{
		{name: "null first entry", first: nil},
		{name: "scalar first entry", first: "broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Decode(mustRaw(t, bson.M{
				"Firmographics": bson.A{tt.first, bson.M{"About": bson.M{"Domain": "second.com"}}},
			}))
			assert.Nil(t, c.Firmographics)
		})
	}
}

func TestDecode_EmptyFirmographicsList(t *testing.T) {
	c := Decode(mustRaw(t, bson.M{"Firmographics": bson.A{}}))

	assert.Nil(t, c.Firmographics)
}

func TestDecode_FieldSelection(t *testing.T) {
	raw := mustRaw(t, bson.M{
		"Company Name":   "Acme",
		"NTP":            bson.A{bson.M{"Technology": "CRM"}},
		"Technographics": bson.A{bson.M{"Keyword": "CRM"}},
	})

	c := Decode(raw, entity.FieldNTP)

	assert.Equal(t, "Acme", c.Name, "company name is always decoded")
	assert.Len(t, c.NTP, 1)
	assert.Empty(t, c.Technographics)
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  *float64
	}{
		{"double", 1.5, ptr(1.5)},
		{"int32", int32(7), ptr(7)},
		{"int64", int64(9), ptr(9)},
		{"numeric string", " 42.5 ", ptr(42.5)},
		{"non numeric string", "n/a", nil},
		{"bool", true, nil},
		{"null", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := mustRaw(t, bson.M{"v": tt.value})
			got := number(raw.Lookup("v"))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestText(t *testing.T) {
	raw := mustRaw(t, bson.M{"s": "abc", "d": 2.50, "i": int32(3), "l": int64(1e12), "b": false})

	assert.Equal(t, "abc", text(raw.Lookup("s")))
	assert.Equal(t, "2.5", text(raw.Lookup("d")))
	assert.Equal(t, "3", text(raw.Lookup("i")))
	assert.Equal(t, "1000000000000", text(raw.Lookup("l")))
	assert.Equal(t, "", text(raw.Lookup("b")))
	assert.Equal(t, "", text(raw.Lookup("missing")))
}

func TestDecodeExtJSON(t *testing.T) {
	data := []byte(`{
		"Company Name": "Acme",
		"Firmographics": [{"About": {"Domain": "acme.com", "Full Time employees": 50}}],
		"Growth": [{"Period": "1Y", "End Date": "2023-12-31", "Growth": null}]
	}`)

	c, err := DecodeExtJSON(data)
	require.NoError(t, err)

	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, 50.0, *c.Firmographics.About.FullTimeEmployees)
	require.Len(t, c.Growth, 1)
	assert.Nil(t, c.Growth[0].Ratio)
}

func TestDecodeExtJSON_Invalid(t *testing.T) {
	_, err := DecodeExtJSON([]byte(`{"Company Name":`))

	assert.Error(t, err)
}

func ptr(f float64) *float64 { return &f }
