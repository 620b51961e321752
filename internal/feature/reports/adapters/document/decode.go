// Package document decodes stored company documents into entity.Company.
//
// Stored documents are loosely typed: sub-collections may be missing, null, or
// of the wrong shape, and leaf values may be strings in one document and numbers
// in the next. Decoding never fails on such input; a value of the wrong shape is
// treated as absent and reported with a warning log.
package document

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"nexora_backend/internal/feature/reports/domain/entity"
)

// Decode converts a raw company document into entity.Company.
// When fields is non-empty only those top-level fields (plus the company name)
// are decoded, mirroring a store-side projection.
func Decode(raw bson.Raw, fields ...string) entity.Company {
	d := decoder{want: fieldSet(fields)}

	var c entity.Company
	c.Name = text(raw.Lookup(entity.FieldCompanyName))
	d.company = c.Name

	if d.wants(entity.FieldFirmographics) {
		c.Firmographics = d.firmographics(raw.Lookup(entity.FieldFirmographics))
	}
	if d.wants(entity.FieldTechnographics) {
		for _, e := range d.documents(raw.Lookup(entity.FieldTechnographics), entity.FieldTechnographics) {
			c.Technographics = append(c.Technographics, techEntry(e))
		}
	}
	if d.wants(entity.FieldNTP) {
		for _, e := range d.documents(raw.Lookup(entity.FieldNTP), entity.FieldNTP) {
			c.NTP = append(c.NTP, ntpEntry(e))
		}
	}
	if d.wants(entity.FieldFinancialData) {
		c.FinancialData = d.financialData(raw.Lookup(entity.FieldFinancialData))
	}
	if d.wants(entity.FieldStockPerformance) {
		c.StockPerformance = d.stockPerformance(raw.Lookup(entity.FieldStockPerformance))
	}
	if d.wants(entity.FieldGrowth) {
		for _, e := range d.documents(raw.Lookup(entity.FieldGrowth), entity.FieldGrowth) {
			c.Growth = append(c.Growth, entity.GrowthEntry{
				Period:  text(e.Lookup("Period")),
				EndDate: text(e.Lookup("End Date")),
				Ratio:   number(e.Lookup("Growth")),
			})
		}
	}
	if d.wants(entity.FieldBuyersGroup) {
		for _, e := range d.documents(raw.Lookup(entity.FieldBuyersGroup), entity.FieldBuyersGroup) {
			c.BuyersGroup = append(c.BuyersGroup, entity.BuyerGroupMember{
				Name:        text(e.Lookup("Name")),
				Relation:    text(e.Lookup("Relation")),
				Shares:      text(e.Lookup("Shares")),
				Description: text(e.Lookup("Description")),
				Date:        text(e.Lookup("Date")),
			})
		}
	}
	if d.wants(entity.FieldMutualFundHolders) {
		for _, e := range d.documents(raw.Lookup(entity.FieldMutualFundHolders), entity.FieldMutualFundHolders) {
			c.MutualFundHolders = append(c.MutualFundHolders, entity.MutualFundHolder{
				Date:         text(e.Lookup("Date")),
				Name:         text(e.Lookup("Name")),
				HoldingRatio: number(e.Lookup("Holding")),
				Shares:       text(e.Lookup("Shares")),
			})
		}
	}
	return c
}

// DecodeExtJSON decodes a company document from (relaxed) extended JSON.
// Plain JSON is valid relaxed extended JSON.
func DecodeExtJSON(data []byte, fields ...string) (entity.Company, error) {
	var doc bson.D
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return entity.Company{}, fmt.Errorf("decode company document: %w", err)
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return entity.Company{}, fmt.Errorf("encode company document: %w", err)
	}
	return Decode(bson.Raw(raw), fields...), nil
}

type decoder struct {
	company string
	want    map[string]struct{}
}

func fieldSet(fields []string) map[string]struct{} {
	if len(fields) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func (d *decoder) wants(field string) bool {
	if d.want == nil {
		return true
	}
	_, ok := d.want[field]
	return ok
}

// mismatch logs a value whose BSON type does not match the schema.
func (d *decoder) mismatch(field string, t bson.Type) {
	slog.Warn("company document shape mismatch; treating as empty",
		"company", d.company, "field", field, "type", t.String())
}

// document returns v as an embedded document. Missing and null values are
// silently absent; any other type is a mismatch.
func (d *decoder) document(v bson.RawValue, field string) (bson.Raw, bool) {
	switch v.Type {
	case 0, bson.TypeNull, bson.TypeUndefined:
		return nil, false
	case bson.TypeEmbeddedDocument:
		return v.Document(), true
	}
	d.mismatch(field, v.Type)
	return nil, false
}

// documents returns the document elements of an array value in order.
// A non-array value yields no elements; non-document elements are skipped.
func (d *decoder) documents(v bson.RawValue, field string) []bson.Raw {
	switch v.Type {
	case 0, bson.TypeNull, bson.TypeUndefined:
		return nil
	case bson.TypeArray:
	default:
		d.mismatch(field, v.Type)
		return nil
	}
	vals, err := v.Array().Values()
	if err != nil {
		slog.Warn("company document has a corrupt array; treating as empty",
			"company", d.company, "field", field, "error", err)
		return nil
	}
	out := make([]bson.Raw, 0, len(vals))
	for _, e := range vals {
		if e.Type != bson.TypeEmbeddedDocument {
			d.mismatch(field+"[]", e.Type)
			continue
		}
		out = append(out, e.Document())
	}
	return out
}

// firmographics accepts either the stored list (only index 0 is read) or a
// single embedded document.
func (d *decoder) firmographics(v bson.RawValue) *entity.Firmographics {
	if v.Type == bson.TypeArray {
		vals, err := v.Array().Values()
		if err != nil {
			slog.Warn("company document has a corrupt array; treating as empty",
				"company", d.company, "field", entity.FieldFirmographics, "error", err)
			return nil
		}
		if len(vals) == 0 {
			return nil
		}
		v = vals[0]
	}
	doc, ok := d.document(v, entity.FieldFirmographics)
	if !ok {
		return nil
	}

	f := &entity.Firmographics{}
	if about, ok := d.document(doc.Lookup("About"), "Firmographics.About"); ok {
		f.About = &entity.About{
			Name:              text(about.Lookup("Company Name")),
			Domain:            text(about.Lookup("Domain")),
			Industry:          text(about.Lookup("Industry")),
			FullTimeEmployees: number(about.Lookup("Full Time employees")),
		}
	}
	if loc, ok := d.document(doc.Lookup("Location"), "Firmographics.Location"); ok {
		f.Location = &entity.Location{
			Address: text(loc.Lookup("Address")),
			City:    text(loc.Lookup("City")),
			State:   text(loc.Lookup("State")),
			Country: text(loc.Lookup("Country")),
			Contact: text(loc.Lookup("Contact")),
		}
	}
	return f
}

func techEntry(e bson.Raw) entity.TechEntry {
	return entity.TechEntry{
		Category:     text(e.Lookup("Category")),
		Keyword:      text(e.Lookup("Keyword")),
		PageURL:      text(e.Lookup("Page URL")),
		PreviousDate: text(e.Lookup("Previous Date")),
		LatestDate:   text(e.Lookup("Latest Date")),
		RenewalDate:  text(e.Lookup("Renewal Date")),
	}
}

func ntpEntry(e bson.Raw) entity.NTPEntry {
	return entity.NTPEntry{
		Category:            text(e.Lookup("Category")),
		Technology:          text(e.Lookup("Technology")),
		PurchaseProbability: number(e.Lookup("Purchase Probability (%)")),
		PurchasePrediction:  text(e.Lookup("Purchase Prediction")),
		Analysis:            text(e.Lookup("NTP Analysis")),
	}
}

func (d *decoder) financialData(v bson.RawValue) *entity.FinancialData {
	doc, ok := d.document(v, entity.FieldFinancialData)
	if !ok {
		return nil
	}
	fd := &entity.FinancialData{}
	if f, ok := d.document(doc.Lookup("Finance"), "Financial_Data.Finance"); ok {
		fd.Finance = &entity.Finance{
			ID:              text(f.Lookup("ID")),
			InvestorWebsite: text(f.Lookup("Investor Website")),
			Exchange:        text(f.Lookup("Exchange")),
			DateTime:        text(f.Lookup("Date & Time")),
			CurrentPrice:    text(f.Lookup("Current Price")),
			MarketCap:       text(f.Lookup("Market Cap")),
			TotalRevenue:    text(f.Lookup("Total Revenue")),
			RevenueGrowth:   text(f.Lookup("Revenue Growth")),
			ProfitGrowth:    text(f.Lookup("Profit Growth")),
		}
	}
	if dv, ok := d.document(doc.Lookup("Dividend"), "Financial_Data.Dividend"); ok {
		fd.Dividend = &entity.Dividend{
			Rate:             text(dv.Lookup("Dividend Rate")),
			Yield:            text(dv.Lookup("Dividend Yield")),
			LastDividendDate: text(dv.Lookup("Date of Last Dividend")),
			FiveYearAvgYield: text(dv.Lookup("Five Years Average Dividend Yield")),
			Currency:         text(dv.Lookup("Currency")),
			RevenueGrowth:    text(dv.Lookup("Revenue Growth")),
			ProfitGrowth:     text(dv.Lookup("Profit Growth")),
		}
	}
	return fd
}

func (d *decoder) stockPerformance(v bson.RawValue) *entity.StockPerformance {
	doc, ok := d.document(v, entity.FieldStockPerformance)
	if !ok {
		return nil
	}
	bars := func(b entity.PerformanceBucket) []entity.Bar {
		field := entity.PerformanceField(b)
		var out []entity.Bar
		for _, e := range d.documents(doc.Lookup(field), entity.FieldStockPerformance+"."+field) {
			out = append(out, entity.Bar{
				Date:      text(e.Lookup("Date")),
				Open:      text(e.Lookup("Open")),
				High:      text(e.Lookup("High")),
				Low:       text(e.Lookup("Low")),
				Close:     text(e.Lookup("Close")),
				Volume:    number(e.Lookup("Volume")),
				AdjClose:  text(e.Lookup("Adjclose")),
				Dividends: text(e.Lookup("Dividends")),
			})
		}
		return out
	}
	return &entity.StockPerformance{
		Daily:     bars(entity.BucketDaily),
		Weekly:    bars(entity.BucketWeekly),
		Monthly:   bars(entity.BucketMonthly),
		Quarterly: bars(entity.BucketQuarterly),
		Yearly:    bars(entity.BucketYearly),
	}
}

// text reads a leaf as a string. Numbers are rendered in their shortest form;
// any other type reads as empty.
func text(v bson.RawValue) string {
	switch v.Type {
	case bson.TypeString:
		return v.StringValue()
	case bson.TypeDouble:
		f := v.Double()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case bson.TypeInt32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case bson.TypeInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case bson.TypeDecimal128:
		return v.Decimal128().String()
	}
	return ""
}

// number reads a leaf as a finite float. Numeric strings are accepted;
// anything else reads as nil.
func number(v bson.RawValue) *float64 {
	var f float64
	switch v.Type {
	case bson.TypeDouble:
		f = v.Double()
	case bson.TypeInt32:
		f = float64(v.Int32())
	case bson.TypeInt64:
		f = float64(v.Int64())
	case bson.TypeDecimal128:
		p, err := strconv.ParseFloat(v.Decimal128().String(), 64)
		if err != nil {
			return nil
		}
		f = p
	case bson.TypeString:
		p, err := strconv.ParseFloat(strings.TrimSpace(v.StringValue()), 64)
		if err != nil {
			return nil
		}
		f = p
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
