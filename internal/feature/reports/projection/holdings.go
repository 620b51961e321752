package projection

import (
	"strconv"

	"github.com/google/uuid"

	"nexora_backend/internal/feature/reports/domain/entity"
)

// Decimal places for the rendered percentages. Growth and mutual fund holdings
// deliberately differ.
const (
	GrowthDecimals  int32 = 2
	HoldingDecimals int32 = 4
)

// rowNamespace seeds the name-based UUIDs of buyer group and mutual fund rows.
var rowNamespace = uuid.MustParse("5d0c4f8e-3a4b-4f55-9f0e-6b1f2a7c9d10")

// identity is the company context repeated on every holdings row.
type identity struct {
	id, companyName, domain, industry, country string
}

func identityOf(c entity.Company) identity {
	a, loc := about(c), location(c)
	return identity{
		id:          Text(finance(c).ID),
		companyName: Text(c.Name),
		domain:      Text(a.Domain),
		industry:    Text(a.Industry),
		country:     Text(loc.Country),
	}
}

// key identifies the company for row identifiers: the finance ID when known,
// else the company name.
func (id identity) key() string {
	if id.id != NA {
		return id.id
	}
	return id.companyName
}

// RowID derives a stable identifier from the prefix, company key and row index.
// The same input always yields the same identifier.
func RowID(prefix, companyKey string, index int) string {
	name := prefix + "\x00" + companyKey + "\x00" + strconv.Itoa(index)
	return prefix + "-" + uuid.NewSHA1(rowNamespace, []byte(name)).String()
}

// ProjectGrowth emits one row per growth period, with the ratio rendered as a
// two-decimal percentage.
func ProjectGrowth(companies []entity.Company) []GrowthRow {
	rows := make([]GrowthRow, 0, len(companies))
	for _, c := range companies {
		id := identityOf(c)
		for _, g := range c.Growth {
			rows = append(rows, GrowthRow{
				ID:          id.id,
				CompanyName: id.companyName,
				Domain:      id.domain,
				Industry:    id.industry,
				Country:     id.country,
				Period:      Text(g.Period),
				EndDate:     Text(g.EndDate),
				Growth:      FormatRatio(g.Ratio, GrowthDecimals),
			})
		}
	}
	return rows
}

// ProjectBuyerGroups emits one row per buyer group member.
func ProjectBuyerGroups(companies []entity.Company) []BuyerGroupRow {
	rows := make([]BuyerGroupRow, 0, len(companies))
	for _, c := range companies {
		id := identityOf(c)
		for i, m := range c.BuyersGroup {
			rows = append(rows, BuyerGroupRow{
				ID:             id.id,
				UniqueID:       RowID("BG", id.key(), i),
				CompanyName:    id.companyName,
				Domain:         id.domain,
				Industry:       id.industry,
				Country:        id.country,
				BuyerGroupName: Text(m.Name),
				Relation:       Text(m.Relation),
				Shares:         Text(m.Shares),
				Description:    Text(m.Description),
				Date:           Text(m.Date),
			})
		}
	}
	return rows
}

// ProjectMutualFunds emits one row per mutual fund holder, with the holding
// ratio rendered as a four-decimal percentage.
func ProjectMutualFunds(companies []entity.Company) []MutualFundRow {
	rows := make([]MutualFundRow, 0, len(companies))
	for _, c := range companies {
		id := identityOf(c)
		for i, h := range c.MutualFundHolders {
			rows = append(rows, MutualFundRow{
				ID:          id.id,
				UniqueID:    RowID("MF", id.key(), i),
				CompanyName: id.companyName,
				Domain:      id.domain,
				Industry:    id.industry,
				Country:     id.country,
				Date:        Text(h.Date),
				FundName:    Text(h.Name),
				Holding:     FormatRatio(h.HoldingRatio, HoldingDecimals),
				Shares:      Text(h.Shares),
			})
		}
	}
	return rows
}
