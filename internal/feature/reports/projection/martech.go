package projection

import "nexora_backend/internal/feature/reports/domain/entity"

// ProjectNTP emits one row per NTP entry. Detection dates come from the
// technographics entry with the same technology name. Companies without NTP
// entries contribute no rows.
func ProjectNTP(companies []entity.Company) []NTPRow {
	rows := make([]NTPRow, 0, len(companies))
	for _, c := range companies {
		if len(c.NTP) == 0 {
			continue
		}
		name := Text(c.Name)
		domain := Text(about(c).Domain)
		techs := NewTechIndex(c.Technographics)
		for _, n := range c.NTP {
			dates := techs.Resolve(n.Technology)
			rows = append(rows, NTPRow{
				CompanyName:          name,
				Domain:               domain,
				Category:             Text(n.Category),
				Technology:           Text(n.Technology),
				PurchaseProbability:  NumberOf(n.PurchaseProbability),
				PurchasePrediction:   Text(n.PurchasePrediction),
				NTPAnalysis:          Text(n.Analysis),
				LatestDetectedDate:   dates.Latest,
				PreviousDetectedDate: dates.Previous,
			})
		}
	}
	return rows
}

// ProjectTechnographics emits one row per technographics entry.
func ProjectTechnographics(companies []entity.Company) []TechnographicsRow {
	rows := make([]TechnographicsRow, 0, len(companies))
	for _, c := range companies {
		a, loc := about(c), location(c)
		for _, t := range c.Technographics {
			rows = append(rows, TechnographicsRow{
				CompanyName:          Text(c.Name),
				Region:               Text(loc.Country),
				Industry:             Text(a.Industry),
				EmployeeSize:         NumberOf(a.FullTimeEmployees),
				Category:             Text(t.Category),
				Technology:           Text(t.Keyword),
				Domain:               Text(a.Domain),
				PreviousDetectedDate: Text(t.PreviousDate),
				LatestDetectedDate:   Text(t.LatestDate),
				RenewalDate:          Text(t.RenewalDate),
			})
		}
	}
	return rows
}
