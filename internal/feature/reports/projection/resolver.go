package projection

import "nexora_backend/internal/feature/reports/domain/entity"

// DetectedDates is the pair of detection dates resolved for a technology.
type DetectedDates struct {
	Previous string
	Latest   string
}

// TechIndex looks up technographics entries by technology name.
// Names match exactly and case-sensitively; when a name repeats, the first
// entry in source order wins.
type TechIndex struct {
	byKeyword map[string]entity.TechEntry
}

// NewTechIndex indexes techs once so that each lookup is constant time.
func NewTechIndex(techs []entity.TechEntry) TechIndex {
	idx := TechIndex{byKeyword: make(map[string]entity.TechEntry, len(techs))}
	for _, t := range techs {
		if _, seen := idx.byKeyword[t.Keyword]; !seen {
			idx.byKeyword[t.Keyword] = t
		}
	}
	return idx
}

// Resolve returns the detection dates for technology, or NA for both on a miss.
func (idx TechIndex) Resolve(technology string) DetectedDates {
	t, ok := idx.byKeyword[technology]
	if !ok {
		return DetectedDates{Previous: NA, Latest: NA}
	}
	return DetectedDates{Previous: Text(t.PreviousDate), Latest: Text(t.LatestDate)}
}

// ResolveDates is a one-shot lookup for callers holding a single name.
func ResolveDates(techs []entity.TechEntry, technology string) DetectedDates {
	return NewTechIndex(techs).Resolve(technology)
}
