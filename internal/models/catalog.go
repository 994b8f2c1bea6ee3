package models

import "time"

// Catalog is the full set of stores loaded at startup. It is shared read-only between
// requests; duplicates are kept.
type Catalog struct {
	Source   string        `json:"source"`
	Records  []StoreRecord `json:"records"`
	Skipped  int           `json:"skipped"`
	LoadedAt time.Time     `json:"loadedAt"`
}

// EmptyCatalog is served when the catalog could not be fetched
func EmptyCatalog(source string) *Catalog {
	return &Catalog{
		Source:  source,
		Records: []StoreRecord{},
	}
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Records)
}

// Within returns the stores inside bounds in catalog order
func (c *Catalog) Within(bounds Bounds) []StoreRecord {
	visible := []StoreRecord{}
	if c == nil {
		return visible
	}
	for _, r := range c.Records {
		if bounds.Contains(r.Position) {
			visible = append(visible, r)
		}
	}
	return visible
}
