package catalog

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/bbernstein/storelocator/internal/models"
)

// Column names the parser resolves from the header row
const (
	ColLongitude              = "Longitude"
	ColLatitude               = "Latitude"
	ColAddressLine            = "AddressLine"
	ColCity                   = "City"
	ColMunicipality           = "Municipality"
	ColAdminDivision          = "AdminDivision"
	ColCountry                = "Country"
	ColPostCode               = "PostCode"
	ColPhone                  = "Phone"
	ColStoreType              = "StoreType"
	ColIsWiFiHotSpot          = "IsWiFiHotSpot"
	ColIsWheelchairAccessible = "IsWheelchairAccessible"
	ColOpens                  = "Opens"
	ColCloses                 = "Closes"
)

// Load parses tab-separated catalog text. The first line names the columns. skipped counts
// every dropped row: rows with fewer fields than the header, and rows whose longitude or
// latitude is missing, non-numeric or out of range. Other malformed fields fall back to
// empty, false or an invalid Hour.
func Load(sourceText string) (records []models.StoreRecord, skipped int) {
	records = []models.StoreRecord{}

	text := strings.TrimSuffix(sourceText, "\n")
	if text == "" {
		return records, 0
	}

	lines := strings.Split(text, "\n")
	header := newHeader(splitRow(lines[0]))

	for i := 1; i < len(lines); i++ {
		row := splitRow(lines[i])
		if len(row) < header.width {
			skipped++
			continue
		}

		record, ok := header.record(strconv.Itoa(i), row)
		if !ok {
			skipped++
			continue
		}
		records = append(records, record)
	}

	return records, skipped
}

func splitRow(line string) []string {
	return strings.Split(strings.TrimSuffix(line, "\r"), "\t")
}

type header struct {
	index map[string]int
	width int
}

func newHeader(names []string) header {
	h := header{
		index: make(map[string]int, len(names)),
		width: len(names),
	}
	for i, name := range names {
		h.index[strings.TrimSpace(name)] = i
	}
	return h
}

// field returns the raw text of a named column, or "" when the header lacks it
func (h header) field(row []string, name string) string {
	i, ok := h.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (h header) record(id string, row []string) (models.StoreRecord, bool) {
	pos := models.Position{
		Longitude: parseFloat(h.field(row, ColLongitude)),
		Latitude:  parseFloat(h.field(row, ColLatitude)),
	}
	if !pos.Valid() {
		return models.StoreRecord{}, false
	}

	return models.StoreRecord{
		ID:                     id,
		Position:               pos,
		AddressLine:            h.field(row, ColAddressLine),
		City:                   h.field(row, ColCity),
		Municipality:           h.field(row, ColMunicipality),
		AdminDivision:          h.field(row, ColAdminDivision),
		Country:                h.field(row, ColCountry),
		PostCode:               h.field(row, ColPostCode),
		Phone:                  h.field(row, ColPhone),
		StoreType:              h.field(row, ColStoreType),
		IsWiFiHotSpot:          parseBool(h.field(row, ColIsWiFiHotSpot)),
		IsWheelchairAccessible: parseBool(h.field(row, ColIsWheelchairAccessible)),
		Opens:                  parseHour(h.field(row, ColOpens)),
		Closes:                 parseHour(h.field(row, ColCloses)),
	}, true
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseBool(s string) bool {
	return strings.EqualFold(s, "true")
}

// parseHour reads the leading integer of s ("9", " 21", "7am" -> 7). Text without a
// leading integer gives the invalid Hour. Digit runs beyond the int range clamp to
// math.MaxInt or math.MinInt.
func parseHour(s string) models.Hour {
	s = strings.TrimLeft(s, " \t\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return models.NaNHour
	}

	v, err := strconv.Atoi(s[:end])
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			return models.NaNHour
		}
		if s[0] == '-' {
			return models.NewHour(math.MinInt)
		}
		return models.NewHour(math.MaxInt)
	}
	return models.NewHour(v)
}
