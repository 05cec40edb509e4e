package validator

import (
	"fmt"
	"strings"

	"apprev/internal/report"
)

// ErrorEntry is one row of the aggregate error report: display section,
// field label (with the comparable name appended for grid rows), and the
// failing rule's message.
type ErrorEntry struct {
	Section string `json:"section"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CollectErrors runs every section and field of the document through the
// rule passes and returns the first error per field. Manual overrides are
// deliberately not consulted: the batch report shows the true validation
// state, while the interactive surface shows the reviewer-filtered one.
// Grid fields additionally run once per named comparable with the row
// context attached.
func (r *Resolver) CollectErrors(doc report.Document) []ErrorEntry {
	var errors []ErrorEntry
	if len(doc) == 0 {
		return errors
	}

	collect := func(section, field, value string, path report.FieldPath, rowName string) {
		outcome := r.run(field, value, doc, path, rowName)
		if outcome == nil || !outcome.IsError {
			return
		}
		label := field
		if rowName != "" {
			label = fmt.Sprintf("%s (%s)", field, rowName)
		}
		errors = append(errors, ErrorEntry{Section: section, Field: label, Message: outcome.Message})
	}

	comparables := make(map[string]bool, len(report.ComparableSales))
	for _, name := range report.ComparableSales {
		comparables[name] = true
	}

	for sectionKey, sectionVal := range doc {
		if comparables[sectionKey] {
			continue // handled below with row context
		}
		if fields, ok := sectionVal.(map[string]any); ok {
			for fieldKey, v := range fields {
				collect(sectionKey, fieldKey, report.Stringify(v), report.FieldPath{sectionKey, fieldKey}, "")
			}
			continue
		}
		collect("General", sectionKey, report.Stringify(sectionVal), report.FieldPath{sectionKey}, "")
	}

	for _, saleName := range report.ComparableSales {
		fields, ok := doc[saleName].(map[string]any)
		if !ok {
			continue
		}
		for fieldKey, v := range fields {
			collect("Sales Comparison", fieldKey, report.Stringify(v), report.FieldPath{saleName, fieldKey}, saleName)
		}
	}

	return errors
}

// MissingField is one blank expected field found after extraction.
type MissingField struct {
	Section string `json:"section"`
	Field   string `json:"field"`
}

// MissingFields scans the enumerated field lists for values the
// extraction left empty. Only meaningful once an extraction attempt has
// been made; callers gate on that.
func MissingFields(doc report.Document) []MissingField {
	state := strings.ToUpper(doc.Root("State"))
	var missing []MissingField
	for _, target := range report.MissingFieldTargets(state) {
		v, ok := doc.Lookup(target.Path)
		if !ok || v == nil || report.Stringify(v) == "" {
			missing = append(missing, MissingField{Section: target.Section, Field: target.Field})
		}
	}
	return missing
}

// AddressInconsistency is one comparable whose candidate addresses do not
// agree across the sales grid, the location map, and the photo captions.
type AddressInconsistency struct {
	Comparable      string `json:"comparable"`
	SalesGrid       string `json:"sales_grid_address"`
	LocationMap     string `json:"location_map_address"`
	ComparablePhoto string `json:"photo_address"`
}

// CheckComparableAddresses compares, per comparable, up to three candidate
// addresses normalized to their first three lower-cased tokens. Fewer than
// two non-empty candidates is trivially consistent. Otherwise the legacy
// behavior accepts the set when ANY two normalized prefixes coincide, not
// when all do; strict mode requires every non-empty candidate to agree.
func CheckComparableAddresses(doc report.Document, strict bool) []AddressInconsistency {
	var inconsistencies []AddressInconsistency
	for i, saleName := range report.ComparableSales {
		compNum := i + 1
		salesGrid := doc.Field(saleName, "Address")
		locationMap := doc.Root(fmt.Sprintf("Location Map Address %d", compNum))
		photo := doc.Root(fmt.Sprintf("Comparable Photo Address %d", compNum))

		var candidates []string
		for _, addr := range []string{salesGrid, locationMap, photo} {
			if addr != "" {
				candidates = append(candidates, addr)
			}
		}
		if len(candidates) < 2 {
			continue
		}

		prefixes := make([]string, len(candidates))
		for j, addr := range candidates {
			prefixes[j] = firstThreeWords(addr)
		}

		unique := make(map[string]bool, len(prefixes))
		for _, p := range prefixes {
			unique[p] = true
		}

		consistent := false
		if strict {
			consistent = len(unique) == 1
		} else if len(unique) < len(prefixes) {
			consistent = true
		}

		if !consistent {
			inconsistencies = append(inconsistencies, AddressInconsistency{
				Comparable:      fmt.Sprintf("Comp #%d", compNum),
				SalesGrid:       salesGrid,
				LocationMap:     locationMap,
				ComparablePhoto: photo,
			})
		}
	}
	return inconsistencies
}

func firstThreeWords(s string) string {
	words := strings.Fields(s)
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.ToLower(strings.Join(words, " "))
}
