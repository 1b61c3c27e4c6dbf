package pipeline

import (
	"zhlaw/internal"
	"zhlaw/internal/util"
)

// ExtractFlatRecords is the tabular variant: one row per entry, page and text
// urls from the first listed version, no filtering and no dedup.
func ExtractFlatRecords(entries []internal.LawEntry) []internal.FlatRecord {
	out := make([]internal.FlatRecord, 0, len(entries))
	for _, entry := range entries {
		row := internal.FlatRecord{
			Erlasstitel:     util.CleanText(entry.Erlasstitel),
			Abkuerzung:      util.CleanText(entry.Abkuerzung),
			Kurztitel:       util.CleanText(entry.Kurztitel),
			ZhlawURLDynamic: entry.ZhlawURLDynamic,
		}
		if len(entry.Versions) > 0 {
			row.LawPageURL = entry.Versions[0].LawPageURL
			row.LawTextURL = entry.Versions[0].LawTextURL
		}
		out = append(out, row)
	}
	return out
}
