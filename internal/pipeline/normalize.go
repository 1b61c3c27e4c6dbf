package pipeline

import (
	"strings"

	"zhlaw/internal"
	"zhlaw/internal/util"
)

// BuildOutput turns register entries into lookup records. Entries without a
// url or an abbreviation are dropped, and only the first record per
// (abbreviation, url) is kept.
func BuildOutput(entries []internal.LawEntry, opts internal.OutputOptions) []internal.OutputRecord {
	out := make([]internal.OutputRecord, 0, len(entries))
	seen := map[internal.RecordKey]struct{}{}
	for _, entry := range entries {
		record, ok := NormalizeEntry(entry, opts)
		if !ok {
			continue
		}
		key := record.Key()
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, record)
	}
	return out
}

// NormalizeEntry derives the record for a single entry. ok is false when the
// entry has no usable url or abbreviation.
func NormalizeEntry(entry internal.LawEntry, opts internal.OutputOptions) (internal.OutputRecord, bool) {
	version := SelectActiveVersion(entry.Versions)
	url := ResolveURL(entry, version)
	if url == "" {
		return internal.OutputRecord{}, false
	}

	abbreviation := util.CleanText(entry.Abkuerzung)
	if abbreviation == "" {
		return internal.OutputRecord{}, false
	}

	title := util.CleanText(entry.Erlasstitel)
	if opts.StripParentheticals {
		title = util.StripParentheticals(title)
	}

	return internal.OutputRecord{
		Abbreviation: abbreviation,
		URL:          url,
		Title:        title,
		Canton:       opts.Canton,
		Language:     opts.Language,
	}, true
}

// ResolveURL prefers the selected version's dynamic url over the entry's own.
// A version url made only of whitespace still wins and resolves to "".
func ResolveURL(entry internal.LawEntry, version internal.VersionRecord) string {
	url := version.ZhlawURLDynamic
	if url == "" {
		url = entry.ZhlawURLDynamic
	}
	return strings.TrimSpace(url)
}
