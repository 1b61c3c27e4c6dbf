package pipeline

import (
	"sort"

	"zhlaw/internal"
)

// SelectActiveVersion picks the version that represents a law. The first
// in-force version wins in listed order; without one, the version with the
// latest publikationsdatum is used. Dates compare as plain strings, so missing
// dates sort last. An empty list yields the zero VersionRecord.
func SelectActiveVersion(versions []internal.VersionRecord) internal.VersionRecord {
	if len(versions) == 0 {
		return internal.VersionRecord{}
	}

	for _, v := range versions {
		if v.InForce {
			return v
		}
	}

	sorted := make([]internal.VersionRecord, len(versions))
	copy(sorted, versions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Publikationsdatum > sorted[j].Publikationsdatum
	})
	return sorted[0]
}
