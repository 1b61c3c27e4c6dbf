package internal

type LawEntry struct {
	Erlasstitel     string
	Abkuerzung      string
	Kurztitel       string
	ZhlawURLDynamic string
	Versions        []VersionRecord
}

type VersionRecord struct {
	InForce           bool
	Publikationsdatum string
	ZhlawURLDynamic   string
	LawPageURL        string
	LawTextURL        string
}

// IsZero reports whether v carries no data, i.e. it came from an empty version list.
func (v VersionRecord) IsZero() bool {
	return v == VersionRecord{}
}

type OutputRecord struct {
	Abbreviation string `json:"abbreviation"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	Canton       string `json:"canton"`
	Language     string `json:"language,omitempty"`
}

// Key is the deduplication key of a record.
func (r OutputRecord) Key() RecordKey {
	return RecordKey{Abbreviation: r.Abbreviation, URL: r.URL}
}

type RecordKey struct {
	Abbreviation string
	URL          string
}

type FlatRecord struct {
	Erlasstitel     string `json:"erlasstitel"`
	Abkuerzung      string `json:"abkuerzung"`
	Kurztitel       string `json:"kurztitel"`
	ZhlawURLDynamic string `json:"zhlaw_url_dynamic"`
	LawPageURL      string `json:"law_page_url"`
	LawTextURL      string `json:"law_text_url"`
}

type OutputOptions struct {
	Canton              string
	Language            string
	StripParentheticals bool
}

type Profile string

const (
	ProfileFile Profile = "file"
	ProfileWeb  Profile = "web"

	DefaultCanton   = "ZH"
	DefaultLanguage = "de"
)

// OptionsForProfile returns the output schema used by the given pipeline profile.
// Unknown profiles fall back to ProfileFile.
func OptionsForProfile(p Profile) OutputOptions {
	switch p {
	case ProfileWeb:
		return OutputOptions{Canton: DefaultCanton, Language: DefaultLanguage, StripParentheticals: true}
	default:
		return OutputOptions{Canton: DefaultCanton}
	}
}
