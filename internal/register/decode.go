package register

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"zhlaw/internal"
)

// DecodeEntries reads a register document. The top level must be a JSON array;
// elements that are not objects are skipped and wrong-typed fields read as empty.
func DecodeEntries(r io.Reader) ([]internal.LawEntry, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode register: %w", err)
	}
	if raw == nil {
		return nil, errors.New("decode register: top level is null, want an array")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode register: unexpected data after the top-level array")
	}

	entries := make([]internal.LawEntry, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entries = append(entries, toLawEntry(m))
	}
	return entries, nil
}

func LoadFile(path string) ([]internal.LawEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := DecodeEntries(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

func toLawEntry(raw map[string]any) internal.LawEntry {
	entry := internal.LawEntry{
		Erlasstitel:     toString(raw["erlasstitel"]),
		Abkuerzung:      toString(raw["abkuerzung"]),
		Kurztitel:       toString(raw["kurztitel"]),
		ZhlawURLDynamic: toString(raw["zhlaw_url_dynamic"]),
	}

	versions, _ := raw["versions"].([]any)
	for _, v := range versions {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		entry.Versions = append(entry.Versions, toVersionRecord(m))
	}
	return entry
}

func toVersionRecord(raw map[string]any) internal.VersionRecord {
	return internal.VersionRecord{
		InForce:           toBool(raw["in_force"]),
		Publikationsdatum: toString(raw["publikationsdatum"]),
		ZhlawURLDynamic:   toString(raw["zhlaw_url_dynamic"]),
		LawPageURL:        toString(raw["law_page_url"]),
		LawTextURL:        toString(raw["law_text_url"]),
	}
}

// toString keeps strings as-is; cleaning happens later. Any other type,
// numbers included, reads as empty.
func toString(v any) string {
	s, _ := v.(string)
	return s
}

// toBool follows JSON truthiness the way the register producer's consumers
// read it: false, null, 0, "" and empty arrays or objects are false, every
// other value is true. The string "false" is non-empty and therefore true.
func toBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return false
	}
}
