package pipeline

import (
	"testing"

	"zhlaw/internal"
)

func TestBuildOutputStripsParentheticalsInWebProfile(t *testing.T) {
	entries := []internal.LawEntry{{Erlasstitel: "Gesetz (aufgehoben)", Abkuerzung: "G", ZhlawURLDynamic: "http://x/g"}}

	got := BuildOutput(entries, internal.OptionsForProfile(internal.ProfileWeb))
	want := internal.OutputRecord{Abbreviation: "G", URL: "http://x/g", Title: "Gesetz", Canton: "ZH", Language: "de"}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("got %+v", got)
	}

	opts := internal.OutputOptions{Canton: "ZH", StripParentheticals: true}
	got = BuildOutput(entries, opts)
	want.Language = ""
	if len(got) != 1 || got[0] != want {
		t.Fatalf("got %+v", got)
	}
}

func TestBuildOutputFileProfileKeepsTitle(t *testing.T) {
	entries := []internal.LawEntry{{Erlasstitel: " Gesetz (aufgehoben) ", Abkuerzung: "G", ZhlawURLDynamic: "http://x/g"}}
	got := BuildOutput(entries, internal.OptionsForProfile(internal.ProfileFile))
	if len(got) != 1 || got[0].Title != "Gesetz (aufgehoben)" || got[0].Language != "" {
		t.Fatalf("got %+v", got)
	}
}

func TestBuildOutputUsesSelectedVersionURL(t *testing.T) {
	entries := []internal.LawEntry{{
		Abkuerzung:      "GG",
		ZhlawURLDynamic: "entry-level",
		Versions: []internal.VersionRecord{
			{Publikationsdatum: "2020-01-01", ZhlawURLDynamic: "u1"},
			{Publikationsdatum: "2021-06-01", ZhlawURLDynamic: "u2"},
		},
	}}
	got := BuildOutput(entries, internal.OptionsForProfile(internal.ProfileFile))
	if len(got) != 1 || got[0].URL != "u2" {
		t.Fatalf("got %+v", got)
	}
}

func TestBuildOutputFallsBackToEntryURL(t *testing.T) {
	entries := []internal.LawEntry{{
		Abkuerzung:      "GG",
		ZhlawURLDynamic: "  entry-level\n",
		Versions:        []internal.VersionRecord{{InForce: true}},
	}}
	got := BuildOutput(entries, internal.OptionsForProfile(internal.ProfileFile))
	if len(got) != 1 || got[0].URL != "entry-level" {
		t.Fatalf("got %+v", got)
	}
}

func TestBuildOutputSkipsIncompleteEntries(t *testing.T) {
	entries := []internal.LawEntry{
		{Erlasstitel: "no abbreviation", Abkuerzung: "  ", ZhlawURLDynamic: "u"},
		{Erlasstitel: "no url", Abkuerzung: "NU"},
		{Erlasstitel: "blank version url", Abkuerzung: "BV", ZhlawURLDynamic: "entry", Versions: []internal.VersionRecord{{InForce: true, ZhlawURLDynamic: "   "}}},
		{Erlasstitel: "ok", Abkuerzung: "OK", ZhlawURLDynamic: "u"},
	}
	got := BuildOutput(entries, internal.OptionsForProfile(internal.ProfileFile))
	if len(got) != 1 || got[0].Abbreviation != "OK" {
		t.Fatalf("got %+v", got)
	}
}

func TestBuildOutputDeduplicatesFirstWins(t *testing.T) {
	entries := []internal.LawEntry{
		{Erlasstitel: "Erster", Abkuerzung: "StG", ZhlawURLDynamic: "u"},
		{Erlasstitel: "Anderes", Abkuerzung: "VRG", ZhlawURLDynamic: "v"},
		{Erlasstitel: "Zweiter", Abkuerzung: "&#83;tG", ZhlawURLDynamic: " u "},
		{Erlasstitel: "Andere URL", Abkuerzung: "StG", ZhlawURLDynamic: "w"},
	}
	got := BuildOutput(entries, internal.OptionsForProfile(internal.ProfileFile))
	if len(got) != 3 {
		t.Fatalf("len=%d %+v", len(got), got)
	}
	if got[0].Title != "Erster" || got[1].Abbreviation != "VRG" || got[2].URL != "w" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestBuildOutputEmpty(t *testing.T) {
	got := BuildOutput(nil, internal.OptionsForProfile(internal.ProfileFile))
	if got == nil || len(got) != 0 {
		t.Fatalf("got %#v", got)
	}
}
