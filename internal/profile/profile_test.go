package profile

import (
	"strings"
	"testing"
)

func TestValidateLanguageCodesAllowsDistinctCodes(t *testing.T) {
	// en/es, de/da, it/id, fa/fi are all one edit apart and all real,
	// distinct languages in the standard profile set: ValidateLanguageCodes
	// must not reject any of them.
	if err := ValidateLanguageCodes([]string{"en", "fr", "de"}); err != nil {
		t.Errorf("unexpected error for distinct codes: %v", err)
	}
	if err := ValidateLanguageCodes([]string{"en", "es", "de", "da", "it", "id", "fa", "fi"}); err != nil {
		t.Errorf("unexpected error for near-spelled but distinct codes: %v", err)
	}
}

func TestValidateLanguageCodesRejectsExactDuplicate(t *testing.T) {
	if err := ValidateLanguageCodes([]string{"en", "fr", "en"}); err == nil {
		t.Errorf("expected error for exact duplicate code")
	}
}

func TestLoadProfilesRejectsDuplicates(t *testing.T) {
	r := strings.NewReader(`{"name":"en","freq":{"a":1},"n_words":[1,0,0]}
{"name":"en","freq":{"b":1},"n_words":[1,0,0]}
`)
	if _, err := LoadProfiles(r); err == nil {
		t.Errorf("expected duplicate language error")
	}
}

func TestLoadProfilesPreservesFileOrder(t *testing.T) {
	r := strings.NewReader(`{"name":"zh","freq":{"a":1},"n_words":[1,0,0]}
{"name":"en","freq":{"b":1},"n_words":[1,0,0]}
`)
	profiles, err := LoadProfiles(r)
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}
	// Language order is part of the ABI: callers match probability vector
	// positions against it, so it must track the order profiles were
	// listed in, not be re-sorted.
	if profiles[0].Name != "zh" || profiles[1].Name != "en" {
		t.Errorf("profiles reordered: %v, %v", profiles[0].Name, profiles[1].Name)
	}
}

func TestBuildIndexComputesPerLanguageFraction(t *testing.T) {
	profiles := []LanguageProfile{
		{Name: "en", Freq: map[string]int64{"th": 50}, NWords: [3]int64{0, 100, 0}},
		{Name: "nl", Freq: map[string]int64{"th": 10}, NWords: [3]int64{0, 100, 0}},
	}
	idx, err := Build(profiles)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	vec, ok := idx.Lookup("th")
	if !ok {
		t.Fatalf("expected lookup hit for 'th'")
	}
	if vec[0] != 0.5 || vec[1] != 0.1 {
		t.Errorf("vec = %v, want [0.5 0.1]", vec)
	}
}

func TestBuildSkipsZeroDenominator(t *testing.T) {
	profiles := []LanguageProfile{
		{Name: "en", Freq: map[string]int64{"xy": 5}, NWords: [3]int64{0, 0, 0}},
	}
	idx, err := Build(profiles)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := idx.Lookup("xy"); ok {
		t.Errorf("expected no entry for gram with zero denominator")
	}
}

func TestBuildRejectsEmptyProfileSet(t *testing.T) {
	if _, err := Build(nil); err == nil {
		t.Errorf("expected error building index from no profiles")
	}
}
