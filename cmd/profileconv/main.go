// Command profileconv converts a directory of raw per-language n-gram
// frequency dumps into the validated, de-duplicated NDJSON profile set
// internal/profile.LoadProfiles consumes. It does not train anything —
// the frequency counts are assumed to already exist, produced by
// whatever external corpus pipeline built them.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/caiatext/langident/internal/profile"
	"github.com/mozillazg/go-unidecode"
)

// rawDump is one input file's shape: a flat gram -> count table. The
// gram's rune length (1, 2, or 3) determines which profile.NWords slot
// its count contributes to.
type rawDump struct {
	Freq map[string]int64 `json:"freq"`
}

func main() {
	inputDir := flag.String("in", "", "directory of <lang>.json raw frequency dumps")
	outputPath := flag.String("out", "", "output NDJSON profile set path")
	flag.Parse()

	if *inputDir == "" || *outputPath == "" {
		log.Fatal("profileconv: both -in and -out are required")
	}

	profiles, err := convertDir(*inputDir)
	if err != nil {
		log.Fatalf("profileconv: %v", err)
	}

	if err := writeProfiles(*outputPath, profiles); err != nil {
		log.Fatalf("profileconv: %v", err)
	}

	fmt.Printf("converted %d language profiles to %s\n", len(profiles), *outputPath)
}

func convertDir(dir string) ([]profile.LanguageProfile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var profiles []profile.LanguageProfile
	var codes []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		code := canonicalCode(entry.Name())
		p, err := convertFile(filepath.Join(dir, entry.Name()), code)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", entry.Name(), err)
		}

		codes = append(codes, code)
		profiles = append(profiles, p)
	}

	// Catch near-duplicate language codes (e.g. a locale variant dumped
	// twice under slightly different spellings) before they ever reach a
	// running detector.
	if err := profile.ValidateLanguageCodes(codes); err != nil {
		return nil, err
	}
	return profiles, nil
}

// canonicalCode derives a language code from an input filename, folding
// accents and case so "Kn.json" and "kn.json" collide as the same code
// instead of silently loading as two different languages.
func canonicalCode(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return strings.ToLower(unidecode.Unidecode(base))
}

func convertFile(path, code string) (profile.LanguageProfile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return profile.LanguageProfile{}, err
	}

	var raw rawDump
	if err := json.Unmarshal(b, &raw); err != nil {
		return profile.LanguageProfile{}, fmt.Errorf("parse json: %w", err)
	}

	p := profile.LanguageProfile{Name: code, Freq: raw.Freq}
	for gram, count := range raw.Freq {
		n := len([]rune(gram))
		if n < 1 || n > 3 {
			continue
		}
		p.NWords[n-1] += count
	}
	return p, nil
}

func writeProfiles(path string, profiles []profile.LanguageProfile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, p := range profiles {
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encode profile %s: %w", p.Name, err)
		}
	}
	return nil
}
