package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"city-comparison/core/config"
	"city-comparison/core/join"
	"city-comparison/core/loader"
	"city-comparison/core/storage"
	"city-comparison/core/table"
	"city-comparison/feature/comparison"

	"go.uber.org/zap"
)

// candidates returns the fuzzy keys of t in region whose name shares a prefix with name.
func candidates(t *table.Table, region, name string) []table.FuzzyKey {
	var out []table.FuzzyKey
	for i := range t.Len() {
		key, err := t.FuzzyKey(i)
		if err != nil {
			log.Fatal(err)
		}
		if key.Region != region {
			continue
		}
		if strings.HasPrefix(key.Name, name) || strings.HasPrefix(name, key.Name) {
			out = append(out, key)
		}
	}
	return out
}

func main() {
	if len(os.Args) != 3 {
		fmt.Println("usage: debug_match <state> <city>")
		os.Exit(2)
	}
	region := table.NormalizeRegion(os.Args[1])
	name := table.NormalizeName(os.Args[2], "city")

	// Load config
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	var client storage.Client
	if cfg.Sources.FromStorage {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			log.Fatal(err)
		}
	}

	manager := loader.NewManager(0, zap.NewNop())
	if err := comparison.RegisterSources(manager, loader.NewOpener(cfg.Sources, client, cfg.Storage.Bucket)); err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	// Test 1: Census candidates
	fmt.Println("=== TEST 1: Census Candidates ===")
	estimates, err := manager.Open(ctx, comparison.SourceCensus2017, cfg.Sources.Census2017Path, "")
	if err != nil {
		log.Fatal(err)
	}
	left := candidates(estimates, region, name)
	for _, k := range left {
		fmt.Printf("census: %s\n", k)
	}

	// Test 2: FBI candidates
	fmt.Println("\n=== TEST 2: FBI Candidates ===")
	crime, err := manager.Open(ctx, comparison.SourceFBI, cfg.Sources.FBIPath, "")
	if err != nil {
		log.Fatal(err)
	}
	right := candidates(crime, region, name)
	for _, k := range right {
		fmt.Printf("fbi: %s\n", k)
	}

	// Test 3: Pairwise comparison
	fmt.Println("\n=== TEST 3: Comparator ===")
	c := &join.Comparator{Threshold: cfg.Join.Threshold}
	if c.Threshold == 0 {
		c.Threshold = join.DefaultThreshold
	}

	type pair struct {
		Census      string  `json:"census"`
		FBI         string  `json:"fbi"`
		Ordering    string  `json:"ordering"`
		Discrepancy float64 `json:"discrepancy"`
	}
	var pairs []pair
	for _, a := range left {
		for _, b := range right {
			ord, _ := c.Compare(a, b)
			p := pair{
				Census:      a.String(),
				FBI:         b.String(),
				Ordering:    ord.String(),
				Discrepancy: join.Discrepancy(a.Magnitude, b.Magnitude),
			}
			pairs = append(pairs, p)
			fmt.Printf("%s vs %s: %s (discrepancy %.3f)\n", p.Census, p.FBI, p.Ordering, p.Discrepancy)
		}
	}

	// Save detailed output
	output := map[string]interface{}{
		"region":       region,
		"name":         name,
		"census_count": len(left),
		"fbi_count":    len(right),
		"pairs":        pairs,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	os.WriteFile("debug_match.json", data, 0644)

	fmt.Println("\nDebug complete. Check debug_match.json for details.")
}
