package main

import (
	"fmt"
	"strings"

	"github.com/derichenko12/BeyondHomeV3/pkg/catalog"
	"github.com/derichenko12/BeyondHomeV3/pkg/receipt"
	"github.com/derichenko12/BeyondHomeV3/pkg/recommend"
	"github.com/derichenko12/BeyondHomeV3/pkg/validation"
)

func printResult(r validation.Result) {
	fmt.Printf("  [%s] %s\n", r.Level, r.Message)
	if r.Path != "" {
		if r.ActualValue != nil {
			fmt.Printf("    -> %s = %v\n", r.Path, r.ActualValue)
		} else {
			fmt.Printf("    -> %s\n", r.Path)
		}
	}
	if r.Expected != "" {
		fmt.Printf("    expected: %s\n", r.Expected)
	}
	if r.ConflictWith != "" {
		fmt.Printf("    conflicts with: %s\n", r.ConflictWith)
	}
	for _, s := range r.Suggestions {
		fmt.Printf("    * %s\n", s)
	}
}

func printValidationReport(r *validation.Report) {
	sections := []struct {
		title   string
		results []validation.Result
	}{
		{"ERRORS", r.Errors},
		{"WARNINGS", r.Warnings},
		{"INFO", r.Info},
	}
	for _, s := range sections {
		if len(s.results) == 0 {
			continue
		}
		fmt.Printf("%s (%d):\n", s.title, len(s.results))
		for _, res := range s.results {
			printResult(res)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printRegions(cat *catalog.Catalog, ranked []recommend.Ranked, tags []string) {
	if len(tags) > 0 {
		fmt.Printf("Regions ranked for: %s\n", strings.Join(tags, ", "))
	} else {
		fmt.Println("Regions")
	}
	fmt.Println("=================================================================")
	fmt.Printf("%-16s %-10s %14s %8s  %s\n", "Region", "Country", "Land/m²", "License", "Matches")
	fmt.Println("-----------------------------------------------------------------")
	for _, r := range ranked {
		matches := "-"
		if len(r.Matched) > 0 {
			matches = fmt.Sprintf("%d (%s)", r.Score, strings.Join(r.Matched, ", "))
		}
		fmt.Printf("%-16s %-10s %14s %7.0f%%  %s\n",
			r.Region.Name, r.Region.Country,
			receipt.FormatMoney(cat.Currency, r.Region.PricePerSqm),
			r.Region.BuildingLicensePercent, matches)
	}
}
