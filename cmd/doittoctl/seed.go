package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"doitto/models"

	"github.com/spf13/cobra"
)

var (
	seedPerCategory int
	seedZipcodes    []string
	seedCategories  []string
	seedRandom      = rand.New(rand.NewSource(time.Now().UnixNano()))
)

var seedTitles = map[string]string{
	"Plumbing":    "Plumber",
	"Electrical":  "Electrician",
	"Cleaning":    "House Cleaner",
	"Landscaping": "Landscaper",
	"Painting":    "Painter",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the directory with sample helpers and categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(seedZipcodes) == 0 {
			return errZipcodeRequired
		}
		if seedPerCategory < 1 {
			return fmt.Errorf("--per-category must be at least 1")
		}
		ctx := cmd.Context()
		helpers := helperService()
		categories := catalogService()

		created := 0
		for _, category := range seedCategories {
			if _, _, err := categories.FindOrCreate(ctx, category); err != nil {
				return err
			}
			for i := 1; i <= seedPerCategory; i++ {
				h := sampleHelper(category, created+1)
				if _, err := helpers.Create(ctx, &h); err != nil {
					return fmt.Errorf("failed to seed helper %d: %w", created+1, err)
				}
				created++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d helpers across %d categories\n", created, len(seedCategories))
		return nil
	},
}

// sampleHelper builds the n-th sample helper. Each one serves a random
// non-empty subset of the seed zipcodes.
func sampleHelper(category string, n int) models.Helper {
	title, ok := seedTitles[category]
	if !ok {
		title = category + " Pro"
	}
	zipcodes := make([]string, 0, len(seedZipcodes))
	for _, z := range seedZipcodes {
		if seedRandom.Intn(2) == 0 {
			zipcodes = append(zipcodes, z)
		}
	}
	if len(zipcodes) == 0 {
		zipcodes = append(zipcodes, seedZipcodes[seedRandom.Intn(len(seedZipcodes))])
	}
	slug := strings.ToLower(strings.ReplaceAll(category, " ", "_"))
	return models.Helper{
		Name:        fmt.Sprintf("%s Helper %d", category, n),
		Title:       title,
		Email:       fmt.Sprintf("%s_helper_%d@example.com", slug, n),
		Contact:     fmt.Sprintf("555-%03d-%04d", seedRandom.Intn(1000), n%10000),
		Avatar:      fmt.Sprintf("https://randomuser.me/api/portraits/lego/%d.jpg", n%10),
		Info:        fmt.Sprintf("%d years experience", 1+seedRandom.Intn(20)),
		Description: fmt.Sprintf("Reliable %s services for homes and small businesses.", strings.ToLower(category)),
		Category:    category,
		Tags:        []string{strings.ToLower(category)},
		Zipcodes:    zipcodes,
	}
}

func init() {
	seedCmd.Flags().IntVar(&seedPerCategory, "per-category", 5, "helpers to create per category")
	seedCmd.Flags().StringSliceVar(&seedZipcodes, "zipcodes", []string{"94110", "94103", "10001"}, "zipcodes the sample helpers serve")
	seedCmd.Flags().StringSliceVar(&seedCategories, "categories", []string{"Plumbing", "Electrical", "Cleaning", "Landscaping", "Painting"}, "categories to seed")
	rootCmd.AddCommand(seedCmd)
}
