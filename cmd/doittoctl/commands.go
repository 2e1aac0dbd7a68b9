package main

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strings"
	"text/tabwriter"

	"doitto/config"
	"doitto/services/share"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errZipcodeRequired mirrors the search screen, which refuses to search
// without a zipcode.
var errZipcodeRequired = errors.New("--zipcode is required")

var (
	searchZipcode  string
	searchCategory string
	shareBaseURL   string
	cardOutput     string
	cardNoAvatar   bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search helpers by zipcode and optional category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		zipcode := strings.TrimSpace(searchZipcode)
		if zipcode == "" {
			return errZipcodeRequired
		}
		helpers := helperService().Search(cmd.Context(), strings.TrimSpace(searchCategory), zipcode)
		out := cmd.OutOrStdout()
		if len(helpers) == 0 {
			fmt.Fprintln(out, "No helpers found.")
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tTITLE\tCATEGORY\tRATING")
		for _, h := range helpers {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f (%d)\n", h.ID, h.Name, h.Title, h.Category, h.Rating, h.RatingCount)
		}
		return tw.Flush()
	},
}

var shareCmd = &cobra.Command{
	Use:   "share <helperID>",
	Short: "Print share links for a helper and copy its profile URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, ok := helperService().GetByID(cmd.Context(), args[0])
		if !ok {
			return fmt.Errorf("helper %q not found", args[0])
		}
		baseURL := shareBaseURL
		if baseURL == "" {
			baseURL = config.AppConfig.PublicBaseURL
		}
		bundle := share.Build(*h, baseURL, config.AppConfig.SiteName)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, bundle.Title)
		for _, l := range bundle.Links {
			fmt.Fprintf(out, "  %-9s %s\n", l.Platform, l.URL)
		}
		res := share.CopyOrFallback(bundle.URL)
		if res.Copied {
			fmt.Fprintln(out, "Profile link copied to clipboard.")
			return nil
		}
		fmt.Fprint(out, res.Fallback)
		return nil
	},
}

var cardCmd = &cobra.Command{
	Use:   "card <helperID>",
	Short: "Render a helper's share card as PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		h, ok := helperService().GetByID(ctx, args[0])
		if !ok {
			return fmt.Errorf("helper %q not found", args[0])
		}
		output := cardOutput
		if output == "" {
			output = h.ID + "-share-card.png"
		}

		var avatar image.Image
		if h.Avatar != "" && !cardNoAvatar {
			img, err := share.FetchAvatar(ctx, h.Avatar)
			if err != nil {
				logger.Warn("Rendering card without avatar", zap.String("helperID", h.ID), zap.Error(err))
			} else {
				avatar = img
			}
		}

		f, err := os.Create(output)
		if err != nil {
			return err
		}
		if err := share.RenderCard(f, *h, avatar); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage service categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List service categories, optionally filtered by name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		categories, err := catalogService().Search(cmd.Context(), query)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, cat := range categories {
			if len(cat.Subcategories) == 0 {
				fmt.Fprintln(out, cat.Name)
				continue
			}
			fmt.Fprintf(out, "%s: %s\n", cat.Name, strings.Join(cat.Subcategories, ", "))
		}
		return nil
	},
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a service category unless one with the same name exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, created, err := catalogService().FindOrCreate(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", cat.Name, cat.ID)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s already exists (%s)\n", cat.Name, cat.ID)
		return nil
	},
}

var helpersCmd = &cobra.Command{
	Use:   "helpers",
	Short: "Manage helper records",
}

var helpersDeleteCmd = &cobra.Command{
	Use:   "delete <helperID>",
	Short: "Delete a helper from the directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := helperService().Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchZipcode, "zipcode", "", "zipcode to search in (required)")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "category name to filter on")
	shareCmd.Flags().StringVar(&shareBaseURL, "base-url", "", "public site URL (defaults to PUBLIC_BASE_URL)")
	cardCmd.Flags().StringVarP(&cardOutput, "output", "o", "", "PNG file to write (defaults to <helperID>-share-card.png)")
	cardCmd.Flags().BoolVar(&cardNoAvatar, "no-avatar", false, "skip fetching the helper's avatar")

	categoriesCmd.AddCommand(categoriesListCmd, categoriesAddCmd)
	helpersCmd.AddCommand(helpersDeleteCmd)
}
