package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Zachkp/portfolio/internal/catalog"
	"github.com/Zachkp/portfolio/internal/detail"
	"github.com/Zachkp/portfolio/internal/query"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	outputFormat  string
	queryCategory string
	relatedLimit  int
)

var queryCmd = &cobra.Command{
	Use:   "query [term]",
	Short: "Search the catalog the way the listing page does",
	Long: `Runs a listing query: the term is matched case-insensitively against
titles, descriptions, tags and technologies, then the result is narrowed to
--category.

Example:
  portfolio query robot --category robotics`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a project with its neighbours and related projects",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	for _, c := range []*cobra.Command{queryCmd, showCmd, statsCmd} {
		c.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format: text, json or yaml")
	}
	queryCmd.Flags().StringVarP(&queryCategory, "category", "c", catalog.AllCategories, "category id to filter by")
	showCmd.Flags().IntVar(&relatedLimit, "related", detail.DefaultRelatedLimit, "number of related projects")
}

func runQuery(cmd *cobra.Command, args []string) error {
	store, _, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	req := query.Request{Category: queryCategory}
	if len(args) > 0 {
		req.Search = args[0]
	}
	projects, err := query.NewEngine(store).Run(req)
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), projects, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCATEGORY\tTITLE")
		for _, p := range projects {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Category, p.Title)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%d project(s)\n", len(projects))
		return err
	})
}

func runShow(cmd *cobra.Command, args []string) error {
	store, _, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}
	nav := detail.NewNavigator(store)
	page, err := nav.Page(args[0])
	if err != nil {
		return err
	}
	if relatedLimit != detail.DefaultRelatedLimit {
		if page.Related, err = nav.Related(args[0], relatedLimit); err != nil {
			return err
		}
	}
	return printResult(cmd.OutOrStdout(), page, func(w io.Writer) error {
		p := page.Project
		fmt.Fprintf(w, "%s (%s)\n", p.Title, p.ID)
		fmt.Fprintf(w, "Category:     %s\n", page.Category.Name)
		if p.Date != "" {
			fmt.Fprintf(w, "Date:         %s\n", p.Date)
		}
		if p.Status != "" {
			fmt.Fprintf(w, "Status:       %s\n", p.Status)
		}
		if len(p.Technologies) > 0 {
			fmt.Fprintf(w, "Technologies: %s\n", strings.Join(p.Technologies, ", "))
		}
		if len(p.Tags) > 0 {
			fmt.Fprintf(w, "Tags:         %s\n", strings.Join(p.Tags, ", "))
		}
		fmt.Fprintf(w, "\n%s\n\n", p.FullDescription)
		fmt.Fprintf(w, "Previous: %s\n", titleOf(page.Adjacent.Previous))
		fmt.Fprintf(w, "Next:     %s\n", titleOf(page.Adjacent.Next))
		fmt.Fprintln(w, "Related:")
		for _, r := range page.Related {
			fmt.Fprintf(w, "  - %s (%s)\n", r.Title, r.Category)
		}
		return nil
	})
}

func titleOf(p *catalog.Project) string {
	if p == nil {
		return "-"
	}
	return p.Title
}

// printResult writes v in the selected output format; text uses the given
// writer function.
func printResult(w io.Writer, v any, text func(io.Writer) error) error {
	switch outputFormat {
	case "", "text":
		return text(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
}
