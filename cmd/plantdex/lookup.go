package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/plantdex/internal/domain/page"
	domplant "github.com/kailas-cloud/plantdex/internal/domain/plant"
)

var (
	lookupPage    int
	lookupPerPage int
	lookupJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Rank plants by name similarity",
	Long: `Ranks plants by trigram similarity of the term to their unique name,
German and English common names and edible uses. Best match first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var findCmd = &cobra.Command{
	Use:   "find [name]",
	Short: "List plants whose names contain a substring",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFind,
}

func init() {
	for _, c := range []*cobra.Command{searchCmd, findCmd} {
		c.Flags().IntVarP(&lookupPage, "page", "p", 1, "page number (1-based)")
		c.Flags().IntVarP(&lookupPerPage, "per-page", "n", 0, "results per page (default: pagination.default_per_page)")
		c.Flags().BoolVar(&lookupJSON, "json", false, "output the page as JSON")
		rootCmd.AddCommand(c)
	}
}

func lookupParameters() (page.Parameters, error) {
	perPage := lookupPerPage
	if perPage == 0 {
		perPage = cfg.Pagination.DefaultPerPage
	}
	return page.NewParameters(lookupPage, perPage, cfg.Pagination.MaxPerPage)
}

func runSearch(cmd *cobra.Command, args []string) error {
	params, err := lookupParameters()
	if err != nil {
		return err
	}
	a, err := newApp(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.plants.Search(cmd.Context(), strings.Join(args, " "), params)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if lookupJSON {
		return printJSON(cmd, res)
	}
	printFooter := printHeader(cmd, res.Page, res.TotalPages, res.TotalItems)
	for i, s := range res.Items {
		cmd.Printf("[%d] %s (%.3f)\n", params.Offset()+i+1, plantLabel(s.Item), s.Rank)
	}
	printFooter()
	return nil
}

func runFind(cmd *cobra.Command, args []string) error {
	params, err := lookupParameters()
	if err != nil {
		return err
	}
	var name *string
	if len(args) == 1 {
		name = &args[0]
	}
	a, err := newApp(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.plants.Find(cmd.Context(), name, params)
	if err != nil {
		return fmt.Errorf("find failed: %w", err)
	}
	if lookupJSON {
		return printJSON(cmd, res)
	}
	printFooter := printHeader(cmd, res.Page, res.TotalPages, res.TotalItems)
	for i, p := range res.Items {
		cmd.Printf("[%d] %s\n", params.Offset()+i+1, plantLabel(p))
	}
	printFooter()
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func printHeader(cmd *cobra.Command, pg, totalPages, total int) func() {
	if total == 0 {
		cmd.Println("No results found.")
		return func() {}
	}
	return func() {
		cmd.Printf("\npage %d of %d, %d results\n", pg, totalPages, total)
	}
}

// plantLabel is the unique name followed by the English common names.
func plantLabel(p domplant.Plant) string {
	if len(p.CommonNameEN) == 0 {
		return p.UniqueName
	}
	return p.UniqueName + " - " + strings.Join(p.CommonNameEN, ", ")
}
