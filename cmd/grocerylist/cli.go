package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"smartplates/internal/core/grocery"
	"smartplates/internal/core/mealplan"
	"smartplates/internal/core/recipe"
	"smartplates/internal/core/search"
	"smartplates/internal/pkg/common"

	"github.com/spf13/cobra"
)

const (
	exitSuccess = 0
	exitError   = 1
)

type generateFlags struct {
	plan           string
	excludeStaples bool
	noCategories   bool
	noEstimates    bool
	noMerge        bool
	format         string
}

type searchFlags struct {
	recipes   string
	threshold float64
	json      bool
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	return exitSuccess
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "grocerylist",
		Short: "Build grocery lists and search recipes offline",
		Example: `  grocerylist generate --plan plan.json --exclude-staples
  grocerylist generate --plan plan.json --format json
  grocerylist search --recipes recipes.json chiken`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newGenerateCmd(), newSearchCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Aggregate a meal plan file with embedded recipes into a grocery list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.OutOrStdout(), f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.plan, "plan", "p", "", "Meal plan JSON file (- for stdin)")
	fl.BoolVar(&f.excludeStaples, "exclude-staples", false, "Leave out pantry staples")
	fl.BoolVar(&f.noCategories, "no-categories", false, "Do not group items by category")
	fl.BoolVar(&f.noEstimates, "no-estimates", false, "Do not estimate costs")
	fl.BoolVar(&f.noMerge, "no-merge", false, "Only merge identical ingredient names")
	fl.StringVarP(&f.format, "format", "f", string(grocery.FormatText), "Output format: text or json")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func runGenerate(out io.Writer, f generateFlags) error {
	format, err := grocery.ParseFormat(f.format)
	if err != nil {
		return err
	}

	var plan mealplan.MealPlan
	if err := readJSONFile(f.plan, &plan); err != nil {
		return fmt.Errorf("read plan: %w", err)
	}

	opts := grocery.DefaultOptions()
	opts.ExcludeStaples = f.excludeStaples
	opts.CategorizeItems = !f.noCategories
	opts.IncludeEstimates = !f.noEstimates
	opts.MergeSimilarItems = !f.noMerge

	data, err := grocery.Export(grocery.Generate(&plan, opts), format)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return err
	}
	if format == grocery.FormatJSON {
		_, err = fmt.Fprintln(out)
	}
	return err
}

func newSearchCmd() *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Fuzzy-search a recipe file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.OutOrStdout(), f, args[0])
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.recipes, "recipes", "r", "", "Recipes JSON file, an array of recipes (- for stdin)")
	fl.Float64Var(&f.threshold, "threshold", search.DefaultSimilarityThreshold, "Word similarity threshold in (0, 1]")
	fl.BoolVar(&f.json, "json", false, "Output matching recipes as JSON")
	_ = cmd.MarkFlagRequired("recipes")
	return cmd
}

func runSearch(out io.Writer, f searchFlags, query string) error {
	if f.threshold <= 0 || f.threshold > 1 {
		return fmt.Errorf("threshold must be in (0, 1]")
	}

	var recipes []recipe.Recipe
	if err := readJSONFile(f.recipes, &recipes); err != nil {
		return fmt.Errorf("read recipes: %w", err)
	}

	matches := search.Filter(search.NewMatcher(search.WithThreshold(f.threshold)), recipes, query)

	if f.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	if len(matches) == 0 {
		_, err := fmt.Fprintln(out, "No matching recipes.")
		return err
	}
	for _, r := range matches {
		if _, err := fmt.Fprintln(out, r.Title); err != nil {
			return err
		}
	}
	return nil
}

func readJSONFile(path string, v interface{}) error {
	if path == "-" {
		return common.DecodeJSON(os.Stdin, v)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return common.DecodeJSON(f, v)
}
