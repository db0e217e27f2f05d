package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pantrylens/kitchen/internal/domain"
	"github.com/pantrylens/kitchen/internal/usecase"
	"github.com/spf13/cobra"
)

// pantryCmd lists the pantry with freshness
var pantryCmd = &cobra.Command{
	Use:   "pantry",
	Short: "List pantry items with their freshness",
	Args:  cobra.NoArgs,
	RunE:  runPantry,
}

// expiringCmd ranks recipes by the ingredients about to expire
var expiringCmd = &cobra.Command{
	Use:   "expiring",
	Short: "Recommend recipes that use ingredients about to expire",
	Args:  cobra.NoArgs,
	RunE:  runExpiring,
}

// recipeCmd shows one recipe's availability
var recipeCmd = &cobra.Command{
	Use:   "recipe <id>",
	Short: "Show a recipe with ingredient availability against the pantry",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecipe,
}

// summaryCmd shows the food log of a day
var summaryCmd = &cobra.Command{
	Use:   "summary [date]",
	Short: "Show the food log and macro totals of a day (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSummary,
}

// consumeCmd removes a pantry item
var consumeCmd = &cobra.Command{
	Use:   "consume <pantry-id>",
	Short: "Remove a pantry item, optionally adding it back to the shopping list",
	Args:  cobra.ExactArgs(1),
	RunE:  runConsume,
}

// searchCmd runs the interactive ingredient search
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search ingredients interactively, one query per line",
	Long: `Reads queries from standard input, one per line. Queries are debounced and
only the answer to the most recent one is printed; stale answers are dropped.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}

func dateOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(domain.DateLayout)
}

func runPantry(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	svc, err := reconciler()
	if err != nil {
		return err
	}
	items, err := svc.PantryView(ctx, now())
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), outputFormat, items, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tINGREDIENT\tQUANTITY\tEXPIRES\tSTATUS\tDAYS")
		for _, it := range items {
			fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s\t%s\t%d\n",
				it.ID, it.IngredientName, quantity(it.Quantity), it.Unit,
				dateOrDash(it.ExpiresAt), it.Freshness.Status, it.Freshness.Days)
		}
	})
}

func runExpiring(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	days, _ := cmd.Flags().GetInt("days")
	limit, _ := cmd.Flags().GetInt("limit")

	svc := usecase.NewRecommendationService(client, usecase.RecommendationConfig{
		WindowDays:   cfg.Recommendations.WindowDays,
		Limit:        cfg.Recommendations.Limit,
		DisplayLimit: cfg.Recommendations.DisplayLimit,
	}, logger)
	recs, err := svc.Expiring(ctx, now(), days, limit)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), outputFormat, recs, func(tw *tabwriter.Writer) {
		if len(recs) == 0 {
			fmt.Fprintln(tw, "No recipes use ingredients expiring soon.")
			return
		}
		fmt.Fprintln(tw, "ID\tRECIPE\tEXPIRING\tCOVERAGE\tINGREDIENTS")
		for _, r := range recs {
			names := make([]string, 0, len(r.Shown))
			for _, ei := range r.Shown {
				names = append(names, fmt.Sprintf("%s (%dd)", ei.IngredientName, ei.DaysUntilExpiry))
			}
			list := strings.Join(names, ", ")
			if r.Overflow > 0 {
				list += fmt.Sprintf(" +%d more", r.Overflow)
			}
			fmt.Fprintf(tw, "%d\t%s\t%d/%d\t%.0f%%\t%s\n",
				r.RecipeID, r.Title, r.ExpiringIngredientsCount, r.TotalIngredientsCount,
				r.CoverageRatio*100, list)
		}
	})
}

func runRecipe(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	svc := usecase.NewRecipeService(client, usecase.NewValidator(), logger)
	recipe, err := svc.Detail(ctx, id)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), outputFormat, recipe, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "%s (%d servings)\n", recipe.Title, recipe.Servings)
		if len(recipe.IntoleranceWarnings) > 0 {
			fmt.Fprintf(tw, "Warnings: %s\n", strings.Join(recipe.IntoleranceWarnings, ", "))
		}
		fmt.Fprintf(tw, "Missing: %d of %d\n\n", recipe.MissingCount, len(recipe.Ingredients))
		fmt.Fprintln(tw, "INGREDIENT\tNEED\tHAVE\tMISSING\tSTATUS")
		for _, ing := range recipe.Ingredients {
			have, missing := "-", "-"
			if ing.PantryQuantity != nil {
				have = quantity(*ing.PantryQuantity) + " " + ing.PantryUnit
			}
			if ing.MissingQuantity != nil {
				missing = quantity(*ing.MissingQuantity) + " " + ing.Unit
			}
			status := "missing"
			if ing.IsAvailable {
				status = "available"
			}
			fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\t%s\n",
				ing.Name, quantity(ing.Amount), ing.Unit, have, missing, status)
		}
	})
}

func runSummary(cmd *cobra.Command, args []string) error {
	date := now()
	if len(args) == 1 {
		d, err := time.ParseInLocation(domain.DateLayout, args[0], date.Location())
		if err != nil {
			return fmt.Errorf("invalid date %q: want YYYY-MM-DD", args[0])
		}
		date = d
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	svc := usecase.NewNutritionService(client, usecase.NewValidator(), logger)
	summary, err := svc.DailySummary(ctx, date)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), outputFormat, summary, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Log for %s\n\n", summary.Date)
		fmt.Fprintln(tw, "ID\tITEM\tQUANTITY\tKCAL\tPROTEIN\tCARBS\tFAT")
		for _, e := range summary.Entries {
			name := e.IngredientName
			if e.Type == domain.LogTypeRecipe {
				name = e.RecipeTitle
			}
			fmt.Fprintf(tw, "%d\t%s\t%s %s\t%g\t%g\t%g\t%g\n",
				e.ID, name, quantity(e.Quantity), e.Unit,
				e.Macros.Calories, e.Macros.Protein, e.Macros.Carbs, e.Macros.Fat)
		}
		t := summary.Totals
		fmt.Fprintf(tw, "TOTAL\t\t\t%g\t%g\t%g\t%g\n", t.Calories, t.Protein, t.Carbs, t.Fat)
	})
}

func runConsume(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	restock, _ := cmd.Flags().GetBool("restock")

	ctx, cancel := commandContext(cmd)
	defer cancel()

	svc, err := reconciler()
	if err != nil {
		return err
	}
	result, err := svc.Consume(ctx, id, restock)

	var partial *domain.PartialSuccessError
	if err != nil && !(errors.As(err, &partial) && result != nil) {
		return err
	}

	if rerr := render(cmd.OutOrStdout(), outputFormat, result, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Pantry item %d removed.\n", result.PantryItemID)
		if result.Restocked != nil {
			fmt.Fprintf(tw, "Added %s %s to the shopping list (item %d).\n",
				quantity(result.Restocked.Quantity), result.Restocked.Unit, result.Restocked.ID)
		}
	}); rerr != nil {
		return rerr
	}
	// A partial success still exits non-zero
	return err
}
