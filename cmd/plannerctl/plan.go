package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"alcyxob/workout-planner/internal/catalog"
	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/planner"
	"alcyxob/workout-planner/internal/repository/memory"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"
)

var (
	previewCatalog string
	previewProfile string
	previewSeed    int64
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Work with generated plans",
}

var planPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate a plan in memory and print its 30 days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := loadCatalog(cmd.Context(), previewCatalog, nil)
		if err != nil {
			return err
		}
		profile, err := readProfile(previewProfile)
		if err != nil {
			return err
		}
		return previewPlan(cmd.Context(), cmd.OutOrStdout(), exercises, profile, previewSeed)
	},
}

// readProfile decodes a profile file. YAML keys use the same camelCase names
// as the JSON API.
func readProfile(path string) (domain.Profile, error) {
	var profile domain.Profile
	raw, err := os.ReadFile(path)
	if err != nil {
		return profile, err
	}
	format, err := catalog.FormatFromPath(path)
	if err != nil {
		return profile, err
	}
	if format == catalog.FormatYAML {
		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return profile, fmt.Errorf("decode profile %s: %w", path, err)
		}
		if raw, err = json.Marshal(doc); err != nil {
			return profile, err
		}
	}
	if err := json.Unmarshal(raw, &profile); err != nil {
		return profile, fmt.Errorf("decode profile %s: %w", path, err)
	}
	return profile, nil
}

func previewPlan(ctx context.Context, w io.Writer, exercises []domain.Exercise, profile domain.Profile, seed int64) error {
	db := memory.NewDB()
	if _, err := catalog.Import(ctx, db.Exercises(), exercises); err != nil {
		return err
	}

	result, err := planner.NewGenerator(db.PlanStore(), planner.WithVariety(seed)).
		Generate(ctx, primitive.NewObjectID(), profile)
	if err != nil {
		return err
	}

	names := make(map[primitive.ObjectID]string, len(exercises))
	all, err := db.Exercises().FindAll(ctx)
	if err != nil {
		return err
	}
	for _, ex := range all {
		names[ex.ID] = ex.Name
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tWEEK\tTITLE\tEXERCISES")
	for _, day := range result.Plan.Days {
		items, err := db.WorkoutExercises().GetByDayID(ctx, day.ID)
		if err != nil {
			return err
		}
		title := day.Title()
		if day.IsOptional {
			title += " [optional]"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", day.DayNumber, day.WeekNumber, title, describe(items, names))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nPool: %d exercises\n", result.PoolSize)
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
	return nil
}

// describe renders the exercises of a day as "Name 3x10" or "Name 2x30s".
func describe(items []domain.WorkoutExercise, names map[primitive.ObjectID]string) string {
	if len(items) == 0 {
		return "-"
	}
	parts := make([]string, len(items))
	for i, item := range items {
		target := ""
		switch {
		case item.TargetReps != nil:
			target = fmt.Sprintf("%dx%d", item.TargetSets, *item.TargetReps)
		case item.TargetSeconds != nil:
			target = fmt.Sprintf("%dx%ds", item.TargetSets, *item.TargetSeconds)
		}
		parts[i] = strings.TrimSpace(names[item.ExerciseID] + " " + target)
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planPreviewCmd)
	planPreviewCmd.Flags().StringVar(&previewCatalog, "catalog", "", "Catalog file (.yaml, .yml or .json)")
	planPreviewCmd.Flags().StringVar(&previewProfile, "profile", "", "Profile file (.yaml, .yml or .json)")
	planPreviewCmd.Flags().Int64Var(&previewSeed, "seed", 0, "Variety seed; 0 gives the deterministic plan")
	_ = planPreviewCmd.MarkFlagRequired("catalog")
	_ = planPreviewCmd.MarkFlagRequired("profile")
}
