package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"alcyxob/workout-planner/internal/catalog"
	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/repository/mongo"
	"alcyxob/workout-planner/internal/storage"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

const s3Scheme = "s3://"

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Import and validate exercise catalogs",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file|s3://key>",
	Short: "Load a catalog file and upsert it into MongoDB by external id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		var fileStorage storage.FileStorage
		if strings.HasPrefix(args[0], s3Scheme) {
			if fileStorage, err = storage.NewS3Storage(ctx, cfg.S3); err != nil {
				return err
			}
		}
		exercises, err := loadCatalog(ctx, args[0], fileStorage)
		if err != nil {
			return err
		}

		client, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return fmt.Errorf("connect to MongoDB: %w", err)
		}
		defer func() { _ = mongo.DisconnectDB(client) }()
		db := client.Database(cfg.Database.Name)
		if err := mongo.EnsureExerciseIndexes(ctx, db.Collection("exercises")); err != nil {
			return fmt.Errorf("ensure exercise indexes: %w", err)
		}

		stats, err := catalog.Import(ctx, mongo.NewMongoExerciseRepository(db), exercises)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d exercises (%d created, %d updated)\n",
			len(exercises), stats.Created, stats.Updated)
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Load a catalog file and report every problem without writing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := loadCatalog(cmd.Context(), args[0], nil)
		if err != nil {
			problems := multierr.Errors(err)
			for _, p := range problems {
				fmt.Fprintf(cmd.OutOrStdout(), "- %v\n", p)
			}
			return fmt.Errorf("catalog %s has %d problem(s)", args[0], len(problems))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d exercises OK\n", args[0], len(exercises))
		return nil
	},
}

// loadCatalog reads a local file, or an object of the configured bucket for
// s3:// locations.
func loadCatalog(ctx context.Context, location string, fileStorage storage.FileStorage) ([]domain.Exercise, error) {
	format, err := catalog.FormatFromPath(location)
	if err != nil {
		return nil, err
	}

	var r io.ReadCloser
	if key, ok := strings.CutPrefix(location, s3Scheme); ok {
		if fileStorage == nil {
			return nil, errors.New("no object storage configured for " + location)
		}
		if r, err = fileStorage.GetObject(ctx, key); err != nil {
			return nil, fmt.Errorf("fetch %s: %w", location, err)
		}
	} else if r, err = os.Open(location); err != nil {
		return nil, err
	}
	defer r.Close()

	return catalog.Load(r, format)
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogImportCmd, catalogValidateCmd)
}
