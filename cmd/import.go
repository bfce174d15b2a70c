package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"patron-import/core/config"
	"patron-import/core/database"
	"patron-import/core/identity"
	"patron-import/core/logger"
	"patron-import/core/storage"
	"patron-import/feature/importer"
	"patron-import/feature/journal"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the import command
	importObject string
	importBucket string
)

// importCmd runs one import from a local file or a storage object.
var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import patron records from a JSON file or storage object",
	Long: `Import reads a JSON array of patron records, reconciles it against the
remote identity service, and creates or updates records as needed.

Record-level failures are reported in the final summary but never abort the
run; the command fails only on fatal conditions (unreadable input, failed
authentication).

Examples:
  # Import from a local file
  patron-import import patrons.json

  # Import from object storage
  patron-import import --object drops/patrons-2026-08.json

  # Import from a specific bucket
  patron-import import --object patrons.json --bucket campus-imports`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importObject, "object", "", "Read input from this storage object instead of a file")
	importCmd.Flags().StringVar(&importBucket, "bucket", "", "Bucket to read --object from (defaults to the configured bucket)")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = l.Sync()
	}()

	// Read the input before touching the network; a missing file should
	// not cost a login round trip.
	data, err := readInput(ctx, cfg, args)
	if err != nil {
		return err
	}

	records, err := importer.ParseRecords(data)
	if err != nil {
		return err
	}

	client, err := identity.NewClient(cfg.Service)
	if err != nil {
		return fmt.Errorf("failed to create identity client: %w", err)
	}

	svc := importer.NewService(client, l, cfg.Import)

	l.Info("starting import",
		zap.Int("records", len(records)),
		zap.String("tenant", cfg.Service.Tenant),
		zap.Int("page_size", cfg.Import.PageSize),
		zap.Int("workers", cfg.Import.Workers),
	)

	if err := svc.Login(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	tables := svc.ResolveReferenceTables(ctx)

	summary, err := svc.Run(ctx, records, tables)
	if err != nil {
		return err
	}

	journalRun(ctx, cfg, l, summary)
	printSummary(l, summary)
	return nil
}

// readInput loads the import payload from the file argument or, with
// --object, from object storage.
func readInput(ctx context.Context, cfg *config.Config, args []string) ([]byte, error) {
	if importObject != "" {
		bucket := importBucket
		if bucket == "" {
			bucket = cfg.Storage.Bucket
		}

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		return fetchObject(ctx, client, bucket, importObject)
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("an input file or --object is required")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

// fetchObject downloads one object, confirming the bucket exists first so a
// misconfigured bucket name fails with a clear error instead of a not-found
// from the object read.
func fetchObject(ctx context.Context, client storage.Client, bucket, object string) ([]byte, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	obj, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s/%s: %w", bucket, object, err)
	}
	defer func() {
		_ = obj.Close()
	}()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", bucket, object, err)
	}
	return data, nil
}

// journalRun persists the summary when the journal database is enabled.
// Journal trouble is a warning; the import itself already succeeded.
func journalRun(ctx context.Context, cfg *config.Config, l *zap.Logger, summary *importer.RunSummary) {
	if !cfg.Database.Enabled {
		return
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		l.Warn("journal database unavailable, summary not persisted", zap.Error(err))
		return
	}

	j := journal.NewService(db, l)
	if err := j.Migrate(); err != nil {
		l.Warn("journal migration failed, summary not persisted", zap.Error(err))
		return
	}
	if err := j.Record(ctx, summary); err != nil {
		l.Warn("failed to journal run summary", zap.Error(err))
	}
}

// printSummary reports the run outcome using the structured logger.
func printSummary(l *zap.Logger, summary *importer.RunSummary) {
	l.Info("import summary",
		zap.Int("total", summary.Total),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", summary.Duration),
	)

	for _, fr := range summary.FailedRecords {
		l.Warn("failed record",
			zap.String("externalSystemId", fr.ExternalSystemID),
			zap.String("reason", fr.Reason),
		)
	}
}
