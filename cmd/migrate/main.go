package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/product-catalog/internal/pkg/logging"
)

const migrationsTable = "schema_migrations"

var (
	projectID  = flag.String("project", getEnvOrDefault("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	instanceID = flag.String("instance", getEnvOrDefault("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	databaseID = flag.String("database", getEnvOrDefault("SPANNER_DATABASE_ID", "product-catalog-db"), "Spanner database ID")
	migrateDir = flag.String("migrations", "migrations", "Directory containing migration SQL files")
)

var log *zap.SugaredLogger

func main() {
	_ = godotenv.Load()
	flag.Parse()

	logger, err := logging.New(getEnvOrDefault("LOG_MODE", "development"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log = logger.Sugar()

	ctx := context.Background()

	// Check if using emulator
	emulatorHost := os.Getenv("SPANNER_EMULATOR_HOST")
	if emulatorHost != "" {
		log.Infof("Using Spanner emulator at %s", emulatorHost)
	}

	if err := run(ctx); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Info("Migrations completed successfully")
}

func run(ctx context.Context) error {
	// Ensure instance exists
	if err := ensureInstance(ctx); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}

	if err := ensureDatabase(ctx); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}

	// Apply migrations
	if err := applyMigrations(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

func ensureInstance(ctx context.Context) error {
	log.Infof("Ensuring instance %s exists...", *instanceID)

	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	instanceName := fmt.Sprintf("projects/%s/instances/%s", *projectID, *instanceID)

	// Check if instance exists
	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{
		Name: instanceName,
	})

	if err == nil {
		log.Info("Instance already exists")
		return nil
	}

	// Create instance if it doesn't exist
	if status.Code(err) == codes.NotFound {
		log.Info("Creating instance...")
		op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
			Parent:     fmt.Sprintf("projects/%s", *projectID),
			InstanceId: *instanceID,
			Instance: &instancepb.Instance{
				Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", *projectID),
				DisplayName: "Development Instance",
				NodeCount:   1,
			},
		})
		if err != nil {
			// Ignore if already exists
			if status.Code(err) != codes.AlreadyExists {
				return fmt.Errorf("failed to create instance: %w", err)
			}
			log.Info("Instance already exists")
			return nil
		}

		// Don't wait too long on emulator
		if _, err := op.Wait(ctx); err != nil {
			// Emulator might complete immediately, ignore certain errors
			if status.Code(err) != codes.AlreadyExists {
				log.Warnf("Instance creation did not complete cleanly: %v", err)
			}
		}

		log.Info("Instance created successfully")
		return nil
	}

	log.Warnf("Unexpected error checking instance: %v", err)
	return nil
}

func ensureDatabase(ctx context.Context) error {
	log.Infof("Ensuring database %s exists...", *databaseID)

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	// Check if database exists
	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{
		Name: dbPath(),
	})

	if err == nil {
		log.Info("Database already exists")
		return nil
	}

	// Create database if it doesn't exist
	if status.Code(err) == codes.NotFound {
		log.Info("Creating database...")
		op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
			Parent:          fmt.Sprintf("projects/%s/instances/%s", *projectID, *instanceID),
			CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", *databaseID),
		})
		if err != nil {
			// Ignore if database already exists
			if status.Code(err) != codes.AlreadyExists {
				return fmt.Errorf("failed to create database: %w", err)
			}
			log.Info("Database already exists")
			return nil
		}

		if _, err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to wait for database creation: %w", err)
		}

		log.Info("Database created successfully")
		return nil
	}

	// For other errors on emulator, just proceed - the DB might exist
	if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
		log.Infof("Proceeding with database (emulator mode): %v", err)
		return nil
	}

	return fmt.Errorf("failed to check database: %w", err)
}

func dbPath() string {
	return fmt.Sprintf("projects/%s/instances/%s/databases/%s", *projectID, *instanceID, *databaseID)
}

func applyMigrations(ctx context.Context) error {
	log.Infof("Applying migrations from %s...", *migrateDir)

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	// Get list of migration files, applied in name order
	files, err := filepath.Glob(filepath.Join(*migrateDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		log.Info("No migration files found")
		return nil
	}

	if err := updateDDL(ctx, adminClient, []string{fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (name STRING(MAX) NOT NULL, applied_at TIMESTAMP NOT NULL) PRIMARY KEY (name)",
		migrationsTable,
	)}); err != nil {
		return fmt.Errorf("failed to create %s: %w", migrationsTable, err)
	}

	client, err := spanner.NewClient(ctx, dbPath())
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	applied, err := appliedMigrations(ctx, client)
	if err != nil {
		return err
	}

	todo := pending(files, applied, filepath.Base)
	if len(todo) == 0 {
		log.Info("Schema is up to date")
		return nil
	}

	for _, file := range todo {
		migrationName := filepath.Base(file)
		log.Infof("Applying %s...", migrationName)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if err := updateDDL(ctx, adminClient, splitDDLStatements(string(content))); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", migrationName, err)
		}

		if _, err := client.Apply(ctx, []*spanner.Mutation{
			spanner.Insert(migrationsTable, []string{"name", "applied_at"}, []interface{}{migrationName, time.Now().UTC()}),
		}); err != nil {
			return fmt.Errorf("failed to record %s: %w", migrationName, err)
		}

		log.Infof("Successfully applied %s", migrationName)
	}

	return nil
}

func updateDDL(ctx context.Context, adminClient *database.DatabaseAdminClient, statements []string) error {
	if len(statements) == 0 {
		return nil
	}
	op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   dbPath(),
		Statements: statements,
	})
	if err != nil {
		return err
	}
	return op.Wait(ctx)
}

func appliedMigrations(ctx context.Context, client *spanner.Client) (map[string]bool, error) {
	iter := client.Single().Query(ctx, spanner.Statement{SQL: "SELECT name FROM " + migrationsTable})
	defer iter.Stop()

	applied := make(map[string]bool)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return applied, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read applied migrations: %w", err)
		}
		var name string
		if err := row.Column(0, &name); err != nil {
			return nil, fmt.Errorf("failed to parse applied migration: %w", err)
		}
		applied[name] = true
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
