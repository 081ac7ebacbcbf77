package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/catalog-service/internal/config"
	"github.com/light-bringer/catalog-service/internal/pkg/logger"
)

var (
	projectID  string
	instanceID string
	databaseID string
	migrateDir = flag.String("migrations", "migrations", "Directory containing migration SQL files")
	log        *zap.SugaredLogger
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(logger.Config{Env: cfg.Env, Level: cfg.LogLevel, ServiceName: "catalog-migrate"})
	defer func() { _ = logger.Sync() }()
	log = logger.Named("migrate").Sugar()

	project, inst, db, err := splitDatabasePath(cfg.SpannerDB)
	if err != nil {
		log.Fatalw("invalid SPANNER_DATABASE", "error", err)
	}
	flag.StringVar(&projectID, "project", project, "GCP project ID")
	flag.StringVar(&instanceID, "instance", inst, "Spanner instance ID")
	flag.StringVar(&databaseID, "database", db, "Spanner database ID")
	flag.Parse()

	ctx := context.Background()

	if emulatorHost := os.Getenv("SPANNER_EMULATOR_HOST"); emulatorHost != "" {
		log.Infow("using Spanner emulator", "host", emulatorHost)
	}

	if err := run(ctx); err != nil {
		log.Fatalw("migration failed", "error", err)
	}

	log.Info("migrations completed")
}

// splitDatabasePath splits projects/P/instances/I/databases/D.
func splitDatabasePath(path string) (project, inst, db string, err error) {
	parts := strings.Split(path, "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" {
		return "", "", "", fmt.Errorf("%q is not projects/<p>/instances/<i>/databases/<d>", path)
	}
	return parts[1], parts[3], parts[5], nil
}

func run(ctx context.Context) error {
	if err := ensureInstance(ctx); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}

	if err := ensureDatabase(ctx); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}

	if err := applyMigrations(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// ensure creates a resource unless get finds it. Losing a creation race to
// another migrator counts as success.
func ensure(ctx context.Context, kind, name string, get, create func(context.Context) error) error {
	err := get(ctx)
	switch status.Code(err) {
	case codes.OK:
		log.Infow("already exists", "kind", kind, "name", name)
		return nil
	case codes.NotFound:
	default:
		return fmt.Errorf("failed to look up %s %s: %w", kind, name, err)
	}

	log.Infow("creating", "kind", kind, "name", name)
	if err := create(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		return fmt.Errorf("failed to create %s %s: %w", kind, name, err)
	}
	log.Infow("created", "kind", kind, "name", name)
	return nil
}

func ensureInstance(ctx context.Context) error {
	admin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer admin.Close()

	name := fmt.Sprintf("projects/%s/instances/%s", projectID, instanceID)
	return ensure(ctx, "instance", name,
		func(ctx context.Context) error {
			_, err := admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: name})
			return err
		},
		func(ctx context.Context) error {
			op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
				Parent:     "projects/" + projectID,
				InstanceId: instanceID,
				Instance: &instancepb.Instance{
					Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", projectID),
					DisplayName: "Catalog Development Instance",
					NodeCount:   1,
				},
			})
			if err != nil {
				return err
			}
			_, err = op.Wait(ctx)
			return err
		},
	)
}

func ensureDatabase(ctx context.Context) error {
	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create database admin client: %w", err)
	}
	defer admin.Close()

	name := fmt.Sprintf("projects/%s/instances/%s/databases/%s", projectID, instanceID, databaseID)
	return ensure(ctx, "database", name,
		func(ctx context.Context) error {
			_, err := admin.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: name})
			return err
		},
		func(ctx context.Context) error {
			op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
				Parent:          fmt.Sprintf("projects/%s/instances/%s", projectID, instanceID),
				CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", databaseID),
			})
			if err != nil {
				return err
			}
			_, err = op.Wait(ctx)
			return err
		},
	)
}

type migration struct {
	name       string
	statements []string
}

// readMigrations loads dir/*.sql in file name order.
func readMigrations(dir string) ([]migration, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to list migration files: %w", err)
	}
	sort.Strings(files)

	migrations := make([]migration, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		stmts := splitDDLStatements(string(content))
		if len(stmts) == 0 {
			continue
		}
		migrations = append(migrations, migration{name: filepath.Base(file), statements: stmts})
	}
	return migrations, nil
}

func applyMigrations(ctx context.Context) error {
	migrations, err := readMigrations(*migrateDir)
	if err != nil {
		return err
	}
	if len(migrations) == 0 {
		log.Warnw("no migration files found", "dir", *migrateDir)
		return nil
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create database admin client: %w", err)
	}
	defer admin.Close()

	dbPath := fmt.Sprintf("projects/%s/instances/%s/databases/%s", projectID, instanceID, databaseID)

	// Statements are CREATE ... IF NOT EXISTS, so every file is re-applied
	for _, m := range migrations {
		op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   dbPath,
			Statements: m.statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", m.name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", m.name, err)
		}
		log.Infow("migration applied", "file", m.name, "statements", len(m.statements))
	}

	return nil
}

// splitDDLStatements drops blank and "--" comment lines and splits on ";".
func splitDDLStatements(content string) []string {
	var body strings.Builder
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}

	var stmts []string
	for _, stmt := range strings.Split(body.String(), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
