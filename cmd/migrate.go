package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/frahmantamala/employee-directory/internal"
	employeeDatamodel "github.com/frahmantamala/employee-directory/internal/core/datamodel/employee"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run db migration files under db/migrations directory",
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "db/migrations", "sql migrations directory")
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := bootstrap()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Database.Driver == internal.DriverSQLite {
		return migrateSQLite(cfg)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		log.Fatalf("goose: failed to open DB: %v\n", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	goose.SetTableName("schema_migrations")

	command := "up"
	if migrateRollback {
		command = "down"
	}
	if err := goose.RunContext(ctx, command, db.DB, migrateDir); err != nil {
		log.Fatalf("goose %s: %v", command, err)
	}

	return nil
}

// migrateSQLite builds the schema from the gorm model. The SQL migrations
// are written for PostgreSQL.
func migrateSQLite(cfg *internal.Config) error {
	db, err := initDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	gormDB, err := initGorm(cfg, db)
	if err != nil {
		return err
	}

	if migrateRollback {
		if err := gormDB.Migrator().DropTable(&employeeDatamodel.Employee{}); err != nil {
			return fmt.Errorf("drop employees: %w", err)
		}
		return nil
	}
	if err := gormDB.AutoMigrate(&employeeDatamodel.Employee{}); err != nil {
		return fmt.Errorf("auto migrate employees: %w", err)
	}
	return nil
}
