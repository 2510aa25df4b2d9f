package database

import (
	"context"
	"os"
	"strings"

	"github.com/dotojr123/ads-agent-base/db/migrations"

	"go.uber.org/zap"
)

// RunMigrations applies the embedded schema migrations when RUN_MIGRATIONS
// is set to "true". Each step is idempotent (IF NOT EXISTS), so re-running
// on startup is safe.
func RunMigrations(ctx context.Context, db Querier, log *zap.Logger) error {
	run := os.Getenv("RUN_MIGRATIONS")
	if !strings.EqualFold(run, "true") {
		log.Info("skipping migrations (RUN_MIGRATIONS is not 'true')", zap.String("component", "migrations"))
		return nil
	}

	log.Info("running database migrations", zap.String("component", "migrations"))

	migrationSteps := []struct {
		name  string
		query string
	}{
		{"initial schema", migrations.InitialSchemaUp},
	}

	for _, step := range migrationSteps {
		if _, err := db.Exec(ctx, step.query); err != nil {
			log.Error(step.name+" migration failed", zap.Error(err))
			return err
		}
		log.Info(step.name+" migration applied", zap.String("component", "migrations"))
	}

	return nil
}
