// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/ikhlashousing/propertycms/internal/dbx"
	"github.com/ikhlashousing/propertycms/internal/server/migrations"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/achievements"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/carousel"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/credentials"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/gallery"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/insights"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/offerings"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/projects"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/testimonials"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Credentials(db dbx.DBTX) credentials.Repository {
	return credentials.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Projects(db dbx.DBTX) projects.Repository {
	return projects.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Insights(db dbx.DBTX) insights.Repository {
	return insights.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Achievements(db dbx.DBTX) achievements.Repository {
	return achievements.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Testimonials(db dbx.DBTX) testimonials.Repository {
	return testimonials.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Offerings(db dbx.DBTX) offerings.Repository {
	return offerings.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Carousel(db dbx.DBTX) carousel.Repository {
	return carousel.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Gallery(db dbx.DBTX) gallery.Repository {
	return gallery.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded goose migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
