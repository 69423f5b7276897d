package repomanager

import (
	"context"
	"database/sql"

	"github.com/ikhlashousing/propertycms/internal/dbx"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/achievements"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/carousel"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/credentials"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/gallery"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/insights"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/offerings"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/projects"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/testimonials"
)

// RepositoryManager vends repositories bound to either the pool or a
// transaction, so services decide where the transaction boundary sits.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Credentials(db dbx.DBTX) credentials.Repository
	Projects(db dbx.DBTX) projects.Repository
	Insights(db dbx.DBTX) insights.Repository
	Achievements(db dbx.DBTX) achievements.Repository
	Testimonials(db dbx.DBTX) testimonials.Repository
	Offerings(db dbx.DBTX) offerings.Repository
	Carousel(db dbx.DBTX) carousel.Repository
	Gallery(db dbx.DBTX) gallery.Repository
}
