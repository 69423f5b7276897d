// Package httpapi exposes the CMS services over a JSON and multipart REST API.
package httpapi

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/ikhlashousing/propertycms/internal/logging"
	"github.com/ikhlashousing/propertycms/internal/server/models"
	"github.com/ikhlashousing/propertycms/internal/server/services"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.Credential, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (string, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	VerifyAndResetPassword(ctx context.Context, email, code, newPassword string) error
}

type ProjectService interface {
	List(ctx context.Context) ([]*models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, in services.ProjectInput, mainImage *services.Upload, images []services.Upload) (*models.Project, error)
	Update(ctx context.Context, id string, patch services.ProjectPatch, mainImage *services.Upload, images []services.Upload) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

type InsightService interface {
	List(ctx context.Context) ([]*models.Insight, error)
	Create(ctx context.Context, in services.InsightInput, image *services.Upload) (*models.Insight, error)
	Update(ctx context.Context, id string, patch services.InsightPatch, image *services.Upload) (*models.Insight, error)
	Delete(ctx context.Context, id string) error
}

type AchievementService interface {
	List(ctx context.Context) ([]*models.Achievement, error)
	Create(ctx context.Context, in services.AchievementInput) (*models.Achievement, error)
	Update(ctx context.Context, id string, patch services.AchievementPatch) (*models.Achievement, error)
	Delete(ctx context.Context, id string) error
}

type TestimonialService interface {
	List(ctx context.Context) ([]*models.Testimonial, error)
	Create(ctx context.Context, in services.TestimonialInput) (*models.Testimonial, error)
	Update(ctx context.Context, id string, patch services.TestimonialPatch) (*models.Testimonial, error)
	Delete(ctx context.Context, id string) error
}

type OfferingService interface {
	List(ctx context.Context) ([]*models.Offering, error)
	Get(ctx context.Context, id string) (*models.Offering, error)
	Create(ctx context.Context, in services.OfferingInput) (*models.Offering, error)
	Update(ctx context.Context, id string, patch services.OfferingPatch) (*models.Offering, error)
	Delete(ctx context.Context, id string) error
}

type CarouselService interface {
	List(ctx context.Context) ([]*models.CarouselSlide, error)
	Create(ctx context.Context, in services.CarouselInput, image *services.Upload) (*models.CarouselSlide, error)
	Delete(ctx context.Context, id string) error
}

type GalleryService interface {
	List(ctx context.Context) ([]*models.GalleryItem, error)
	Create(ctx context.Context, in services.GalleryInput, image *services.Upload) (*models.GalleryItem, error)
	Update(ctx context.Context, id string, patch services.GalleryPatch, image *services.Upload) (*models.GalleryItem, error)
	Delete(ctx context.Context, id string) error
}

type ContactService interface {
	Submit(ctx context.Context, in services.ContactInput) error
}

// Services bundles what the router dispatches to.
type Services struct {
	Auth         AuthService
	Projects     ProjectService
	Insights     InsightService
	Achievements AchievementService
	Testimonials TestimonialService
	Offerings    OfferingService
	Carousel     CarouselService
	Gallery      GalleryService
	Contact      ContactService
}

type Options struct {
	// ExposeRecoveryCode echoes the one-time code in the /forget_password reply.
	ExposeRecoveryCode bool
	// AuthRateLimit is the per-IP requests per minute on the recovery routes.
	AuthRateLimit      int
	MaxUploadBytes     int64
	CORSAllowedOrigins []string
	// UploadDir, when set, is served read-only under /uploads/.
	UploadDir string
	// TrustProxy derives the client IP, and so the rate-limit key, from
	// X-Forwarded-For / X-Real-IP.
	TrustProxy bool
}

type Handler struct {
	auth         AuthService
	projects     ProjectService
	insights     InsightService
	achievements AchievementService
	testimonials TestimonialService
	offerings    OfferingService
	carousel     CarouselService
	gallery      GalleryService
	contact      ContactService
	opts         Options
	logger       logging.Logger
}

func NewHandler(s Services, opts Options, l logging.Logger) *Handler {
	return &Handler{
		auth:         s.Auth,
		projects:     s.Projects,
		insights:     s.Insights,
		achievements: s.Achievements,
		testimonials: s.Testimonials,
		offerings:    s.Offerings,
		carousel:     s.Carousel,
		gallery:      s.Gallery,
		contact:      s.Contact,
		opts:         opts,
		logger:       l.With("module", "http_api"),
	}
}

// Routes builds the chi router. Reads and the contact form are public;
// catalog writes need an administrator token.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if h.opts.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors(h.opts.CORSAllowedOrigins))

	r.Get("/_health", h.health)

	recoveryLimit := httprate.LimitByIP(h.opts.AuthRateLimit, time.Minute)
	r.Post("/sign_in", h.signIn)
	r.Post("/login", h.login)
	r.With(recoveryLimit).Post("/forget_password", h.forgetPassword)
	r.With(recoveryLimit).Post("/reset_password", h.resetPassword)

	r.Post("/contactForm", h.contactForm)

	r.Get("/projects", h.listProjects)
	r.Get("/projects/{id}", h.getProject)
	r.Get("/insights", h.listInsights)
	r.Get("/achievements", h.listAchievements)
	r.Get("/testimonials", h.listTestimonials)
	r.Get("/services", h.listOfferings)
	r.Get("/services/{id}", h.getOffering)
	r.Get("/carousel", h.listCarousel)
	r.Get("/gallery", h.listGallery)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAdmin)
		r.Use(h.auditMutation)

		r.Post("/projects", h.createProject)
		r.Put("/projects/{id}", h.updateProject)
		r.Delete("/projects/{id}", h.deleteProject)

		r.Post("/insights", h.createInsight)
		r.Put("/insights/{id}", h.updateInsight)
		r.Delete("/insights/{id}", h.deleteInsight)

		r.Post("/achievements", h.createAchievement)
		r.Put("/achievements/{id}", h.updateAchievement)
		r.Delete("/achievements/{id}", h.deleteAchievement)

		r.Post("/testimonials", h.createTestimonial)
		r.Put("/testimonials/{id}", h.updateTestimonial)
		r.Delete("/testimonials/{id}", h.deleteTestimonial)

		r.Post("/services", h.createOffering)
		r.Put("/services/{id}", h.updateOffering)
		r.Delete("/services/{id}", h.deleteOffering)

		r.Post("/carousel", h.createCarouselSlide)
		r.Delete("/carousel/{id}", h.deleteCarouselSlide)

		r.Post("/gallery", h.createGalleryItem)
		r.Put("/gallery/{id}", h.updateGalleryItem)
		r.Delete("/gallery/{id}", h.deleteGalleryItem)
	})

	if h.opts.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(noListing{http.Dir(h.opts.UploadDir)}))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// noListing hides directory indexes from the uploads file server.
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
