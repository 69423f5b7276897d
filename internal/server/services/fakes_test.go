package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/dbx"
	"github.com/ikhlashousing/propertycms/internal/server/mailer"
	"github.com/ikhlashousing/propertycms/internal/server/models"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/achievements"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/carousel"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/credentials"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/gallery"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/insights"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/offerings"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/projects"
	"github.com/ikhlashousing/propertycms/internal/server/repositories/testimonials"
)

// --- repository manager ---

type fakeManager struct {
	creds        *fakeCredentials
	projects     *memStore[models.Project]
	insights     *memStore[models.Insight]
	achievements *memStore[models.Achievement]
	testimonials *memStore[models.Testimonial]
	offerings    *memStore[models.Offering]
	carousel     *memStore[models.CarouselSlide]
	gallery      *memStore[models.GalleryItem]
}

func newFakeManager() *fakeManager {
	return &fakeManager{
		creds:        newFakeCredentials(),
		projects:     newMemStore(func(p *models.Project) *string { return &p.ID }),
		insights:     newMemStore(func(p *models.Insight) *string { return &p.ID }),
		achievements: newMemStore(func(p *models.Achievement) *string { return &p.ID }),
		testimonials: newMemStore(func(p *models.Testimonial) *string { return &p.ID }),
		offerings:    newMemStore(func(p *models.Offering) *string { return &p.ID }),
		carousel:     newMemStore(func(p *models.CarouselSlide) *string { return &p.ID }),
		gallery:      newMemStore(func(p *models.GalleryItem) *string { return &p.ID }),
	}
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error            { return nil }
func (m *fakeManager) Credentials(dbx.DBTX) credentials.Repository             { return m.creds }
func (m *fakeManager) Projects(dbx.DBTX) projects.Repository                   { return m.projects }
func (m *fakeManager) Insights(dbx.DBTX) insights.Repository                   { return m.insights }
func (m *fakeManager) Achievements(dbx.DBTX) achievements.Repository           { return m.achievements }
func (m *fakeManager) Testimonials(dbx.DBTX) testimonials.Repository           { return m.testimonials }
func (m *fakeManager) Offerings(dbx.DBTX) offerings.Repository                 { return m.offerings }
func (m *fakeManager) Carousel(dbx.DBTX) carousel.Repository                   { return m.carousel }
func (m *fakeManager) Gallery(dbx.DBTX) gallery.Repository                     { return m.gallery }

// --- credentials ---

type fakeCredentials struct {
	mu      sync.Mutex
	byEmail map[string]*models.Credential
	err     error
}

func newFakeCredentials() *fakeCredentials {
	return &fakeCredentials{byEmail: map[string]*models.Credential{}}
}

func (f *fakeCredentials) byID(id string) *models.Credential {
	for _, c := range f.byEmail {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (f *fakeCredentials) Create(ctx context.Context, c *models.Credential) (*models.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byEmail[c.Email]; ok {
		return nil, common.ErrorDuplicateEmail
	}
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	stored := *c
	f.byEmail[c.Email] = &stored
	return c, nil
}

func (f *fakeCredentials) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCredentials) GetByEmailForUpdate(ctx context.Context, email string) (*models.Credential, error) {
	return f.GetByEmail(ctx, email)
}

func (f *fakeCredentials) SetRecoveryCode(ctx context.Context, id string, hash, salt []byte, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.byID(id)
	if c == nil {
		return common.ErrorNotFound
	}
	c.RecoveryCodeHash, c.RecoveryCodeSalt, c.RecoveryCodeExpiresAt, c.RecoveryAttempts = hash, salt, &expiresAt, 0
	return nil
}

func (f *fakeCredentials) IncrementRecoveryAttempts(ctx context.Context, id string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.byID(id)
	if c == nil {
		return 0, common.ErrorNotFound
	}
	c.RecoveryAttempts++
	return c.RecoveryAttempts, nil
}

func (f *fakeCredentials) ClearRecoveryCode(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.byID(id)
	if c == nil {
		return common.ErrorNotFound
	}
	c.RecoveryCodeHash, c.RecoveryCodeSalt, c.RecoveryCodeExpiresAt, c.RecoveryAttempts = nil, nil, nil, 0
	return nil
}

func (f *fakeCredentials) ResetPassword(ctx context.Context, id string, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.byID(id)
	if c == nil {
		return common.ErrorNotFound
	}
	c.PasswordHash = passwordHash
	c.RecoveryCodeHash, c.RecoveryCodeSalt, c.RecoveryCodeExpiresAt, c.RecoveryAttempts = nil, nil, nil, 0
	return nil
}

// --- generic catalog store ---

// memStore satisfies every catalog repository interface for its T.
type memStore[T any] struct {
	mu    sync.Mutex
	items map[string]*T
	order []string
	id    func(*T) *string
	err   error
}

func newMemStore[T any](id func(*T) *string) *memStore[T] {
	return &memStore[T]{items: map[string]*T{}, id: id}
}

func (s *memStore[T]) List(ctx context.Context) ([]*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := []*T{}
	for _, id := range s.order {
		cp := *s.items[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memStore[T]) Get(ctx context.Context, id string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	v, ok := s.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *v
	return &cp, nil
}

func (s *memStore[T]) Create(ctx context.Context, v *T) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	id := uuid.NewString()
	*s.id(v) = id
	cp := *v
	s.items[id] = &cp
	s.order = append(s.order, id)
	return v, nil
}

func (s *memStore[T]) Update(ctx context.Context, v *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	id := *s.id(v)
	if _, ok := s.items[id]; !ok {
		return common.ErrorNotFound
	}
	cp := *v
	s.items[id] = &cp
	return nil
}

func (s *memStore[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(s.items, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// --- storage ---

type fakeStorage struct {
	mu      sync.Mutex
	saved   map[string]string
	deleted []string
	seq     int
	saveErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: map[string]string{}}
}

func (f *fakeStorage) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.seq++
	p := fmt.Sprintf("/uploads/%s/%d-%s", folder, f.seq, filename)
	f.saved[p] = string(b)
	return p, nil
}

func (f *fakeStorage) Delete(ctx context.Context, publicPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, publicPath)
	delete(f.saved, publicPath)
	return nil
}

// --- mailer ---

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Email
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, email mailer.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

func (f *fakeMailer) last() mailer.Email {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

// --- sql ---

// newTxDB returns a sqlmock DB for services that open transactions around
// fake repositories. Each transaction needs its own expectations.
func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func expectCommit(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}
