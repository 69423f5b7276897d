package httpapi

import (
	"context"
	"io"

	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/logging"
	"github.com/ikhlashousing/propertycms/internal/server/models"
	"github.com/ikhlashousing/propertycms/internal/server/services"
)

type fakeAuth struct {
	registerErr error
	loginErr    error
	resetErr    error
	verifyErr   error
	code        string

	lastEmail    string
	lastPassword string
	lastCode     string
}

func (f *fakeAuth) Register(ctx context.Context, email, password string) (*models.Credential, error) {
	f.lastEmail, f.lastPassword = email, password
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.Credential{ID: "cred-1", Email: email}, nil
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "token-for-" + email, nil
}

func (f *fakeAuth) Authenticate(ctx context.Context, token string) (string, error) {
	if token != "good" {
		return "", common.ErrorUnauthorized
	}
	return "cred-1", nil
}

func (f *fakeAuth) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	f.lastEmail = email
	if f.resetErr != nil {
		return "", f.resetErr
	}
	return f.code, nil
}

func (f *fakeAuth) VerifyAndResetPassword(ctx context.Context, email, code, newPassword string) error {
	f.lastEmail, f.lastCode, f.lastPassword = email, code, newPassword
	return f.verifyErr
}

// capturedUpload is an upload with its body read out.
type capturedUpload struct {
	Filename string
	Body     string
}

func capture(up *services.Upload) *capturedUpload {
	if up == nil {
		return nil
	}
	b, _ := io.ReadAll(up.Body)
	return &capturedUpload{Filename: up.Filename, Body: string(b)}
}

type fakeProjects struct {
	err error

	input     services.ProjectInput
	patch     services.ProjectPatch
	updatedID string
	mainImage *capturedUpload
	images    []capturedUpload
	deleted   string
}

func (f *fakeProjects) record(mainImage *services.Upload, images []services.Upload) {
	f.mainImage = capture(mainImage)
	f.images = nil
	for i := range images {
		f.images = append(f.images, *capture(&images[i]))
	}
}

func (f *fakeProjects) List(ctx context.Context) ([]*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*models.Project{{ID: "p1", Name: "Palm Residency"}}, nil
}

func (f *fakeProjects) Get(ctx context.Context, id string) (*models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Project{ID: id, Name: "Palm Residency"}, nil
}

func (f *fakeProjects) Create(ctx context.Context, in services.ProjectInput, mainImage *services.Upload, images []services.Upload) (*models.Project, error) {
	f.input = in
	f.record(mainImage, images)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Project{ID: "p1", Name: in.Name}, nil
}

func (f *fakeProjects) Update(ctx context.Context, id string, patch services.ProjectPatch, mainImage *services.Upload, images []services.Upload) (*models.Project, error) {
	f.updatedID, f.patch = id, patch
	f.record(mainImage, images)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Project{ID: id, Name: patch.Name}, nil
}

func (f *fakeProjects) Delete(ctx context.Context, id string) error {
	f.deleted = id
	return f.err
}

type fakeAchievements struct {
	created services.AchievementInput
	patch   services.AchievementPatch
	err     error
}

func (f *fakeAchievements) List(ctx context.Context) ([]*models.Achievement, error) {
	return []*models.Achievement{}, f.err
}

func (f *fakeAchievements) Create(ctx context.Context, in services.AchievementInput) (*models.Achievement, error) {
	f.created = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Achievement{ID: "a1", Label: in.Label, Value: in.Value}, nil
}

func (f *fakeAchievements) Update(ctx context.Context, id string, patch services.AchievementPatch) (*models.Achievement, error) {
	f.patch = patch
	if f.err != nil {
		return nil, f.err
	}
	return &models.Achievement{ID: id}, nil
}

func (f *fakeAchievements) Delete(ctx context.Context, id string) error {
	return f.err
}

type fakeCarousel struct {
	input services.CarouselInput
	image *capturedUpload
	err   error
}

func (f *fakeCarousel) List(ctx context.Context) ([]*models.CarouselSlide, error) {
	return nil, f.err
}

func (f *fakeCarousel) Create(ctx context.Context, in services.CarouselInput, image *services.Upload) (*models.CarouselSlide, error) {
	f.input, f.image = in, capture(image)
	if f.err != nil {
		return nil, f.err
	}
	return &models.CarouselSlide{ID: "s1", Title: in.Title, DeviceType: in.DeviceType, Image: "/uploads/carousel/x.jpg"}, nil
}

func (f *fakeCarousel) Delete(ctx context.Context, id string) error {
	return f.err
}

type fakeContact struct {
	got *services.ContactInput
	err error
}

func (f *fakeContact) Submit(ctx context.Context, in services.ContactInput) error {
	f.got = &in
	return f.err
}

// logEntry is one call captured by recordingLogger.
type logEntry struct {
	msg  string
	args []any
}

// recordingLogger keeps Info calls so tests can inspect them.
type recordingLogger struct {
	logging.Nop
	entries *[]logEntry
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{entries: &[]logEntry{}}
}

func (l *recordingLogger) Info(ctx context.Context, msg string, args ...any) {
	*l.entries = append(*l.entries, logEntry{msg: msg, args: args})
}

func (l *recordingLogger) With(args ...any) logging.Logger { return l }

// find returns the value logged under key for the first entry named msg.
func (l *recordingLogger) find(msg, key string) (any, bool) {
	for _, e := range *l.entries {
		if e.msg != msg {
			continue
		}
		for i := 0; i+1 < len(e.args); i += 2 {
			if e.args[i] == key {
				return e.args[i+1], true
			}
		}
	}
	return nil, false
}
