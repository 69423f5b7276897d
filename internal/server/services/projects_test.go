package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/logging"
	"github.com/ikhlashousing/propertycms/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjectFixture(t *testing.T) (*ProjectService, *fakeManager, *fakeStorage) {
	svc, mgr, st, _ := newProjectFixtureWithMock(t)
	return svc, mgr, st
}

func newProjectFixtureWithMock(t *testing.T) (*ProjectService, *fakeManager, *fakeStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTxDB(t)
	mgr := newFakeManager()
	st := newFakeStorage()
	return NewProjectService(db, mgr, st, logging.Nop{}), mgr, st, mock
}

func upload(name, body string) Upload {
	return Upload{Filename: name, Body: strings.NewReader(body)}
}

func price(v float64) *float64 { return &v }

func TestProjectService_Create(t *testing.T) {
	svc, _, st := newProjectFixture(t)
	ctx := context.Background()

	main := upload("front.jpg", "main")
	p, err := svc.Create(ctx, ProjectInput{
		Name:               "Palm Residency",
		Location:           "Kochi",
		PricePerSquareFoot: price(4500),
		Amenities:          []string{"Pool"},
	}, &main, []Upload{upload("a.jpg", "a"), upload("b.jpg", "b")})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, models.DefaultProjectStatus, p.Status)
	assert.True(t, strings.HasPrefix(p.MainImage, "/uploads/project/"))
	assert.Len(t, p.Images, 2)
	assert.Len(t, st.saved, 3)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Images, got.Images)
}

func TestProjectService_Create_Validation(t *testing.T) {
	svc, _, st := newProjectFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ProjectInput{PricePerSquareFoot: price(1)}, nil, nil)
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.Create(ctx, ProjectInput{Name: "No price"}, nil, nil)
	assert.ErrorIs(t, err, common.ErrorValidation)

	assert.Empty(t, st.saved)
}

func TestProjectService_Create_StoreFailureRemovesUploads(t *testing.T) {
	svc, mgr, st := newProjectFixture(t)
	mgr.projects.err = errors.New("db down")

	main := upload("front.jpg", "main")
	_, err := svc.Create(context.Background(), ProjectInput{Name: "P", PricePerSquareFoot: price(1)}, &main, []Upload{upload("a.jpg", "a")})
	assert.ErrorIs(t, err, common.ErrorStoreUnavailable)
	assert.Empty(t, st.saved)
	assert.Len(t, st.deleted, 2)
}

func TestProjectService_Update_Images(t *testing.T) {
	svc, _, st := newProjectFixture(t)
	ctx := context.Background()

	main := upload("front.jpg", "main")
	p, err := svc.Create(ctx, ProjectInput{Name: "P", PricePerSquareFoot: price(10)}, &main,
		[]Upload{upload("a.jpg", "a"), upload("b.jpg", "b"), upload("c.jpg", "c")})
	require.NoError(t, err)
	a, b, c := p.Images[0], p.Images[1], p.Images[2]
	oldMain := p.MainImage

	newMain := upload("new.jpg", "new")
	updated, err := svc.Update(ctx, p.ID, ProjectPatch{
		Name:           "Renamed",
		ExistingImages: []string{a, b, "/uploads/project/not-ours.jpg"},
		DeletedImages:  []string{b, "/uploads/other/evil.jpg"},
	}, &newMain, []Upload{upload("d.jpg", "d")})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	require.Len(t, updated.Images, 2)
	assert.Equal(t, a, updated.Images[0])
	assert.NotEqual(t, oldMain, updated.MainImage)

	assert.Contains(t, st.deleted, b)
	assert.Contains(t, st.deleted, oldMain)
	assert.NotContains(t, st.deleted, "/uploads/other/evil.jpg")
	assert.NotContains(t, st.deleted, c)
}

func TestProjectService_Update_KeepsImagesWhenNotListed(t *testing.T) {
	svc, _, _ := newProjectFixture(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, ProjectInput{Name: "P", PricePerSquareFoot: price(10)}, nil, []Upload{upload("a.jpg", "a")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, ProjectPatch{PricePerSquareFoot: price(20)}, nil, []Upload{upload("b.jpg", "b")})
	require.NoError(t, err)
	assert.Equal(t, 20.0, updated.PricePerSquareFoot)
	assert.Equal(t, "P", updated.Name)
	assert.Len(t, updated.Images, 2)
}

func TestProjectService_NotFound(t *testing.T) {
	svc, _, _, mock := newProjectFixtureWithMock(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = svc.Get(ctx, "1b4e28ba-2fa1-11d2-883f-0016d3cca427")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = svc.Update(ctx, "1b4e28ba-2fa1-11d2-883f-0016d3cca427", ProjectPatch{}, nil, nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "42"), common.ErrorNotFound)

	mock.ExpectBegin()
	mock.ExpectRollback()
	assert.ErrorIs(t, svc.Delete(ctx, "1b4e28ba-2fa1-11d2-883f-0016d3cca427"), common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectService_Delete_RemovesFiles(t *testing.T) {
	svc, _, st, mock := newProjectFixtureWithMock(t)
	ctx := context.Background()

	main := upload("front.jpg", "main")
	p, err := svc.Create(ctx, ProjectInput{Name: "P", PricePerSquareFoot: price(10)}, &main, []Upload{upload("a.jpg", "a")})
	require.NoError(t, err)

	expectCommit(mock)
	require.NoError(t, svc.Delete(ctx, p.ID))
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, st.saved)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestKeepKnown(t *testing.T) {
	got := keepKnown([]string{"a", "x", "a", "b"}, []string{"a", "b", "c"})
	assert.Equal(t, []string{"a", "b"}, got)
}
