package services

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/logging"
	"github.com/ikhlashousing/propertycms/internal/server/storage"
)

// Upload is one file taken from a multipart request.
type Upload struct {
	Filename string
	Body     io.Reader
}

// checkID rejects ids that cannot name a stored record, so malformed path
// parameters read as "not found" instead of reaching the database.
func checkID(id string) error {
	if uuid.Validate(id) != nil {
		return common.ErrorNotFound
	}
	return nil
}

// uploader saves request files and tidies up after failed writes.
type uploader struct {
	storage storage.Storage
	folder  string
	logger  logging.Logger
}

func (u uploader) save(ctx context.Context, up *Upload) (string, error) {
	p, err := u.storage.Save(ctx, u.folder, up.Filename, up.Body)
	if err != nil {
		return "", fmt.Errorf("%w: save upload: %v", common.ErrorStoreUnavailable, err)
	}
	return p, nil
}

func (u uploader) saveAll(ctx context.Context, ups []Upload) ([]string, error) {
	paths := make([]string, 0, len(ups))
	for i := range ups {
		p, err := u.save(ctx, &ups[i])
		if err != nil {
			u.remove(ctx, paths...)
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// remove deletes stored files, logging failures. The database is the source of
// truth, so an orphaned file is not worth failing the request for.
func (u uploader) remove(ctx context.Context, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := u.storage.Delete(ctx, p); err != nil {
			u.logger.Warn(ctx, "failed to remove upload", "path", p, "error", err)
		}
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
