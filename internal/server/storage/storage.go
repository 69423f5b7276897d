// Package storage keeps uploaded catalog images, either on the local disk
// (served under /uploads) or in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/ikhlashousing/propertycms/internal/filex"
)

// PublicPrefix is the URL path under which local uploads are served.
const PublicPrefix = "/uploads/"

var ErrForeignPath = errors.New("path does not belong to this storage")

// Storage saves and removes uploaded files. Save returns the public path the
// site should reference; Delete accepts that same path.
type Storage interface {
	Save(ctx context.Context, folder, filename string, r io.Reader) (string, error)
	// Delete treats a missing object as already deleted.
	Delete(ctx context.Context, publicPath string) error
}

// objectName makes a collision-free file name that keeps a readable suffix.
func objectName(filename string) string {
	return uuid.NewString() + "-" + filex.SanitizeFileName(filename)
}

func validFolder(folder string) bool {
	return folder != "" && !strings.ContainsAny(folder, `/\.`)
}
