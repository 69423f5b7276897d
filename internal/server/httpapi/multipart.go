package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/server/services"
)

const (
	maxProjectImages    = 10
	multipartMemoryHint = 8 << 20
)

// uploadForm is a parsed multipart (or urlencoded) request. Close releases
// opened files and any temporary files the parser created.
type uploadForm struct {
	r      *http.Request
	opened []multipart.File
}

func (h *Handler) parseUploadForm(w http.ResponseWriter, r *http.Request) (*uploadForm, bool) {
	if h.opts.MaxUploadBytes > 0 {
		if r.ContentLength > h.opts.MaxUploadBytes {
			respondMessage(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return nil, false
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
	}

	err := r.ParseMultipartForm(multipartMemoryHint)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondMessage(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return nil, false
		}
		respondMessage(w, http.StatusBadRequest, "Invalid form body")
		return nil, false
	}

	return &uploadForm{r: r}, true
}

func (f *uploadForm) Close() {
	for _, file := range f.opened {
		file.Close()
	}
	if f.r.MultipartForm != nil {
		_ = f.r.MultipartForm.RemoveAll()
	}
}

func (f *uploadForm) value(name string) string {
	return strings.TrimSpace(f.r.PostFormValue(name))
}

func (f *uploadForm) headers(name string) []*multipart.FileHeader {
	if f.r.MultipartForm == nil {
		return nil
	}
	return f.r.MultipartForm.File[name]
}

// file opens the first upload under name, or returns nil when there is none.
func (f *uploadForm) file(name string) (*services.Upload, error) {
	fhs := f.headers(name)
	if len(fhs) == 0 {
		return nil, nil
	}
	up, err := f.open(fhs[0])
	if err != nil {
		return nil, err
	}
	return &up, nil
}

func (f *uploadForm) files(name string, limit int) ([]services.Upload, error) {
	fhs := f.headers(name)
	if len(fhs) > limit {
		return nil, fmt.Errorf("%w: at most %d %s allowed", common.ErrorValidation, limit, name)
	}
	out := make([]services.Upload, 0, len(fhs))
	for _, fh := range fhs {
		up, err := f.open(fh)
		if err != nil {
			return nil, err
		}
		out = append(out, up)
	}
	return out, nil
}

func (f *uploadForm) open(fh *multipart.FileHeader) (services.Upload, error) {
	file, err := fh.Open()
	if err != nil {
		return services.Upload{}, fmt.Errorf("%w: open upload: %v", common.ErrorInternal, err)
	}
	f.opened = append(f.opened, file)
	return services.Upload{Filename: fh.Filename, Body: file}, nil
}

// jsonValue decodes a field that carries a JSON document. It reports false
// when the field is absent or empty.
func (f *uploadForm) jsonValue(name string, dst any) (bool, error) {
	raw := f.value(name)
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("%w: %s must be valid JSON", common.ErrorValidation, name)
	}
	return true, nil
}

func (f *uploadForm) float(name string) (*float64, error) {
	raw := f.value(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", common.ErrorValidation, name)
	}
	return &v, nil
}

func (f *uploadForm) bool(name string) (*bool, error) {
	raw := f.value(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", common.ErrorValidation, name)
	}
	return &v, nil
}
