// Package uploads stores admin-uploaded images through a pantry/storage
// local backend.
//
// Files are written under the configured root at
//
//	<area>/YYYY/MM/<uuid8>-<sanitized name>
//
// and served back under the configured URL prefix (see bootstrap routes).
// Only JPEG and PNG images are accepted; the extension and the sniffed
// content type must both agree.
package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Upload areas.
const (
	AreaGallery  = "gallery"
	AreaProjects = "projects"
)

// listLimit bounds a single Files listing.
const listLimit = 100000

var (
	ErrUnsupportedType = errors.New("only jpg, jpeg and png images are allowed")
	ErrTooLarge        = errors.New("file is too large")
	ErrEmpty           = errors.New("file is empty")
	ErrInvalidPath     = storage.ErrInvalidPath
)

var allowedExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// Info describes a stored file.
type Info struct {
	Path        string // relative to the store root, slash separated
	FileName    string // original client file name
	Size        int64
	ContentType string
}

// Store validates images and hands them to the storage backend.
type Store struct {
	backend   *storage.Local
	root      string
	urlPrefix string
	maxBytes  int64
	log       *zap.Logger
}

// New creates the root directory if needed and returns a Store.
// maxBytes <= 0 disables the size check.
func New(root, urlPrefix string, maxBytes int64, logger *zap.Logger) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("upload root is empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve upload root: %w", err)
	}
	prefix := "/" + strings.Trim(urlPrefix, "/")
	backend, err := storage.NewLocal(storage.LocalConfig{
		BasePath: abs,
		BaseURL:  prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("open upload storage: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend:   backend,
		root:      abs,
		urlPrefix: prefix,
		maxBytes:  maxBytes,
		log:       logger,
	}, nil
}

// Root returns the directory files are written to.
func (s *Store) Root() string { return s.root }

// URLPrefix returns the path uploads are served under, e.g. "/uploads".
func (s *Store) URLPrefix() string { return s.urlPrefix }

// MaxBytes returns the per-file size limit (0 = unlimited).
func (s *Store) MaxBytes() int64 { return s.maxBytes }

// AllowedExtension reports whether name has a jpg, jpeg or png extension.
func AllowedExtension(name string) bool {
	_, ok := allowedExt[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Save validates and writes r to a new unique path inside area.
func (s *Store) Save(ctx context.Context, area, filename string, r io.Reader) (Info, error) {
	if !AllowedExtension(filename) {
		return Info{}, ErrUnsupportedType
	}
	wantType := allowedExt[strings.ToLower(filepath.Ext(filename))]

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Info{}, fmt.Errorf("read upload: %w", err)
	}
	if n == 0 {
		return Info{}, ErrEmpty
	}
	head = head[:n]
	if got := http.DetectContentType(head); got != wantType {
		return Info{}, ErrUnsupportedType
	}

	now := time.Now().UTC()
	rel := path.Join(
		area,
		fmt.Sprintf("%04d/%02d", now.Year(), now.Month()),
		uuid.New().String()[:8]+"-"+SanitizeFilename(filename),
	)

	src := &countingReader{
		r:     readerWithContext(ctx, io.MultiReader(bytes.NewReader(head), r)),
		limit: s.maxBytes,
	}
	if err := s.backend.Put(ctx, rel, src, &storage.PutOptions{ContentType: wantType}); err != nil {
		if errors.Is(err, ErrTooLarge) {
			return Info{}, ErrTooLarge
		}
		return Info{}, fmt.Errorf("store upload: %w", err)
	}

	s.log.Info("upload stored",
		zap.String("path", rel),
		zap.Int64("size", src.n),
		zap.String("content_type", wantType))

	return Info{Path: rel, FileName: filename, Size: src.n, ContentType: wantType}, nil
}

// Delete removes the file at rel. A missing file is not an error.
func (s *Store) Delete(ctx context.Context, rel string) error {
	if p := storage.NormalizePath(rel); p == "" || p == "." {
		return ErrInvalidPath
	}
	err := s.backend.Delete(ctx, rel)
	if err == nil || errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if errors.Is(err, storage.ErrInvalidPath) {
		return err
	}
	return fmt.Errorf("delete upload %q: %w", rel, err)
}

// DeleteAll removes every path, logging failures instead of stopping.
func (s *Store) DeleteAll(ctx context.Context, rels []string) {
	var keep []string
	for _, p := range rels {
		if q := storage.NormalizePath(p); q != "" && q != "." {
			keep = append(keep, p)
		}
	}
	if len(keep) == 0 {
		return
	}
	deleted, err := s.backend.DeleteMany(ctx, keep)
	if err != nil {
		s.log.Warn("failed to delete uploads",
			zap.Strings("paths", keep),
			zap.Int("deleted", deleted),
			zap.Error(err))
	}
}

// URL returns the public URL for rel.
func (s *Store) URL(rel string) string {
	if rel == "" {
		return ""
	}
	return s.backend.URL(rel)
}

// File is a stored file found by Files.
type File struct {
	Path    string // relative to the store root, slash separated
	ModTime time.Time
}

// Files lists every file below the root.
func (s *Store) Files(ctx context.Context) ([]File, error) {
	res, err := s.backend.List(ctx, "", &storage.ListOptions{MaxKeys: listLimit})
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	if res.IsTruncated {
		s.log.Warn("upload listing truncated", zap.Int("limit", listLimit))
	}
	out := make([]File, 0, len(res.Objects))
	for _, o := range res.Objects {
		out = append(out, File{Path: o.Path, ModTime: o.LastModified})
	}
	return out, nil
}

// SanitizeFilename keeps letters, digits, '-', '_' and '.', replacing
// everything else with '_', and caps the length at 100 bytes.
// Runs of dots are broken up so the result never contains "..".
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filepath.ToSlash(filename))
	if i := strings.LastIndex(filename, "/"); i >= 0 {
		filename = filename[i+1:]
	}
	if filename == "." || filename == "/" {
		filename = ""
	}

	out := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		switch {
		case c == '.' && len(out) > 0 && out[len(out)-1] == '.':
			out = append(out, '_')
		case isAllowedFilenameChar(c):
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}

	if len(out) == 0 {
		return "file"
	}
	if len(out) > 100 {
		ext := filepath.Ext(string(out))
		if len(ext) > 0 && len(ext) < 10 {
			out = append(out[:100-len(ext)], ext...)
		} else {
			out = out[:100]
		}
	}
	return string(out)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}

// countingReader counts bytes read and fails with ErrTooLarge once more
// than limit bytes have passed through (limit <= 0 means no limit).
type countingReader struct {
	r     io.Reader
	limit int64
	n     int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if c.limit > 0 && c.n > c.limit {
		return n, ErrTooLarge
	}
	return n, err
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return ctxReader{ctx: ctx, r: r}
}
