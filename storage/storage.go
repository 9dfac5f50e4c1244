package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/rpupo63/portfolio-cms-backend/config"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/segmentio/ksuid"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrInvalidPath = errors.New("invalid file path")
)

// Storage keeps uploaded media under relative paths such as "projects/cover.png".
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
	Size(ctx context.Context, name string) (int64, error)
	// URL is the public address of name.
	URL(name string) string
}

// New builds the backend named by cfg.Storage.Backend.
func New(ctx context.Context, cfg config.AppConfig) (Storage, error) {
	switch cfg.Storage.Backend {
	case "local", "":
		return NewLocal(cfg.Storage.LocalRoot, cfg.SiteURL+cfg.MediaURL)
	case "s3":
		return NewS3(ctx, cfg.Storage)
	case "minio":
		return NewMinIO(ctx, cfg.Storage)
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}

// CleanPath normalises name into a relative slash path and rejects anything escaping the root.
func CleanPath(name string) (string, error) {
	name = strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	cleaned := path.Clean("/" + name)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", ErrInvalidPath
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return "", ErrInvalidPath
		}
	}
	return cleaned, nil
}

// ObjectName places filename under folder with a sortable unique prefix, keeping its extension.
func ObjectName(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	base := models.Slugify(strings.TrimSuffix(path.Base(strings.ReplaceAll(filename, `\`, "/")), path.Ext(filename)))
	if base == "" {
		base = "file"
	}
	name := ksuid.New().String() + "-" + base + ext
	folder = strings.Trim(folder, "/ ")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// AbsoluteURL passes http(s) values through and resolves stored paths against s.
func AbsoluteURL(s Storage, value string) string {
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return s.URL(strings.TrimPrefix(value, "/"))
}

func joinURL(base, name string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(name, "/")
}
