/*
Package storage 上传文件落盘。

Files go through an afero.Fs so production writes to the OS filesystem
and tests use an in-memory one. Uploads are not part of any database
transaction.
*/
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/config"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shared"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	ErrFileMissing  = errors.New("file missing")
	ErrUploadFailed = errors.New("upload failed")
	ErrFileTooLarge = fmt.Errorf("%w: file too large", shared.ErrInvalidInput)
)

// FileInfo 上传描述：目标店铺、上传的文件、落盘路径
type FileInfo struct {
	URL           string
	File          *multipart.FileHeader
	LocalLocation string
}

type Uploader struct {
	fs        afero.Fs
	dir       string
	urlPrefix string
	maxBytes  int64
}

func NewUploader(fs afero.Fs, cfg config.UploadConfig) *Uploader {
	var maxBytes int64
	if cfg.MaxSizeMB > 0 {
		maxBytes = cfg.MaxSizeMB << 20
	}
	return &Uploader{
		fs:        fs,
		dir:       cfg.Dir,
		urlPrefix: strings.TrimRight(cfg.URLPrefix, "/"),
		maxBytes:  maxBytes,
	}
}

// Destination 为上传文件生成落盘路径和对外 URL，文件名用 uuid 避免覆盖
func (u *Uploader) Destination(subdir, filename string) (local, publicURL string) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	rel := path.Join(subdir, name)
	return filepath.Join(u.dir, filepath.FromSlash(rel)), u.urlPrefix + "/" + rel
}

// UploadFile 把上传的文件写到 dest
func (u *Uploader) UploadFile(ctx context.Context, file *multipart.FileHeader, dest string) error {
	if file == nil {
		return ErrFileMissing
	}
	if u.maxBytes > 0 && file.Size > u.maxBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, file.Size, u.maxBytes)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrUploadFailed, file.Filename, err)
	}
	defer src.Close()

	if err := u.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir: %w", ErrUploadFailed, err)
	}
	out, err := u.fs.Create(dest)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrUploadFailed, dest, err)
	}

	n, err := io.Copy(out, src)
	if err != nil {
		_ = out.Close()
		return fmt.Errorf("%w: write %s: %w", ErrUploadFailed, dest, err)
	}
	// Close 的错误同样意味着文件没有完整落盘
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrUploadFailed, dest, err)
	}

	logger.FromContext(ctx).Info("File uploaded",
		zap.String("file", file.Filename),
		zap.String("dest", dest),
		zap.Int64("bytes", n),
	)
	return nil
}
