package storage

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zerohouse/2015-01-HUDIWEB-JADO/config"
	"github.com/zerohouse/2015-01-HUDIWEB-JADO/domain/shared"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

var errFlush = errors.New("flush failed")

// closeFailFs 创建出的文件在 Close 时报错，模拟落盘失败
type closeFailFs struct{ afero.Fs }

func (fs closeFailFs) Create(name string) (afero.File, error) {
	f, err := fs.Fs.Create(name)
	if err != nil {
		return nil, err
	}
	return closeFailFile{f}, nil
}

type closeFailFile struct{ afero.File }

func (f closeFailFile) Close() error {
	_ = f.File.Close()
	return errFlush
}

func TestUploadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	u := NewUploader(fs, config.UploadConfig{Dir: "uploads", URLPrefix: "/uploads/"})

	local, public := u.Destination("shop/acme-shop", "Logo.PNG")
	assert.True(t, strings.HasPrefix(public, "/uploads/shop/acme-shop/"))
	assert.True(t, strings.HasSuffix(public, ".png"))
	assert.Equal(t, filepath.Join("uploads", "shop", "acme-shop"), filepath.Dir(local))

	require.NoError(t, u.UploadFile(context.Background(), fileHeader(t, "Logo.PNG", []byte("png-bytes")), local))

	data, err := afero.ReadFile(fs, local)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestUploadFileErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		u := NewUploader(afero.NewMemMapFs(), config.UploadConfig{Dir: "uploads"})
		assert.ErrorIs(t, u.UploadFile(ctx, nil, "uploads/x.png"), ErrFileMissing)
	})

	t.Run("read only filesystem", func(t *testing.T) {
		u := NewUploader(afero.NewReadOnlyFs(afero.NewMemMapFs()), config.UploadConfig{Dir: "uploads"})
		err := u.UploadFile(ctx, fileHeader(t, "a.png", []byte("x")), "uploads/a.png")
		assert.ErrorIs(t, err, ErrUploadFailed)
	})

	t.Run("close error", func(t *testing.T) {
		u := NewUploader(closeFailFs{afero.NewMemMapFs()}, config.UploadConfig{Dir: "uploads"})
		err := u.UploadFile(ctx, fileHeader(t, "a.png", []byte("x")), "uploads/a.png")
		assert.ErrorIs(t, err, ErrUploadFailed)
		assert.ErrorIs(t, err, errFlush)
	})

	t.Run("too large", func(t *testing.T) {
		u := NewUploader(afero.NewMemMapFs(), config.UploadConfig{Dir: "uploads", MaxSizeMB: 1})
		fh := fileHeader(t, "big.png", []byte("x"))
		fh.Size = 2 << 20
		err := u.UploadFile(ctx, fh, "uploads/big.png")
		assert.ErrorIs(t, err, ErrFileTooLarge)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}
