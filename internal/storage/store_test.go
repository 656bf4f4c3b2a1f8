package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["image"][0]
}

func TestStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, 1<<20)
	require.NoError(t, err)

	webPath, err := store.Save(fileHeader(t, "chair.jpg", []byte("jpeg bytes")))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(webPath, "/uploads/"))
	assert.True(t, strings.HasSuffix(webPath, "-chair.jpg"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(webPath)))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func TestStore_SameNameNeverCollides(t *testing.T) {
	store, err := New(t.TempDir(), 1<<20)
	require.NoError(t, err)

	first, err := store.Save(fileHeader(t, "chair.jpg", []byte("one")))
	require.NoError(t, err)
	second, err := store.Save(fileHeader(t, "chair.jpg", []byte("two")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStore_FileTooLarge(t *testing.T) {
	store, err := New(t.TempDir(), 4)
	require.NoError(t, err)

	_, err = store.Save(fileHeader(t, "big.jpg", []byte("more than four bytes")))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir, 1<<20)
	require.NoError(t, err)

	webPath, err := store.Save(fileHeader(t, "chair.jpg", []byte("x")))
	require.NoError(t, err)

	require.NoError(t, store.Remove(webPath))

	_, err = os.Stat(filepath.Join(dir, filepath.Base(webPath)))
	assert.True(t, os.IsNotExist(err))
}
