package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("profileImage", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["profileImage"][0]
}

func TestImageStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(dir)
	require.NoError(t, err)

	file := multipartFile(t, "avatar.png", []byte("fake image bytes"))
	path, err := store.Save(file)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/profile-"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	saved, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(path, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake image bytes"), saved)
}

func TestImageStore_RejectsDisallowedExtension(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	file := multipartFile(t, "script.exe", []byte("nope"))
	_, err = store.Save(file)

	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestImageStore_RejectsOversizedFile(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	// Size is checked before the file is opened, so a synthetic header
	// is enough here.
	file := &multipart.FileHeader{Filename: "big.png", Size: MaxImageSize + 1}
	_, err = store.Save(file)

	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestImageStore_UniqueNames(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(multipartFile(t, "a.jpg", []byte("one")))
	require.NoError(t, err)
	second, err := store.Save(multipartFile(t, "a.jpg", []byte("two")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
