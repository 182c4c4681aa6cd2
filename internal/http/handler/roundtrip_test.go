package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"sharebox/internal/http/middleware"
	"sharebox/internal/service"
	"sharebox/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFileSharingApp assembles the real stack on a throwaway directory,
// mirroring how the server wires itself at boot.
func newFileSharingApp(t *testing.T) *fiber.App {
	t.Helper()

	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	svc := service.NewFileService(store, 500*1024*1024)

	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})
	app.Use(middleware.RequestID())
	app.Use(middleware.CORS())
	RegisterRoutes(app, store, svc)
	return app
}

func uploadRequest(t *testing.T, name, content string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("myFile", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func listedFiles(t *testing.T, app *fiber.App) []string {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/files", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result fileListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.True(t, result.Success)
	return result.Files
}

func TestFileLifecycle(t *testing.T) {
	app := newFileSharingApp(t)

	// Upload a file.
	resp, err := app.Test(uploadRequest(t, "hello.txt", "abc"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var uploaded uploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&uploaded))
	assert.True(t, uploaded.Success)
	assert.Equal(t, "hello.txt", uploaded.FileName)

	// It shows up in the listing.
	assert.Equal(t, []string{"hello.txt"}, listedFiles(t, app))

	// Download it back byte for byte.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/download/hello.txt", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="hello.txt"`, resp.Header.Get("Content-Disposition"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(body))

	// Delete it.
	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/delete/hello.txt", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted messageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&deleted))
	assert.True(t, deleted.Success)

	// It is gone from the listing and from the download path.
	assert.Empty(t, listedFiles(t, app))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/download/hello.txt", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFileLifecycleOverwrite(t *testing.T) {
	app := newFileSharingApp(t)

	resp, err := app.Test(uploadRequest(t, "report.csv", "v1"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(uploadRequest(t, "report.csv", "version two"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Same name stays a single entry holding the newest bytes.
	assert.Equal(t, []string{"report.csv"}, listedFiles(t, app))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/download/report.csv", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "version two", string(body))
}

func TestFileLifecycleOrdering(t *testing.T) {
	app := newFileSharingApp(t)

	for _, name := range []string{"zeta.log", "alpha.txt", "midway.md"} {
		resp, err := app.Test(uploadRequest(t, name, "data"))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, []string{"alpha.txt", "midway.md", "zeta.log"}, listedFiles(t, app))
}

func TestErrorEnvelopeCarriesRequestID(t *testing.T) {
	app := newFileSharingApp(t)

	req := httptest.NewRequest(http.MethodDelete, "/delete/missing.txt", nil)
	req.Header.Set(middleware.RequestIDHeader, "lifecycle-test-id")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var res errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.False(t, res.Success)
	assert.Equal(t, "lifecycle-test-id", res.RequestID)
}
