package objects_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bucket-manager/core/storage/memstore"
	"bucket-manager/feature/objects"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T) (*fiber.App, *objects.Service, *memstore.Client) {
	t.Helper()
	client := memstore.New("assets")
	svc := objects.NewService(client, "assets", zap.NewNop())
	app := fiber.New()
	objects.NewHandler(svc).RegisterRoutes(app)
	return app, svc, client
}

func uploadRequest(t *testing.T, key, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "upload.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("PUT", "/objects/"+key, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHandler_UploadDownloadDelete(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, err := app.Test(uploadRequest(t, "docs/readme.txt", "hello there"), 2000)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/objects/docs/readme.txt", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "hello there", string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/objects", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var listing objects.ListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	assert.Equal(t, "assets", listing.Bucket)
	assert.Equal(t, []string{"docs/readme.txt"}, listing.Keys)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/objects/docs/readme.txt", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	// Deleting again is still a success.
	resp, err = app.Test(httptest.NewRequest("DELETE", "/objects/docs/readme.txt", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/objects/docs/readme.txt", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandler_ListPrefix(t *testing.T) {
	app, svc, _ := setupApp(t)
	ctx := context.Background()
	for _, k := range []string{"a/1", "a/2", "b/1"} {
		require.NoError(t, svc.PutReader(ctx, k, strings.NewReader(k), int64(len(k)), ""))
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/objects?prefix=a/", nil), 2000)
	require.NoError(t, err)
	var listing objects.ListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	assert.Equal(t, []string{"a/1", "a/2"}, listing.Keys)
}

func TestHandler_Meta(t *testing.T) {
	app, svc, _ := setupApp(t)
	require.NoError(t, svc.PutReader(context.Background(), "img.png", strings.NewReader("png"), 3, "image/png"))

	resp, err := app.Test(httptest.NewRequest("GET", "/objects/img.png?meta=true", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var info objects.ObjectInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "img.png", info.Key)
	assert.Equal(t, int64(3), info.Size)
	assert.Equal(t, "image/png", info.ContentType)
}

func TestHandler_UploadWithoutFile(t *testing.T) {
	app, _, client := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("PUT", "/objects/k", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Zero(t, client.Count("PutObject"))
}

func TestHandler_TransportFailure(t *testing.T) {
	app, _, client := setupApp(t)
	client.Err = errors.New("connection refused")

	resp, err := app.Test(httptest.NewRequest("GET", "/objects", nil), 2000)
	require.NoError(t, err)
	assert.Equal(t, 502, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		kind error
		want int
	}{
		{"InvalidInput", objects.ErrInvalidInput, 400},
		{"RemoteObjectNotFound", objects.ErrRemoteObjectNotFound, 404},
		{"Transport", objects.ErrTransport, 502},
		{"LocalFileNotFound", objects.ErrLocalFileNotFound, 500},
		{"LocalIO", objects.ErrLocalIO, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &objects.Error{Op: "test", Kind: tt.kind}
			assert.Equal(t, tt.want, objects.StatusFor(err))
		})
	}
}
