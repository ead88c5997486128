package menu_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bucket-manager/core/storage/memstore"
	"bucket-manager/feature/menu"
	"bucket-manager/feature/objects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLoop(t *testing.T, input string) (*menu.Loop, *bytes.Buffer, *memstore.Client, *objects.Service) {
	t.Helper()
	client := memstore.New("test-bucket")
	svc := objects.NewService(client, "test-bucket", zap.NewNop())
	var out bytes.Buffer
	return menu.NewLoop(svc, "test-bucket", strings.NewReader(input), &out, zap.NewNop()), &out, client, svc
}

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

func TestLoop_Exit(t *testing.T) {
	loop, out, _, _ := newLoop(t, lines("5"))

	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, menu.StateExited, loop.State())
	assert.Contains(t, out.String(), "Goodbye.")
}

func TestLoop_InvalidSelection(t *testing.T) {
	loop, out, client, _ := newLoop(t, lines("9", "", "1 2", "5"))

	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, 3, strings.Count(out.String(), "✗ Invalid option"))
	assert.Equal(t, 4, strings.Count(out.String(), "Menu:"))
	assert.Zero(t, client.Count("PutObject")+client.Count("ListObjects")+client.Count("RemoveObject"))
	assert.Equal(t, menu.StateExited, loop.State())
}

func TestLoop_UploadAndList(t *testing.T) {
	src := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("notes"), 0o644))

	loop, out, _, _ := newLoop(t, lines("1", src, "a.txt", "4", "5"))

	require.NoError(t, loop.Run(context.Background()))
	assert.Contains(t, out.String(), `✓ Uploaded "`+src+`" as "a.txt".`)
	assert.Contains(t, out.String(), " - a.txt\n")
}

func TestLoop_UploadMissingFile(t *testing.T) {
	loop, out, client, _ := newLoop(t, lines("1", "/nonexistent/path", "k", "5"))

	require.NoError(t, loop.Run(context.Background()))
	assert.Contains(t, out.String(), `✗ The local file "/nonexistent/path" does not exist.`)
	assert.Zero(t, client.Count("PutObject"))
	assert.Contains(t, out.String(), "Goodbye.")
}

func TestLoop_EmptyInputReprompts(t *testing.T) {
	src := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	loop, out, client, _ := newLoop(t, lines("1", "", "  ", src, "", "key", "5"))

	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, 3, strings.Count(out.String(), "✗ Invalid input: a value is required."))
	assert.Equal(t, 1, client.Count("PutObject"))
}

func TestLoop_Download(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.txt")
	loop, out, _, svc := newLoop(t, lines("2", "doc.txt", dst, "5"))
	require.NoError(t, svc.PutReader(context.Background(), "doc.txt", strings.NewReader("payload"), 7, ""))

	require.NoError(t, loop.Run(context.Background()))

	listingAt := strings.Index(out.String(), " - doc.txt")
	promptAt := strings.Index(out.String(), "Key to download: ")
	require.NotEqual(t, -1, listingAt)
	assert.Less(t, listingAt, promptAt, "listing is shown before the key prompt")

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
	assert.Contains(t, out.String(), "✓ Downloaded")
}

func TestLoop_DownloadMissingKey(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out")
	loop, out, _, _ := newLoop(t, lines("2", "nope", dst, "5"))

	require.NoError(t, loop.Run(context.Background()))
	assert.Contains(t, out.String(), "The bucket is empty.")
	assert.Contains(t, out.String(), `✗ Object "nope" was not found in the bucket.`)
	_, err := os.Stat(dst)
	assert.True(t, os.IsNotExist(err))
}

func TestLoop_Delete(t *testing.T) {
	loop, out, client, svc := newLoop(t, lines("3", "old.txt", "3", "old.txt", "5"))
	require.NoError(t, svc.PutReader(context.Background(), "old.txt", strings.NewReader("x"), 1, ""))

	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, 2, strings.Count(out.String(), `✓ Deleted "old.txt".`))
	assert.Equal(t, 2, client.Count("RemoveObject"))
}

func TestLoop_TransportFailureContinues(t *testing.T) {
	loop, out, client, _ := newLoop(t, lines("4", "5"))
	client.Err = errors.New("dial tcp 127.0.0.1:9000: connection refused")

	require.NoError(t, loop.Run(context.Background()))
	assert.Contains(t, out.String(), "✗ Storage error during list: dial tcp 127.0.0.1:9000: connection refused")
	assert.Contains(t, out.String(), "Goodbye.")
}

func TestLoop_EndOfInput(t *testing.T) {
	loop, _, _, _ := newLoop(t, "1\n/some/path")

	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, menu.StateExited, loop.State())
}

func TestLoop_CancelledContext(t *testing.T) {
	loop, _, _, _ := newLoop(t, lines("4", "5"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := loop.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, menu.StateExited, loop.State())
}

type panicStore struct{}

func (panicStore) Put(context.Context, string, string) error { panic("boom") }
func (panicStore) Get(context.Context, string, string) error { panic("boom") }
func (panicStore) List(context.Context) ([]string, error)    { return nil, nil }
func (panicStore) Delete(context.Context, string) error      { panic("boom") }

func TestLoop_RecoversFromPanic(t *testing.T) {
	var out bytes.Buffer
	input := lines("1", "a", "b", "3", "k", "5")
	loop := menu.NewLoop(panicStore{}, "test-bucket", strings.NewReader(input), &out, zap.NewNop())

	require.NoError(t, loop.Run(context.Background()))
	assert.Contains(t, out.String(), "✗ upload failed: internal error: boom")
	assert.Contains(t, out.String(), "✗ delete failed: internal error: boom")
	assert.Contains(t, out.String(), "Goodbye.")
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "MenuDisplay", menu.StateMenuDisplay.String())
	assert.Equal(t, "AwaitingInput", menu.StateAwaitingInput.String())
	assert.Equal(t, "Executing", menu.StateExecuting.String())
	assert.Equal(t, "Reporting", menu.StateReporting.String())
	assert.Equal(t, "Exited", menu.StateExited.String())
	assert.Equal(t, "Unknown", menu.State(42).String())
}
