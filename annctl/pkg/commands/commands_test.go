package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	collabapi "gobasera/collabapp/pkg/api"
	"gobasera/collabapp/pkg/storage"
	"gobasera/pkg/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func newCollaborator(t *testing.T) (*httptest.Server, *storage.Memory) {
	t.Helper()
	store := storage.NewMemory()
	srv := httptest.NewServer(collabapi.New(store, nil).Router())
	t.Cleanup(srv.Close)
	return srv, store
}

func TestListEmpty(t *testing.T) {
	srv, _ := newCollaborator(t)

	out, err := run(t, "list", "--url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "No announcements yet.")
}

func TestCreateListClose(t *testing.T) {
	srv, store := newCollaborator(t)

	out, err := run(t, "create", "--url", srv.URL, "--title", "Standup", "--description", "daily")
	require.NoError(t, err)
	assert.Contains(t, out, "Created announcement")

	items, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	id := items[0].ID.String()

	out, err = run(t, "list", "--url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Standup")
	assert.Contains(t, out, "active")
	assert.Contains(t, out, id)

	out, err = run(t, "close", "--url", srv.URL, id)
	require.NoError(t, err)
	assert.Contains(t, out, "Closed announcement "+id)

	items, err = store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, items[0].Status)
}

func TestCreateRequiresTitle(t *testing.T) {
	srv, store := newCollaborator(t)

	_, err := run(t, "create", "--url", srv.URL, "--title", " ", "--description", "x")
	require.Error(t, err)

	items, _ := store.List(context.Background())
	assert.Empty(t, items)
}

func TestCloseUnknownFails(t *testing.T) {
	srv, _ := newCollaborator(t)

	_, err := run(t, "close", "--url", srv.URL, "missing")
	assert.ErrorContains(t, err, "failed to update status")
}
