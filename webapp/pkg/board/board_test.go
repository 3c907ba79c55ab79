package board

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobasera/pkg/models"
)

type fakeCollaborator struct {
	mu        sync.Mutex
	items     []models.Announcement
	listErr   error
	createErr error
	updateErr error

	listCalls   int
	createCalls []models.CreateRequest
	updateCalls []models.ID
}

func (f *fakeCollaborator) List(context.Context) ([]models.Announcement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Announcement(nil), f.items...), nil
}

func (f *fakeCollaborator) Create(_ context.Context, req models.CreateRequest) (*models.Announcement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	item := models.Announcement{
		ID:          models.ID("new"),
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusActive,
		CreatedAt:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	return &item, nil
}

func (f *fakeCollaborator) UpdateStatus(_ context.Context, id models.ID, status string) (*models.Announcement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls = append(f.updateCalls, id)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for _, item := range f.items {
		if item.ID == id {
			closedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			item.Status = status
			item.ClosedAt = &closedAt
			return &item, nil
		}
	}
	return nil, errors.New("not found")
}

func seeded() *fakeCollaborator {
	return &fakeCollaborator{items: []models.Announcement{
		{ID: "1", Title: "A", Status: models.StatusActive},
		{ID: "2", Title: "B", Status: models.StatusActive},
		{ID: "3", Title: "C", Status: models.StatusClosed},
	}}
}

func loadedBoard(t *testing.T, f *fakeCollaborator) *Board {
	t.Helper()
	b := New(f, nil)
	require.NoError(t, b.Load(context.Background()))
	return b
}

func ids(v View) []models.ID {
	out := make([]models.ID, 0, len(v.Entries))
	for _, e := range v.Entries {
		out = append(out, e.ID)
	}
	return out
}

func TestLoadKeepsOrder(t *testing.T) {
	b := loadedBoard(t, seeded())

	v := b.Snapshot()
	assert.Equal(t, []models.ID{"1", "2", "3"}, ids(v))
	assert.False(t, v.Loading)
	assert.False(t, v.Empty)
	assert.Empty(t, v.Error)
}

func TestLoadFailure(t *testing.T) {
	f := &fakeCollaborator{listErr: errors.New("down")}
	b := New(f, nil)

	err := b.Load(context.Background())
	require.Error(t, err)

	v := b.Snapshot()
	assert.Equal(t, MsgLoadFailed, v.Error)
	assert.False(t, v.Loading)
	assert.True(t, v.Empty)
}

func TestLoadReplacesListAndDropsLocalFields(t *testing.T) {
	f := seeded()
	b := loadedBoard(t, f)
	b.Like("1")

	require.NoError(t, b.Load(context.Background()))
	assert.Equal(t, 0, b.Snapshot().Entries[0].Like)
}

func TestEnsureLoadedOnlyOnce(t *testing.T) {
	f := seeded()
	b := New(f, nil)

	require.NoError(t, b.EnsureLoaded(context.Background()))
	require.NoError(t, b.EnsureLoaded(context.Background()))
	assert.Equal(t, 1, f.listCalls)
}

// gatedCollaborator задерживает List до закрытия release.
type gatedCollaborator struct {
	*fakeCollaborator
	started chan struct{}
	release chan struct{}
}

func (g *gatedCollaborator) List(ctx context.Context) ([]models.Announcement, error) {
	g.started <- struct{}{}
	<-g.release
	return g.fakeCollaborator.List(ctx)
}

func TestLoadingWhileFirstLoadInFlight(t *testing.T) {
	g := &gatedCollaborator{
		fakeCollaborator: seeded(),
		started:          make(chan struct{}, 1),
		release:          make(chan struct{}),
	}
	b := New(g, nil)

	done := make(chan error, 1)
	go func() { done <- b.EnsureLoaded(context.Background()) }()

	select {
	case <-g.started:
	case <-time.After(time.Second):
		t.Fatal("list was not requested")
	}

	v := b.Snapshot()
	assert.True(t, v.Loading)
	assert.True(t, v.Empty)

	// Повторный первый показ не должен запрашивать список еще раз.
	require.NoError(t, b.EnsureLoaded(context.Background()))

	close(g.release)
	require.NoError(t, <-done)

	v = b.Snapshot()
	assert.False(t, v.Loading)
	assert.Len(t, v.Entries, 3)
	assert.Equal(t, 1, g.listCalls)
}

func TestConcurrentFirstDisplayListsOnce(t *testing.T) {
	f := seeded()
	b := New(f, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = b.EnsureLoaded(context.Background())
		}()
	}
	wg.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, 1, f.listCalls)
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	f := seeded()
	b := loadedBoard(t, f)

	err := b.Create(context.Background(), "", "desc")
	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.Empty(t, f.createCalls)
	assert.False(t, b.Snapshot().CanSubmit)

	assert.ErrorIs(t, b.Create(context.Background(), "   ", "desc"), ErrEmptyTitle)
	assert.Empty(t, f.createCalls)
	b.SetInputs("   ", "desc")
	assert.False(t, b.Snapshot().CanSubmit)
}

func TestCreateSendsTextAsEntered(t *testing.T) {
	f := seeded()
	b := loadedBoard(t, f)

	require.NoError(t, b.Create(context.Background(), "Use List<String> here", "a <b>c</b> <x@y.z>"))
	assert.Equal(t, []models.CreateRequest{{Title: "Use List<String> here", Description: "a <b>c</b> <x@y.z>"}}, f.createCalls)
}

func TestCreatePrependsAndClearsInputs(t *testing.T) {
	f := seeded()
	b := loadedBoard(t, f)
	b.SetInputs("Hello", "World")
	assert.True(t, b.Snapshot().CanSubmit)

	require.NoError(t, b.Create(context.Background(), "Hello", "World"))

	v := b.Snapshot()
	assert.Equal(t, []models.ID{"new", "1", "2", "3"}, ids(v))
	assert.Equal(t, "Hello", v.Entries[0].Title)
	assert.Equal(t, "World", v.Entries[0].Description)
	assert.Empty(t, v.Title)
	assert.Empty(t, v.Description)
	assert.Equal(t, []models.CreateRequest{{Title: "Hello", Description: "World"}}, f.createCalls)
}

func TestCreateFailureKeepsInputs(t *testing.T) {
	f := seeded()
	b := loadedBoard(t, f)
	f.createErr = errors.New("500")

	err := b.Create(context.Background(), "Hello", "World")
	require.Error(t, err)

	v := b.Snapshot()
	assert.Equal(t, MsgCreateFailed, v.Error)
	assert.Equal(t, "Hello", v.Title)
	assert.Equal(t, "World", v.Description)
	assert.Len(t, v.Entries, 3)
}

func TestCreateClearsPreviousError(t *testing.T) {
	f := seeded()
	f.listErr = errors.New("down")
	b := New(f, nil)
	_ = b.Load(context.Background())
	require.Equal(t, MsgLoadFailed, b.Snapshot().Error)

	require.NoError(t, b.Create(context.Background(), "x", ""))
	assert.Empty(t, b.Snapshot().Error)
}

func TestCloseUpdatesOnlyThatRecord(t *testing.T) {
	f := seeded()
	b := loadedBoard(t, f)
	before := b.Snapshot()

	require.NoError(t, b.Close(context.Background(), "1"))

	after := b.Snapshot()
	assert.Equal(t, []models.ID{"1"}, f.updateCalls)
	assert.Equal(t, models.StatusClosed, after.Entries[0].Status)
	require.NotNil(t, after.Entries[0].ClosedAt)
	assert.Equal(t, before.Entries[1], after.Entries[1])
	assert.Equal(t, before.Entries[2], after.Entries[2])
}

func TestCloseKeepsLocalFields(t *testing.T) {
	f := seeded()
	b := loadedBoard(t, f)
	b.Like("1")
	b.SetDraft("1", "nice")
	b.PostComment("1")

	require.NoError(t, b.Close(context.Background(), "1"))

	e := b.Snapshot().Entries[0]
	assert.True(t, e.IsClosed())
	assert.Equal(t, 1, e.Like)
	assert.Equal(t, []string{"nice"}, e.Comments)
}

func TestCloseFailure(t *testing.T) {
	f := seeded()
	b := loadedBoard(t, f)
	f.updateErr = errors.New("boom")

	require.Error(t, b.Close(context.Background(), "1"))

	v := b.Snapshot()
	assert.Equal(t, MsgCloseFailed, v.Error)
	assert.True(t, v.Entries[0].IsActive())
}

func TestLikeAndDislikeAreLocal(t *testing.T) {
	f := seeded()
	b := loadedBoard(t, f)

	b.Like("2")
	b.Like("2")
	b.Dislike("2")
	b.Like("missing")

	v := b.Snapshot()
	assert.Equal(t, 2, v.Entries[1].Like)
	assert.Equal(t, 1, v.Entries[1].Dislike)
	assert.Equal(t, 0, v.Entries[0].Like)
	assert.Equal(t, 0, v.Entries[0].Dislike)
	assert.Empty(t, f.createCalls)
	assert.Empty(t, f.updateCalls)
	assert.Equal(t, 1, f.listCalls)
}

func TestCommentAppendsAndClearsOnlyOwnDraft(t *testing.T) {
	b := loadedBoard(t, seeded())

	b.SetDraft("1", "first")
	b.SetDraft("2", "other draft")
	b.PostComment("1")
	b.SetDraft("1", "second")
	b.PostComment("1")

	v := b.Snapshot()
	assert.Equal(t, []string{"first", "second"}, v.Entries[0].Comments)
	assert.Empty(t, v.Entries[0].Draft)
	assert.Equal(t, "other draft", v.Entries[1].Draft)
	assert.Empty(t, v.Entries[1].Comments)
}

func TestEmptyCommentIsIgnored(t *testing.T) {
	b := loadedBoard(t, seeded())

	b.PostComment("1")
	b.SetDraft("1", "")
	b.PostComment("1")

	assert.Empty(t, b.Snapshot().Entries[0].Comments)
}

func TestSnapshotIsACopy(t *testing.T) {
	b := loadedBoard(t, seeded())
	b.SetDraft("1", "c")
	b.PostComment("1")

	v := b.Snapshot()
	v.Entries[0].Comments[0] = "changed"
	v.Entries[0].Like = 99

	fresh := b.Snapshot()
	assert.Equal(t, "c", fresh.Entries[0].Comments[0])
	assert.Equal(t, 0, fresh.Entries[0].Like)
}
