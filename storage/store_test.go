package storage

import (
	"testing"
	"time"

	"TodoWebService/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore opens an in-memory sqlite database with the schema applied.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate())
	return store
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	task := models.Task{Title: "keep me", CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Insert(&task))

	// A second migration must leave existing data untouched.
	require.NoError(t, store.Migrate())
	got, err := store.Get(task.Id)
	require.NoError(t, err)
	assert.Equal(t, "keep me", got.Title)
}

func TestInsertAssignsUniqueIds(t *testing.T) {
	store := newTestStore(t)
	first := models.Task{Title: "first", CreatedAt: time.Now().UTC()}
	second := models.Task{Title: "second", CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Insert(&first))
	require.NoError(t, store.Insert(&second))

	assert.NotZero(t, first.Id)
	assert.NotZero(t, second.Id)
	assert.NotEqual(t, first.Id, second.Id)
}

func TestGetUnknownIdReturnsNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrdersByCreationTimeDescending(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	older := models.Task{Title: "older", CreatedAt: base}
	newer := models.Task{Title: "newer", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, store.Insert(&older))
	require.NoError(t, store.Insert(&newer))

	tasks, err := store.List()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "newer", tasks[0].Title)
	assert.Equal(t, "older", tasks[1].Title)
}

func TestListBreaksTiesByInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for _, title := range []string{"a", "b", "c"} {
		task := models.Task{Title: title, CreatedAt: at}
		require.NoError(t, store.Insert(&task))
	}

	tasks, err := store.List()
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "a", tasks[0].Title)
	assert.Equal(t, "b", tasks[1].Title)
	assert.Equal(t, "c", tasks[2].Title)
}

func TestUpdatePersistsAndKeepsCreatedAt(t *testing.T) {
	store := newTestStore(t)
	createdAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	task := models.Task{Title: "before", CreatedAt: createdAt}
	require.NoError(t, store.Insert(&task))

	task.Title = "after"
	task.Completed = true
	require.NoError(t, store.Update(task))

	got, err := store.Get(task.Id)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.True(t, got.Completed)
	assert.True(t, got.CreatedAt.Equal(createdAt))
}

func TestUpdateUnknownIdReturnsNotFound(t *testing.T) {
	store := newTestStore(t)
	err := store.Update(models.Task{Id: 42, Title: "ghost", CreatedAt: time.Now().UTC()})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRemovesTask(t *testing.T) {
	store := newTestStore(t)
	task := models.Task{Title: "doomed", CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Insert(&task))

	require.NoError(t, store.Delete(task.Id))

	_, err := store.Get(task.Id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(task.Id), ErrNotFound)
}
