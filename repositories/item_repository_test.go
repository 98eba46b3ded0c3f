package repositories

import (
	"context"
	"testing"

	"sick-fits/models"
	"sick-fits/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRepository_FindAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(testutil.NewDB(t))
	for _, title := range []string{"first", "second", "third"} {
		_, err := repo.Create(ctx, models.Item{Title: title, Description: "d", Price: 100, UserID: 1})
		require.NoError(t, err)
	}

	items, err := repo.FindAll(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "third", items[0].Title)
	assert.Equal(t, "second", items[1].Title)

	items, err = repo.FindAll(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "first", items[0].Title)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestItemRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(testutil.NewDB(t))
	item, err := repo.Create(ctx, models.Item{Title: "Hat", Description: "Warm", Price: 100, UserID: 1})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, item.ID, map[string]interface{}{"price": 250})
	require.NoError(t, err)
	assert.Equal(t, 250, updated.Price)
	assert.Equal(t, "Hat", updated.Title)

	unchanged, err := repo.Update(ctx, item.ID, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, 250, unchanged.Price)

	_, err = repo.Update(ctx, 999, map[string]interface{}{"price": 1})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(ctx, item.ID))
	_, err = repo.FindById(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, item.ID), ErrNotFound)
}
