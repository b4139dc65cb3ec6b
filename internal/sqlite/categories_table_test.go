package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukaforge/taskdeck/pkg/types"
)

func TestCreateCategory(t *testing.T) {
	b, _ := newTestBackend(t)
	ctx := context.Background()

	cat, err := b.CreateCategory(ctx, "  Work ")
	require.NoError(t, err)
	assert.NotZero(t, cat.ID)
	assert.Equal(t, "Work", cat.Name)

	_, err = b.CreateCategory(ctx, "   ")
	assert.ErrorIs(t, err, types.ErrNameRequired)
}

func TestListCategoriesSortedByName(t *testing.T) {
	b, _ := newTestBackend(t)
	ctx := context.Background()

	for _, name := range []string{"Work", "Errands", "Home"} {
		_, err := b.CreateCategory(ctx, name)
		require.NoError(t, err)
	}

	categories, err := b.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Errands", categories[0].Name)
	assert.Equal(t, "Home", categories[1].Name)
	assert.Equal(t, "Work", categories[2].Name)
}

func TestListCategoriesEmpty(t *testing.T) {
	b, _ := newTestBackend(t)

	categories, err := b.ListCategories(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
}
