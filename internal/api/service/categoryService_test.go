package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titlehub/internal/api/models"
)

func TestCategoryCreate(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())
	ctx := context.Background()

	c := &models.Category{Name: "  Movies ", Slug: " movies "}
	require.NoError(t, svc.Create(ctx, c))
	assert.Equal(t, "Movies", c.Name)
	assert.Equal(t, "movies", c.Slug)

	err := svc.Create(ctx, &models.Category{Name: "Films", Slug: "movies"})
	assert.ErrorIs(t, err, ErrSlugInUse)
}

func TestCategoryDelete(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &models.Category{Name: "Movies", Slug: "movies"}))
	require.NoError(t, svc.Delete(ctx, "movies"))
	assert.ErrorIs(t, svc.Delete(ctx, "movies"), ErrNotFound)
}

func TestGenreCreate(t *testing.T) {
	svc := NewGenreService(newFakeGenreRepo())
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &models.Genre{Name: "Drama", Slug: "drama"}))
	err := svc.Create(ctx, &models.Genre{Name: "Dramatic", Slug: "drama"})
	assert.ErrorIs(t, err, ErrSlugInUse)

	assert.ErrorIs(t, svc.Delete(ctx, "unknown"), ErrNotFound)
}
