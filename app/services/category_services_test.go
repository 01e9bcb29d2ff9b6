package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/pkg/errs"
	"github.com/sheshine/backoffice/pkg/testkit"
)

func TestDeleteCategoryCascadesOneLevel(t *testing.T) {
	db := testkit.DB(t)
	root := seedCategory(t, db, "Makeup", nil)
	child := seedCategory(t, db, "Lips", &root.ID)
	grandchild := seedCategory(t, db, "Lipstick", &child.ID)
	svc := services.NewCategoryService(db)

	require.NoError(t, svc.Delete(ctx, root.ID))

	_, err := svc.Get(ctx, root.ID)
	assert.True(t, errs.IsNotFound(err))
	_, err = svc.Get(ctx, child.ID)
	assert.True(t, errs.IsNotFound(err))

	orphan, err := svc.Get(ctx, grandchild.ID)
	require.NoError(t, err)
	require.NotNil(t, orphan.ParentID)
	assert.Equal(t, child.ID, *orphan.ParentID)

	assert.True(t, errs.IsNotFound(svc.Delete(ctx, root.ID)))
}

func TestCategoryTree(t *testing.T) {
	db := testkit.DB(t)
	makeup := seedCategory(t, db, "Makeup", nil)
	skin := seedCategory(t, db, "Skin", nil)
	lips := seedCategory(t, db, "Lips", &makeup.ID)
	seedCategory(t, db, "Eyes", &makeup.ID)
	seedCategory(t, db, "Gloss", &lips.ID)

	tree, err := services.NewCategoryService(db).Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Makeup", tree[0].Name)
	assert.Equal(t, skin.ID, tree[1].ID)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "Lips", tree[0].Children[0].Name)
	assert.Equal(t, "Eyes", tree[0].Children[1].Name)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Empty(t, tree[1].Children)
}

func TestBuildTreeSurfacesOrphansAndCycles(t *testing.T) {
	id := func(n uint) *uint { return &n }
	cats := []models.Category{
		{Model: models.Model{ID: 1}, Name: "a", ParentID: id(99)},
		{Model: models.Model{ID: 2}, Name: "b", ParentID: id(3)},
		{Model: models.Model{ID: 3}, Name: "c", ParentID: id(2)},
		{Model: models.Model{ID: 4}, Name: "d", ParentID: id(4)},
	}

	tree := services.BuildTree(cats)
	var roots []string
	for _, n := range tree {
		roots = append(roots, n.Name)
	}
	assert.Equal(t, []string{"a", "d", "b"}, roots)
	require.Len(t, tree[2].Children, 1)
	assert.Equal(t, "c", tree[2].Children[0].Name)
}

func TestCategoryCreateAndUpdateRules(t *testing.T) {
	db := testkit.DB(t)
	svc := services.NewCategoryService(db)

	_, err := svc.Create(ctx, services.CategoryInput{Name: "  "})
	assert.Equal(t, errs.KindValidation, errs.From(err).Kind)

	_, err = svc.Create(ctx, services.CategoryInput{Name: "Lips", ParentID: ptr(uint(77))})
	assert.Equal(t, "does not exist", errs.From(err).Fields["parentId"])

	root := seedCategory(t, db, "Makeup", nil)
	lips := seedCategory(t, db, "Lips", &root.ID)

	_, err = svc.Update(ctx, lips.ID, services.CategoryUpdate{ParentID: ptr(lips.ID)})
	assert.Equal(t, errs.KindValidation, errs.From(err).Kind)

	updated, err := svc.Update(ctx, lips.ID, services.CategoryUpdate{Image: ptr("https://cdn/lips.png"), ParentID: ptr(uint(0))})
	require.NoError(t, err)
	assert.Equal(t, "Lips", updated.Name)
	assert.Equal(t, "https://cdn/lips.png", updated.Image)
	assert.Nil(t, updated.ParentID)

	_, err = svc.Update(ctx, 404, services.CategoryUpdate{Name: ptr("x")})
	assert.True(t, errs.IsNotFound(err))
}

func TestSearchCategories(t *testing.T) {
	db := testkit.DB(t)
	seedCategory(t, db, "Lip Care", nil)
	seedCategory(t, db, "Eyes", nil)
	seedCategory(t, db, "LIPSTICK", nil)

	found, err := services.NewCategoryService(db).Search(ctx, "lip")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Lip Care", found[0].Name)
	assert.Equal(t, "LIPSTICK", found[1].Name)

	list, err := services.NewCategoryService(db).List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
