package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/pkg/errs"
	"github.com/sheshine/backoffice/pkg/testkit"
)

func TestVariantLifecycle(t *testing.T) {
	db := testkit.DB(t)
	cat := seedCategory(t, db, "Lips", nil)
	created := seedProduct(t, db, cat.ID, "Gloss", "")
	svc := services.NewVariantService(db)

	_, err := svc.Create(ctx, services.VariantInput{ProductID: 999})
	assert.Equal(t, errs.KindValidation, errs.From(err).Kind)

	_, err = svc.Create(ctx, services.VariantInput{ProductID: created.Product.ID, Stock: -1})
	assert.Contains(t, errs.From(err).Fields, "stock")

	v, err := svc.Create(ctx, services.VariantInput{ProductID: created.Product.ID, Size: "XL", Color: []string{"Red"}, Stock: 2})
	require.NoError(t, err)

	list, err := svc.ByProduct(ctx, created.Product.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	updated, err := svc.Update(ctx, v.ID, services.VariantUpdate{Stock: ptr(9)})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Stock)
	assert.Equal(t, "XL", updated.Size)

	_, err = svc.Update(ctx, v.ID, services.VariantUpdate{Stock: ptr(-4)})
	assert.Equal(t, errs.KindValidation, errs.From(err).Kind)

	require.NoError(t, svc.Delete(ctx, v.ID))
	_, err = svc.Get(ctx, v.ID)
	assert.True(t, errs.IsNotFound(err))
	assert.True(t, errs.IsNotFound(svc.Delete(ctx, v.ID)))
}

func TestSearchVariantsMatchesSizeOrColorElement(t *testing.T) {
	db := testkit.DB(t)
	cat := seedCategory(t, db, "Lips", nil)
	p := seedProduct(t, db, cat.ID, "Gloss", "")
	svc := services.NewVariantService(db)

	_, err := svc.Create(ctx, services.VariantInput{ProductID: p.Product.ID, Size: "Large", Color: []string{"Black"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, services.VariantInput{ProductID: p.Product.ID, Size: "S", Color: []string{"Cherry", "Peach"}})
	require.NoError(t, err)

	byColor, err := svc.Search(ctx, "CHERRY")
	require.NoError(t, err)
	require.Len(t, byColor, 1)
	assert.Equal(t, "S", byColor[0].Size)

	bySize, err := svc.Search(ctx, "arg")
	require.NoError(t, err)
	require.Len(t, bySize, 1)
	assert.Equal(t, "Large", bySize[0].Size)

	// The stored list is ["Cherry","Peach"]; a match across elements is not
	// a match on any single color.
	across, err := svc.Search(ctx, `y","p`)
	require.NoError(t, err)
	assert.Empty(t, across)

	_, err = svc.Create(ctx, services.VariantInput{ProductID: p.Product.ID, Size: "XL", Color: []string{"Black & White", "<Navy>", `Say "Rosé"`}})
	require.NoError(t, err)

	for _, q := range []string{"& white", "<navy", "ROSÉ", `"rosé"`} {
		found, err := svc.Search(ctx, q)
		require.NoError(t, err)
		require.Len(t, found, 1, q)
		assert.Equal(t, "XL", found[0].Size, q)
	}

	black, err := svc.Search(ctx, "black")
	require.NoError(t, err)
	assert.Len(t, black, 2)
}
