package services_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheshine/backoffice/app/services"
	"github.com/sheshine/backoffice/pkg/event"
	"github.com/sheshine/backoffice/pkg/testkit"
)

type recorder struct {
	mu   sync.Mutex
	msgs []services.CatalogEvent
}

func (r *recorder) Publish(msg []byte) {
	var e services.CatalogEvent
	if json.Unmarshal(msg, &e) == nil {
		r.mu.Lock()
		r.msgs = append(r.msgs, e)
		r.mu.Unlock()
	}
}

func TestCatalogWritesArePublished(t *testing.T) {
	t.Cleanup(event.Flush)
	rec := &recorder{}
	services.ListenCatalogEvents(rec)

	db := testkit.DB(t)
	cat := seedCategory(t, db, "Lips", nil)
	created := seedProduct(t, db, cat.ID, "Gloss", "")
	require.NoError(t, services.NewProductService(db).Delete(ctx, created.Product.ID))

	assert.Equal(t, []services.CatalogEvent{
		{Entity: "category", Action: "created", ID: cat.ID},
		{Entity: "product", Action: "created", ID: created.Product.ID},
		{Entity: "variant", Action: "created", ID: created.Variant.ID},
		{Entity: "product", Action: "deleted", ID: created.Product.ID},
	}, rec.msgs)
}

func TestCatalogEventNames(t *testing.T) {
	names := services.CatalogEventNames()
	assert.Len(t, names, 9)
	assert.Contains(t, names, "variant.updated")
}
