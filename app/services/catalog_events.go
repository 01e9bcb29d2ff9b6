package services

import (
	"context"
	"encoding/json"

	"github.com/sheshine/backoffice/pkg/cache"
	"github.com/sheshine/backoffice/pkg/event"
	"github.com/sheshine/backoffice/pkg/logger"
	"github.com/sheshine/backoffice/pkg/metrics"
)

const (
	EntityProduct  = "product"
	EntityCategory = "category"
	EntityVariant  = "variant"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// CatalogEvent is the payload of every catalog write notification.
type CatalogEvent struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     uint   `json:"id"`
}

// Name is the event bus key, e.g. "product.created".
func (e CatalogEvent) Name() string { return e.Entity + "." + e.Action }

// CatalogEventNames lists every catalog event.
func CatalogEventNames() []string {
	var names []string
	for _, entity := range []string{EntityProduct, EntityCategory, EntityVariant} {
		for _, action := range []string{ActionCreated, ActionUpdated, ActionDeleted} {
			names = append(names, CatalogEvent{Entity: entity, Action: action}.Name())
		}
	}
	return names
}

func fireCatalog(entity, action string, id uint) {
	e := CatalogEvent{Entity: entity, Action: action, ID: id}
	event.Fire(e.Name(), e)
}

// Publisher receives serialised catalog events, e.g. the WebSocket hub.
type Publisher interface {
	Publish(msg []byte)
}

// ListenCatalogEvents wires the catalog listeners: category cache
// invalidation, the write counter and, when pub is not nil, broadcast.
func ListenCatalogEvents(pub Publisher) {
	event.Listen(func(payload interface{}) {
		e, ok := payload.(CatalogEvent)
		if !ok {
			return
		}

		metrics.CatalogWrites.WithLabelValues(e.Entity, e.Action).Inc()

		if e.Entity == EntityCategory {
			if err := cache.Del(context.Background(), categoryCacheKeys...); err != nil {
				logger.Warn("catalog: invalidate category cache", "error", err)
			}
		}

		if pub != nil {
			msg, err := json.Marshal(e)
			if err != nil {
				logger.Error("catalog: encode event", "event", e.Name(), "error", err)
				return
			}
			pub.Publish(msg)
		}
	}, CatalogEventNames()...)
}
