// Package event provides an in-process event dispatcher.
package event

import (
	"fmt"
	"sync"

	"github.com/sheshine/backoffice/pkg/logger"
)

// Handler receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
)

// Listen registers handler for each of the named events.
func Listen(handler Handler, events ...string) {
	mu.Lock()
	defer mu.Unlock()
	for _, e := range events {
		handlers[e] = append(handlers[e], handler)
	}
}

func listeners(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Handler(nil), handlers[event]...)
}

// Fire dispatches an event synchronously to all registered listeners. A
// panicking listener is logged and does not stop the others.
func Fire(event string, payload interface{}) {
	for _, h := range listeners(event) {
		call(event, h, payload)
	}
}

func call(event string, h Handler, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event: listener panicked", "event", event, "error", fmt.Sprint(r))
		}
	}()
	h(payload)
}

// Flush removes all listeners.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}
