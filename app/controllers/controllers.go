// Package controllers adapts HTTP requests to the services. Every handler
// has the ctx.ErrorHandlerFunc shape and is mounted through ctx.Handle.
package controllers
