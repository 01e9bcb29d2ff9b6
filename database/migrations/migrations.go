// Package migrations contains the schema migrations. Each file registers
// its migrations with migration.Register from init(); importing this
// package for side effects makes them available to the runner.
package migrations
