// Package driving provides interfaces for application entry points
// (primary/inbound ports). The CLI layer depends on these, not on the
// service implementations.
package driving
