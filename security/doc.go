// Package security provides token encryption at rest for the storage
// backends.
package security
