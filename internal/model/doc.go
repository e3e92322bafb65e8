// Package model defines domain data structures used across the app: stream
// descriptors, the fetched video catalog, the persisted config, and the
// download/conversion tasks with their status enum.
package model
