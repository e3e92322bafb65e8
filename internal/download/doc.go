// Package download places a selected stream into the configured output
// directory under a timestamped filename. The transfer itself is delegated to
// a catalog backend; this package owns task lifecycle and progress
// propagation.
package download
