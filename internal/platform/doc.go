// Package platform contains OS/platform integration and small path helpers:
// filename splitting and sanitizing, duration formatting, directory checks,
// and revealing finished files in the system file manager.
package platform
