// Package ui prints the plain text lines a run shows its user: progress
// and warnings on stderr, planned downloads on stdout.
package ui
