// internal/clibase/examples.go
package clibase

import "strings"

// Examples returns the quickstart block for a command, indented for cobra's
// Example field.
func Examples(lines ...string) string {
	return "  " + strings.Join(lines, "\n  ")
}
