// Package exec runs external commands and captures their standard
// output. It backs the external-tool digest strategy.
package exec
