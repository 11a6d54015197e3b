// Package params gathers job parameters for a provenance record. LoadFile
// reads a YAML or JSON mapping, ParseAssignments turns KEY=VALUE pairs into
// typed values, and LoadStamps/Expand read Bazel-style workspace status
// files and substitute single-brace {VAR} placeholders.
package params
