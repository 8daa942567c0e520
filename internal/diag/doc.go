// Package diag defines the diagnostic model shared by the rule runner,
// the driver and the output formatters.
//
// A Diagnostic is a style finding, never an error: tool failures travel as
// Go errors through the driver. Each finding carries the rule that produced
// it, a stable code (InvalidFormat, MissingVariable, ...) and the token
// position it refers to. Rule + "." + Code is the identifier users put into
// exclude_codes.
//
// Package diag does no formatting or IO. Rendering lives in internal/diagfmt.
package diag
