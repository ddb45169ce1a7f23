// Package merge implements resource-fragment consolidation: scanning an
// origin directory for candidate files, resolving each bare filename to a
// target filename via regex capture groups (or a static override), grouping
// files that share a target while tracking their common path prefix, and
// streaming each group's content into its target file with optional newline
// separators and per-source comments, followed by retryable deletion of the
// consumed originals.
//
// Strategies implement [Strategy] and are registered by type name; the
// default "regex" strategy is [RegexStrategy]. Execution is sequential and
// synchronous: the append stream's ordering and the first-write newline
// check both depend on strict sequencing within a group.
//
// When implementing a new strategy, split along the stage boundaries used
// here: scan.go, resolve.go, group.go, writer.go, delete.go.
package merge
