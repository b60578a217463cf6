// Package workflow ties the pipeline together: archive extraction, catalog
// retrieval, matching, the human review step, and finally tagging and
// renaming. The Manager owns the ordering guarantees; the pieces it calls
// are independently testable.
package workflow
