package domain

// CompileResult summarises a compiler run.
type CompileResult struct {
	// Written lists the output paths written, relative to the output directory.
	Written []string

	// Unchanged lists the output paths whose content was already up to date.
	Unchanged []string

	// Pruned lists the stale output paths removed.
	Pruned []string
}
