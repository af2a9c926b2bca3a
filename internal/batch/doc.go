package batch

// Package batch implements the core fetch-and-package pipeline. It fans out
// one retrieval per URL, pushes a status update to the UI the moment each
// retrieval settles, tolerates individual failures, and packages everything
// that succeeded into a single zip once all retrievals have settled.
