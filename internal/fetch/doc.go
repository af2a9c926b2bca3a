package fetch

// Package fetch implements the retrieval strategies that turn an image URL
// into raw bytes plus a content type. Two interchangeable variants exist:
// Direct keeps the server's bytes and type as-is, Render decodes the image
// and re-encodes it as PNG. The orchestrator selects one variant per batch
// and never retries an attempt.
