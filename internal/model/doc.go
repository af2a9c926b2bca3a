package model

// Package model defines domain data structures used across the app: fetch
// statuses, per-URL status rows, batches, and retrieved assets. Structures
// are designed for direct rendering in the UI and explicit state transitions.
