package platform

// Package platform contains OS integration helpers: output directory
// handling, saving the finished archive, and revealing files in the system
// file manager.
