package ui

// Package ui implements the fyne presentation layer: the URL input area,
// the live status table, the settings dialog, and the theme. It only reads
// batch state through snapshots and callback rows; all mutation happens in
// the batch service.
