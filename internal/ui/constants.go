package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
)

// Status table layout
const (
	StatusColumnWidth      float32 = 110
	DescriptionColumnWidth float32 = 260
	URLColumnWidth         float32 = 380
)

// Input area sizing
const (
	InputMinRowsVisible = 8
)

// Settings dialog sizing
const (
	SettingsDialogWidth  float32 = 480
	SettingsDialogHeight float32 = 420
)

// Status table column indexes
const (
	ColumnStatus = iota
	ColumnDescription
	ColumnURL
	ColumnCount
)
