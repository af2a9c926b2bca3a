package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/img2zip/img2zip/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	window       fyne.Window
	localization *Localization
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	outputDirEntry  *widget.Entry
	modeSelect      *widget.Select
	timeoutEntry    *widget.Entry
	autoRevealCheck *widget.Check
	languageSelect  *widget.Select
}

// NewSettingsDialog creates a new settings dialog. onSaved is invoked after
// the settings have been persisted.
func NewSettingsDialog(settings *config.Settings, window fyne.Window, localization *Localization, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		window:       window,
		localization: localization,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Output directory selection
	sd.outputDirEntry = widget.NewEntry()
	sd.outputDirEntry.SetPlaceHolder(sd.localization.GetText(KeyOutputDirectory))

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	outputDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.outputDirEntry)

	// Retrieval mode selection
	sd.modeSelect = widget.NewSelect(sd.modeOptions(), nil)

	renderNote := widget.NewLabel(sd.localization.GetText(KeyRenderModeNote))
	renderNote.Wrapping = fyne.TextWrapWord

	// Request timeout
	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder(strconv.Itoa(config.DefaultRequestTimeout))

	// Auto reveal toggle
	sd.autoRevealCheck = widget.NewCheck(sd.localization.GetText(KeyAutoReveal), nil)

	// Language selection
	sd.languageSelect = widget.NewSelect(sd.localization.GetLanguageCodes(), nil)

	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyOutputDirectory)),
		outputDirRow,

		widget.NewLabel(sd.localization.GetText(KeyRetrievalMode)),
		sd.modeSelect,
		renderNote,

		widget.NewLabel(sd.localization.GetText(KeyRequestTimeout)),
		sd.timeoutEntry,

		widget.NewSeparator(),
		sd.autoRevealCheck,

		widget.NewLabel(sd.localization.GetText(KeyLanguage)),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// modeOptions returns the localized labels for the retrieval modes, direct
// first.
func (sd *SettingsDialog) modeOptions() []string {
	return []string{
		sd.localization.GetText(KeyModeDirect),
		sd.localization.GetText(KeyModeRender),
	}
}

// modeLabel maps a retrieval mode to its localized label.
func (sd *SettingsDialog) modeLabel(mode config.RetrievalMode) string {
	if mode == config.ModeRender {
		return sd.localization.GetText(KeyModeRender)
	}
	return sd.localization.GetText(KeyModeDirect)
}

// selectedMode maps the selected label back to a retrieval mode.
func (sd *SettingsDialog) selectedMode() config.RetrievalMode {
	if sd.modeSelect.Selected == sd.localization.GetText(KeyModeRender) {
		return config.ModeRender
	}
	return config.ModeDirect
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.outputDirEntry.SetText(sd.settings.GetOutputDirectory())
	sd.modeSelect.SetSelected(sd.modeLabel(sd.settings.GetRetrievalMode()))
	sd.timeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetRequestTimeout().Seconds())))
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoReveal())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.outputDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if sd.outputDirEntry.Text != "" {
		sd.settings.SetOutputDirectory(sd.outputDirEntry.Text)
	}

	sd.settings.SetRetrievalMode(sd.selectedMode())

	if sd.timeoutEntry.Text != "" {
		if seconds, err := strconv.Atoi(sd.timeoutEntry.Text); err == nil {
			sd.settings.SetRequestTimeoutSeconds(seconds)
		}
	}

	sd.settings.SetAutoReveal(sd.autoRevealCheck.Checked)

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
