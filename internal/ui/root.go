package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/img2zip/img2zip/internal/batch"
	"github.com/img2zip/img2zip/internal/config"
	"github.com/img2zip/img2zip/internal/fetch"
	"github.com/img2zip/img2zip/internal/model"
	"github.com/img2zip/img2zip/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window fyne.Window

	headingLabel      *widget.Label
	taglineLabel      *widget.Label
	noteLabel         *widget.Label
	input             *widget.Entry
	downloadBtn       *widget.Button
	settingsBtn       *widget.Button
	notificationLabel *widget.Label
	statusTable       *widget.Table
	emptyLabel        *widget.Label

	svc          batch.Orchestrator
	settings     *config.Settings
	localization *Localization

	// Cached projection rows rendered by the status table
	rowsMutex sync.RWMutex
	rows      []model.StatusRow
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, svc batch.Orchestrator) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		svc:          svc,
		settings:     settings,
		localization: localization,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	// Every settlement is pushed straight into the table.
	svc.SetUpdateCallback(ui.onRowUpdate)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.headingLabel = widget.NewLabelWithStyle(ui.localization.GetText(KeyAppTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.taglineLabel = widget.NewLabel(ui.localization.GetText(KeyAppTagline))
	ui.noteLabel = widget.NewLabel(ui.localization.GetText(KeySameOriginNote))
	ui.noteLabel.Wrapping = fyne.TextWrapWord

	// URL input: the batch is re-derived on every change.
	ui.input = widget.NewMultiLineEntry()
	ui.input.SetPlaceHolder(ui.localization.GetText(KeyInputPlaceholder))
	ui.input.SetMinRowsVisible(InputMinRowsVisible)
	ui.input.OnChanged = ui.onInputChanged

	ui.downloadBtn = widget.NewButton(ui.localization.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Hide()

	ui.statusTable = ui.newStatusTable()
	ui.emptyLabel = widget.NewLabel(ui.localization.GetText(KeyNoValidURLs))
	ui.emptyLabel.Alignment = fyne.TextAlignCenter

	buttonRow := container.NewHBox(ui.downloadBtn, ui.settingsBtn, ui.notificationLabel)
	top := container.NewVBox(ui.headingLabel, ui.taglineLabel, ui.noteLabel, ui.input, buttonRow)

	content := container.NewBorder(
		top, // top
		nil, // bottom
		nil, // left
		nil, // right
		container.NewStack(ui.statusTable, ui.emptyLabel),
	)
	ui.window.SetContent(content)

	ui.refreshTable()
	log.Printf("UI setup completed")
}

// onInputChanged re-derives the batch from the full input text. Runs on the
// UI goroutine.
func (ui *RootUI) onInputChanged(text string) {
	ui.svc.Prepare(text)
	ui.refreshTable()
}

// onRowUpdate receives settlement updates from retrieval goroutines.
func (ui *RootUI) onRowUpdate(model.StatusRow) {
	fyne.Do(ui.refreshTable)
}

// refreshTable re-reads the projection and refreshes the table. Must run on
// the UI goroutine.
func (ui *RootUI) refreshTable() {
	rows := ui.svc.Snapshot()

	ui.rowsMutex.Lock()
	ui.rows = rows
	ui.rowsMutex.Unlock()

	if len(rows) == 0 {
		ui.emptyLabel.Show()
	} else {
		ui.emptyLabel.Hide()
	}
	ui.statusTable.Refresh()
}

// onDownloadClick runs the current batch and offers the finished archive.
func (ui *RootUI) onDownloadClick() {
	// The strategy is fixed for the whole batch at the moment it starts.
	ui.svc.SetRetriever(retrieverFor(ui.settings.GetRetrievalMode(), ui.settings.GetRequestTimeout()))

	ui.downloadBtn.Disable()
	ui.notificationLabel.Hide()
	outputDir := ui.settings.GetOutputDirectory()

	go func() {
		data, runErr := ui.svc.Run(context.Background())

		var savedPath string
		var saveErr error
		if runErr == nil {
			savedPath, saveErr = platform.SaveArchive(outputDir, data)
		}

		fyne.Do(func() {
			ui.downloadBtn.Enable()

			switch {
			case errors.Is(runErr, batch.ErrNoURLs):
				dialog.ShowInformation(ui.localization.GetText(KeyAppTitle), ui.localization.GetText(KeyNoValidURLs), ui.window)
			case errors.Is(runErr, batch.ErrAllFailed):
				dialog.ShowInformation(ui.localization.GetText(KeyAppTitle), ui.localization.GetText(KeyNoValidImages), ui.window)
			case runErr != nil:
				dialog.ShowError(runErr, ui.window)
			case saveErr != nil:
				log.Printf("saving archive failed: %v", saveErr)
				dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeySaveFailed), saveErr), ui.window)
			default:
				ui.onArchiveSaved(savedPath)
			}
		})
	}()
}

// onArchiveSaved shows where the archive landed and reveals it if enabled.
func (ui *RootUI) onArchiveSaved(path string) {
	ui.notificationLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeySavedTo), path))
	ui.notificationLabel.Show()

	if ui.settings.GetAutoReveal() {
		go func() {
			if err := platform.OpenFileInManager(path); err != nil {
				log.Printf("reveal failed: %v", err)
			}
		}()
	}
}

// onShowSettings opens the settings dialog.
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window, ui.localization, ui.onSettingsSaved).Show()
}

// onSettingsSaved re-applies settings that affect visible state.
func (ui *RootUI) onSettingsSaved() {
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
}

// refreshUITexts updates all UI texts with the current language.
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.headingLabel.SetText(ui.localization.GetText(KeyAppTitle))
	ui.taglineLabel.SetText(ui.localization.GetText(KeyAppTagline))
	ui.noteLabel.SetText(ui.localization.GetText(KeySameOriginNote))
	ui.input.SetPlaceHolder(ui.localization.GetText(KeyInputPlaceholder))
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownload))
	ui.emptyLabel.SetText(ui.localization.GetText(KeyNoValidURLs))
	ui.statusTable.Refresh()
}

// retrieverFor maps the configured mode to a retrieval strategy.
func retrieverFor(mode config.RetrievalMode, timeout time.Duration) fetch.Retriever {
	if mode == config.ModeRender {
		return fetch.NewRender(timeout)
	}
	return fetch.NewDirect(timeout)
}
