package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/img2zip/img2zip/internal/batch"
	"github.com/img2zip/img2zip/internal/config"
	"github.com/img2zip/img2zip/internal/fetch"
	"github.com/img2zip/img2zip/internal/platform"
	"github.com/img2zip/img2zip/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.img2zip.img2zip"
	AppName = "img2zip"

	WindowWidth  = 800
	WindowHeight = 600
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Ensure the archive output directory exists up front
	settings := config.NewSettings(myApp)
	outputDir := settings.GetOutputDirectory()
	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		log.Printf("failed to ensure output dir: %v", err)
	}

	var retriever fetch.Retriever = fetch.NewDirect(settings.GetRequestTimeout())
	if settings.GetRetrievalMode() == config.ModeRender {
		retriever = fetch.NewRender(settings.GetRequestTimeout())
	}
	batchSvc := batch.NewService(retriever)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, batchSvc)

	// Show and run
	myWindow.ShowAndRun()
}
