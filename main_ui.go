package main

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gdkpixbuf/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/sirupsen/logrus"

	"github.com/walpsel/walpsel/internal/app"
	"github.com/walpsel/walpsel/internal/engine"
	"github.com/walpsel/walpsel/internal/layout"
	"github.com/walpsel/walpsel/internal/scanner"
	"github.com/walpsel/walpsel/internal/thumbnail"
)

const statusHint = "Click a wallpaper to apply it."

// How often the window width is checked for a change in column count, in ms.
const columnPollInterval = 200

// PickerWindow is the main window: a grid of the images in the wallpapers folder.
//
// The image list is not kept between render passes. Every refresh scans the
// folder again and rebuilds the grid; only decoded thumbnails are reused.
type PickerWindow struct {
	app    *app.App
	engine *engine.Engine
	log    logrus.FieldLogger

	window   *gtk.ApplicationWindow
	scrolled *gtk.ScrolledWindow
	status   *gtk.Label

	thumbs *thumbnail.Loader
	// ctx of the window, parent of each pass's loadCtx
	ctx context.Context
	// cancels the thumbnail loads of the current pass
	cancelLoads context.CancelFunc

	columns int
	closed  bool
}

// Creates the main window and starts watching the folder and the window width.
func activate(ctx context.Context, gtkApp *gtk.Application, a *app.App, eng *engine.Engine) {
	w := &PickerWindow{
		app:         a,
		engine:      eng,
		log:         a.Log.WithField("folder", a.Folder),
		thumbs:      thumbnail.NewLoader(0),
		cancelLoads: func() {},
	}

	w.window = gtk.NewApplicationWindow(gtkApp)
	w.window.SetTitle(appName)
	w.window.SetDefaultSize(800, 600)
	w.window.SetSizeRequest(320, 240)
	setupStyling()

	//ANCHOR - Top control bar

	topControlBar := gtk.NewBox(gtk.OrientationHorizontal, 0)
	topControlBar.SetMarginTop(10)
	topControlBar.SetMarginStart(layout.Margin)
	topControlBar.SetMarginEnd(layout.Margin)
	topControlBar.SetSpacing(4)

	folderLabel := gtk.NewLabel(a.Folder)
	folderLabel.SetHExpand(true)
	folderLabel.SetHAlign(gtk.AlignStart)
	folderLabel.SetSelectable(true)
	folderLabel.AddCSSClass("dim-label")
	topControlBar.Append(folderLabel)

	refreshButton := gtk.NewButtonWithLabel("Refresh")
	refreshButton.SetVAlign(gtk.AlignCenter)
	refreshButton.Connect("clicked", func() {
		w.log.Info("Refreshing wallpapers...")
		w.refresh()
	})
	topControlBar.Append(refreshButton)

	settingsButton := gtk.NewButtonWithLabel("Settings")
	settingsButton.SetVAlign(gtk.AlignCenter)
	settingsButton.Connect("clicked", func() {
		w.log.Debug("Opening settings dialog...")
		showSettingsDialog(w)
	})
	topControlBar.Append(settingsButton)

	//ANCHOR - Status text

	w.status = gtk.NewLabel(statusHint)
	w.status.SetHAlign(gtk.AlignCenter)
	w.status.SetMarginTop(4)
	w.status.SetMarginBottom(4)

	//ANCHOR - Wallpaper grid

	w.scrolled = gtk.NewScrolledWindow()
	w.scrolled.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	w.scrolled.SetHExpand(true)
	w.scrolled.SetVExpand(true)
	w.scrolled.SetMarginStart(layout.Margin)
	w.scrolled.SetMarginEnd(layout.Margin)
	w.scrolled.SetMarginBottom(layout.Margin)

	vBox := gtk.NewBox(gtk.OrientationVertical, 0)
	vBox.Append(topControlBar)
	vBox.Append(w.status)
	vBox.Append(w.scrolled)

	w.window.SetChild(vBox)

	var cancel context.CancelFunc
	w.ctx, cancel = context.WithCancel(ctx)
	w.window.Connect("close-request", func() bool {
		w.closed = true
		cancel()
		return false
	})

	w.window.SetVisible(true)
	w.refresh()

	glib.TimeoutAdd(columnPollInterval, func() bool {
		if w.closed {
			return false
		}
		if w.currentColumns() != w.columns {
			w.refresh()
		}
		return true
	})

	err := scanner.Watch(w.ctx, a.Folder, w.log, func() {
		glib.IdleAdd(func() {
			if !w.closed {
				w.refresh()
			}
		})
	})
	if err != nil {
		w.log.WithError(err).Warn("Not watching wallpapers folder, use Refresh to pick up changes")
	}
}

// Helper function to provide custom CSS to the entire application.
func setupStyling() {
	cssProvider := gtk.NewCSSProvider()
	css := `
		.thumbnail {
			padding: 6px;
		}

		.error {
			color: #ab0000ff;
		}
		`

	cssProvider.LoadFromString(css)
	gtk.StyleContextAddProviderForDisplay(
		gdk.DisplayGetDefault(),
		cssProvider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}

// Width available to the grid, without its margins.
func (w *PickerWindow) gridWidth() float64 {
	return float64(w.scrolled.Width() - 2*layout.Margin)
}

func (w *PickerWindow) currentColumns() int {
	return layout.Columns(w.gridWidth(), layout.MinThumbnailWidth)
}

// One render pass: scans the folder and replaces the grid.
// Thumbnail loads still pending from the previous pass are cancelled.
func (w *PickerWindow) refresh() {
	images := w.app.Images()
	w.columns = w.currentColumns()

	w.cancelLoads()
	var loadCtx context.Context
	loadCtx, w.cancelLoads = context.WithCancel(w.ctx)
	w.thumbs.Prune(images)

	if len(images) == 0 {
		w.showFrontError("No images found in " + w.app.Folder)
		return
	}

	grid := gtk.NewGrid()
	grid.SetColumnHomogeneous(true)
	grid.SetColumnSpacing(12)
	grid.SetRowSpacing(12)
	grid.SetMarginTop(layout.Margin)
	grid.SetMarginBottom(layout.Margin)
	grid.SetMarginStart(layout.Margin)
	grid.SetMarginEnd(layout.Margin)
	grid.SetVAlign(gtk.AlignStart)

	cellWidth := layout.CellWidth(w.gridWidth(), w.columns)
	pixelSize := layout.ThumbnailSize(cellWidth)

	for i, imagePath := range images {
		grid.Attach(w.newThumbnailButton(loadCtx, imagePath, pixelSize), i%w.columns, i/w.columns, 1, 1)
	}

	w.scrolled.SetChild(grid)
	w.log.WithFields(logrus.Fields{
		"images":  len(images),
		"columns": w.columns,
	}).Debug("Wallpaper grid refreshed")
}

// Helper function to replace the grid with a message.
func (w *PickerWindow) showFrontError(message string) {
	errorLabel := gtk.NewLabel(message)
	errorLabel.SetHExpand(true)
	errorLabel.SetVExpand(true)
	errorLabel.SetHAlign(gtk.AlignCenter)
	errorLabel.SetVAlign(gtk.AlignCenter)
	errorLabel.SetWrap(true)

	w.scrolled.SetChild(errorLabel)
	w.log.Debug(message)
}

func (w *PickerWindow) newThumbnailButton(ctx context.Context, imagePath string, pixelSize int) *gtk.Button {
	imageWidget := gtk.NewImageFromIconName("image-x-generic-symbolic")
	imageWidget.SetPixelSize(pixelSize)
	imageWidget.SetSizeRequest(-1, layout.RowHeight)

	button := gtk.NewButton()
	button.SetChild(imageWidget)
	button.SetTooltipText(filepath.Base(imagePath))
	button.AddCSSClass("flat")
	button.AddCSSClass("thumbnail")
	button.Connect("clicked", func() {
		w.applyWallpaper(imagePath)
	})

	loadImageAsync(ctx, w.log, w.thumbs, imagePath, imageWidget, pixelSize)
	return button
}

// Runs the wallpaper command on the GTK thread; the window does not respond
// until the command exits. Failures are only logged and shown in the status line.
func (w *PickerWindow) applyWallpaper(imagePath string) {
	log := w.log.WithField("image", imagePath)
	log.Info("Applying wallpaper")

	if err := w.engine.ChangeWallpaper(context.Background(), imagePath); err != nil {
		log.WithError(err).Error("Error while changing wallpaper")
		w.updateGUIStatusText("Failed to apply " + strconv.Quote(filepath.Base(imagePath)))
		w.status.AddCSSClass("error")
		return
	}

	w.updateGUIStatusText("Applied " + strconv.Quote(filepath.Base(imagePath)))
	w.status.RemoveCSSClass("error")
}

// Updates the status text (top label in the main view) with the given message.
func (w *PickerWindow) updateGUIStatusText(message string) {
	if w.status != nil {
		w.status.SetText(message)
	}
}

// Runs a goroutine to build the thumbnail, and sets the gtk.Image source to it.
// The goroutine waits for a decode slot of thumbs and gives up once ctx is done.
func loadImageAsync(ctx context.Context, log logrus.FieldLogger, thumbs *thumbnail.Loader, imagePath string, targetImage *gtk.Image, pixelSize int) {
	go func() {
		data, err := thumbs.Load(ctx, imagePath, pixelSize)
		if errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			log.WithError(err).WithField("image", imagePath).Warn("Error creating thumbnail")
			return
		}

		loader := gdkpixbuf.NewPixbufLoader()
		if err := loader.Write(data); err != nil {
			log.WithError(err).WithField("image", imagePath).Warn("Error loading thumbnail")
			return
		}
		if err := loader.Close(); err != nil {
			log.WithError(err).WithField("image", imagePath).Warn("Error loading thumbnail")
			return
		}

		// convert to paintable as image.SetFromPixbuf is deprecated
		paintable := gdk.NewTextureForPixbuf(loader.Pixbuf())

		// Update the gtk.Image widget on the main GTK thread
		glib.IdleAdd(func() {
			if ctx.Err() != nil {
				return
			}
			targetImage.SetFromPaintable(paintable)
			targetImage.SetPixelSize(pixelSize)
		})
	}()
}
