package main

import (
	"os"
	"strings"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/walpsel/walpsel/internal/engine"
)

// Shows the settings in effect. The settings file is never written, so
// the dialog is read only; it tells the user which file to edit.
func showSettingsDialog(w *PickerWindow) {
	dialog := gtk.NewWindow()
	dialog.SetTitle("Settings")
	dialog.SetDefaultSize(600, 300)

	page := gtk.NewBox(gtk.OrientationVertical, 0)
	page.SetMarginTop(10)
	page.SetMarginBottom(10)
	page.SetMarginStart(10)
	page.SetMarginEnd(10)
	page.SetSpacing(10)

	settingsFile := w.app.SettingsFile
	if _, err := os.Stat(settingsFile); err != nil {
		settingsFile += " (not found, using defaults)"
	}
	page.Append(createSettingRow("Settings file", settingsFile))

	command := w.engine.String()
	page.Append(createSettingRow("Command", command))
	if !w.engine.HasPlaceholder() {
		warning := gtk.NewLabel("The command has no " + engine.Placeholder + ", the image path will not be passed to it.")
		warning.SetHAlign(gtk.AlignStart)
		warning.SetWrap(true)
		warning.AddCSSClass("error")
		page.Append(warning)
	}

	page.Append(createSettingRow("Wallpapers folder", w.app.Folder))
	page.Append(createSettingRow("Image types", strings.Join(w.app.Settings.ImageExtensions, ", ")))

	copyCommandButton := gtk.NewButtonWithLabel("Copy Command to Clipboard")
	copyCommandButton.SetHAlign(gtk.AlignStart)
	copyCommandButton.Connect("clicked", func() {
		clipboard := gdk.DisplayGetDefault().Clipboard()
		clipboard.SetText(command)
		w.log.WithField("command", command).Debug("Command copied to clipboard")
	})
	page.Append(copyCommandButton)

	dialog.SetChild(page)
	dialog.SetTransientFor(&w.window.Window)
	dialog.SetModal(true)
	dialog.SetDestroyWithParent(true)
	dialog.SetVisible(true)
}

func createSettingRow(title string, value string) *gtk.Box {
	row := gtk.NewBox(gtk.OrientationVertical, 0)
	row.SetSpacing(2)

	titleLabel := gtk.NewLabel(title)
	titleLabel.SetMarkup("<b>" + escapeMarkup(titleLabel.Text()) + "</b>")
	titleLabel.SetHAlign(gtk.AlignStart)
	row.Append(titleLabel)

	valueLabel := gtk.NewLabel(value)
	valueLabel.SetHAlign(gtk.AlignStart)
	valueLabel.SetSelectable(true)
	valueLabel.SetWrap(true)
	row.Append(valueLabel)

	return row
}
