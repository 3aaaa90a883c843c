package main

import "github.com/diamondburned/gotk4/pkg/glib/v2"

// Escapes text for use inside Pango markup.
func escapeMarkup(text string) string {
	return glib.MarkupEscapeText(text, -1)
}
