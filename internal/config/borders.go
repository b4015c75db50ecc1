package config

import "charm.land/lipgloss/v2"

// borderStyle is the process-wide border selection, settable from config.
var borderStyle = "rounded"

// SetBorderStyle switches the window border style. Unknown names fall back
// to rounded.
func SetBorderStyle(style string) {
	if style != "rounded" && style != "normal" {
		style = "rounded"
	}
	borderStyle = style
}

// Border returns the configured window border.
func Border() lipgloss.Border {
	if borderStyle == "normal" {
		return lipgloss.NormalBorder()
	}
	return lipgloss.RoundedBorder()
}
