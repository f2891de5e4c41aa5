package main

import (
	"path/filepath"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// formatPoints renders n with thousands separators
func formatPoints(n int64) string {
	return printer.Sprintf("%d", n)
}

func baseName(path string) string {
	return filepath.Base(path)
}
