package main

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printHeader(title string) {
	_, _ = accent.Printf("\n=== %s ===\n", title)
}

func printSuccess(format string, a ...any) {
	_, _ = success.Printf("✓ "+format+"\n", a...)
}

func printWarn(format string, a ...any) {
	_, _ = warn.Printf("⚠ "+format+"\n", a...)
}

func printError(format string, a ...any) {
	_, _ = danger.Printf("✗ "+format+"\n", a...)
}

func printRow(format string, a ...any) {
	_, _ = neutral.Println(fmt.Sprintf(format, a...))
}
