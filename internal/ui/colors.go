package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Base styles - will be initialized based on terminal support
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	infoStyle    lipgloss.Style
	dimStyle     lipgloss.Style
	titleStyle   lipgloss.Style
	yearStyle    lipgloss.Style
	indexStyle   lipgloss.Style
	promptStyle  lipgloss.Style
	pathStyle    lipgloss.Style
	cursorStyle  lipgloss.Style
)

func init() {
	initStyles()
}

func initStyles() {
	if !IsTerminal() {
		// Plain styles for non-terminal
		successStyle = lipgloss.NewStyle()
		errorStyle = lipgloss.NewStyle()
		warningStyle = lipgloss.NewStyle()
		infoStyle = lipgloss.NewStyle()
		dimStyle = lipgloss.NewStyle()
		titleStyle = lipgloss.NewStyle()
		yearStyle = lipgloss.NewStyle()
		indexStyle = lipgloss.NewStyle()
		promptStyle = lipgloss.NewStyle()
		pathStyle = lipgloss.NewStyle()
		cursorStyle = lipgloss.NewStyle()
		return
	}

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	yearStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	indexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
}

// Success renders success text
func Success(text string) string {
	return successStyle.Render(text)
}

// Error renders error text
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning renders warning text
func Warning(text string) string {
	return warningStyle.Render(text)
}

// Info renders info text
func Info(text string) string {
	return infoStyle.Render(text)
}

// Dim renders dim text
func Dim(text string) string {
	return dimStyle.Render(text)
}

// Title renders a movie title
func Title(text string) string {
	return titleStyle.Render(text)
}

// Year renders a release year
func Year(text string) string {
	return yearStyle.Render(text)
}

// Index renders a menu number
func Index(text string) string {
	return indexStyle.Render(text)
}

// Prompt renders a question put to the user
func Prompt(text string) string {
	return promptStyle.Render(text)
}

// Path renders a file name or path
func Path(text string) string {
	return pathStyle.Render(text)
}

// Cursor renders the selection marker in the picker
func Cursor(text string) string {
	return cursorStyle.Render(text)
}

// SuccessMsg prints a success message
func SuccessMsg(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, Success("✓")+" "+msg)
}

// ErrorMsg prints an error message
func ErrorMsg(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, Error("✗")+" "+msg)
}

// WarningMsg prints a warning message
func WarningMsg(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, Warning("⚠")+" "+msg)
}

// InfoMsg prints an info message
func InfoMsg(w io.Writer, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, Info("ℹ")+" "+msg)
}
