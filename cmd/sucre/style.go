package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dhamidi/sucre/js/parser"
)

var (
	errorLabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9"))

	locationStyle = lipgloss.NewStyle().
		Bold(true)

	contextStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))
)

// printError writes err to w. Syntax errors get their location highlighted
// and the offending source line underneath.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, formatError(err))
}

func formatError(err error) string {
	label := errorLabelStyle.Render("error:")

	var se *parser.SyntaxError
	if !errors.As(err, &se) {
		return label + " " + err.Error()
	}

	location := fmt.Sprintf("%d:%d", se.Line, se.Column)
	if se.File != "" {
		location = se.File + ":" + location
	}
	text := label + " " + locationStyle.Render(location) + " " + se.Message
	if se.Context != "" {
		text += "\n" + contextStyle.Render(se.Context)
	}
	return text
}
