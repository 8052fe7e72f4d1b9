package cli

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

var (
	colorLabel = color.New(color.FgBlack, color.Bold).SprintFunc()
	colorValue = color.New(color.FgHiBlue).SprintFunc()
	colorGood  = color.New(color.FgGreen, color.Bold).SprintFunc()
	colorWarn  = color.New(color.FgHiRed, color.Bold).SprintFunc()
	colorTitle = color.New(color.FgBlue, color.Bold).SprintFunc()
	colorFaint = color.New(color.FgHiBlack).SprintFunc()
)

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// padLabel right-pads s to width display cells. Widths are measured with
// runewidth so wide runes in paths keep columns aligned.
func padLabel(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// labelWidth returns the widest display width among labels.
func labelWidth(labels []string) int {
	widest := 0
	for _, label := range labels {
		if w := runewidth.StringWidth(label); w > widest {
			widest = w
		}
	}
	return widest
}
