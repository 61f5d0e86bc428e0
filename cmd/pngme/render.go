package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/simonhull/pngme"
)

// style renders text with a lipgloss style, or leaves it plain when output
// is not a terminal.
type style struct {
	lip lipgloss.Style
	on  bool
}

func (s style) render(text string) string {
	if !s.on {
		return text
	}
	return s.lip.Render(text)
}

// styles are the stdout styles.
type styles struct {
	title style
	dim   style
	tag   style
	warn  style
}

func newStyles(w io.Writer) styles {
	on := colorEnabled(w)
	r := lipgloss.NewRenderer(w)

	return styles{
		title: style{r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")), on},
		dim:   style{r.NewStyle().Foreground(lipgloss.Color("241")), on},
		tag:   style{r.NewStyle().Foreground(lipgloss.Color("86")), on},
		warn:  style{r.NewStyle().Foreground(lipgloss.Color("214")), on},
	}
}

// newErrStyle styles error lines for w, which is normally stderr.
func newErrStyle(w io.Writer) style {
	r := lipgloss.NewRenderer(w)
	return style{r.NewStyle().Foreground(lipgloss.Color("196")), colorEnabled(w)}
}

func colorEnabled(w io.Writer) bool {
	return isTerminal(w) && os.Getenv("NO_COLOR") == ""
}

var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderReport writes the text form of one file's chunk listing.
func (a *app) renderReport(r fileReport) {
	fmt.Fprintf(a.stdout, "%s %s\n",
		a.styles.title.render(r.Path),
		a.styles.dim.render(fmt.Sprintf("(%d bytes, %d chunks)", r.Size, len(r.Chunks))))

	for _, w := range r.Warnings {
		fmt.Fprintf(a.stdout, "  %s\n", a.styles.warn.render("warning: "+w))
	}

	fmt.Fprintln(a.stdout, a.styles.dim.render(fmt.Sprintf("  %3s  %8s  %-4s  %10s  %10s  %-4s  %s",
		"#", "OFFSET", "TYPE", "LENGTH", "CRC", "FLAG", "MESSAGE")))

	for _, c := range r.Chunks {
		text := c.Text
		if c.Compressed {
			text = "[lz4] " + text
		}
		fmt.Fprintf(a.stdout, "  %3d  %8d  %s  %10d  %10d  %-4s  %s\n",
			c.Index, c.Offset, a.styles.tag.render(c.Type), c.Length, c.CRC, flags(c), text)
	}
}

// flags condenses the chunk type properties into four letters:
// C/a critical or ancillary, P/p public or private, R or ! for the reserved
// bit, s or - for safe to copy.
func flags(c pngme.ChunkInfo) string {
	b := []byte("apR-")
	if c.Critical {
		b[0] = 'C'
	}
	if c.Public {
		b[1] = 'P'
	}
	if !c.ReservedBitValid {
		b[2] = '!'
	}
	if c.SafeToCopy {
		b[3] = 's'
	}
	return string(b)
}
