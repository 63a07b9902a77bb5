package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/ntm/pkg/domain"
	"github.com/muesli/termenv"
)

var verdictStyles = map[domain.Verdict]struct {
	label string
	color string
}{
	domain.VerdictAccepted:      {" ACCEPT ", "#22c55e"},
	domain.VerdictRejected:      {" REJECT ", "#ef4444"},
	domain.VerdictDepthExceeded: {" DEPTH LIMIT ", "#f59e0b"},
	domain.VerdictStepLimit:     {" STEP LIMIT ", "#f59e0b"},
}

// VerdictBanner renders a coloured badge for v followed by detail.
// Colours degrade with the profile of the terminal behind w.
func VerdictBanner(w io.Writer, v domain.Verdict, detail string) string {
	style, ok := verdictStyles[v]
	if !ok {
		style.label = " " + string(v) + " "
	}

	p := termenv.NewOutput(w).ColorProfile()
	badge := p.String(style.label).Bold()
	if style.color != "" {
		badge = badge.Background(p.Color(style.color)).Foreground(p.Color("#000000"))
	}
	return fmt.Sprintf("%s %s", badge, detail)
}

// PrintBanner writes the verdict banner to w.
func PrintBanner(w io.Writer, v domain.Verdict, detail string) {
	fmt.Fprintln(w, VerdictBanner(w, v, detail))
}
