package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/ntm/pkg/domain"
)

// GraphOverlay contains run data to visualize on the state diagram.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
	// Steps are the (from, to) pairs taken by the run, in order.
	Steps [][2]string
}

// OverlayFromPath builds an overlay from an accepting path.
func OverlayFromPath(path []domain.PathStep) *GraphOverlay {
	if len(path) == 0 {
		return nil
	}
	o := &GraphOverlay{CurrentState: path[len(path)-1].State}
	for i, step := range path {
		o.VisitedStates = append(o.VisitedStates, step.State)
		if i > 0 {
			o.Steps = append(o.Steps, [2]string{path[i-1].State, step.State})
		}
	}
	return o
}

type edge struct {
	from, to string
	labels   []string
}

// GenerateMermaid produces a Mermaid flowchart of the machine's state graph.
// It applies semantic styling:
// - Start: ((Circle))
// - Accept: (((Double circle)))
// - Reject: {{Hexagon}}
// - Default: [Rectangle]
// Rules sharing a source and target are folded into one edge labelled "read→write,move".
// Overlay styles (visited/current states, taken edges) are applied if provided.
func GenerateMermaid(m *domain.Machine, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, s := range m.States() {
		opener, closer := "[", "]"
		switch {
		case m.IsAccept(s):
			opener, closer = "(((", ")))"
		case m.IsReject(s):
			opener, closer = "{{", "}}"
		case s == m.Start():
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(s), opener, escapeLabel(s), closer)
	}

	var edges []*edge
	index := make(map[[2]string]int)
	for _, r := range m.Rules() {
		key := [2]string{r.From, r.To}
		i, ok := index[key]
		if !ok {
			i = len(edges)
			index[key] = i
			edges = append(edges, &edge{from: r.From, to: r.To})
		}
		edges[i].labels = append(edges[i].labels, edgeLabel(r))
	}
	for _, e := range edges {
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n",
			sanitizeMermaidID(e.from), strings.Join(e.labels, "<br/>"), sanitizeMermaidID(e.to))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" && id != overlay.CurrentState {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}
		if overlay.CurrentState != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentState))
		}

		styled := make(map[int]bool)
		for _, step := range overlay.Steps {
			if i, ok := index[step]; ok && !styled[i] {
				styled[i] = true
				fmt.Fprintf(&sb, "    linkStyle %d stroke:#01579b,stroke-width:3px;\n", i)
			}
		}
	}

	return sb.String()
}

func edgeLabel(r domain.Rule) string {
	read := make([]string, len(r.Read))
	for i := range r.Read {
		read[i] = fmt.Sprintf("%s→%s,%s", r.Read[i], r.Write[i], r.Move[i])
	}
	return escapeLabel(strings.Join(read, " | "))
}

// escapeLabel replaces characters that would end a quoted Mermaid label.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	// Mermaid reserves "end" as a keyword.
	if strings.EqualFold(s, "end") {
		s = s + "_"
	}
	return s
}
