package graph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/ntm/pkg/domain"
)

// ErrNoTree is returned when a trace result was produced without tree retention.
var ErrNoTree = errors.New("trace result holds no configuration tree")

// GenerateTreeMermaid renders the retained configuration tree of a trace, top to bottom.
// Each node shows the state and the tape with the head cell in brackets; edges carry the
// rule that produced the child. The accepting path is highlighted. When limit is positive
// at most limit configurations are drawn.
func GenerateTreeMermaid(m *domain.Machine, res *domain.TraceResult, limit int) (string, error) {
	if len(res.Levels) == 0 {
		return "", ErrNoTree
	}

	onPath := make(map[*domain.Configuration]bool)
	for c := res.Accepting; c != nil; c = c.Parent {
		onPath[c] = true
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make(map[*domain.Configuration]string)
	var accepted, rejected, path []string
	drawn, truncated := 0, false

levels:
	for _, level := range res.Levels {
		for _, c := range level {
			if limit > 0 && drawn == limit {
				truncated = true
				break levels
			}
			id := fmt.Sprintf("c%d", drawn)
			ids[c] = id
			drawn++

			fmt.Fprintf(&sb, "    %s[\"%s<br/>%s\"]\n", id, escapeLabel(c.State), escapeLabel(tapeLabel(c)))
			if parent, ok := ids[c.Parent]; ok && c.Parent != nil {
				fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", parent, escapeLabel(c.Via), id)
			}

			switch {
			case onPath[c]:
				path = append(path, id)
			case m.IsAccept(c.State):
				accepted = append(accepted, id)
			case m.IsReject(c.State):
				rejected = append(rejected, id)
			}
		}
	}
	if truncated {
		fmt.Fprintf(&sb, "    %%%% truncated after %d configurations\n", limit)
	}

	sb.WriteString("\n    classDef path fill:#c8e6c9,stroke:#2e7d32,stroke-width:3px,color:#000;\n")
	sb.WriteString("    classDef accept fill:#e8f5e9,stroke:#2e7d32,color:#000;\n")
	sb.WriteString("    classDef reject fill:#ffcdd2,stroke:#c62828,color:#000;\n")
	for _, group := range []struct {
		class string
		nodes []string
	}{{"path", path}, {"accept", accepted}, {"reject", rejected}} {
		if len(group.nodes) > 0 {
			fmt.Fprintf(&sb, "    class %s %s;\n", strings.Join(group.nodes, ","), group.class)
		}
	}
	return sb.String(), nil
}

func tapeLabel(c *domain.Configuration) string {
	return fmt.Sprintf("%s[%s]%s", c.Tape.LeftText(), c.Tape.Head(), c.Tape.RestText())
}
