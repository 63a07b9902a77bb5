package loam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/ntm/pkg/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Loader adapts the Loam library to the ntm MachineLoader interface.
//
// A machine document is either Markdown, whose first fenced code block (or, lacking
// one, whole body) holds the definition, or a structured document whose keys are
// the definition itself.
type Loader struct {
	Repo *loam.TypedRepository[MachineMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[MachineMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Entry is a machine document summary used by listings.
type Entry struct {
	ID          string
	Description string
	Tags        []string
}

// GetMachine retrieves a machine from the Loam repository.
// IDs are matched against the filename first and the frontmatter id second.
func (l *Loader) GetMachine(id string) ([]byte, domain.Format, error) {
	ctx := context.Background()

	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		docID, ok := l.lookup(ctx, id)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s: %v", domain.ErrMachineNotFound, id, err)
		}
		// List carries metadata only; the body needs a full read.
		doc, err = l.Repo.Get(ctx, docID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read machine %s (%s): %w", id, docID, err)
		}
	}
	return l.extract(id, doc.Data, doc.Content)
}

// lookup finds the document whose frontmatter id is id.
func (l *Loader) lookup(ctx context.Context, id string) (string, bool) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return "", false
	}
	for _, doc := range docs {
		if doc.Data.ID != "" && trimExtension(doc.Data.ID) == id {
			return doc.ID, true
		}
	}
	return "", false
}

func (l *Loader) extract(id string, meta MachineMetadata, content string) ([]byte, domain.Format, error) {
	body, lang := firstCodeBlock([]byte(content))
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte(strings.TrimSpace(content))
	}

	if len(body) == 0 {
		if len(meta.Definition) == 0 {
			return nil, "", fmt.Errorf("machine %s has no definition", id)
		}
		data, err := json.Marshal(meta.Definition)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal machine %s: %w", id, err)
		}
		return data, domain.FormatJSON, nil
	}

	for _, name := range []string{meta.Format, lang} {
		if name == "" {
			continue
		}
		format, ok := domain.ParseFormat(name)
		if !ok {
			return nil, "", fmt.Errorf("machine %s: unknown format %q", id, name)
		}
		return body, format, nil
	}
	return body, domain.FormatTM, nil
}

// firstCodeBlock returns the content and info string of the first fenced code block.
func firstCodeBlock(src []byte) ([]byte, string) {
	root := goldmark.DefaultParser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	var lang string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		lang = string(block.Language(src))
		lines := block.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return ast.WalkStop, nil
	})
	return buf.Bytes(), lang
}

// ListMachines lists all machines in the repository.
func (l *Loader) ListMachines() ([]string, error) {
	entries, err := l.Entries()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids, nil
}

// Entries lists every machine with its description and tags, sorted by ID.
func (l *Loader) Entries() ([]Entry, error) {
	ctx := context.Background()
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	entries := make([]Entry, 0, len(docs))

	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		entries = append(entries, Entry{ID: id, Description: doc.Data.Description, Tags: doc.Data.Tags})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
