package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/interviewer/backend/internal/domain/guide"
)

var (
	ErrNotFound      = errors.New("guide not found")
	ErrInvalidFormat = errors.New("invalid guide format")
)

// Source supplies guide trees. Implementations are read-only.
type Source interface {
	// Load returns one guide by name or file identifier.
	Load(ctx context.Context, name string) (*guide.Guide, error)
	// LoadAll returns every known guide. Guides that fail to load are
	// skipped, not reported as an error.
	LoadAll(ctx context.Context) ([]*guide.Guide, error)
}

// Parse decodes a guide file. The format is chosen from the file
// extension: .json, .yaml or .yml.
func Parse(filename string, data []byte) (*guide.Guide, error) {
	var g guide.Guide
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		err = json.Unmarshal(data, &g)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &g)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrInvalidFormat, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, filename, err)
	}

	if g.SourceFile == "" {
		g.SourceFile = filepath.Base(filename)
	}
	for i := range g.Chapters {
		for j := range g.Chapters[i].Questions {
			if g.Chapters[i].Questions[j].ChapterNumber == 0 {
				g.Chapters[i].Questions[j].ChapterNumber = g.Chapters[i].Number
			}
		}
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, filename, err)
	}
	return &g, nil
}

// MemorySource serves guides held in memory, in insertion order.
type MemorySource struct {
	guides []*guide.Guide
}

func NewMemorySource(guides ...*guide.Guide) *MemorySource {
	return &MemorySource{guides: guides}
}

// Load accepts a guide name, its source file name or the file stem.
func (m *MemorySource) Load(ctx context.Context, name string) (*guide.Guide, error) {
	for _, g := range m.guides {
		if g.Name == name || g.SourceFile == name ||
			(g.SourceFile != "" && strings.TrimSuffix(g.SourceFile, filepath.Ext(g.SourceFile)) == name) {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func (m *MemorySource) LoadAll(ctx context.Context) ([]*guide.Guide, error) {
	out := make([]*guide.Guide, len(m.guides))
	copy(out, m.guides)
	return out, nil
}
