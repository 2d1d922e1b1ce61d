package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/interviewer/backend/internal/domain/guide"
	"github.com/interviewer/backend/internal/logger"
	"github.com/interviewer/backend/internal/worker"
)

// DirSource reads guide files from a directory. With an explicit file list
// only those files are known; otherwise every .json/.yaml/.yml file is.
type DirSource struct {
	dir     string
	files   []string
	workers int
	logger  *logger.Logger
}

func NewDirSource(dir string, files []string, workers int, log *logger.Logger) *DirSource {
	return &DirSource{
		dir:     dir,
		files:   files,
		workers: workers,
		logger:  log.With("component", "content"),
	}
}

type loaded struct {
	guide *guide.Guide
	err   error
}

func (d *DirSource) LoadAll(ctx context.Context) ([]*guide.Guide, error) {
	files, err := d.knownFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return []*guide.Guide{}, nil
	}

	pool := worker.NewPool[loaded](d.workers, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			pool.Close()
			return nil, err
		}
		path := filepath.Join(d.dir, f)
		pool.Submit(f, func() loaded {
			g, err := d.readFile(path)
			return loaded{guide: g, err: err}
		})
	}
	pool.Close()

	byFile := make(map[string]*guide.Guide, len(files))
	for r := range pool.Results() {
		if r.Output.err != nil {
			d.logger.Warn("skipping guide file", "file", r.JobID, "error", r.Output.err)
			continue
		}
		byFile[r.JobID] = r.Output.guide
	}

	// Keep the order of the known file list.
	out := make([]*guide.Guide, 0, len(byFile))
	for _, f := range files {
		if g, ok := byFile[f]; ok {
			out = append(out, g)
		}
	}
	d.logger.Debug("guides loaded", "count", len(out), "files", len(files))
	return out, nil
}

// Load accepts a file name ("react.json"), a file stem ("react") or a
// guide name.
func (d *DirSource) Load(ctx context.Context, name string) (*guide.Guide, error) {
	files, err := d.knownFiles()
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		if f == name || strings.TrimSuffix(f, filepath.Ext(f)) == name {
			return d.readFile(filepath.Join(d.dir, f))
		}
	}

	all, err := d.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range all {
		if g.Name == name {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func (d *DirSource) readFile(path string) (*guide.Guide, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("read guide %s: %w", path, err)
	}
	return Parse(path, data)
}

func (d *DirSource) knownFiles() ([]string, error) {
	if len(d.files) > 0 {
		return d.files, nil
	}

	entries, err := os.ReadDir(d.dir)
	if errors.Is(err, fs.ErrNotExist) {
		d.logger.Warn("content directory does not exist", "dir", d.dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list guides in %s: %w", d.dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
