package rewrite

import (
	"os"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Transform rewrites the content of one file and reports how many substitutions it made.
type Transform func(path, content string) (string, int)

// Options controls a batch run.
type Options struct {
	DryRun bool
	Logger *zap.Logger
}

// Change records a file whose content the transform altered.
type Change struct {
	Path  string
	Count int
}

// Summary is the outcome of a batch run.
type Summary struct {
	Scanned  int
	Changes  []Change
	Failures []*FileError
}

// Total is the number of substitutions across all changed files.
func (s *Summary) Total() int {
	total := 0
	for _, c := range s.Changes {
		total += c.Count
	}
	return total
}

// Run applies transform to each file in turn. A file is rewritten only when its
// content changed, keeping its permission bits; with DryRun nothing is written. A read,
// decode or write failure is logged and recorded, and the batch moves on.
func Run(files []string, transform Transform, opts Options) *Summary {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	summary := &Summary{}
	for _, path := range files {
		summary.Scanned++

		change, err := runFile(path, transform, opts.DryRun)
		if err != nil {
			logger.Warn("skipping file", zap.String("path", path), zap.Error(err))
			summary.Failures = append(summary.Failures, err)
			continue
		}
		if change == nil {
			logger.Debug("no changes", zap.String("path", path))
			continue
		}

		logger.Debug("file changed",
			zap.String("path", path),
			zap.Int("count", change.Count),
			zap.Bool("dry_run", opts.DryRun),
		)
		summary.Changes = append(summary.Changes, *change)
	}

	return summary
}

func runFile(path string, transform Transform, dryRun bool) (*Change, *FileError) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &FileError{Path: path, Op: "stat", Message: "failed to stat", Cause: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Op: "read", Message: "failed to read", Cause: err}
	}
	if !utf8.Valid(data) {
		return nil, &FileError{Path: path, Op: "decode", Message: "content is not valid UTF-8"}
	}

	original := string(data)
	updated, count := transform(path, original)
	if updated == original {
		return nil, nil
	}

	if !dryRun {
		if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
			return nil, &FileError{Path: path, Op: "write", Message: "failed to write", Cause: err}
		}
	}

	return &Change{Path: path, Count: count}, nil
}
