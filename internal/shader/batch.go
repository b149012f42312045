package shader

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/specialistvlad/assetpipe/internal/ctxlog"
	"github.com/specialistvlad/assetpipe/internal/fsutil"
	"golang.org/x/sync/errgroup"
)

// Discover lists one Request per distinct shader name found under the glsl/
// and hlsl/ trees of workingDir, sorted by name. Compiled .spv artifacts are
// ignored and the stage is inferred from each file's extension.
func Discover(workingDir string) ([]Request, error) {
	if workingDir == "" {
		workingDir = "."
	}
	seen := make(map[string]struct{})
	for _, lang := range []Language{GLSL, HLSL} {
		root := filepath.Join(workingDir, lang.Dir())
		files, err := fsutil.FindFiles(root, spvExt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", root, err)
		}
		for _, f := range files {
			seen[f] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	reqs := make([]Request, 0, len(names))
	for _, name := range names {
		reqs = append(reqs, Request{Stage: InferStage(name), Name: name})
	}
	return reqs, nil
}

// CompileAll compiles every request with at most workers requests in flight.
// Reports come back in request order.
func (d *Dispatcher) CompileAll(ctx context.Context, reqs []Request, workers int) []Report {
	if workers < 1 {
		workers = 1
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Batch compile started.", "requests", len(reqs), "workers", workers)

	reports := make([]Report, len(reqs))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, req := range reqs {
		g.Go(func() error {
			reports[i] = d.Compile(ctx, req)
			return nil
		})
	}
	_ = g.Wait()

	logger.Debug("Batch compile finished.", "exit_code", ExitCode(reports...))
	return reports
}
