package runner

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
)

// Pipeline is an ordered set of stages whose stdout feeds the next stage's
// stdin.
type Pipeline struct {
	Stages []Command
}

// NewPipeline builds a pipeline from its stages.
func NewPipeline(stages ...Command) Pipeline {
	return Pipeline{Stages: stages}
}

// ToFile runs the pipeline with the last stage writing to path. The result is
// all-or-nothing: if any stage fails, or the file cannot be flushed, path is
// removed so no truncated artifact is left behind.
func (p Pipeline) ToFile(ctx context.Context, r Runner, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return goerr.Wrap(err, "failed to create output file", goerr.V("path", path))
	}
	defer func() {
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	runErr := r.Pipe(ctx, p.Stages, f)
	closeErr := f.Close()
	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return goerr.Wrap(closeErr, "failed to close output file", goerr.V("path", path))
	}
	return nil
}
