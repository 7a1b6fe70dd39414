package assets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// PreviewBytes is how much of a file is logged when it fails to decode.
const PreviewBytes = 200

// Result is the outcome of an asynchronous model load.
type Result struct {
	Path    string
	Model   *Model
	Err     error
	Elapsed time.Duration
}

// Loader decodes models off the render thread. Results are handed back
// through Poll, which the render loop calls once per frame.
type Loader struct {
	assets  *Manager
	results chan Result
	log     *zap.Logger
}

// NewLoader creates a loader resolving paths through assets.
func NewLoader(assets *Manager, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		assets:  assets,
		results: make(chan Result, 1),
		log:     log.Named("assets"),
	}
}

// Load resolves and decodes path synchronously.
func (l *Loader) Load(path string) (*Model, error) {
	resolved, err := l.assets.Resolve(path)
	if err != nil {
		return nil, err
	}
	return OpenModel(resolved)
}

// LoadAsync starts decoding path in the background. The result becomes
// available through Poll or Wait.
func (l *Loader) LoadAsync(path string) {
	go func() {
		start := time.Now()
		model, err := l.Load(path)
		res := Result{Path: path, Model: model, Err: err, Elapsed: time.Since(start)}
		if err != nil {
			l.logFailure(path, err)
		} else {
			l.log.Info("model loaded",
				zap.String("path", model.Path),
				zap.Int("meshes", model.MeshCount),
				zap.Int("materials", model.MaterialCount),
				zap.Int("textures", model.TextureCount),
				zap.Duration("elapsed", res.Elapsed),
			)
		}
		l.results <- res
	}()
}

// Poll delivers a finished load, if any, without blocking. It reports
// whether a result was delivered.
func (l *Loader) Poll(onLoad func(*Model), onError func(path string, err error)) bool {
	select {
	case res := <-l.results:
		if res.Err != nil {
			if onError != nil {
				onError(res.Path, res.Err)
			}
		} else if onLoad != nil {
			onLoad(res.Model)
		}
		return true
	default:
		return false
	}
}

// Wait blocks until a load finishes or ctx is done.
func (l *Loader) Wait(ctx context.Context) (Result, error) {
	select {
	case res := <-l.results:
		return res, nil
	case <-ctx.Done():
		return Result{}, fmt.Errorf("waiting for model: %w", ctx.Err())
	}
}

func (l *Loader) logFailure(path string, err error) {
	fields := []zap.Field{zap.String("path", path), zap.Error(err)}
	if preview, perr := l.assets.Preview(path, PreviewBytes); perr == nil {
		fields = append(fields, zap.String("preview", preview))
	}
	l.log.Error("model load failed", fields...)
}
