// internal/app/system/workers/uploadsweep.go
package workers

import (
	"context"
	"database/sql"
	"sync"
	"time"

	mediastore "github.com/dalemusser/ngohub/internal/app/store/media"
	projectstore "github.com/dalemusser/ngohub/internal/app/store/projects"
	"github.com/dalemusser/ngohub/internal/app/system/uploads"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReferenceFunc returns the set of upload paths still referenced by content.
type ReferenceFunc func(ctx context.Context) (map[string]bool, error)

// DBReferences collects gallery and project image paths from db.
func DBReferences(db *sql.DB) ReferenceFunc {
	media := mediastore.New(db)
	projects := projectstore.New(db)

	return func(ctx context.Context) (map[string]bool, error) {
		var (
			gallery []string
			project []string
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			imgs, err := media.Gallery(gctx)
			for _, img := range imgs {
				gallery = append(gallery, img.ImagePath)
			}
			return err
		})
		g.Go(func() error {
			var err error
			project, err = projects.ImagePaths(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		refs := make(map[string]bool, len(gallery)+len(project))
		for _, p := range gallery {
			refs[p] = true
		}
		for _, p := range project {
			refs[p] = true
		}
		return refs, nil
	}
}

// UploadSweeper is a background worker that removes uploaded files no
// content row points at. Files younger than the grace period are kept so
// an upload whose row is still being inserted is never removed.
type UploadSweeper struct {
	uploads    *uploads.Store
	references ReferenceFunc
	log        *zap.Logger
	interval   time.Duration
	grace      time.Duration
	stopCh     chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewUploadSweeper creates a new upload sweeper.
//
// Parameters:
//   - up: the upload store to sweep
//   - refs: reports which paths are still in use
//   - logger: zap logger for logging
//   - interval: how often to sweep (e.g., 6 hours)
//   - grace: minimum age of a file before it may be removed (e.g., 24 hours)
func NewUploadSweeper(up *uploads.Store, refs ReferenceFunc, logger *zap.Logger, interval, grace time.Duration) *UploadSweeper {
	return &UploadSweeper{
		uploads:    up,
		references: refs,
		log:        logger,
		interval:   interval,
		grace:      grace,
		stopCh:     make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *UploadSweeper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("upload sweeper started",
		zap.Duration("interval", w.interval),
		zap.Duration("grace", w.grace))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *UploadSweeper) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("upload sweeper stopped")
	})
}

func (w *UploadSweeper) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			if _, err := w.Sweep(ctx, time.Now()); err != nil {
				w.log.Error("upload sweep failed", zap.Error(err))
			}
			cancel()
		}
	}
}

// Sweep removes unreferenced files last modified before now minus the
// grace period and returns the removed paths.
func (w *UploadSweeper) Sweep(ctx context.Context, now time.Time) ([]string, error) {
	files, err := w.uploads.Files(ctx)
	if err != nil {
		return nil, err
	}
	refs, err := w.references(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := now.Add(-w.grace)
	var removed []string
	for _, f := range files {
		if refs[f.Path] || f.ModTime.After(cutoff) {
			continue
		}
		if err := w.uploads.Delete(ctx, f.Path); err != nil {
			w.log.Warn("failed to remove orphaned upload", zap.String("path", f.Path), zap.Error(err))
			continue
		}
		removed = append(removed, f.Path)
	}

	if len(removed) > 0 {
		w.log.Info("removed orphaned uploads", zap.Int("count", len(removed)))
	}
	return removed, nil
}
