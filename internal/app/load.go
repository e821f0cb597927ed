package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.trai.ch/intern/internal/core/domain"
	"go.trai.ch/intern/internal/core/ports"
	"go.trai.ch/intern/internal/engine/pool"
	"golang.org/x/sync/errgroup"
)

// LoadOptions configures a Load run.
type LoadOptions struct {
	// Workers bounds the number of files read concurrently. Zero uses the
	// configured default.
	Workers int
	// Hold keeps a holder for every line until Release, so the loaded
	// entries survive collection.
	Hold bool
}

// Load interns every non-empty line of the given files and directories.
// Files are read concurrently; each one is recorded as a span and a vertex.
func (a *App) Load(ctx context.Context, paths []string, opts LoadOptions) (domain.LoadReport, error) {
	if len(paths) == 0 {
		return domain.LoadReport{}, domain.ErrNoInputs
	}

	cfg, p := a.state()

	workers := opts.Workers
	if workers <= 0 {
		workers = cfg.LoadWorkers
	}

	ctx, span := a.tracer.Start(ctx, "load", ports.WithAttribute("workers", workers))
	defer span.End()

	files, err := a.source.Expand(paths)
	if err != nil {
		span.RecordError(err)
		return domain.LoadReport{}, err
	}

	var lines, inserted atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, file := range files {
		g.Go(func() error {
			n, added, err := a.loadFile(gctx, p, file, opts.Hold)
			lines.Add(int64(n))
			inserted.Add(int64(added))
			return err
		})
	}
	err = g.Wait()

	report := domain.LoadReport{
		Files:    len(files),
		Lines:    int(lines.Load()),
		Inserted: int(inserted.Load()),
	}
	span.SetAttribute("files", report.Files)
	span.SetAttribute("lines", report.Lines)
	span.SetAttribute("inserted", report.Inserted)

	if err != nil {
		span.RecordError(err)
		return report, err
	}
	return report, nil
}

func (a *App) loadFile(ctx context.Context, p *pool.Pool, path string, hold bool) (int, int, error) {
	name := "load " + path

	ctx, span := a.tracer.Start(ctx, name, ports.WithAttribute("path", path))
	defer span.End()

	ctx, vertex := a.telemetry.Record(ctx, name)

	var lines, inserted int
	var held []*domain.InternedString
	err := a.source.EachLine(ctx, path, func(buf []byte, start, end int) {
		if start == end {
			return
		}
		lines++

		h, isNew := p.Insert(domain.RangeKey{Buf: buf, Start: start, End: end})
		if isNew {
			inserted++
		}
		if hold {
			held = append(held, h)
		} else {
			h.Release()
		}
	})
	if err != nil {
		for _, h := range held {
			h.Release()
		}
		span.RecordError(err)
		vertex.Complete(err)
		return lines, inserted, err
	}

	span.SetAttribute("lines", lines)
	span.SetAttribute("inserted", inserted)
	_, _ = fmt.Fprintf(vertex.Stdout(), "%d lines, %d new\n", lines, inserted)
	if inserted == 0 {
		vertex.Cached()
	}
	vertex.Complete(nil)

	if hold {
		a.mu.Lock()
		a.held = append(a.held, held...)
		a.mu.Unlock()
	}
	return lines, inserted, nil
}
