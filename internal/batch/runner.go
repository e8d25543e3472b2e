package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/ngodocs/internal/document"
	"github.com/cleared-dev/ngodocs/internal/id"
	"github.com/cleared-dev/ngodocs/internal/logging"
	"github.com/cleared-dev/ngodocs/internal/manifest"
	"github.com/cleared-dev/ngodocs/internal/session"
)

// Result is the outcome for one row. Err is set for rows whose input could
// not be used; otherwise Preview holds either a document or a prompt.
type Result struct {
	Row     Row
	Kind    document.Kind
	Preview document.Preview
	Err     error
}

// Runner composes rows concurrently. Each row gets its own session; the
// generator is shared.
type Runner struct {
	Composer *document.Composer
	Gen      *id.Generator
	Workers  int
	// Prefill supplies field values for cells the row leaves empty.
	Prefill map[string]string
	Now     func() time.Time
	Log     *slog.Logger
}

// Run composes every row as a document of kind k. Per-row problems are
// reported in the results; the returned error is set only when ctx ends.
func (r *Runner) Run(ctx context.Context, k document.Kind, rows []Row) ([]Result, error) {
	log := r.Log
	if log == nil {
		log = logging.Discard()
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}
	gen := r.Gen
	if gen == nil {
		gen = id.NewGenerator(nil)
	}

	results := make([]Result, len(rows))
	g, gCtx := errgroup.WithContext(ctx)
	if r.Workers > 0 {
		g.SetLimit(r.Workers)
	}

	for i, row := range rows {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = r.composeRow(k, row, session.New(k.Scheme(), gen, now()))
			res := results[i]
			switch {
			case res.Err != nil:
				log.Warn("row rejected", "line", row.Line, "error", res.Err)
			case !res.Preview.Ready():
				log.Info("row not ready", "line", row.Line, "missing", res.Preview.NotReady.Missing)
			default:
				log.Debug("row composed", "line", row.Line, "reference", res.Preview.Document.Reference)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("batch %s: %w", k, err)
	}
	return results, nil
}

func (r *Runner) composeRow(k document.Kind, row Row, s *session.Session) Result {
	fields := maps.Clone(r.Prefill)
	if fields == nil {
		fields = make(map[string]string)
	}
	maps.Copy(fields, row.Fields)

	req, err := document.FromFields(k, fields)
	if err != nil {
		return Result{Row: row, Kind: k, Err: fmt.Errorf("line %d: %w", row.Line, err)}
	}
	p, err := r.Composer.Compose(s, req)
	if err != nil {
		return Result{Row: row, Kind: k, Err: fmt.Errorf("line %d: %w", row.Line, err)}
	}
	return Result{Row: row, Kind: k, Preview: p}
}

// Summary counts results by outcome.
type Summary struct {
	Written  int
	NotReady int
	Failed   int
}

// WriteAll writes the text of every ready document in results to dir, one
// file per row named "<line>-<reference>.txt", and appends one manifest entry
// per row. Reference codes are not unique, so the line number keeps file
// names apart. Documents a previous run recorded in the manifest are removed
// first; the manifest itself keeps every run.
func WriteAll(dir string, results []Result, at time.Time) (Summary, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating output dir: %w", err)
	}
	if err := removeStale(dir); err != nil {
		return Summary{}, err
	}

	var sum Summary
	entries := make([]manifest.Entry, 0, len(results))
	for _, res := range results {
		e := manifest.Entry{Timestamp: at, Kind: res.Kind.String(), Line: res.Row.Line}
		switch {
		case res.Err != nil:
			sum.Failed++
			e.Status = manifest.StatusFailed
			e.Detail = res.Err.Error()
		case !res.Preview.Ready():
			sum.NotReady++
			e.Status = manifest.StatusNotReady
			if res.Preview.NotReady != nil {
				e.Detail = res.Preview.NotReady.String()
			}
		default:
			doc := res.Preview.Document
			name := fmt.Sprintf("%03d-%s.txt", res.Row.Line, strings.ReplaceAll(doc.Reference, "/", "-"))
			if err := os.WriteFile(filepath.Join(dir, name), []byte(doc.Text+"\n"), 0o644); err != nil {
				return sum, fmt.Errorf("writing %s: %w", name, err)
			}
			sum.Written++
			e.Status = manifest.StatusWritten
			e.Reference = doc.Reference
			e.File = name
		}
		entries = append(entries, e)
	}

	if err := manifest.Append(dir, entries); err != nil {
		return sum, err
	}
	return sum, nil
}

// removeStale deletes the documents earlier runs wrote into dir. Only files
// named in the manifest are touched.
func removeStale(dir string) error {
	prev, err := manifest.Read(dir)
	if err != nil {
		return err
	}
	for _, e := range prev {
		if e.Status != manifest.StatusWritten || e.File == "" || e.File != filepath.Base(e.File) {
			continue
		}
		err := os.Remove(filepath.Join(dir, e.File))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing stale %s: %w", e.File, err)
		}
	}
	return nil
}
