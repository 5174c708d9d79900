// Package report orchestrates the pipeline: rasterize the input PDF, OCR each
// page, crop and normalize each receipt around its timestamp, sort the result
// chronologically, bucket it by week, and render one report page per bucket.
//
// Stages run strictly in order and each consumes the previous stage's output
// in full before the next begins. Any hard failure aborts the whole run: a
// silently skipped image would shift week membership and page numbering for
// everything after it. The working directory is removed only after a fully
// successful run; on failure it is kept so the offending image can be
// inspected.
package report

import (
	"context"
	"fmt"
	"os"

	"github.com/wudi/ridereport/builder"
	"github.com/wudi/ridereport/document"
	"github.com/wudi/ridereport/ingest"
	"github.com/wudi/ridereport/layout"
	"github.com/wudi/ridereport/observability"
	"github.com/wudi/ridereport/ocr"
	"github.com/wudi/ridereport/raster"
	"github.com/wudi/ridereport/raster/fitz"
	"github.com/wudi/ridereport/receipt"
	"github.com/wudi/ridereport/timeline"
	"github.com/wudi/ridereport/writer"
)

// Generator runs the end-to-end pipeline for one input PDF.
type Generator struct {
	cfg        Config
	rasterizer raster.Rasterizer
	engine     ocr.Engine
	pdf        writer.Writer
	log        observability.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRasterizer replaces the MuPDF rasterizer.
func WithRasterizer(r raster.Rasterizer) Option {
	return func(g *Generator) { g.rasterizer = r }
}

// WithEngine replaces the OCR engine.
func WithEngine(e ocr.Engine) Option {
	return func(g *Generator) { g.engine = e }
}

// WithWriter replaces the PDF writer.
func WithWriter(w writer.Writer) Option {
	return func(g *Generator) { g.pdf = w }
}

// WithLogger sets the pipeline logger.
func WithLogger(l observability.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// NewGenerator constructs a Generator with production defaults: MuPDF
// rasterization, the package ocr default engine, and the standard writer.
func NewGenerator(cfg Config, opts ...Option) *Generator {
	cfg = cfg.withDefaults()
	g := &Generator{
		cfg:        cfg,
		rasterizer: fitz.NewRenderer(fitz.WithDPI(float64(cfg.DPI))),
		engine:     ocr.DefaultEngine(),
		pdf:        writer.NewWriter(),
		log:        observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run executes the pipeline.
func (g *Generator) Run(ctx context.Context) error {
	dir := ingest.NewDir(g.cfg.WorkDir)
	if err := dir.Ensure(); err != nil {
		return err
	}

	g.log.Info("extracting images from pdf", observability.String("input", g.cfg.InputPDF))
	files, err := g.rasterize(ctx, dir)
	if err != nil {
		return fmt.Errorf("rasterize: %w", err)
	}
	g.log.Info("pages extracted", observability.Int("pages", len(files)))

	texts, err := g.recognize(ctx, dir, files)
	if err != nil {
		return fmt.Errorf("recognize: %w", err)
	}

	entries, err := g.ingest(dir, files, texts)
	if err != nil {
		return err
	}

	sorted := timeline.SortChronological(entries)
	buckets := timeline.BucketByWeek(sorted)
	pages := layout.Paginate(buckets, ingest.CanonicalWidth, ingest.CanonicalHeight)
	g.log.Info("timeline bucketed",
		observability.Int("entries", len(sorted)),
		observability.Int("pages", len(pages)))

	if err := g.render(ctx, dir, pages); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	// Success: the intermediate images are no longer needed.
	if err := dir.Remove(); err != nil {
		return err
	}
	g.log.Info("report written", observability.String("output", g.cfg.OutputPDF))
	return nil
}

// rasterize renders every page of the input PDF into the working directory
// and returns the working filenames in page order.
func (g *Generator) rasterize(ctx context.Context, dir ingest.Dir) ([]string, error) {
	pages, err := g.rasterizer.Pages(ctx, g.cfg.InputPDF)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%s has no pages", g.cfg.InputPDF)
	}
	files := make([]string, 0, len(pages))
	for i, img := range pages {
		name := dir.PageFile(i + 1)
		if err := dir.SaveJPEG(name, img); err != nil {
			return nil, err
		}
		files = append(files, name)
	}
	return files, nil
}

// recognize runs OCR over every working image and returns the raw text per
// file, aligned with files.
func (g *Generator) recognize(ctx context.Context, dir ingest.Dir, files []string) ([]string, error) {
	inputs := make([]ocr.Input, 0, len(files))
	for _, name := range files {
		img, err := dir.LoadImage(name)
		if err != nil {
			return nil, err
		}
		in, err := ocr.InputFromImage(name, img,
			ocr.WithLanguages(g.cfg.Languages...),
			ocr.WithDPI(g.cfg.DPI))
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	results, err := ocr.RecognizeAll(ctx, g.engine, inputs)
	if err != nil {
		return nil, err
	}
	if len(results) != len(files) {
		return nil, fmt.Errorf("engine %s returned %d results for %d inputs", g.engine.Name(), len(results), len(files))
	}
	texts := make([]string, len(files))
	for i, res := range results {
		texts[i] = res.PlainText
	}
	return texts, nil
}

// ingest crops and normalizes every working image around its timestamp,
// overwriting the working copy, and returns the timeline entries. The first
// image whose text yields no timestamp, no parseable timestamp, or no
// terminator phrase aborts the run.
func (g *Generator) ingest(dir ingest.Dir, files, texts []string) ([]timeline.Entry, error) {
	entries := make([]timeline.Entry, 0, len(files))
	for i, name := range files {
		text := texts[i]
		m, err := receipt.FindTimestamp(text)
		if err != nil {
			return nil, fmt.Errorf("ingest %s: %w", name, err)
		}
		taken, err := receipt.ParseTimestamp(m.Value)
		if err != nil {
			return nil, fmt.Errorf("ingest %s: %w", name, err)
		}
		end, err := receipt.FindTerminator(text)
		if err != nil {
			return nil, fmt.Errorf("ingest %s: %w", name, err)
		}
		win := receipt.ResolveWindow(m.Offset, end)

		img, err := dir.LoadImage(name)
		if err != nil {
			return nil, fmt.Errorf("ingest %s: %w", name, err)
		}
		if err := dir.SaveJPEG(name, ingest.Normalize(img, win)); err != nil {
			return nil, fmt.Errorf("ingest %s: %w", name, err)
		}
		g.log.Debug("receipt ingested",
			observability.String("file", name),
			observability.String("taken", taken.Format("2006-01-02 15:04")),
			observability.Int("offset", m.Offset))
		entries = append(entries, timeline.Entry{File: name, Taken: taken})
	}
	return entries, nil
}

// render draws the page descriptions and writes the output PDF.
func (g *Generator) render(ctx context.Context, dir ingest.Dir, pages []layout.Page) error {
	b := builder.NewBuilder()
	b.SetInfo(&document.Info{Title: "Ride Report", Producer: "ridereport"})

	images := make(map[string]*document.Image)
	load := func(name string) (*document.Image, error) {
		if img, ok := images[name]; ok {
			return img, nil
		}
		data, err := dir.ReadFile(name)
		if err != nil {
			return nil, err
		}
		img, err := builder.ImageFromJPEG(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		images[name] = img
		return img, nil
	}

	for _, page := range pages {
		pb := b.NewPage(layout.PageWidth, layout.PageHeight)
		pb.DrawText(page.Heading, layout.HeadingX, layout.HeadingY, builder.TextOptions{FontSize: 12})
		for _, cell := range page.Cells {
			img, err := load(cell.File)
			if err != nil {
				return err
			}
			pb.DrawText(cell.Label, cell.X, cell.Y, builder.TextOptions{FontSize: 12})
			pb.DrawImage(img, cell.X, cell.Y-layout.ImageDrop, cell.ImageWidth, cell.ImageHeight, builder.ImageOptions{})
		}
		pb.Finish()
	}

	doc, err := b.Build()
	if err != nil {
		return err
	}
	f, err := os.Create(g.cfg.OutputPDF)
	if err != nil {
		return err
	}
	if err := g.pdf.Write(ctx, doc, f, writer.Config{}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
