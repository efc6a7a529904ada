package app

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"popgen/adapters/chart"
	"popgen/domain/population"
	"popgen/internal/errors"
	"popgen/ports"
)

// Options control one generation batch.
type Options struct {
	// ShowValues adds per-bar numeric annotations to each chart.
	ShowValues bool
	// ShowTables marks the batch so the UI includes summary tables in its
	// responses.
	ShowTables bool
	// Progress, when set, is invoked after each selection completes or is
	// skipped. Selections are processed strictly sequentially, so calls
	// arrive in order.
	Progress func(done, total int)
}

// Result is one successfully generated pyramid: the rendered chart, its
// PNG export, and the derived summary table.
type Result struct {
	ID        string
	Selection population.Selection
	Filename  string
	Chart     ports.Chart
	PNG       []byte
	Table     *population.SummaryTable
}

// Warning records a selection that was skipped because its row was missing
// from one or both tables.
type Warning struct {
	Selection population.Selection
	Message   string
}

// Batch holds the transient output of one generation pass. A new pass
// replaces the whole batch; nothing is persisted.
type Batch struct {
	ID         string
	Results    []*Result
	Warnings   []Warning
	ShowTables bool
}

// SuccessCount returns the number of pyramids actually generated.
func (b *Batch) SuccessCount() int {
	return len(b.Results)
}

// Result looks up a generated pyramid by ID.
func (b *Batch) Result(id string) (*Result, bool) {
	for _, r := range b.Results {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// GenerateService turns validated selections into rendered pyramids and
// summary tables. It is stateless; the source tables arrive as explicit
// read-only inputs.
type GenerateService struct {
	renderer      ports.ChartRenderer
	maxSelections int
}

// NewGenerateService creates a generation service.
func NewGenerateService(renderer ports.ChartRenderer, maxSelections int) *GenerateService {
	return &GenerateService{
		renderer:      renderer,
		maxSelections: maxSelections,
	}
}

// Generate runs one batch. Selections are processed sequentially; a
// selection whose row is missing from either table is skipped with a
// warning and its siblings still complete. Render or encode failures are
// unrecoverable and abort the batch.
func (s *GenerateService) Generate(male, female *population.Table, selections []population.Selection, opts Options) (*Batch, error) {
	if len(selections) == 0 {
		return nil, errors.InvalidInput("at least one selection is required")
	}
	if len(selections) > s.maxSelections {
		return nil, errors.InvalidInput(fmt.Sprintf("at most %d selections per batch", s.maxSelections))
	}
	if err := population.ValidateAgeBands(male, female); err != nil {
		return nil, err
	}
	labels := male.AgeLabels

	batch := &Batch{
		ID:         uuid.NewString(),
		ShowTables: opts.ShowTables,
	}

	for i, sel := range selections {
		result, err := s.generateOne(male, female, labels, sel, opts.ShowValues)
		if err != nil {
			if errors.GetCode(err) == errors.CodeNotFound {
				log.Printf("[GenerateService] WARNING - no data for %s (%d), skipping", sel.Country, sel.Year)
				batch.Warnings = append(batch.Warnings, Warning{
					Selection: sel,
					Message:   fmt.Sprintf("No data found for %s, %d", sel.Country, sel.Year),
				})
				if opts.Progress != nil {
					opts.Progress(i+1, len(selections))
				}
				continue
			}
			return nil, err
		}

		batch.Results = append(batch.Results, result)
		if opts.Progress != nil {
			opts.Progress(i+1, len(selections))
		}
	}

	log.Printf("[GenerateService] Batch %s complete: %d generated, %d skipped",
		batch.ID, batch.SuccessCount(), len(batch.Warnings))
	return batch, nil
}

func (s *GenerateService) generateOne(male, female *population.Table, labels []string, sel population.Selection, annotate bool) (*Result, error) {
	maleRow, err := population.Resolve(male, sel.Country, sel.Year)
	if err != nil {
		return nil, err
	}
	femaleRow, err := population.Resolve(female, sel.Country, sel.Year)
	if err != nil {
		return nil, err
	}

	maleCounts := maleRow.Counts(labels)
	femaleCounts := femaleRow.Counts(labels)

	rendered, err := s.renderer.Render(maleCounts, femaleCounts, labels, sel.Country, sel.Year, annotate)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render pyramid for %s (%d)", sel.Country, sel.Year)
	}

	png, err := rendered.PNG()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to export pyramid for %s (%d)", sel.Country, sel.Year)
	}

	table, err := population.FormatSummary(maleCounts, femaleCounts, labels)
	if err != nil {
		return nil, err
	}

	return &Result{
		ID:        uuid.NewString(),
		Selection: sel,
		Filename:  chart.Filename(sel.Country, sel.Year),
		Chart:     rendered,
		PNG:       png,
		Table:     table,
	}, nil
}
