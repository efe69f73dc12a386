// Package translator threads one device description through the fixed
// configuration pass order and into an emitted AIRBIN, owning the write
// store explicitly instead of as a process-wide global. The section-name
// table is built afresh inside each airbin.Emit call.
package translator

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"airbingen/airbin"
	"airbingen/dma"
	"airbingen/ir"
	"airbingen/model"
	"airbingen/stats"
	"airbingen/store"
	"airbingen/switchbox"
	"airbingen/tile"
)

// Translator owns the mutable state of exactly one translation: the write
// store accumulated by all passes and the logger every pass reports
// through. A Translator is constructed once per CLI invocation and
// discarded once its AIRBIN has been emitted.
type Translator struct {
	store  *store.WriteStore
	log    *zap.Logger
	strict bool
	runID  string
}

// New constructs a Translator. strict promotes input diagnostics (A/B
// mismatch, etc.) to fatal errors; runID is attached to every log line.
func New(log *zap.Logger, strict bool, runID string) *Translator {
	return &Translator{
		store:  store.New(),
		log:    log.With(zap.String("runId", runID)),
		strict: strict,
		runID:  runID,
	}
}

// Result carries the non-authoritative per-tile DMA statistics recorded
// during a call to Run.
type Result struct {
	DMAStats map[model.TileAddress]stats.DMA
}

// Run drives one translation to completion: configure_cores →
// configure_switchboxes → configure_dmas, then group_sections, then the
// AIRBIN emitter, writing the finished ELF to out.
func (t *Translator) Run(device *ir.Device, out io.Writer) (Result, error) {
	if device == nil || len(device.Tiles) == 0 {
		return Result{}, errors.New("translator: device description has no tiles")
	}

	t.log.Info("starting translation", zap.Int("tiles", len(device.Tiles)))

	if err := tile.Configure(t.store, device, t.log); err != nil {
		return Result{}, fmt.Errorf("translator: configure_cores: %w", err)
	}
	if err := switchbox.Configure(t.store, device, t.log); err != nil {
		return Result{}, fmt.Errorf("translator: configure_switchboxes: %w", err)
	}
	nl := ir.NewNetlistAnalysis(device.Buffers)
	dmaStats, err := dma.Configure(t.store, device, nl, t.strict, t.log)
	if err != nil {
		return Result{}, fmt.Errorf("translator: configure_dmas: %w", err)
	}

	sections := store.GroupSections(t.store)
	t.log.Info("grouped sections", zap.Int("writes", t.store.Len()), zap.Int("sections", len(sections)))

	if err := airbin.Emit(out, sections); err != nil {
		return Result{}, fmt.Errorf("translator: emit airbin: %w", err)
	}

	t.log.Info("translation complete", zap.Int("tiles", len(device.Tiles)))
	return Result{DMAStats: dmaStats}, nil
}
