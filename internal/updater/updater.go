// Package updater runs the two sync jobs against the external court
// systems: the movement sync against the national docket index and the
// real-time sync against the communications feed. It owns the progress
// state the dashboard polls.
package updater

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/brasslaw/vigia/internal/comunica"
	"github.com/brasslaw/vigia/internal/datajud"
	"github.com/brasslaw/vigia/internal/models"
	"github.com/brasslaw/vigia/internal/store"
)

// ErrRunning reports a sync trigger while a run is already in flight.
var ErrRunning = errors.New("updater: sync already running")

// movementQuerier is the slice of the docket-index client the updater
// uses, abstracted for test mocks.
type movementQuerier interface {
	Query(ctx context.Context, digits, court string) datajud.Result
	QueryFallback(ctx context.Context, digits, court string) datajud.FallbackResult
}

// feedQuerier is the slice of the communications-feed client the
// updater uses.
type feedQuerier interface {
	Query(ctx context.Context, digits string) comunica.Result
}

// Notifier delivers a best-effort out-of-band message about a run.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Updater coordinates both sync jobs over a shared store.
type Updater struct {
	store    *store.Store
	index    movementQuerier
	feed     feedQuerier
	parser   *comunica.Parser
	notifier Notifier

	court         string
	fallbackCourt string
	delay         time.Duration
	feedDelay     time.Duration

	// Movements and Comms each guard their own job; the two jobs stay
	// independently triggerable.
	Movements *State
	Comms     *State

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// Opts holds parameters for creating an Updater.
type Opts struct {
	Store         *store.Store
	Index         movementQuerier
	Feed          feedQuerier
	Parser        *comunica.Parser
	Notifier      Notifier // optional
	Court         string
	FallbackCourt string
	Delay         time.Duration
	FeedDelay     time.Duration
}

// New creates an Updater. Zero-value delays and courts fall back to the
// production defaults.
func New(opts Opts) *Updater {
	u := &Updater{
		store:         opts.Store,
		index:         opts.Index,
		feed:          opts.Feed,
		parser:        opts.Parser,
		notifier:      opts.Notifier,
		court:         opts.Court,
		fallbackCourt: opts.FallbackCourt,
		delay:         opts.Delay,
		feedDelay:     opts.FeedDelay,
		Movements:     NewState("UPDATE"),
		Comms:         NewState("COMUNICA"),
		now:           time.Now,
		sleep:         sleepCtx,
	}
	if u.court == "" {
		u.court = "trt2"
	}
	if u.fallbackCourt == "" {
		u.fallbackCourt = "tst"
	}
	if u.delay <= 0 {
		u.delay = 500 * time.Millisecond
	}
	if u.feedDelay <= 0 {
		u.feedDelay = 3200 * time.Millisecond
	}
	return u
}

func (u *Updater) notify(ctx context.Context, text string) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.Notify(ctx, text); err != nil {
		log.Printf("updater: notify: %v", err)
	}
}

func (u *Updater) nowISO() string {
	return u.now().UTC().Format(time.RFC3339)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func toMovementList(in []datajud.MovementSummary) models.MovementList {
	if len(in) == 0 {
		return nil
	}
	out := make(models.MovementList, 0, len(in))
	for _, m := range in {
		out = append(out, models.MovementSummary{Data: m.Data, Descricao: m.Descricao, Grau: m.Grau})
	}
	return out
}
