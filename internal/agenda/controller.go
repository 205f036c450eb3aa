package agenda

import (
	"context"
	"sync"
	"time"

	"github.com/bajo3/Emme-Client/internal/appointments"
	"github.com/bajo3/Emme-Client/pkg/logging"
)

// Fetcher loads appointments for a view. The view string is an
// observability label.
type Fetcher interface {
	Fetch(ctx context.Context, view string, f appointments.Filter) ([]appointments.Appointment, error)
}

// StatusWriter persists a status change against the external store.
type StatusWriter interface {
	ChangeStatus(ctx context.Context, id string, to appointments.Status) (*appointments.Appointment, error)
}

// Controller owns the mutable state of one agenda view: reference date,
// granularity, and status filter. Each state change triggers exactly one
// store fetch; a newer fetch supersedes any in-flight one, and a stale
// response that straggles in afterwards is discarded instead of applied.
// There is no singleton: construct one per view instance and drop it on
// navigation away.
type Controller struct {
	fetcher Fetcher
	writer  StatusWriter
	logger  *logging.Logger
	now     func() time.Time

	mu      sync.Mutex
	refDate time.Time
	gran    Granularity
	filter  StatusFilter
	appts   []appointments.Appointment
	lastErr error
	loading bool
	seq     uint64
	cancel  context.CancelFunc
}

// NewController builds a controller positioned on today's day view.
func NewController(fetcher Fetcher, writer StatusWriter, logger *logging.Logger) *Controller {
	if fetcher == nil {
		panic("agenda: fetcher required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	c := &Controller{
		fetcher: fetcher,
		writer:  writer,
		logger:  logger,
		now:     time.Now,
	}
	c.refDate = DateOnly(c.now())
	c.gran = GranularityDay
	c.filter = FilterAll
	return c
}

// WithClock overrides the controller's notion of "today"; tests use it.
func (c *Controller) WithClock(now func() time.Time) *Controller {
	c.now = now
	c.mu.Lock()
	c.refDate = DateOnly(now())
	c.mu.Unlock()
	return c
}

// SetView repositions the controller and refetches. A malformed date
// degrades to today rather than failing the view.
func (c *Controller) SetView(ctx context.Context, dateStr string, g Granularity, f StatusFilter) error {
	if !g.Valid() {
		g = GranularityDay
	}
	if !f.Valid() {
		f = ParseStatusFilter(string(f), g)
	}
	c.mu.Lock()
	c.refDate = ParseDateOrToday(dateStr, c.now)
	c.gran = g
	c.filter = f
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Move advances the view one window in the given direction (-1 or +1) and
// refetches.
func (c *Controller) Move(ctx context.Context, direction int) error {
	c.mu.Lock()
	c.refDate = Advance(c.refDate, c.gran, direction)
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetFilter changes the status filter and refetches.
func (c *Controller) SetFilter(ctx context.Context, f StatusFilter) error {
	c.mu.Lock()
	if f.Valid() {
		c.filter = f
	}
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Refresh issues one fetch for the current window. If a newer fetch starts
// while this one is in flight, this one's result is discarded whatever it
// was; on fetch failure the last-known-good appointments stay in place and
// the error is surfaced on the view-model.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.loading = true
	gran := c.gran
	bounds := WindowBounds(c.refDate, gran)
	if gran == GranularityMonth {
		// The month view badges padding cells too, so it fetches the whole
		// padded grid rather than the bare month.
		bounds = GridBounds(c.refDate)
	}
	c.mu.Unlock()

	filter := appointments.Filter{}
	if gran == GranularityDay {
		filter.DateEquals = bounds.Start.Format(appointments.DateLayout)
	} else {
		filter.DateFrom = bounds.Start.Format(appointments.DateLayout)
		filter.DateTo = bounds.End.Format(appointments.DateLayout)
	}

	appts, err := c.fetcher.Fetch(fetchCtx, string(gran), filter)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		// A newer fetch superseded this one; its result wins.
		return nil
	}
	c.loading = false
	if err != nil {
		c.lastErr = err
		c.logger.Error("view refresh failed", "granularity", gran, "error", err)
		return err
	}
	c.lastErr = nil
	c.appts = appts
	return nil
}

// ChangeStatus persists a status change and, only once the store confirms,
// applies it to the local copy. On failure local state is untouched and the
// error surfaces to the caller; there is no retry.
func (c *Controller) ChangeStatus(ctx context.Context, id string, to appointments.Status) error {
	if c.writer == nil {
		return appointments.ErrNotFound
	}
	updated, err := c.writer.ChangeStatus(ctx, id, to)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, a := range c.appts {
		if a.ID == updated.ID {
			c.appts[i] = appointments.Transition(a, updated.Status)
			break
		}
	}
	return nil
}

// ViewModel snapshots the current renderable state.
func (c *Controller) ViewModel() ViewModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	vm := BuildViewModel(c.appts, c.refDate, c.gran, c.filter)
	vm.Loading = c.loading
	if c.lastErr != nil {
		vm.Error = c.lastErr.Error()
	}
	return vm
}

// Close cancels any in-flight fetch. Call it when the view goes away.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
