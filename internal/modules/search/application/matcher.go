package application

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	listing "github.com/arjunm29/nestfind/internal/modules/listing/domain"
	"github.com/arjunm29/nestfind/internal/modules/search/domain"
)

// PropertyStore is the matcher's view of the property inventory. Sold
// filtering is re-applied by MatchCriteria regardless of what the store does.
type PropertyStore interface {
	ListUnsold(ctx context.Context) ([]listing.Property, error)
}

// PriceDropStore serves price-drop events recorded since a point in time
type PriceDropStore interface {
	DropsSince(ctx context.Context, since time.Time) ([]listing.PriceChange, error)
}

// NotificationRecord is what the matcher hands to the sink for persistence
type NotificationRecord struct {
	UserID     uuid.UUID
	Title      string
	Body       string
	Type       string // savedSearch or priceDrop
	PropertyID *uuid.UUID
	Payload    map[string]interface{}
}

// NotificationSink delivers and persists matcher notifications. DeliverLocal
// is fire-and-forget toward the device; Persist is a best-effort write and
// its failure does not roll back a delivery already issued.
type NotificationSink interface {
	DeliverLocal(ctx context.Context, userID uuid.UUID, title, body string, payload map[string]interface{}) error
	Persist(ctx context.Context, record NotificationRecord) error
}

// EvalStatus classifies the outcome of one search evaluation
type EvalStatus int

const (
	// EvalNoMatches means the delta set was empty; the checkpoint is untouched
	EvalNoMatches EvalStatus = iota
	// EvalNotified means a notification went out and the checkpoint advanced
	EvalNotified
	// EvalRetryable means the evaluation failed before the checkpoint could
	// advance; the next cycle retries it with no data loss
	EvalRetryable
)

func (s EvalStatus) String() string {
	switch s {
	case EvalNoMatches:
		return "no_matches"
	case EvalNotified:
		return "notified"
	case EvalRetryable:
		return "retryable"
	default:
		return "unknown"
	}
}

// EvalResult is the explicit outcome of EvaluateSearch
type EvalResult struct {
	Status  EvalStatus
	Matched int // properties matching the criteria, before the checkpoint filter
	New     int // size of the delta set
	Err     error
}

// Matcher re-evaluates every active saved search against the current
// inventory and emits notifications for newly-created matches. All state it
// mutates lives in the saved-search store (the LastChecked checkpoint); the
// in-memory locks only prevent overlapping evaluations of the same search.
type Matcher struct {
	searches   domain.SavedSearchRepository
	properties PropertyStore
	drops      PriceDropStore
	sink       NotificationSink
	now        func() time.Time

	cycleInFlight atomic.Bool

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}

	sweepMu   sync.Mutex
	lastSweep time.Time
}

// NewMatcher constructs a Matcher. drops may be nil to disable the
// price-drop sweep.
func NewMatcher(searches domain.SavedSearchRepository, properties PropertyStore, drops PriceDropStore, sink NotificationSink) *Matcher {
	m := &Matcher{
		searches:   searches,
		properties: properties,
		drops:      drops,
		sink:       sink,
		now:        time.Now,
		inFlight:   make(map[uuid.UUID]struct{}),
	}
	m.lastSweep = m.now()
	return m
}

// RunCycle evaluates every active saved search of every user. A failure for
// one user or search never aborts the rest; errors end at the log. If the
// previous cycle is still running the tick is skipped rather than doubled.
func (m *Matcher) RunCycle(ctx context.Context) {
	if !m.cycleInFlight.CompareAndSwap(false, true) {
		log.Println("[matcher] previous cycle still running, skipping tick")
		matcherCyclesSkipped.Inc()
		return
	}
	defer m.cycleInFlight.Store(false)

	matcherCyclesTotal.Inc()
	cycleStart := m.now()

	userIDs, err := m.searches.ListUserIDsWithActiveSearches(ctx)
	if err != nil {
		log.Printf("[matcher] listing users with active searches: %v", err)
		return
	}
	if len(userIDs) == 0 {
		return
	}

	sweep := m.beginPriceSweep(ctx)

	for _, userID := range userIDs {
		m.checkUser(ctx, userID, sweep)
	}

	if sweep != nil {
		m.sweepMu.Lock()
		m.lastSweep = cycleStart
		m.sweepMu.Unlock()
	}
}

// checkUser evaluates all of one user's active searches. Mirrors the
// per-user error boundary of RunCycle: a repository failure here is logged
// and the cycle moves on to the next user.
func (m *Matcher) checkUser(ctx context.Context, userID uuid.UUID, sweep *priceSweep) {
	searches, err := m.searches.ListActiveByUser(ctx, userID)
	if err != nil {
		log.Printf("[matcher] listing searches for user %s: %v", userID, err)
		return
	}

	for _, search := range searches {
		result := m.EvaluateSearch(ctx, search)
		searchesEvaluated.WithLabelValues(result.Status.String()).Inc()
		if result.Err != nil {
			log.Printf("[matcher] search %s (%q): %v", search.ID, search.Name, result.Err)
		}
		if sweep != nil {
			m.notifyPriceDrops(ctx, userID, search, sweep)
		}
	}
}

// EvaluateSearch runs one full evaluation of a saved search: fetch, match,
// delta filter, notify, checkpoint advance. The checkpoint advances if and
// only if the delta set is non-empty and every step before the advance
// succeeded; any earlier failure returns EvalRetryable and leaves the
// checkpoint where it was, so the next cycle retries the same window.
func (m *Matcher) EvaluateSearch(ctx context.Context, search domain.SavedSearch) EvalResult {
	if !m.tryLock(search.ID) {
		return EvalResult{Status: EvalRetryable, Err: domain.ErrEvaluationInProgress}
	}
	defer m.unlock(search.ID)

	properties, err := m.properties.ListUnsold(ctx)
	if err != nil {
		return EvalResult{Status: EvalRetryable, Err: fmt.Errorf("fetching properties: %w", err)}
	}

	if search.Criteria.HasPriceBounds() {
		m.countMalformedPrices(properties)
	}

	matched := domain.MatchCriteria(search.Criteria, properties)

	var delta []listing.Property
	for _, p := range matched {
		if p.CreatedAt.After(search.LastChecked) {
			delta = append(delta, p)
		}
	}

	if len(delta) == 0 {
		return EvalResult{Status: EvalNoMatches, Matched: len(matched)}
	}

	msg := domain.BuildMatchNotification(search, delta)

	if err := m.sink.DeliverLocal(ctx, search.UserID, msg.Title, msg.Body, msg.Payload); err != nil {
		return EvalResult{Status: EvalRetryable, Matched: len(matched), New: len(delta),
			Err: fmt.Errorf("delivering notification: %w", err)}
	}
	if err := m.sink.Persist(ctx, NotificationRecord{
		UserID:  search.UserID,
		Title:   msg.Title,
		Body:    msg.Body,
		Type:    "savedSearch",
		Payload: msg.Payload,
	}); err != nil {
		return EvalResult{Status: EvalRetryable, Matched: len(matched), New: len(delta),
			Err: fmt.Errorf("persisting notification: %w", err)}
	}

	if err := m.searches.UpdateLastChecked(ctx, search.ID, m.now()); err != nil {
		// The notification already went out; next cycle will re-notify.
		return EvalResult{Status: EvalRetryable, Matched: len(matched), New: len(delta),
			Err: fmt.Errorf("advancing checkpoint (duplicate notification possible): %w", err)}
	}

	notificationsSent.WithLabelValues("savedSearch").Inc()
	return EvalResult{Status: EvalNotified, Matched: len(matched), New: len(delta)}
}

func (m *Matcher) countMalformedPrices(properties []listing.Property) {
	for _, p := range properties {
		if _, err := listing.ParsePrice(p.Price); err != nil {
			malformedPrices.Inc()
		}
	}
}

// priceSweep carries the per-cycle state of the price-drop check: the drop
// events recorded since the previous sweep, the inventory to match them
// against, and which (user, property) pairs were already alerted this cycle.
type priceSweep struct {
	properties []listing.Property
	byProperty map[uuid.UUID]listing.PriceChange
	notified   map[uuid.UUID]map[uuid.UUID]struct{}
}

func (m *Matcher) beginPriceSweep(ctx context.Context) *priceSweep {
	if m.drops == nil {
		return nil
	}

	m.sweepMu.Lock()
	since := m.lastSweep
	m.sweepMu.Unlock()

	changes, err := m.drops.DropsSince(ctx, since)
	if err != nil {
		log.Printf("[matcher] fetching price drops: %v", err)
		return nil
	}
	if len(changes) == 0 {
		return nil
	}

	properties, err := m.properties.ListUnsold(ctx)
	if err != nil {
		log.Printf("[matcher] fetching properties for price sweep: %v", err)
		return nil
	}

	byProperty := make(map[uuid.UUID]listing.PriceChange, len(changes))
	for _, c := range changes {
		// Later drops on the same property win; DropsSince orders ascending
		byProperty[c.PropertyID] = c
	}

	return &priceSweep{
		properties: properties,
		byProperty: byProperty,
		notified:   make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

// notifyPriceDrops alerts the user about price drops on properties that
// match one of their searches. Best-effort: failures are logged and the
// sweep continues; a user is alerted at most once per property per cycle.
func (m *Matcher) notifyPriceDrops(ctx context.Context, userID uuid.UUID, search domain.SavedSearch, sweep *priceSweep) {
	matched := domain.MatchCriteria(search.Criteria, sweep.properties)

	for _, p := range matched {
		change, ok := sweep.byProperty[p.ID]
		if !ok {
			continue
		}
		if seen, ok := sweep.notified[userID]; ok {
			if _, done := seen[p.ID]; done {
				continue
			}
		}

		msg := domain.BuildPriceDropNotification(change)
		if err := m.sink.DeliverLocal(ctx, userID, msg.Title, msg.Body, msg.Payload); err != nil {
			log.Printf("[matcher] delivering price drop for property %s: %v", p.ID, err)
			continue
		}
		propertyID := p.ID
		if err := m.sink.Persist(ctx, NotificationRecord{
			UserID:     userID,
			Title:      msg.Title,
			Body:       msg.Body,
			Type:       "priceDrop",
			PropertyID: &propertyID,
			Payload:    msg.Payload,
		}); err != nil {
			log.Printf("[matcher] persisting price drop for property %s: %v", p.ID, err)
		}

		if sweep.notified[userID] == nil {
			sweep.notified[userID] = make(map[uuid.UUID]struct{})
		}
		sweep.notified[userID][p.ID] = struct{}{}
		notificationsSent.WithLabelValues("priceDrop").Inc()
	}
}

func (m *Matcher) tryLock(searchID uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.inFlight[searchID]; busy {
		return false
	}
	m.inFlight[searchID] = struct{}{}
	return true
}

func (m *Matcher) unlock(searchID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inFlight, searchID)
}
