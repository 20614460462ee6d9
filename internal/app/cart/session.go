package cart

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrItemNotFound        = errors.New("item not found in cart")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrNoRecommendations   = errors.New("no recommendations for item")
	ErrInvalidDirection    = errors.New("invalid navigation direction")
	ErrNoGroceryItems      = errors.New("cart has no grocery items")
	ErrOptimizationRunning = errors.New("optimization already in progress")
	ErrInvalidOptimizeMode = errors.New("invalid optimization mode")
)

// Mode selects an optimization strategy
type Mode string

const (
	ModeHealthy Mode = "healthy"
	ModeMoney   Mode = "money"
)

// State tracks the optimization lifecycle for a session
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
)

// Product is the cart's view of anything addable: a grocery product, a
// restaurant menu item, or a recommendation candidate.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category,omitempty"`
	Price        float64 `json:"price"`
	Description  string  `json:"description,omitempty"`
	RestaurantID string  `json:"restaurant_id,omitempty"`
	ImageURL     string  `json:"image_url,omitempty"`
}

// IsGrocery reports whether the product is a grocery item: it has a
// category and no restaurant reference.
func (p Product) IsGrocery() bool {
	return p.Category != "" && p.RestaurantID == ""
}

// Candidate is a recommended alternative held against a cart line item
type Candidate struct {
	Product
	NutritionReason string  `json:"nutrition_reason,omitempty"`
	UpgradeAmount   float64 `json:"upgrade_amount,omitempty"`
	Similarity      float64 `json:"similarity,omitempty"`
}

// LineItem is one cart line. The generation marks the item's birth; a
// removed-and-re-added id gets a new generation, which is what keeps
// late recommendation fetches from attaching to the wrong incarnation.
type LineItem struct {
	Product
	Quantity   int `json:"quantity"`
	generation uint64
}

// Session holds all cart state for one visitor. Every mutation and read
// goes through the session mutex; recommendation fetches run outside the
// lock and merge their results back through MergeRecommendations.
type Session struct {
	mu sync.Mutex

	id         string
	lastAccess time.Time

	items   map[string]*LineItem
	order   []string // insertion order of item ids
	ledger  map[string]float64
	recs    map[string][]Candidate
	cursors map[string]int
	savings float64
	gen     uint64

	mode  Mode
	state State
}

// NewSession creates an empty cart session
func NewSession(id string) *Session {
	return &Session{
		id:         id,
		lastAccess: time.Now(),
		items:      make(map[string]*LineItem),
		ledger:     make(map[string]float64),
		recs:       make(map[string][]Candidate),
		cursors:    make(map[string]int),
		state:      StateIdle,
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Touch records activity for idle-purge accounting
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
}

// LastAccess returns the time of the most recent activity
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// Add puts one unit of the product in the cart. An existing line gains
// quantity and has its product snapshot refreshed to the latest data.
func (s *Session) Add(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.items[p.ID]; ok {
		item.Product = p
		item.Quantity++
		return
	}

	s.gen++
	s.items[p.ID] = &LineItem{Product: p, Quantity: 1, generation: s.gen}
	s.order = append(s.order, p.ID)
}

// Remove takes one unit out of the cart, deleting the line when the
// last unit goes. Removing an absent id is a no-op.
func (s *Session) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return
	}
	if item.Quantity > 1 {
		item.Quantity--
		return
	}

	delete(s.items, id)
	s.removeFromOrder(id)
}

// Replace swaps a cart line for a recommended alternative. The replaced
// line's quantity and display position carry over. The price difference
// against the line's original price (from the ledger when present, so
// chained replacements keep comparing against the first price) is added
// to the savings accumulator, and the new id inherits that original
// price in the ledger. Replacing onto an id that is already its own
// cart line folds the two lines into one.
func (s *Session) Replace(oldID string, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.items[oldID]
	if !ok {
		return ErrItemNotFound
	}

	original, ok := s.ledger[oldID]
	if !ok {
		original = old.Price
	}

	s.savings += (original - p.Price) * float64(old.Quantity)
	s.ledger[p.ID] = original

	qty := old.Quantity
	if oldID != p.ID {
		if existing, ok := s.items[p.ID]; ok {
			qty += existing.Quantity
		}
		delete(s.items, oldID)
		s.replaceInOrder(oldID, p.ID)
	}

	s.gen++
	s.items[p.ID] = &LineItem{Product: p, Quantity: qty, generation: s.gen}

	delete(s.recs, oldID)
	delete(s.cursors, oldID)

	return nil
}

// Clear resets the session to its initial empty state
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Session) clearLocked() {
	s.items = make(map[string]*LineItem)
	s.order = nil
	s.ledger = make(map[string]float64)
	s.recs = make(map[string][]Candidate)
	s.cursors = make(map[string]int)
	s.savings = 0
	s.mode = ""
	s.state = StateIdle
}

// Items returns the cart lines in display order: grocery items first,
// then restaurant items, each group in insertion order.
func (s *Session) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked()
}

func (s *Session) itemsLocked() []LineItem {
	groceries := make([]LineItem, 0, len(s.order))
	var rest []LineItem
	for _, id := range s.order {
		item, ok := s.items[id]
		if !ok {
			continue
		}
		if item.IsGrocery() {
			groceries = append(groceries, *item)
		} else {
			rest = append(rest, *item)
		}
	}
	return append(groceries, rest...)
}

// ItemCount returns the total unit count across all lines
func (s *Session) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// HasGroceryItems reports whether any grocery line is in the cart
func (s *Session) HasGroceryItems() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.IsGrocery() {
			return true
		}
	}
	return false
}

// SnapshotOriginalPrices records each line's current price in the
// ledger unless the line already has an entry. Existing entries are
// never overwritten; they persist for the whole session so savings stay
// anchored to the first seen price.
func (s *Session) SnapshotOriginalPrices() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.items {
		if _, ok := s.ledger[id]; !ok {
			s.ledger[id] = item.Price
		}
	}
}

// LedgerPrice returns the recorded original price for an item id
func (s *Session) LedgerPrice(id string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	price, ok := s.ledger[id]
	return price, ok
}

// GenerationSnapshot captures the birth generation of every current
// line. A recommendation fetch takes one before leaving the lock and
// hands it back to MergeRecommendations when results arrive.
func (s *Session) GenerationSnapshot() map[string]uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := make(map[string]uint64, len(s.items))
	for id, item := range s.items {
		snap[id] = item.generation
	}
	return snap
}

// MergeRecommendations folds fetched candidates into the session for
// every id that still exists with an unchanged generation. Stale keys
// are dropped silently. Cursors reset to the first candidate for each
// merged key; recommendations for untouched keys stay as they were.
func (s *Session) MergeRecommendations(snapshot map[string]uint64, recs map[string][]Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, candidates := range recs {
		gen, inSnapshot := snapshot[id]
		item, exists := s.items[id]
		if !inSnapshot || !exists || item.generation != gen {
			continue
		}
		s.recs[id] = candidates
		s.cursors[id] = 0
	}
}

// Navigate moves the candidate cursor for an item one step and returns
// the new position. The cursor clamps at both ends; there is no
// wraparound.
func (s *Session) Navigate(id, direction string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates, ok := s.recs[id]
	if !ok || len(candidates) == 0 {
		return 0, ErrNoRecommendations
	}

	cursor := s.cursors[id]
	switch direction {
	case "next":
		cursor++
	case "prev":
		cursor--
	default:
		return 0, ErrInvalidDirection
	}

	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(candidates)-1 {
		cursor = len(candidates) - 1
	}
	s.cursors[id] = cursor
	return cursor, nil
}

// CurrentCandidate returns the candidate the cursor points at for the
// given item, if the item has recommendations.
func (s *Session) CurrentCandidate(id string) (Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates, ok := s.recs[id]
	if !ok || len(candidates) == 0 {
		return Candidate{}, false
	}
	return candidates[s.cursors[id]], true
}

// Recommendations returns a copy of the candidate sets and cursors
func (s *Session) Recommendations() (map[string][]Candidate, map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := make(map[string][]Candidate, len(s.recs))
	for id, candidates := range s.recs {
		recs[id] = append([]Candidate(nil), candidates...)
	}
	cursors := make(map[string]int, len(s.cursors))
	for id, cursor := range s.cursors {
		cursors[id] = cursor
	}
	return recs, cursors
}

// Mode returns the active optimization mode
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// State returns the optimization state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// BeginOptimization moves the session into the loading state for the
// given mode. It fails when a fetch is already running.
func (s *Session) BeginOptimization(mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLoading {
		return ErrOptimizationRunning
	}
	s.mode = mode
	s.state = StateLoading
	return nil
}

// FinishOptimization marks a completed fetch. A failed fetch returns
// the state to idle so the visitor can retry; previously merged
// recommendations are left alone either way.
func (s *Session) FinishOptimization(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ok {
		s.state = StateReady
	} else {
		s.state = StateIdle
	}
}

func (s *Session) removeFromOrder(id string) {
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

func (s *Session) replaceInOrder(oldID, newID string) {
	// the replacement may already be a cart line of its own; the old
	// slot folds into it rather than listing the id twice
	for _, v := range s.order {
		if v == newID {
			s.removeFromOrder(oldID)
			return
		}
	}
	for i, v := range s.order {
		if v == oldID {
			s.order[i] = newID
			return
		}
	}
	s.order = append(s.order, newID)
}
