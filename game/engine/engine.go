package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var (
	ErrCardOutOfRange  = errors.New("card id out of range")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// Scheduler defers a callback for the settle and cool-down windows.
// The default implementation uses real timers; tests inject
// ImmediateScheduler to drive transitions synchronously.
type Scheduler interface {
	After(d time.Duration, fn func())
}

type timerScheduler struct{}

func (timerScheduler) After(d time.Duration, fn func()) { time.AfterFunc(d, fn) }

// ImmediateScheduler runs deferred callbacks inline, skipping the
// UI-legibility delays. Used by tests and headless callers.
type ImmediateScheduler struct{}

func (ImmediateScheduler) After(_ time.Duration, fn func()) { fn() }

// Engine provides the main interface for game session operations
type Engine interface {
	// Session lifecycle
	Start(playerName string)
	Reset()
	Snapshot() *Snapshot
	Restore(snap *Snapshot) error

	// Gameplay
	Flip(cardID int) (*FlipOutcome, error)
	TogglePause() bool
	RequestHint() (*Hint, bool)

	// Accessors
	Level() *LevelConfig
	Status() Status
	IsComplete() bool
}

// GameEngine implements the Engine interface. All mutating operations
// and deferred callbacks lock the engine mutex; deferred callbacks
// additionally carry the session epoch at scheduling time and no-op
// when a reset or new game has bumped it since.
type GameEngine struct {
	mu        sync.Mutex
	level     *LevelConfig
	theme     string
	symbols   []string
	scheduler Scheduler
	now       func() time.Time
	rng       *rand.Rand

	status     Status
	playerName string
	cards      []Card
	pending    []int
	matched    int
	moves      int
	score      int
	hints      int
	flipLocked bool
	epoch      uint64

	startedAt   time.Time
	pausedAt    time.Time
	pausedTotal time.Duration
	finalTime   int

	onChange   func(*Snapshot)
	onComplete func(*Result)
}

// Option configures a GameEngine at construction time.
type Option func(*GameEngine)

// WithScheduler replaces the timer-backed scheduler.
func WithScheduler(s Scheduler) Option {
	return func(e *GameEngine) { e.scheduler = s }
}

// WithClock replaces the wall clock used for elapsed-time accounting.
func WithClock(now func() time.Time) Option {
	return func(e *GameEngine) { e.now = now }
}

// WithRand replaces the random source used for shuffling and hints.
func WithRand(rng *rand.Rand) Option {
	return func(e *GameEngine) { e.rng = rng }
}

// NewEngine creates a game engine for one level and theme. The theme
// must cover the level's pair count; both are validated here so
// gameplay never has to.
func NewEngine(level *LevelConfig, theme string, symbols []string, opts ...Option) (*GameEngine, error) {
	if err := ValidateLevelConfig(level); err != nil {
		return nil, err
	}
	if err := ValidateThemeCoverage(level, theme, symbols); err != nil {
		return nil, err
	}

	e := &GameEngine{
		level:     level,
		theme:     theme,
		symbols:   symbols,
		scheduler: timerScheduler{},
		now:       time.Now,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		status:    StatusIdle,
		hints:     DefaultHints,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// SetChangeHandler registers a callback invoked after every state
// change with a fresh snapshot. The callback runs outside the engine
// lock.
func (e *GameEngine) SetChangeHandler(fn func(*Snapshot)) {
	e.mu.Lock()
	e.onChange = fn
	e.mu.Unlock()
}

// SetCompleteHandler registers a callback invoked exactly once per
// session epoch when the board is fully matched.
func (e *GameEngine) SetCompleteHandler(fn func(*Result)) {
	e.mu.Lock()
	e.onComplete = fn
	e.mu.Unlock()
}

// Start begins a new session: fresh shuffled deck, all counters reset,
// clock running. Bumping the epoch invalidates any deferred callback
// still in flight from a previous session.
func (e *GameEngine) Start(playerName string) {
	e.mu.Lock()
	e.epoch++
	deck := GenerateDeck(e.level, e.symbols, e.rng)
	e.cards = make([]Card, len(deck))
	for i, value := range deck {
		e.cards[i] = Card{ID: i, Value: value}
	}
	e.playerName = playerName
	e.status = StatusPlaying
	e.pending = e.pending[:0]
	e.matched = 0
	e.moves = 0
	e.score = 0
	e.hints = DefaultHints
	e.flipLocked = false
	e.startedAt = e.now()
	e.pausedTotal = 0
	e.finalTime = 0
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// Reset restarts the session with the same player and level,
// discarding the prior board entirely.
func (e *GameEngine) Reset() {
	e.mu.Lock()
	player := e.playerName
	e.mu.Unlock()
	e.Start(player)
}

// Flip attempts to turn a card face-up.
//
// An out-of-range card id is a caller bug and returns
// ErrCardOutOfRange. Everything else that prevents a flip — not
// playing, flip lock engaged, card already face-up or matched, two
// cards pending — is a silent no-op with Accepted=false.
//
// The flip that completes a pair increments the move count and
// schedules resolution after the settle delay.
func (e *GameEngine) Flip(cardID int) (*FlipOutcome, error) {
	e.mu.Lock()
	if cardID < 0 || cardID >= len(e.cards) {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %d (deck size %d)", ErrCardOutOfRange, cardID, len(e.cards))
	}
	if e.status != StatusPlaying || e.flipLocked || len(e.pending) >= 2 {
		e.mu.Unlock()
		return &FlipOutcome{}, nil
	}
	card := &e.cards[cardID]
	if card.Flipped || card.Matched {
		e.mu.Unlock()
		return &FlipOutcome{}, nil
	}

	card.Flipped = true
	e.pending = append(e.pending, cardID)

	out := &FlipOutcome{Accepted: true}
	var epoch uint64
	if len(e.pending) == 2 {
		// A move is one completed pair attempt, counted here and
		// nowhere else.
		e.moves++
		out.PairPending = true
		epoch = e.epoch
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(snap)
	if out.PairPending {
		e.scheduler.After(SettleDelay, func() { e.resolvePending(epoch) })
	}
	return out, nil
}

// resolvePending evaluates the two face-up cards. The pending-list
// length check makes double invocation harmless, and the epoch check
// makes callbacks from a replaced session harmless.
func (e *GameEngine) resolvePending(epoch uint64) {
	e.mu.Lock()
	if epoch != e.epoch || len(e.pending) != 2 {
		e.mu.Unlock()
		return
	}
	if e.status != StatusPlaying && e.status != StatusPaused {
		e.mu.Unlock()
		return
	}

	first, second := e.pending[0], e.pending[1]
	a, b := &e.cards[first], &e.cards[second]
	e.pending = e.pending[:0]

	if a.Value == b.Value {
		a.Matched = true
		b.Matched = true
		e.matched += 2
		e.score += MatchPoints

		if e.matched == len(e.cards) {
			result, snap := e.completeLocked()
			onComplete := e.onComplete
			e.mu.Unlock()
			e.notify(snap)
			if onComplete != nil {
				onComplete(result)
			}
			return
		}

		snap := e.snapshotLocked()
		e.mu.Unlock()
		e.notify(snap)
		return
	}

	// Mismatch: freeze input, leave the pair visible for the
	// cool-down, then turn both back over.
	e.flipLocked = true
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
	e.scheduler.After(MismatchDelay, func() { e.unflipPair(epoch, first, second) })
}

// unflipPair reverts a mismatched pair and releases the flip lock.
func (e *GameEngine) unflipPair(epoch uint64, first, second int) {
	e.mu.Lock()
	if epoch != e.epoch {
		e.mu.Unlock()
		return
	}
	e.cards[first].Flipped = false
	e.cards[second].Flipped = false
	e.flipLocked = false
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
}

// completeLocked finishes the session: stops the clock, recomputes the
// final score from elapsed time and moves, and builds the result
// record. Caller holds the lock.
func (e *GameEngine) completeLocked() (*Result, *Snapshot) {
	e.finalTime = e.elapsedLocked()
	e.status = StatusComplete
	e.score = ComputeScore(e.finalTime, e.moves, e.level)

	result := &Result{
		PlayerName:  e.playerName,
		Level:       e.level.ID,
		Score:       e.score,
		Moves:       e.moves,
		TimeTaken:   e.finalTime,
		CompletedAt: e.now(),
	}
	return result, e.snapshotLocked()
}

// TogglePause flips between playing and paused, stopping the elapsed
// clock while paused. Returns false when the session is idle or
// complete. A pending pair formed before pausing still resolves; flips
// while paused are no-ops.
func (e *GameEngine) TogglePause() bool {
	e.mu.Lock()
	switch e.status {
	case StatusPlaying:
		e.pausedAt = e.now()
		e.status = StatusPaused
	case StatusPaused:
		e.pausedTotal += e.now().Sub(e.pausedAt)
		e.status = StatusPlaying
	default:
		e.mu.Unlock()
		return false
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
	return true
}

// RequestHint reveals one still-hidden matching pair at random without
// flipping it, and spends a hint. Returns false when no hints remain,
// the session is not playing, or no hidden pair exists.
func (e *GameEngine) RequestHint() (*Hint, bool) {
	e.mu.Lock()
	if e.status != StatusPlaying || e.hints <= 0 {
		e.mu.Unlock()
		return nil, false
	}

	// Single linear scan; each card joins at most one hinted pair.
	var pairs [][2]int
	firstSeen := make(map[string]int)
	for _, card := range e.cards {
		if card.Matched || card.Flipped {
			continue
		}
		if first, ok := firstSeen[card.Value]; ok {
			pairs = append(pairs, [2]int{first, card.ID})
			delete(firstSeen, card.Value)
		} else {
			firstSeen[card.Value] = card.ID
		}
	}
	if len(pairs) == 0 {
		e.mu.Unlock()
		return nil, false
	}

	pick := pairs[e.rng.Intn(len(pairs))]
	e.hints--
	hint := &Hint{CardIDs: pick, Value: e.cards[pick[0]].Value}
	snap := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snap)
	return hint, true
}

// Snapshot returns a read-only copy of the current state.
func (e *GameEngine) Snapshot() *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Restore loads a persisted snapshot into the engine. Any pair that
// was pending at save time is turned back over: the deferred
// resolution that would have handled it did not survive the restart.
func (e *GameEngine) Restore(snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: nil", ErrInvalidSnapshot)
	}
	if len(snap.Cards) != e.level.Rows*e.level.Cols {
		return fmt.Errorf("%w: %d cards for a %dx%d level",
			ErrInvalidSnapshot, len(snap.Cards), e.level.Rows, e.level.Cols)
	}

	e.mu.Lock()
	e.epoch++
	e.playerName = snap.PlayerName
	e.cards = make([]Card, len(snap.Cards))
	copy(e.cards, snap.Cards)
	e.pending = e.pending[:0]
	for i := range e.cards {
		if e.cards[i].Flipped && !e.cards[i].Matched {
			e.cards[i].Flipped = false
		}
	}
	e.matched = snap.MatchedCount
	e.moves = snap.Moves
	e.score = snap.Score
	e.hints = snap.HintsLeft
	e.flipLocked = false
	e.status = snap.Status
	e.pausedTotal = 0
	if snap.Status == StatusComplete {
		e.finalTime = snap.TimeSpent
	} else {
		e.startedAt = e.now().Add(-time.Duration(snap.TimeSpent) * time.Second)
		if snap.Status == StatusPaused {
			e.pausedAt = e.now()
		}
	}
	e.mu.Unlock()
	return nil
}

// Level returns the immutable level configuration.
func (e *GameEngine) Level() *LevelConfig { return e.level }

// Theme returns the theme name the deck was dealt from.
func (e *GameEngine) Theme() string { return e.theme }

// Status returns the current session status.
func (e *GameEngine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// IsComplete reports whether the board is fully matched.
func (e *GameEngine) IsComplete() bool {
	return e.Status() == StatusComplete
}

// snapshotLocked builds a snapshot. Caller holds the lock.
func (e *GameEngine) snapshotLocked() *Snapshot {
	cards := make([]Card, len(e.cards))
	copy(cards, e.cards)
	pending := make([]int, len(e.pending))
	copy(pending, e.pending)

	return &Snapshot{
		Status:       e.status,
		Level:        e.level.ID,
		PlayerName:   e.playerName,
		Cards:        cards,
		PendingIDs:   pending,
		MatchedCount: e.matched,
		Moves:        e.moves,
		Score:        e.score,
		TimeSpent:    e.elapsedLocked(),
		HintsLeft:    e.hints,
		FlipLocked:   e.flipLocked,
	}
}

// elapsedLocked returns whole seconds of play time, excluding paused
// spans. Caller holds the lock.
func (e *GameEngine) elapsedLocked() int {
	switch e.status {
	case StatusIdle:
		return 0
	case StatusComplete:
		return e.finalTime
	case StatusPaused:
		return int((e.pausedAt.Sub(e.startedAt) - e.pausedTotal) / time.Second)
	default:
		return int((e.now().Sub(e.startedAt) - e.pausedTotal) / time.Second)
	}
}

// notify invokes the change handler outside the lock.
func (e *GameEngine) notify(snap *Snapshot) {
	e.mu.Lock()
	fn := e.onChange
	e.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}
