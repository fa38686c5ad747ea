package app

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"ultimate-quiz-service/internal/domain"
)

// LeaderboardStore abstracts the persisted high-score list. Load returns an
// empty list when nothing has been recorded yet; corruption surfaces as a
// domain.ErrStorage-wrapped error.
type LeaderboardStore interface {
	Load(ctx context.Context) ([]domain.LeaderboardEntry, error)
	Save(ctx context.Context, entries []domain.LeaderboardEntry) error
}

// Leaderboard maintains the capped, score-ordered high-score list and fans
// standings out to live subscribers. Record is a read-modify-write over the
// backing store, serialized through a mutex so concurrent gradings cannot
// lose updates.
type Leaderboard struct {
	store LeaderboardStore
	now   func() time.Time

	mu          sync.Mutex
	subscribers map[chan domain.Standings]struct{}
}

func NewLeaderboard(store LeaderboardStore) *Leaderboard {
	return NewLeaderboardWithClock(store, time.Now)
}

// NewLeaderboardWithClock allows deterministic timestamps in tests.
func NewLeaderboardWithClock(store LeaderboardStore, now func() time.Time) *Leaderboard {
	return &Leaderboard{
		store:       store,
		now:         now,
		subscribers: make(map[chan domain.Standings]struct{}),
	}
}

// Record appends an entry, stable-sorts by score descending, truncates to the
// capacity, and persists. An entry ranked below the cap at insertion time is
// permanently dropped. The read leg fails open to an empty list; the write
// leg fails closed.
func (l *Leaderboard) Record(ctx context.Context, entry domain.LeaderboardEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.loadLocked(ctx)
	if entry.Timestamp == "" {
		entry.Timestamp = l.now().Format(domain.TimestampLayout)
	}
	entries = append(entries, entry)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if len(entries) > domain.LeaderboardCapacity {
		entries = entries[:domain.LeaderboardCapacity]
	}

	if err := l.store.Save(ctx, entries); err != nil {
		return fmt.Errorf("save leaderboard: %w", err)
	}
	l.broadcastLocked(entries)
	return nil
}

// Top returns the current standings, at most the capacity, ordered by score
// descending. An unreadable store reads as empty.
func (l *Leaderboard) Top(ctx context.Context) []domain.LeaderboardEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLocked(ctx)
}

// Subscribe returns a channel that receives the current standings immediately
// and again after every recorded result. The caller must invoke cancel to
// avoid leaks.
func (l *Leaderboard) Subscribe(ctx context.Context) (<-chan domain.Standings, func()) {
	ch := make(chan domain.Standings, 8)

	l.mu.Lock()
	l.subscribers[ch] = struct{}{}
	// Send the snapshot under the lock so a concurrent Record cannot slip a
	// newer broadcast in before it. The channel is buffered, so this cannot
	// block.
	ch <- l.standings(l.loadLocked(ctx))
	l.mu.Unlock()

	cancel := func() {
		l.mu.Lock()
		if _, ok := l.subscribers[ch]; ok {
			delete(l.subscribers, ch)
			close(ch)
		}
		l.mu.Unlock()
	}
	return ch, cancel
}

func (l *Leaderboard) loadLocked(ctx context.Context) []domain.LeaderboardEntry {
	entries, err := l.store.Load(ctx)
	if err != nil {
		log.Printf("leaderboard load failed, treating as empty: %v", err)
		return nil
	}
	return entries
}

func (l *Leaderboard) broadcastLocked(entries []domain.LeaderboardEntry) {
	standings := l.standings(entries)
	for ch := range l.subscribers {
		select {
		case ch <- standings:
		default:
			// Drop the stale update so a slow subscriber cannot block Record.
			select {
			case <-ch:
			default:
			}
			ch <- standings
		}
	}
}

func (l *Leaderboard) standings(entries []domain.LeaderboardEntry) domain.Standings {
	return domain.Standings{
		Entries:   append([]domain.LeaderboardEntry(nil), entries...),
		UpdatedAt: l.now().Format(domain.TimestampLayout),
	}
}
