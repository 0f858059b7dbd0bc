package history

import (
	"strconv"

	"github.com/mikeboe/verifact/pkg/analysis"
)

// List keeps the most recent items, newest first. It is not safe for
// concurrent use; the session controller serializes access.
type List struct {
	capacity int
	items    []Item
	lastID   int64
}

// New creates a List holding at most capacity items.
func New(capacity int) *List {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &List{
		capacity: capacity,
		items:    make([]Item, 0, capacity),
	}
}

// Push adds result at the front and evicts the oldest items beyond capacity.
// Nothing is added when query equals the query of the current head; the
// returned bool reports whether an item was added.
func (l *List) Push(query string, result analysis.Result) (Item, bool) {
	if len(l.items) > 0 && l.items[0].Query == query {
		return l.items[0], false
	}

	item := Item{
		Result: result,
		ID:     l.nextID(result),
		Query:  query,
	}

	l.items = append(l.items, Item{})
	copy(l.items[1:], l.items)
	l.items[0] = item

	if len(l.items) > l.capacity {
		l.items = l.items[:l.capacity]
	}

	return item, true
}

// nextID derives an ID from the result timestamp in milliseconds, bumped past
// the previous ID so IDs stay unique and increasing.
func (l *List) nextID(result analysis.Result) string {
	id := result.Timestamp.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id
	return strconv.FormatInt(id, 10)
}

// Get looks an item up by ID.
func (l *List) Get(id string) (Item, bool) {
	for _, item := range l.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Head returns the most recent item.
func (l *List) Head() (Item, bool) {
	if len(l.items) == 0 {
		return Item{}, false
	}
	return l.items[0], true
}

// Items returns a copy of the items, newest first.
func (l *List) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of stored items.
func (l *List) Len() int {
	return len(l.items)
}

// Cap returns the maximum number of stored items.
func (l *List) Cap() int {
	return l.capacity
}
