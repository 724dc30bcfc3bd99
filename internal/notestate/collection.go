package notestate

import "encoding/json"

// Entry is anything that can live in a Collection.
type Entry interface {
	Key() string
}

// Collection is an ordered id -> entry table. It is never mutated in place:
// every write returns a new Collection and leaves the receiver untouched.
type Collection[T Entry] struct {
	order []string
	items map[string]T
}

// NewCollection builds a collection from entries in the given order.
// A repeated id keeps its first position and its last value.
func NewCollection[T Entry](entries ...T) Collection[T] {
	c := Collection[T]{
		order: make([]string, 0, len(entries)),
		items: make(map[string]T, len(entries)),
	}
	for _, e := range entries {
		if _, ok := c.items[e.Key()]; !ok {
			c.order = append(c.order, e.Key())
		}
		c.items[e.Key()] = e
	}
	return c
}

func (c Collection[T]) clone() Collection[T] {
	order := make([]string, len(c.order), len(c.order)+1)
	copy(order, c.order)
	items := make(map[string]T, len(c.items)+1)
	for k, v := range c.items {
		items[k] = v
	}
	return Collection[T]{order: order, items: items}
}

func (c Collection[T]) Len() int {
	return len(c.order)
}

func (c Collection[T]) Get(id string) (T, bool) {
	v, ok := c.items[id]
	return v, ok
}

func (c Collection[T]) Has(id string) bool {
	_, ok := c.items[id]
	return ok
}

// Ids returns the ids in display order.
func (c Collection[T]) Ids() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Items returns the entries in display order.
func (c Collection[T]) Items() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Prepend puts v at the head. An entry with the same id is dropped first.
func (c Collection[T]) Prepend(v T) Collection[T] {
	next := c.Remove(v.Key())
	next.order = append([]string{v.Key()}, next.order...)
	next.items[v.Key()] = v
	return next
}

// Append puts v at the tail. An entry with the same id is dropped first.
func (c Collection[T]) Append(v T) Collection[T] {
	next := c.Remove(v.Key())
	next.order = append(next.order, v.Key())
	next.items[v.Key()] = v
	return next
}

// Remove drops the entry with the given id. A missing id yields an equal copy.
func (c Collection[T]) Remove(id string) Collection[T] {
	next := c.clone()
	if _, ok := next.items[id]; !ok {
		return next
	}
	delete(next.items, id)
	for i, k := range next.order {
		if k == id {
			next.order = append(next.order[:i], next.order[i+1:]...)
			break
		}
	}
	return next
}

// Replace swaps the entry with v's id in place, keeping its position.
// The second return is false when no entry has that id.
func (c Collection[T]) Replace(v T) (Collection[T], bool) {
	next := c.clone()
	if _, ok := next.items[v.Key()]; !ok {
		return next, false
	}
	next.items[v.Key()] = v
	return next, true
}

func (c Collection[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Items())
}

func (c *Collection[T]) UnmarshalJSON(data []byte) error {
	var entries []T
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*c = NewCollection(entries...)
	return nil
}
