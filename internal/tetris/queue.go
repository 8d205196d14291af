package tetris

// DefaultPreviewSize is the lookahead length used when none is configured.
const DefaultPreviewSize = 3

// Queue is a persistent lookahead of upcoming families. Next never modifies
// the receiver; it returns a new Queue, so earlier snapshots stay valid.
type Queue struct {
	items []Family
}

// NewQueue fills a queue of the given size with random families.
func NewQueue(size int, rng Rand) Queue {
	if size < 1 {
		size = DefaultPreviewSize
	}
	items := make([]Family, size)
	for i := range items {
		items[i] = RandomFamily(rng)
	}
	return Queue{items: items}
}

// Len returns the number of queued families.
func (q Queue) Len() int {
	return len(q.items)
}

// Peek returns the front family without consuming it.
func (q Queue) Peek() Family {
	if len(q.items) == 0 {
		return FamilyNone
	}
	return q.items[0]
}

// Next removes the front family and appends exactly one new random family
// at the back. The returned queue has the same length as the receiver.
func (q Queue) Next(rng Rand) (Family, Queue) {
	if len(q.items) == 0 {
		return RandomFamily(rng), q
	}
	items := make([]Family, 0, len(q.items))
	items = append(items, q.items[1:]...)
	items = append(items, RandomFamily(rng))
	return q.items[0], Queue{items: items}
}

// Preview returns a copy of the queued families, front first.
func (q Queue) Preview() []Family {
	return append([]Family(nil), q.items...)
}
