package app

// EventKind is a bit set naming what changed.
type EventKind int

// Event kinds.
const (
	EventRecords EventKind = 1 << iota
	EventSettings
)

// Has reports whether k includes other.
func (k EventKind) Has(other EventKind) bool {
	return k&other != 0
}

// Event is delivered to observers after a mutation is applied in memory.
type Event struct {
	Kind EventKind
}

// Subscribe registers fn for every future event and returns a function that
// removes it.
func (c *Controller) Subscribe(fn func(Event)) func() {
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	return func() {
		delete(c.observers, id)
	}
}

func (c *Controller) notify(kind EventKind) {
	for _, fn := range c.observers {
		fn(Event{Kind: kind})
	}
}
