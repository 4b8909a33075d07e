package book

// Level is a FIFO queue of orders resting at a single price.
//
// Cancellation never touches the queue; dead orders (cancelled or fully
// filled) are unlinked lazily when the level is next read. onEvict, when
// non-nil, observes every order physically removed this way.
type Level struct {
	Price int64

	head *Order
	tail *Order
}

func (l *Level) Enqueue(o *Order) {
	if l.head == nil {
		l.head = o
		l.tail = o
	} else {
		l.tail.next = o
		o.prev = l.tail
		l.tail = o
	}
}

// Peek purges dead orders from the front, then returns the oldest live
// order at this price, or nil if the level emptied.
func (l *Level) Peek(onEvict func(*Order)) *Order {
	for l.head != nil && !l.head.live() {
		l.unlink(l.head, onEvict)
	}
	return l.head
}

// Purge unlinks dead orders anywhere in the queue, not just the front.
// Used when rendering a full snapshot of the level.
func (l *Level) Purge(onEvict func(*Order)) {
	for o := l.head; o != nil; {
		next := o.next
		if !o.live() {
			l.unlink(o, onEvict)
		}
		o = next
	}
}

// Head returns the front order without purging. Read-only traversal helper.
func (l *Level) Head() *Order {
	return l.head
}

func (l *Level) Empty() bool {
	return l.head == nil
}

func (l *Level) unlink(o *Order, onEvict func(*Order)) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		l.tail = o.prev
	}
	o.next = nil
	o.prev = nil
	if onEvict != nil {
		onEvict(o)
	}
}
