package book

// Side is the direction of an order.
type Side int

const (
	Bid Side = iota
	Ask
)

// Opposite returns the contra side.
func (s Side) Opposite() Side {
	if s == Bid {
		return Ask
	}
	return Bid
}

func (s Side) String() string {
	if s == Bid {
		return "BUY"
	}
	return "SELL"
}

// OrderType selects the execution style.
type OrderType int

const (
	// Limit orders rest on the book when not fully matched.
	Limit OrderType = iota
	// Market orders consume available liquidity; any remainder is discarded.
	Market
)

func (t OrderType) String() string {
	if t == Market {
		return "MARKET"
	}
	return "LIMIT"
}

// Order is a pure domain entity. Identity fields (ID, UserID, Side, Type,
// Price) are fixed at submission; Qty only decreases and Cancelled only
// flips false to true, both under the book's single writer.
type Order struct {
	ID     string
	UserID string
	Side   Side
	Type   OrderType
	Price  int64 // meaningful only for limit orders
	Qty    int64 // remaining quantity
	SeqID  uint64

	Cancelled bool

	next *Order
	prev *Order
}

// live reports whether the order can still trade.
func (o *Order) live() bool {
	return !o.Cancelled && o.Qty > 0
}

// Next returns the order behind o in its level's FIFO.
func (o *Order) Next() *Order {
	return o.next
}
