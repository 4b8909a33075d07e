package book

import (
	"fmt"

	"github.com/google/uuid"

	"matchbook/domain/ledger"
)

// Book matches incoming orders against resting liquidity and settles each
// fill into the ledger. It owns two price ladders, one per side, and an
// order-id index supporting cancellation by id.
type Book struct {
	bids   *ladder
	asks   *ladder
	orders map[string]*Order
	ledger *ledger.Ledger

	// OnTrade, when set, observes every fill as it settles.
	OnTrade func(Trade)
}

func New(l *ledger.Ledger) *Book {
	return &Book{
		bids:   newLadder(Bid),
		asks:   newLadder(Ask),
		orders: make(map[string]*Order),
		ledger: l,
	}
}

// Submit matches the order against the contra side and returns the total
// traded notional. A limit order with leftover quantity rests on its own
// side; a market order's remainder is discarded. Submitting a non-positive
// quantity is a no-op, not an error.
//
// Every fill executes at the resting order's price: price improvement goes
// to the taker. The resting user is credited as maker, the incoming user
// as taker. Resting orders owned by the incoming user are matched like any
// other; there is no self-trade prevention.
func (b *Book) Submit(o *Order) int64 {
	if o.Qty <= 0 {
		return 0
	}

	contra := b.ladder(o.Side.Opposite())
	crosses := func(restingPrice int64) bool {
		if o.Type == Market {
			return true
		}
		if o.Side == Bid {
			return restingPrice <= o.Price
		}
		return restingPrice >= o.Price
	}

	var total int64
	for o.Qty > 0 {
		maker := b.bestLive(contra)
		if maker == nil || !crosses(maker.Price) {
			break
		}

		qty := min(o.Qty, maker.Qty)
		notional := qty * maker.Price
		o.Qty -= qty
		maker.Qty -= qty
		total += notional

		b.ledger.CreditTrade(maker.UserID, o.UserID, notional)
		if b.OnTrade != nil {
			b.OnTrade(Trade{
				ID:         uuid.New(),
				TakerSeq:   o.SeqID,
				MakerUser:  maker.UserID,
				TakerUser:  o.UserID,
				MakerOrder: maker.ID,
				TakerOrder: o.ID,
				Price:      maker.Price,
				Qty:        qty,
				Notional:   notional,
			})
		}
	}

	if o.Type == Limit && o.Qty > 0 {
		b.rest(o)
	}
	return total
}

// bestLive returns the front order of the best contra level, dropping
// levels that purge down to empty. Returns nil when the side is exhausted.
func (b *Book) bestLive(side *ladder) *Order {
	for {
		lvl := side.best()
		if lvl == nil {
			return nil
		}
		if o := lvl.Peek(b.evict); o != nil {
			return o
		}
		side.remove(lvl.Price)
	}
}

func (b *Book) rest(o *Order) {
	if _, dup := b.orders[o.ID]; dup {
		panic(fmt.Sprintf("book: duplicate order id %q", o.ID))
	}
	b.ladder(o.Side).getOrCreate(o.Price).Enqueue(o)
	b.orders[o.ID] = o
}

func (b *Book) ladder(side Side) *ladder {
	if side == Bid {
		return b.bids
	}
	return b.asks
}

// evict completes the lazy removal of a purged order.
func (b *Book) evict(o *Order) {
	delete(b.orders, o.ID)
}

// Cancel marks the order cancelled. Unknown ids and orders owned by a
// different user are ignored silently. The order stays in its level until
// the next purge observes the flag.
func (b *Book) Cancel(userID, orderID string) {
	o, ok := b.orders[orderID]
	if !ok || o.UserID != userID {
		return
	}
	o.Cancelled = true
}

// OrderView is a point-in-time copy of one resting order.
type OrderView struct {
	ID    string
	Price int64
	Qty   int64
}

// LevelView is a point-in-time copy of one price level, orders in FIFO order.
type LevelView struct {
	Price  int64
	Orders []OrderView
}

// Snapshot lists the side's levels best price first, each holding its live
// orders oldest first. Rendering purges: dead orders are physically removed
// from their levels and emptied levels leave the ladder.
func (b *Book) Snapshot(side Side) []LevelView {
	d := b.ladder(side)

	var views []LevelView
	var empty []int64
	d.walk(func(lvl *Level) bool {
		lvl.Purge(b.evict)
		if lvl.Empty() {
			empty = append(empty, lvl.Price)
			return true
		}
		view := LevelView{Price: lvl.Price}
		for o := lvl.Head(); o != nil; o = o.Next() {
			view.Orders = append(view.Orders, OrderView{ID: o.ID, Price: o.Price, Qty: o.Qty})
		}
		views = append(views, view)
		return true
	})
	for _, price := range empty {
		d.remove(price)
	}
	return views
}

// Depth returns the number of price levels currently on the given side,
// including levels pending lazy cleanup.
func (b *Book) Depth(side Side) int {
	return b.ladder(side).len()
}

func min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
