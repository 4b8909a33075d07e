package service

import (
	"sync"

	"go.uber.org/zap"

	"matchbook/domain/book"
	"matchbook/domain/ledger"
	"matchbook/infra/metrics"
	"matchbook/infra/sequence"
)

// Engine is the ONLY write entry point into the matching core. One mutex
// serializes every mutation and snapshot read, which is the whole
// concurrency discipline the single-instrument book needs.
type Engine struct {
	mu      sync.Mutex
	ledger  *ledger.Ledger
	book    *book.Book
	seq     *sequence.Sequencer
	log     *zap.Logger
	metrics *metrics.Collector
}

// New wires all dependencies. logger and collector may not be nil; pass
// zap.NewNop() and a collector on a throwaway registry to silence them.
func New(logger *zap.Logger, collector *metrics.Collector) *Engine {
	l := ledger.New()
	e := &Engine{
		ledger:  l,
		book:    book.New(l),
		seq:     sequence.New(0),
		log:     logger,
		metrics: collector,
	}
	e.book.OnTrade = e.onTrade
	return e
}

// OrderRequest carries one submission from the driver.
type OrderRequest struct {
	Type    book.OrderType
	UserID  string
	Side    book.Side
	OrderID string
	Qty     int64
	Price   int64 // ignored for market orders
}

// RegisterUser adds a user to the ledger.
func (e *Engine) RegisterUser(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ledger.Register(id); err != nil {
		return err
	}
	e.log.Debug("user registered", zap.String("user", id))
	return nil
}

// UserExists reports whether the user is registered.
func (e *Engine) UserExists(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Exists(id)
}

// Submit runs the order through the matching algorithm and returns the
// total traded notional. The order is stamped with the next sequence ID.
func (e *Engine) Submit(req OrderRequest) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	o := &book.Order{
		ID:     req.OrderID,
		UserID: req.UserID,
		Side:   req.Side,
		Type:   req.Type,
		Price:  req.Price,
		Qty:    req.Qty,
		SeqID:  e.seq.Next(),
	}
	notional := e.book.Submit(o)

	e.metrics.OrdersSubmitted.Inc()
	e.log.Debug("order submitted",
		zap.String("order", req.OrderID),
		zap.String("user", req.UserID),
		zap.Stringer("side", req.Side),
		zap.Stringer("type", req.Type),
		zap.Int64("qty", req.Qty),
		zap.Int64("price", req.Price),
		zap.Uint64("seq", o.SeqID),
		zap.Int64("notional", notional),
		zap.Int64("leftover", o.Qty),
	)
	return notional
}

// Cancel flags the order for removal. Unknown ids and foreign orders are
// ignored silently.
func (e *Engine) Cancel(userID, orderID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.book.Cancel(userID, orderID)
	e.metrics.CancelRequests.Inc()
	e.log.Debug("cancel requested",
		zap.String("order", orderID),
		zap.String("user", userID),
	)
}

// Snapshot returns a consistent view of one side's resting orders, best
// price first.
func (e *Engine) Snapshot(side book.Side) []book.LevelView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.book.Snapshot(side)
}

// UserView is a point-in-time copy of one ledger entry.
type UserView struct {
	ID            string
	MakerNotional int64
	TakerNotional int64
}

// Users returns all registered users sorted by id ascending.
func (e *Engine) Users() []UserView {
	e.mu.Lock()
	defer e.mu.Unlock()

	users := e.ledger.Users()
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, UserView{
			ID:            u.ID,
			MakerNotional: u.MakerNotional,
			TakerNotional: u.TakerNotional,
		})
	}
	return out
}

// onTrade runs inside Submit, under the engine lock.
func (e *Engine) onTrade(t book.Trade) {
	e.metrics.TradesExecuted.Inc()
	e.metrics.NotionalTraded.Add(float64(t.Notional))
	e.log.Info("trade executed",
		zap.String("trade", t.ID.String()),
		zap.Uint64("seq", t.TakerSeq),
		zap.String("maker_user", t.MakerUser),
		zap.String("taker_user", t.TakerUser),
		zap.String("maker_order", t.MakerOrder),
		zap.String("taker_order", t.TakerOrder),
		zap.Int64("price", t.Price),
		zap.Int64("qty", t.Qty),
		zap.Int64("notional", t.Notional),
	)
}
