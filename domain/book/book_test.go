package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchbook/domain/ledger"
)

func newTestBook(t *testing.T, users ...string) (*Book, *ledger.Ledger) {
	t.Helper()
	l := ledger.New()
	for _, id := range users {
		require.NoError(t, l.Register(id))
	}
	return New(l), l
}

func limit(user, id string, side Side, qty, price int64) *Order {
	return &Order{ID: id, UserID: user, Side: side, Type: Limit, Price: price, Qty: qty}
}

func market(user, id string, side Side, qty int64) *Order {
	return &Order{ID: id, UserID: user, Side: side, Type: Market, Qty: qty}
}

func mustUser(t *testing.T, l *ledger.Ledger, id string) *ledger.User {
	t.Helper()
	u, err := l.Lookup(id)
	require.NoError(t, err)
	return u
}

func TestPartialFillRestsRemainder(t *testing.T) {
	b, l := newTestBook(t, "A", "B")

	require.Zero(t, b.Submit(limit("A", "o1", Bid, 10, 100)))
	notional := b.Submit(limit("B", "o2", Ask, 4, 100))
	assert.Equal(t, int64(400), notional)

	bids := b.Snapshot(Bid)
	require.Len(t, bids, 1)
	require.Len(t, bids[0].Orders, 1)
	assert.Equal(t, int64(100), bids[0].Price)
	assert.Equal(t, int64(6), bids[0].Orders[0].Qty)
	assert.Empty(t, b.Snapshot(Ask))

	// A rested, so A is the maker; B's incoming sell is the taker.
	a, bb := mustUser(t, l, "A"), mustUser(t, l, "B")
	assert.Equal(t, int64(400), a.MakerNotional)
	assert.Zero(t, a.TakerNotional)
	assert.Equal(t, int64(400), bb.TakerNotional)
	assert.Zero(t, bb.MakerNotional)
}

func TestLimitWithoutContraRests(t *testing.T) {
	b, _ := newTestBook(t, "C")

	notional := b.Submit(limit("C", "o1", Ask, 5, 50))
	assert.Zero(t, notional)

	asks := b.Snapshot(Ask)
	require.Len(t, asks, 1)
	assert.Equal(t, int64(50), asks[0].Price)
	assert.Equal(t, int64(5), asks[0].Orders[0].Qty)
}

func TestMarketAgainstEmptyBookDiscarded(t *testing.T) {
	b, _ := newTestBook(t, "A")

	notional := b.Submit(market("A", "m1", Bid, 3))
	assert.Zero(t, notional)
	assert.Empty(t, b.Snapshot(Bid))
	assert.Empty(t, b.Snapshot(Ask))

	// The discarded remainder never entered the id index.
	b.Cancel("A", "m1")
}

func TestCancelledOrderNeverFills(t *testing.T) {
	b, l := newTestBook(t, "D", "E")

	require.Zero(t, b.Submit(limit("D", "o1", Ask, 2, 10)))
	b.Cancel("D", "o1")

	notional := b.Submit(market("E", "m1", Bid, 2))
	assert.Zero(t, notional)
	assert.Empty(t, b.Snapshot(Ask))
	assert.Zero(t, mustUser(t, l, "D").MakerNotional)
}

func TestZeroOrNegativeQuantityIsNoop(t *testing.T) {
	b, _ := newTestBook(t, "A")

	assert.Zero(t, b.Submit(limit("A", "o1", Bid, 0, 100)))
	assert.Zero(t, b.Submit(limit("A", "o2", Bid, -5, 100)))
	assert.Empty(t, b.Snapshot(Bid))
	b.Cancel("A", "o1")
}

func TestPriceImprovementGoesToTaker(t *testing.T) {
	b, _ := newTestBook(t, "A", "B")

	require.Zero(t, b.Submit(limit("A", "o1", Ask, 5, 90)))
	// Marketable limit bid at 100 trades at the resting price 90.
	notional := b.Submit(limit("B", "o2", Bid, 5, 100))
	assert.Equal(t, int64(450), notional)
}

func TestTimePriorityWithinLevel(t *testing.T) {
	b, _ := newTestBook(t, "A", "B", "C")

	require.Zero(t, b.Submit(limit("A", "first", Ask, 3, 100)))
	require.Zero(t, b.Submit(limit("B", "second", Ask, 3, 100)))

	notional := b.Submit(market("C", "m1", Bid, 3))
	assert.Equal(t, int64(300), notional)

	asks := b.Snapshot(Ask)
	require.Len(t, asks, 1)
	require.Len(t, asks[0].Orders, 1)
	assert.Equal(t, "second", asks[0].Orders[0].ID)
}

func TestPricePriorityAcrossLevels(t *testing.T) {
	b, _ := newTestBook(t, "A", "B", "C")

	require.Zero(t, b.Submit(limit("A", "cheap", Ask, 2, 95)))
	require.Zero(t, b.Submit(limit("B", "dear", Ask, 2, 105)))

	notional := b.Submit(limit("C", "o1", Bid, 3, 110))
	// 2@95 then 1@105.
	assert.Equal(t, int64(2*95+105), notional)

	asks := b.Snapshot(Ask)
	require.Len(t, asks, 1)
	assert.Equal(t, "dear", asks[0].Orders[0].ID)
	assert.Equal(t, int64(1), asks[0].Orders[0].Qty)
}

func TestMarketSweepsMultipleLevels(t *testing.T) {
	b, _ := newTestBook(t, "A", "B", "C")

	require.Zero(t, b.Submit(limit("A", "o1", Bid, 2, 100)))
	require.Zero(t, b.Submit(limit("B", "o2", Bid, 2, 90)))

	// Demands more than the book holds: fills 4, discards 1.
	notional := b.Submit(market("C", "m1", Ask, 5))
	assert.Equal(t, int64(2*100+2*90), notional)
	assert.Empty(t, b.Snapshot(Bid))
	assert.Empty(t, b.Snapshot(Ask))
}

func TestCancelOwnershipAndIdempotence(t *testing.T) {
	b, _ := newTestBook(t, "A", "B")

	require.Zero(t, b.Submit(limit("A", "o1", Ask, 4, 100)))

	// Wrong owner: silently ignored, order stays live.
	b.Cancel("B", "o1")
	asks := b.Snapshot(Ask)
	require.Len(t, asks, 1)
	assert.Equal(t, int64(4), asks[0].Orders[0].Qty)

	// Right owner, then repeats and an unknown id: all quiet no-ops.
	b.Cancel("A", "o1")
	b.Cancel("A", "o1")
	b.Cancel("A", "missing")
	assert.Empty(t, b.Snapshot(Ask))
}

func TestSelfTradeAllowed(t *testing.T) {
	b, l := newTestBook(t, "A")

	require.Zero(t, b.Submit(limit("A", "o1", Ask, 5, 100)))
	notional := b.Submit(limit("A", "o2", Bid, 5, 100))
	assert.Equal(t, int64(500), notional)

	u := mustUser(t, l, "A")
	assert.Equal(t, int64(500), u.MakerNotional)
	assert.Equal(t, int64(500), u.TakerNotional)
}

func TestCrossingRespectsLimitPrice(t *testing.T) {
	b, _ := newTestBook(t, "A", "B")

	require.Zero(t, b.Submit(limit("A", "o1", Ask, 5, 100)))
	// Bid below the ask: no trade, both rest.
	require.Zero(t, b.Submit(limit("B", "o2", Bid, 5, 99)))

	require.Len(t, b.Snapshot(Ask), 1)
	require.Len(t, b.Snapshot(Bid), 1)
}

func TestSnapshotOrdering(t *testing.T) {
	b, _ := newTestBook(t, "A")

	require.Zero(t, b.Submit(limit("A", "b1", Bid, 1, 90)))
	require.Zero(t, b.Submit(limit("A", "b2", Bid, 1, 110)))
	require.Zero(t, b.Submit(limit("A", "b3", Bid, 1, 100)))
	require.Zero(t, b.Submit(limit("A", "a1", Ask, 1, 130)))
	require.Zero(t, b.Submit(limit("A", "a2", Ask, 1, 120)))

	bids := b.Snapshot(Bid)
	require.Len(t, bids, 3)
	assert.Equal(t, []int64{110, 100, 90}, []int64{bids[0].Price, bids[1].Price, bids[2].Price})

	asks := b.Snapshot(Ask)
	require.Len(t, asks, 2)
	assert.Equal(t, []int64{120, 130}, []int64{asks[0].Price, asks[1].Price})
}

func TestSnapshotPurgesCancelledMidQueue(t *testing.T) {
	b, _ := newTestBook(t, "A", "B", "C")

	require.Zero(t, b.Submit(limit("A", "o1", Ask, 1, 100)))
	require.Zero(t, b.Submit(limit("B", "o2", Ask, 1, 100)))
	require.Zero(t, b.Submit(limit("C", "o3", Ask, 1, 100)))
	b.Cancel("B", "o2")

	asks := b.Snapshot(Ask)
	require.Len(t, asks, 1)
	require.Len(t, asks[0].Orders, 2)
	assert.Equal(t, "o1", asks[0].Orders[0].ID)
	assert.Equal(t, "o3", asks[0].Orders[1].ID)
}

func TestLazyLevelCleanup(t *testing.T) {
	b, _ := newTestBook(t, "A", "B")

	require.Zero(t, b.Submit(limit("A", "o1", Bid, 1, 100)))
	b.Cancel("A", "o1")

	// Cancel alone does not touch the ladder.
	assert.Equal(t, 1, b.Depth(Bid))

	// The next read purges the level away.
	assert.Empty(t, b.Snapshot(Bid))
	assert.Equal(t, 0, b.Depth(Bid))
}

func TestCancelledLevelSkippedDuringMatch(t *testing.T) {
	b, _ := newTestBook(t, "A", "B", "C")

	require.Zero(t, b.Submit(limit("A", "best", Ask, 1, 95)))
	require.Zero(t, b.Submit(limit("B", "next", Ask, 1, 100)))
	b.Cancel("A", "best")

	// The stale best level must be skipped, not matched.
	notional := b.Submit(market("C", "m1", Bid, 1))
	assert.Equal(t, int64(100), notional)
}

func TestDuplicateRestingOrderIDPanics(t *testing.T) {
	b, _ := newTestBook(t, "A")

	require.Zero(t, b.Submit(limit("A", "o1", Bid, 1, 100)))
	assert.Panics(t, func() {
		b.Submit(limit("A", "o1", Bid, 1, 90))
	})
}

func TestOnTradeHook(t *testing.T) {
	b, _ := newTestBook(t, "A", "B")

	var trades []Trade
	b.OnTrade = func(tr Trade) { trades = append(trades, tr) }

	require.Zero(t, b.Submit(limit("A", "o1", Ask, 2, 100)))
	require.Zero(t, b.Submit(limit("B", "o2", Ask, 3, 100)))
	b.Submit(market("A", "m1", Bid, 4))

	require.Len(t, trades, 2)
	assert.Equal(t, "o1", trades[0].MakerOrder)
	assert.Equal(t, int64(2), trades[0].Qty)
	assert.Equal(t, int64(200), trades[0].Notional)
	assert.Equal(t, "o2", trades[1].MakerOrder)
	assert.Equal(t, int64(2), trades[1].Qty)
	assert.Equal(t, "A", trades[1].TakerUser)
	assert.Equal(t, "B", trades[1].MakerUser)
	assert.NotEqual(t, trades[0].ID, trades[1].ID)
}
