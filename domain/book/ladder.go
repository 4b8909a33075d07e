package book

import "github.com/tidwall/btree"

// ladder holds one side's price levels. The ordered map doubles as the
// price→level index and the priority structure: asks walk ascending so the
// lowest price is best, bids walk descending so the highest price is best.
type ladder struct {
	side   Side
	levels *btree.Map[int64, *Level]
}

func newLadder(side Side) *ladder {
	return &ladder{
		side:   side,
		levels: btree.NewMap[int64, *Level](32),
	}
}

// getOrCreate reuses the existing level at price so repeated inserts never
// produce duplicate entries.
func (d *ladder) getOrCreate(price int64) *Level {
	if lvl, ok := d.levels.Get(price); ok {
		return lvl
	}
	lvl := &Level{Price: price}
	d.levels.Set(price, lvl)
	return lvl
}

// best returns the level at the side's best price, or nil when empty.
func (d *ladder) best() *Level {
	var (
		lvl *Level
		ok  bool
	)
	if d.side == Bid {
		_, lvl, ok = d.levels.Max()
	} else {
		_, lvl, ok = d.levels.Min()
	}
	if !ok {
		return nil
	}
	return lvl
}

func (d *ladder) remove(price int64) {
	d.levels.Delete(price)
}

func (d *ladder) len() int {
	return d.levels.Len()
}

// walk visits levels best price first.
func (d *ladder) walk(fn func(*Level) bool) {
	iter := func(_ int64, lvl *Level) bool { return fn(lvl) }
	if d.side == Bid {
		d.levels.Reverse(iter)
	} else {
		d.levels.Scan(iter)
	}
}
