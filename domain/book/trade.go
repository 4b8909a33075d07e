package book

import "github.com/google/uuid"

// Trade records one fill between a resting (maker) order and an incoming
// (taker) order. The trade always executes at the maker's price.
type Trade struct {
	ID       uuid.UUID
	TakerSeq uint64

	MakerUser  string
	TakerUser  string
	MakerOrder string
	TakerOrder string

	Price    int64
	Qty      int64
	Notional int64
}
