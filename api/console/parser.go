// Package console implements the line-oriented text protocol over the
// engine: a header registering users, then one command per line until END.
// It is plain external plumbing; any transport could replace it.
package console

import (
	"fmt"
	"strconv"
	"strings"

	"matchbook/domain/book"
)

// CommandKind discriminates parsed protocol lines.
type CommandKind int

const (
	CommandSubmit CommandKind = iota
	CommandCancel
	CommandEnd
)

// Command is one parsed protocol line. Only the fields relevant to Kind
// are populated; Price is set only for limit submissions.
type Command struct {
	Kind    CommandKind
	Type    book.OrderType
	UserID  string
	Side    book.Side
	OrderID string
	Qty     int64
	Price   int64
}

// ParseCommand parses one protocol line:
//
//	SUB LO <user> <B|S> <order> <qty> <price>
//	SUB MO <user> <B|S> <order> <qty>
//	CXL <user> <order>
//	END
//
// Fields past the ones a command reads are ignored.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	switch fields[0] {
	case "END":
		return Command{Kind: CommandEnd}, nil

	case "CXL":
		if len(fields) < 3 {
			return Command{}, fmt.Errorf("CXL: want 3 fields, got %d", len(fields))
		}
		return Command{Kind: CommandCancel, UserID: fields[1], OrderID: fields[2]}, nil

	case "SUB":
		return parseSubmit(fields)

	default:
		return Command{}, fmt.Errorf("unknown order action %q", fields[0])
	}
}

func parseSubmit(fields []string) (Command, error) {
	if len(fields) < 2 {
		return Command{}, fmt.Errorf("SUB: missing order type")
	}

	cmd := Command{Kind: CommandSubmit}
	var wantFields int
	switch fields[1] {
	case "LO":
		cmd.Type = book.Limit
		wantFields = 7
	case "MO":
		cmd.Type = book.Market
		wantFields = 6
	default:
		return Command{}, fmt.Errorf("unknown order type %q", fields[1])
	}
	if len(fields) < wantFields {
		return Command{}, fmt.Errorf("SUB %s: want %d fields, got %d", fields[1], wantFields, len(fields))
	}

	side, err := parseSide(fields[3])
	if err != nil {
		return Command{}, err
	}
	qty, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return Command{}, fmt.Errorf("SUB: bad quantity %q", fields[5])
	}

	cmd.UserID = fields[2]
	cmd.Side = side
	cmd.OrderID = fields[4]
	cmd.Qty = qty

	if cmd.Type == book.Limit {
		price, err := strconv.ParseInt(fields[6], 10, 64)
		if err != nil {
			return Command{}, fmt.Errorf("SUB LO: bad price %q", fields[6])
		}
		cmd.Price = price
	}
	return cmd, nil
}

func parseSide(tok string) (book.Side, error) {
	switch tok {
	case "B":
		return book.Bid, nil
	case "S":
		return book.Ask, nil
	}
	return 0, fmt.Errorf("unknown side %q", tok)
}
