package console

import (
	"fmt"
	"strings"

	"matchbook/domain/book"
	"matchbook/service"
)

// RenderSide formats one side of the book as a single line: a side marker
// followed by every resting order, best price level first, oldest order
// first inside each level, each rendered as qty@price#orderID.
func RenderSide(side book.Side, levels []book.LevelView) string {
	var sb strings.Builder
	if side == book.Bid {
		sb.WriteString("B: ")
	} else {
		sb.WriteString("S: ")
	}

	first := true
	for _, lvl := range levels {
		for _, o := range lvl.Orders {
			if !first {
				sb.WriteByte(' ')
			}
			first = false
			fmt.Fprintf(&sb, "%d@%d#%s", o.Qty, o.Price, o.ID)
		}
	}
	return sb.String()
}

// RenderUser formats one ledger entry as id-maker-taker.
func RenderUser(u service.UserView) string {
	return fmt.Sprintf("%s-%d-%d", u.ID, u.MakerNotional, u.TakerNotional)
}
