package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"matchbook/domain/book"
	"matchbook/service"
)

// Run drives one full protocol session: a user-count header, that many
// user ids, then commands until END or EOF. Each submission writes its
// traded notional to w; after the command stream the resting book (bids,
// then asks) and the sorted user listing are written.
//
// Submissions and cancels naming an unregistered user are skipped without
// output, matching the protocol's silent policy. A duplicate user id in
// the header aborts the session.
func Run(r io.Reader, w io.Writer, eng *service.Engine) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	count, err := readUserCount(sc)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if !sc.Scan() {
			return fmt.Errorf("user header: want %d ids, got %d", count, i)
		}
		if err := eng.RegisterUser(strings.TrimSpace(sc.Text())); err != nil {
			return err
		}
	}

	for sc.Scan() {
		cmd, err := ParseCommand(strings.TrimSpace(sc.Text()))
		if err != nil {
			return err
		}
		if cmd.Kind == CommandEnd {
			break
		}
		if !eng.UserExists(cmd.UserID) {
			continue
		}

		switch cmd.Kind {
		case CommandSubmit:
			notional := eng.Submit(service.OrderRequest{
				Type:    cmd.Type,
				UserID:  cmd.UserID,
				Side:    cmd.Side,
				OrderID: cmd.OrderID,
				Qty:     cmd.Qty,
				Price:   cmd.Price,
			})
			fmt.Fprintln(w, notional)
		case CommandCancel:
			eng.Cancel(cmd.UserID, cmd.OrderID)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	fmt.Fprintln(w, RenderSide(book.Bid, eng.Snapshot(book.Bid)))
	fmt.Fprintln(w, RenderSide(book.Ask, eng.Snapshot(book.Ask)))
	for _, u := range eng.Users() {
		fmt.Fprintln(w, RenderUser(u))
	}
	return nil
}

func readUserCount(sc *bufio.Scanner) (int, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("missing user count header")
	}
	count, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return 0, fmt.Errorf("bad user count %q", sc.Text())
	}
	return count, nil
}
