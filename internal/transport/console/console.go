// Package console is the interactive front desk: a menu loop over stdin and
// stdout. It owns prompts, date parsing and the operator gate; every decision
// about rooms and reservations stays in the engine.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/logger"
)

type Conf struct {
	L                *logger.Logger
	In               io.Reader
	Out              io.Writer
	OperatorPassword string
	DateFormat       string
}

type UI struct {
	l       *logger.Logger
	conf    Conf
	in      *bufio.Scanner
	out     io.Writer
	manager *hotel.Manager
}

func New(conf Conf, manager *hotel.Manager) *UI {
	return &UI{
		l:       conf.L,
		conf:    conf,
		in:      bufio.NewScanner(conf.In),
		out:     conf.Out,
		manager: manager,
	}
}

// Run loops over the menu until the operator quits, the input closes, or ctx
// is cancelled.
func (u *UI) Run(ctx context.Context) error {
	ctx = hotel.NewContextWithActor(ctx, "front-desk")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		u.printf("\n=== Hotel Reservation System ===\n")
		u.printf("1. Reserve a room\n")
		u.printf("2. Check in\n")
		u.printf("3. Check out\n")
		u.printf("4. Cancel a reservation\n")
		u.printf("0. Quit\n")

		choice, ok := u.prompt("Select: ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			u.observe(ctx, "reserve", u.handleReserve)
		case "2":
			u.observe(ctx, "check-in", u.handleCheckIn)
		case "3":
			u.observe(ctx, "check-out", u.handleCheckOut)
		case "4":
			u.observe(ctx, "cancel", u.handleCancel)
		case "0":
			u.printf("Goodbye.\n")

			return nil
		default:
			u.printf("Invalid selection.\n")
		}
	}
}

func (u *UI) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

func (u *UI) prompt(label string) (string, bool) {
	fmt.Fprint(u.out, label)

	if !u.in.Scan() {
		return "", false
	}

	return strings.TrimSpace(u.in.Text()), true
}

// operatorAllowed enforces the fixed operator password before check-in and
// check-out. An empty configured password disables the gate.
func (u *UI) operatorAllowed() bool {
	if u.conf.OperatorPassword == "" {
		return true
	}

	entered, ok := u.prompt("Operator password: ")
	if !ok || entered != u.conf.OperatorPassword {
		u.printf("Operator password rejected.\n")

		return false
	}

	return true
}
