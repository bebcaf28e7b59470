package console

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/avstrong/hotel/internal/hotel"
)

func (u *UI) promptDate(label string) (time.Time, bool) {
	raw, ok := u.prompt(label)
	if !ok {
		return time.Time{}, false
	}

	t, err := time.ParseInLocation(u.conf.DateFormat, raw, time.UTC)
	if err != nil {
		u.printf("Enter dates as %v.\n", u.conf.DateFormat)

		return time.Time{}, false
	}

	return t, true
}

func (u *UI) handleReserve(ctx context.Context) {
	u.printf("\n--- Reserve a room ---\n")

	checkIn, ok := u.promptDate("Check-in date (e.g. 2025/08/01): ")
	if !ok {
		return
	}

	checkOut, ok := u.promptDate("Check-out date (e.g. 2025/08/03): ")
	if !ok {
		return
	}

	rng := hotel.DateRange{CheckIn: checkIn, CheckOut: checkOut}

	count, err := u.manager.CountAvailable(ctx, rng)
	if err != nil {
		if errors.Is(err, hotel.ErrInvalidRange) {
			u.printf("Check-out must be after check-in.\n")

			return
		}

		u.l.LogErrorf("Could not count available rooms: %v", err.Error())
		u.printf("Something went wrong, please try again.\n")

		return
	}

	u.printf("Rooms free for a %v-night stay: %v\n", rng.Nights(), count)

	variantName, ok := u.promptVariant()
	if !ok {
		return
	}

	room, err := u.manager.FindRoom(ctx, variantName, rng)
	if err != nil {
		if errors.Is(err, hotel.ErrNoAvailability) {
			u.printf("Sorry, no %v room is free for those dates.\n", variantName)

			return
		}

		u.l.LogErrorf("Could not find a room: %v", err.Error())
		u.printf("Something went wrong, please try again.\n")

		return
	}

	u.printf("Holding room %v (%v).\n", room.Number, room.Variant.Name)

	password, ok := u.prompt("Choose a cancellation password: ")
	if !ok {
		return
	}

	if strings.Contains(password, ",") {
		u.printf("The password must not contain commas.\n")

		return
	}

	res, err := u.manager.Book(ctx, room, rng, password)

	if perr := hotel.IsPersistenceError(err); perr != nil {
		u.printf("Warning: the reservation is confirmed but could not be saved to disk yet.\n")
	} else if err != nil {
		if errors.Is(err, hotel.ErrDuplicateReservationID) {
			u.printf("That room already has a reservation starting on that day.\n")

			return
		}

		u.l.LogErrorf("Could not book room %v: %v", room.Number, err.Error())
		u.printf("Something went wrong, please try again.\n")

		return
	}

	u.printf("Reservation confirmed.\n")
	u.printf("------------------------------------\n")
	u.printf("  Reservation ID: %v\n", res.ID)
	u.printf("  Charge: %v\n", room.Charge(rng))
	u.printf("------------------------------------\n")
	u.printf("Please keep the reservation ID and password safe.\n")
}

func (u *UI) promptVariant() (string, bool) {
	choice, ok := u.prompt("Room type (1: Standard / 2: Suite): ")
	if !ok {
		return "", false
	}

	switch choice {
	case "1":
		return hotel.Standard.Name, true
	case "2":
		return hotel.Suite.Name, true
	default:
		u.printf("Enter 1 or 2.\n")

		return "", false
	}
}

func (u *UI) handleCheckIn(ctx context.Context) {
	u.printf("\n--- Check in ---\n")

	if !u.operatorAllowed() {
		return
	}

	id, ok := u.prompt("Reservation ID: ")
	if !ok {
		return
	}

	if err := u.manager.CheckIn(ctx, id); err != nil {
		switch {
		case errors.Is(err, hotel.ErrNotFound):
			u.printf("No reservation found under %v.\n", id)
		case errors.Is(err, hotel.ErrAlreadyOccupied):
			u.printf("That room is already checked in.\n")
		default:
			u.l.LogErrorf("Could not check in reservation %v: %v", id, err.Error())
			u.printf("Something went wrong, please try again.\n")
		}

		return
	}

	u.printf("Check-in complete. Enjoy your stay.\n")
}

func (u *UI) handleCheckOut(ctx context.Context) {
	u.printf("\n--- Check out ---\n")

	if !u.operatorAllowed() {
		return
	}

	raw, ok := u.prompt("Room number: ")
	if !ok {
		return
	}

	roomNumber, err := strconv.Atoi(raw)
	if err != nil {
		u.printf("Enter the room number as digits.\n")

		return
	}

	res, err := u.manager.ActiveReservationByRoom(ctx, roomNumber)
	if err != nil {
		switch {
		case errors.Is(err, hotel.ErrRoomNotFound):
			u.printf("Room %v does not exist.\n", roomNumber)
		case errors.Is(err, hotel.ErrNotOccupied), errors.Is(err, hotel.ErrNotFound):
			u.printf("No stay to check out in room %v.\n", roomNumber)
		default:
			u.l.LogErrorf("Could not resolve the stay in room %v: %v", roomNumber, err.Error())
			u.printf("Something went wrong, please try again.\n")
		}

		return
	}

	charge, err := u.manager.CheckOut(ctx, res.ID)

	if perr := hotel.IsPersistenceError(err); perr != nil {
		u.printf("Warning: the check-out is complete but the log on disk is stale.\n")
	} else if err != nil {
		u.l.LogErrorf("Could not check out reservation %v: %v", res.ID, err.Error())
		u.printf("Something went wrong, please try again.\n")

		return
	}

	u.printf("Charge due: %v\n", charge)
	u.printf("Check-out complete.\n")
}

func (u *UI) handleCancel(ctx context.Context) {
	u.printf("\n--- Cancel a reservation ---\n")

	id, ok := u.prompt("Reservation ID: ")
	if !ok {
		return
	}

	password, ok := u.prompt("Cancellation password: ")
	if !ok {
		return
	}

	err := u.manager.Cancel(ctx, id, password)

	if perr := hotel.IsPersistenceError(err); perr != nil {
		u.printf("Warning: the cancellation went through but the log on disk is stale.\n")
	} else if err != nil {
		switch {
		case errors.Is(err, hotel.ErrNotFound):
			u.printf("No reservation found under %v.\n", id)
		case errors.Is(err, hotel.ErrPasswordMismatch):
			u.printf("The password does not match; the reservation stands.\n")
		case errors.Is(err, hotel.ErrAlreadyOccupied):
			u.printf("The guest has already checked in; use check-out instead.\n")
		default:
			u.l.LogErrorf("Could not cancel reservation %v: %v", id, err.Error())
			u.printf("Something went wrong, please try again.\n")
		}

		return
	}

	u.printf("Reservation %v cancelled.\n", id)
}
