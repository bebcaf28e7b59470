// Package flatfile persists reservations as newline-delimited, comma-separated
// records: id, room number, check-in and check-out as epoch milliseconds,
// variant name, password. New records are appended; removal rewrites the whole
// file because the format has no cheaper primitive.
package flatfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/avstrong/hotel/internal/hotel"
	"github.com/avstrong/hotel/internal/logger"
)

const fieldsPerRecord = 6

type Config struct {
	L    *logger.Logger
	Path string
}

type Store struct {
	l    *logger.Logger
	path string
}

func New(conf Config) *Store {
	return &Store{l: conf.L, path: conf.Path}
}

// Append writes one record in add-only mode. Existing records are never at
// risk from this path.
func (s *Store) Append(_ context.Context, res *hotel.Reservation) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gomnd
	if err != nil {
		return fmt.Errorf("open %v for append: %w", s.path, err)
	}

	_, writeErr := fmt.Fprintln(f, encode(res))

	if err := f.Close(); err != nil && writeErr == nil {
		writeErr = err
	}

	if writeErr != nil {
		return fmt.Errorf("append reservation %v to %v: %w", res.ID, s.path, writeErr)
	}

	return nil
}

// RewriteAll replaces the file with the given records. It writes a sibling
// temp file and renames it over the original, so a crash mid-rewrite leaves
// the previous file intact rather than a truncated one.
func (s *Store) RewriteAll(_ context.Context, reservations []*hotel.Reservation) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file next to %v: %w", s.path, err)
	}

	var writeErr error

	for _, res := range reservations {
		if _, writeErr = fmt.Fprintln(tmp, encode(res)); writeErr != nil {
			break
		}
	}

	if err := tmp.Close(); err != nil && writeErr == nil {
		writeErr = err
	}

	if writeErr != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("write %v records to %v: %w", len(reservations), tmp.Name(), writeErr)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("replace %v: %w", s.path, err)
	}

	return nil
}

// Load parses every line of the file. Unreadable lines are skipped with a
// warning: a crash mid-append can leave a torn trailing record and that must
// not take the rest of the log with it. A missing file is an empty log.
func (s *Store) Load(_ context.Context) ([]*hotel.Reservation, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("open %v: %w", s.path, err)
	}

	defer func() {
		if err := f.Close(); err != nil {
			s.l.LogWarnf("Could not close %v after load: %v", s.path, err.Error())
		}
	}()

	var (
		out    []*hotel.Reservation
		lineNo int
	)

	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		lineNo++

		res, err := decode(scanner.Text())
		if err != nil {
			s.l.LogWarnf("Skipping line %v of %v: %v", lineNo, s.path, err.Error())

			continue
		}

		if res == nil {
			continue
		}

		out = append(out, res)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %v: %w", s.path, err)
	}

	return out, nil
}

func encode(res *hotel.Reservation) string {
	fields := []string{
		res.ID,
		strconv.Itoa(res.RoomNumber),
		strconv.FormatInt(res.Range.CheckIn.UnixMilli(), 10),
		strconv.FormatInt(res.Range.CheckOut.UnixMilli(), 10),
		res.VariantName,
		res.Password,
	}

	return strings.Join(fields, ",")
}

// decode accepts both record shapes: the current six fields and the older
// five-field one without a password, which reads back as an empty password.
// The variant name is written for readability and ignored here.
func decode(line string) (*hotel.Reservation, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil //nolint:nilnil // blank line, nothing to report
	}

	fields := strings.Split(line, ",")
	if len(fields) < fieldsPerRecord-1 {
		return nil, fmt.Errorf("%v of %v fields: %w", len(fields), fieldsPerRecord, ErrMalformedRecord)
	}

	roomNumber, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("room number %q: %w", fields[1], ErrMalformedRecord)
	}

	checkInMillis, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("check-in %q: %w", fields[2], ErrMalformedRecord)
	}

	checkOutMillis, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("check-out %q: %w", fields[3], ErrMalformedRecord)
	}

	var password string

	if len(fields) >= fieldsPerRecord {
		password = fields[5]
	}

	return &hotel.Reservation{
		ID:          fields[0],
		RoomNumber:  roomNumber,
		VariantName: fields[4],
		Range: hotel.DateRange{
			CheckIn:  time.UnixMilli(checkInMillis).UTC(),
			CheckOut: time.UnixMilli(checkOutMillis).UTC(),
		},
		Password: password,
	}, nil
}
