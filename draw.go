package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// Mark Six numbers are always drawn from 1..49.
	minNumber = 1
	maxNumber = 49

	mainNumberCount = 6

	dateLayout = "2006-01-02"
)

// DrawRecord is one historical Mark Six draw. Records are immutable once
// loaded; a refresh replaces the whole table rather than mutating rows.
type DrawRecord struct {
	DrawID      int
	DrawDate    time.Time
	MainNumbers [mainNumberCount]int
	BonusNumber int
}

// ValidateDraw checks the Mark Six invariants: a positive draw id, six
// distinct main numbers in [1,49], and a bonus number in [1,49] that does not
// collide with any main number. Violations wrap ErrDataFormat.
func ValidateDraw(d DrawRecord) error {
	if d.DrawID <= 0 {
		return fmt.Errorf("%w: draw id %d is not positive", ErrDataFormat, d.DrawID)
	}
	if d.DrawDate.IsZero() {
		return fmt.Errorf("%w: draw %d has no date", ErrDataFormat, d.DrawID)
	}
	seen := make(map[int]bool, mainNumberCount)
	for _, n := range d.MainNumbers {
		if n < minNumber || n > maxNumber {
			return fmt.Errorf("%w: draw %d has main number %d outside [%d,%d]",
				ErrDataFormat, d.DrawID, n, minNumber, maxNumber)
		}
		if seen[n] {
			return fmt.Errorf("%w: draw %d repeats main number %d", ErrDataFormat, d.DrawID, n)
		}
		seen[n] = true
	}
	if d.BonusNumber < minNumber || d.BonusNumber > maxNumber {
		return fmt.Errorf("%w: draw %d has bonus number %d outside [%d,%d]",
			ErrDataFormat, d.DrawID, d.BonusNumber, minNumber, maxNumber)
	}
	if seen[d.BonusNumber] {
		return fmt.Errorf("%w: draw %d bonus number %d collides with a main number",
			ErrDataFormat, d.DrawID, d.BonusNumber)
	}
	return nil
}

// LoadHistory reads the draw history CSV into an immutable snapshot.
//
// Expected columns: draw,date,n1,n2,n3,n4,n5,n6,special_number with a header
// row. Rows are returned in file order; the loader validates each row but does
// not enforce chronological ordering.
//
// Partial-load policy: a malformed row is skipped with a warning to the
// operator log and loading continues. The history file is maintained by hand
// and one typo should not take the whole query surface down.
func LoadHistory(path string) ([]DrawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // field count is validated per row below

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Skip the header row if present.
	start := 0
	if _, convErr := strconv.Atoi(rows[0][0]); convErr != nil {
		start = 1
	}

	records := make([]DrawRecord, 0, len(rows))
	for i := start; i < len(rows); i++ {
		record, err := parseDrawRow(rows[i])
		if err != nil {
			ErrorLogger.Printf("Skipping history row %d: %v", i+1, err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func parseDrawRow(fields []string) (DrawRecord, error) {
	if len(fields) != 2+mainNumberCount+1 {
		return DrawRecord{}, fmt.Errorf("%w: expected %d fields, got %d",
			ErrDataFormat, 2+mainNumberCount+1, len(fields))
	}

	drawID, err := strconv.Atoi(fields[0])
	if err != nil {
		return DrawRecord{}, fmt.Errorf("%w: bad draw id %q", ErrDataFormat, fields[0])
	}

	drawDate, err := time.Parse(dateLayout, fields[1])
	if err != nil {
		return DrawRecord{}, fmt.Errorf("%w: bad draw date %q", ErrDataFormat, fields[1])
	}

	record := DrawRecord{
		DrawID:   drawID,
		DrawDate: drawDate,
	}
	for i := 0; i < mainNumberCount; i++ {
		n, err := strconv.Atoi(fields[2+i])
		if err != nil {
			return DrawRecord{}, fmt.Errorf("%w: bad main number %q", ErrDataFormat, fields[2+i])
		}
		record.MainNumbers[i] = n
	}
	bonus, err := strconv.Atoi(fields[2+mainNumberCount])
	if err != nil {
		return DrawRecord{}, fmt.Errorf("%w: bad bonus number %q", ErrDataFormat, fields[2+mainNumberCount])
	}
	record.BonusNumber = bonus

	if err := ValidateDraw(record); err != nil {
		return DrawRecord{}, err
	}
	return record, nil
}
