package directory

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/room4-2/frontdesk/domain"
)

// Upserter receives imported records.
type Upserter interface {
	Upsert(ctx context.Context, rec domain.EmployeeRecord) error
}

var headerAliases = map[string]string{
	"id":           "id",
	"employee_id":  "id",
	"emp_id":       "id",
	"name":         "name",
	"full_name":    "name",
	"department":   "department",
	"dept":         "department",
	"email":        "email",
	"phone":        "phone",
	"mobile":       "phone",
	"phone_number": "phone",
	"position":     "position",
	"designation":  "position",
	"joined_on":    "joined_on",
	"joining_date": "joined_on",
}

// ImportCSV reads a header row followed by employee rows and upserts each.
// Unknown columns, salary included, are skipped.
func ImportCSV(ctx context.Context, r io.Reader, dst Upserter) (int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	index := map[string]int{}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))
		h = strings.ReplaceAll(h, " ", "_")
		if col, ok := headerAliases[h]; ok {
			if _, dup := index[col]; !dup {
				index[col] = i
			}
		}
	}
	if _, ok := index["id"]; !ok {
		return 0, errors.New("csv: missing id column")
	}
	if _, ok := index["name"]; !ok {
		return 0, errors.New("csv: missing name column")
	}

	n := 0
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("line %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		rec := domain.EmployeeRecord{
			ID:         get("id"),
			Name:       get("name"),
			Department: get("department"),
			Email:      get("email"),
			Phone:      get("phone"),
			Position:   get("position"),
			JoinedOn:   get("joined_on"),
		}
		if rec.ID == "" || rec.Name == "" {
			continue
		}
		if err := dst.Upsert(ctx, rec); err != nil {
			return n, err
		}
		n++
	}
}
