package models

import (
	"strconv"
	"strings"
)

const (
	TableFree     = "Free"
	TableOccupied = "Occupied"
	TableReserved = "Reserved"
)

type Table struct {
	ID       string        `json:"id"`
	Slug     string        `json:"slug"`
	Title    string        `json:"title"`
	Metadata TableMetadata `json:"metadata"`
}

type TableMetadata struct {
	Capacity     int    `json:"capacity,omitempty"`
	Status       string `json:"status,omitempty"`
	CurrentOrder string `json:"current_order,omitempty"`
}

// EffectiveStatus defaults to Free when the store record carries no status.
func (t Table) EffectiveStatus() string {
	if t.Metadata.Status == "" {
		return TableFree
	}
	return t.Metadata.Status
}

// Number extracts the table number embedded in the title: non-digit
// characters are stripped before parsing, an unparsable remainder is 0.
// "Table 12" sorts after "Table 2" numerically, not lexicographically.
func (t Table) Number() int {
	var digits strings.Builder
	for _, r := range t.Title {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}
