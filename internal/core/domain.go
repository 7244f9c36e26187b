package core

import (
	"errors"
	"strings"
)

type (
	// Member is a single person inside a family. One member usually maps to
	// one billable line, but the line count on a participation is editable
	// independently.
	Member struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	// Family is a top-level persisted entity. Bills keep value copies of the
	// relevant family data, so editing or deleting a family never changes a
	// bill that was already saved.
	Family struct {
		ID      int64    `json:"id"`
		Name    string   `json:"name"`
		Members []Member `json:"members"`
	}

	// ExtraService is an optional fixed add-on charge for a family (shared
	// Wi-Fi and the like), billed outside the per-line allocation.
	ExtraService struct {
		Enabled bool    `json:"enabled"`
		Cost    float64 `json:"cost"`
	}

	// Participation is a family's role within one bill: a snapshot of its
	// name, its billable line count and its extra service charge at the time
	// the bill was calculated.
	Participation struct {
		FamilyID int64        `json:"id"`
		Name     string       `json:"name"`
		Lines    int          `json:"lineCount"`
		Extra    ExtraService `json:"extraService"`
	}

	// Bill is one month's shared bill. ID 0 marks an unsaved draft; saving
	// assigns a millisecond timestamp ID. Duplicate bill months are allowed
	// (corrections are saved as additional bills).
	Bill struct {
		ID          int64           `json:"id"`
		BillMonth   string          `json:"billMonth"`
		TotalCost   float64         `json:"totalCost"`
		CostPerLine float64         `json:"costPerLine"`
		Families    []Participation `json:"families"`
	}
)

var (
	ErrEmptyName      = errors.New("empty name")
	ErrNegativeLines  = errors.New("negative line count")
	ErrNegativeCost   = errors.New("negative cost")
	ErrBadBillMonth   = errors.New("malformed bill month")
	ErrNoParticipants = errors.New("bill has no participating families")
)

func (m Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (f Family) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	for _, m := range f.Members {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// MemberCount returns the number of members, which is the default line count
// when the family is selected for a bill.
func (f Family) MemberCount() int {
	return len(f.Members)
}

func (p Participation) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Lines < 0 {
		return ErrNegativeLines
	}
	if p.Extra.Cost < 0 {
		return ErrNegativeCost
	}
	return nil
}

// Validate checks the structural invariants of a saved bill. Drafts (ID 0)
// pass through the same checks; the allocator itself never validates.
func (b Bill) Validate() error {
	if _, err := ParseBillMonth(b.BillMonth); err != nil {
		return ErrBadBillMonth
	}
	if b.TotalCost < 0 {
		return ErrNegativeCost
	}
	if len(b.Families) == 0 {
		return ErrNoParticipants
	}
	for _, p := range b.Families {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NewParticipation builds the default participation for a family: line count
// from the current member count, extra service disabled. The caller edits
// the snapshot afterwards; the family record is not referenced again.
func NewParticipation(f Family) Participation {
	return Participation{
		FamilyID: f.ID,
		Name:     f.Name,
		Lines:    f.MemberCount(),
	}
}
