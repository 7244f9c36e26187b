package http

import "warikan/internal/core"

// Request payloads. Amounts typed by a user arrive as strings: the single
// bill path parses them leniently (unparseable means zero), the batch path
// strictly.

type memberPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required"`
}

type familyPayload struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name" validate:"required"`
	Members []memberPayload `json:"members" validate:"dive"`
}

func (p familyPayload) toCore() core.Family {
	members := make([]core.Member, len(p.Members))
	for i, m := range p.Members {
		members[i] = core.Member{ID: m.ID, Name: m.Name}
	}
	return core.Family{ID: p.ID, Name: p.Name, Members: members}
}

type participationPayload struct {
	FamilyID int64  `json:"id"`
	Name     string `json:"name" validate:"required"`
	Lines    int    `json:"lineCount" validate:"gte=0"`
	Extra    struct {
		Enabled bool    `json:"enabled"`
		Cost    float64 `json:"cost" validate:"gte=0"`
	} `json:"extraService"`
}

func (p participationPayload) toCore() core.Participation {
	return core.Participation{
		FamilyID: p.FamilyID,
		Name:     p.Name,
		Lines:    p.Lines,
		Extra:    core.ExtraService{Enabled: p.Extra.Enabled, Cost: p.Extra.Cost},
	}
}

type calculateRequest struct {
	BillMonth string                 `json:"billMonth" validate:"required"`
	TotalCost string                 `json:"totalCost"`
	Families  []participationPayload `json:"families" validate:"dive"`
}

type batchRequest struct {
	FamilyIDs   []int64           `json:"familyIds" validate:"required,min=1"`
	FixedExtras map[int64]float64 `json:"fixedExtras"`
	TotalCost   string            `json:"totalCost"`
	StartMonth  string            `json:"startMonth" validate:"required,yearmonth"`
	EndMonth    string            `json:"endMonth" validate:"required,yearmonth"`
}

type exportRequest struct {
	Format string `json:"format" validate:"required,oneof=html xlsx"`
}

type exportSummaryRequest struct {
	Start  string `json:"start" validate:"required,yearmonth"`
	End    string `json:"end" validate:"required,yearmonth"`
	Format string `json:"format" validate:"required,oneof=html xlsx"`
}
