package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Export kinds and formats carried on the queue.
const (
	KindBill    = "bill"
	KindSummary = "summary"

	FormatHTML = "html"
	FormatXLSX = "xlsx"
)

// ExportRequest asks the worker to render one document. Bill exports carry
// the bill ID; summary exports carry the month range. The worker reads the
// actual data from the store, so the message stays small and a stale
// message simply renders current data.
type ExportRequest struct {
	Kind       string    `json:"kind"`
	Format     string    `json:"format"`
	BillID     int64     `json:"bill_id,omitempty"`
	StartMonth string    `json:"start_month,omitempty"`
	EndMonth   string    `json:"end_month,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewBillExportRequest(billID int64, format string) *ExportRequest {
	return &ExportRequest{
		Kind:      KindBill,
		Format:    format,
		BillID:    billID,
		Timestamp: time.Now(),
	}
}

func NewSummaryExportRequest(startMonth, endMonth, format string) *ExportRequest {
	return &ExportRequest{
		Kind:       KindSummary,
		Format:     format,
		StartMonth: startMonth,
		EndMonth:   endMonth,
		Timestamp:  time.Now(),
	}
}

func (m *ExportRequest) Validate() error {
	switch m.Kind {
	case KindBill:
		if m.BillID == 0 {
			return fmt.Errorf("bill export without bill_id")
		}
	case KindSummary:
		if m.StartMonth == "" || m.EndMonth == "" {
			return fmt.Errorf("summary export without month range")
		}
	default:
		return fmt.Errorf("unknown export kind %q", m.Kind)
	}
	switch m.Format {
	case FormatHTML, FormatXLSX:
	default:
		return fmt.Errorf("unknown export format %q", m.Format)
	}
	return nil
}

func (m *ExportRequest) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExportRequestFromJSON(data []byte) (*ExportRequest, error) {
	var m ExportRequest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal export request: %w", err)
	}
	return &m, nil
}
