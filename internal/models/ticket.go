package models

import (
	"strconv"
	"strings"
	"time"
)

// Ticket is a service request stored as one row of the ServiceRequests sheet.
// The serial number doubles as the ticket identifier: at most one open row per
// serial number.
type Ticket struct {
	ID             string       `json:"id"`
	TicketNumber   string       `json:"ticketNumber"`
	CustomerName   string       `json:"customerName" validate:"required"`
	SerialNumber   string       `json:"serialNumber" validate:"required"`
	ProductDetails string       `json:"productType" validate:"required"`
	PurchaseDate   string       `json:"purchaseDate" validate:"required"`
	Photos         []string     `json:"photos"`
	Fault          string       `json:"issue" validate:"required"`
	Status         TicketStatus `json:"status"`
	AssignedTo     string       `json:"assignedTo"`
	EstimatedCost  string       `json:"estimatedCost"`
	DispatchInfo   string       `json:"dispatchDetails"`
	RepairInfo     string       `json:"repairDetails"`
	UpdatedAt      string       `json:"updatedAt"`
}

const ticketColumns = 12

// photoSeparator joins photo URLs into a single sheet cell.
const photoSeparator = "; "

// ToRow encodes the ticket as a 12-cell sheet row (columns A..L).
func (t *Ticket) ToRow() []interface{} {
	return []interface{}{
		t.CustomerName,
		t.SerialNumber,
		t.ProductDetails,
		t.PurchaseDate,
		strings.Join(t.Photos, photoSeparator),
		t.Fault,
		string(t.Status),
		t.AssignedTo,
		t.EstimatedCost,
		t.DispatchInfo,
		t.RepairInfo,
		t.UpdatedAt,
	}
}

// TicketFromRow decodes a sheet row. Short rows are padded so tickets written
// by older clients still load.
func TicketFromRow(row []interface{}, index int) *Ticket {
	cells := make([]string, ticketColumns)
	for i := 0; i < ticketColumns && i < len(row); i++ {
		if s, ok := row[i].(string); ok {
			cells[i] = s
		}
	}

	var photos []string
	if cells[4] != "" {
		photos = strings.Split(cells[4], photoSeparator)
	}

	status := TicketStatus(cells[6])
	if cells[6] == "" {
		status = StatusNew
	}

	return &Ticket{
		ID:             strconv.Itoa(index + 1),
		TicketNumber:   cells[1],
		CustomerName:   cells[0],
		SerialNumber:   cells[1],
		ProductDetails: cells[2],
		PurchaseDate:   cells[3],
		Photos:         photos,
		Fault:          cells[5],
		Status:         status,
		AssignedTo:     cells[7],
		EstimatedCost:  cells[8],
		DispatchInfo:   cells[9],
		RepairInfo:     cells[10],
		UpdatedAt:      cells[11],
	}
}

// TicketUpdate carries the fields a PATCH may overwrite. Nil means "leave as
// is". KnownUpdatedAt, when set, is an optimistic version token: the update is
// rejected with ErrConflict if the stored row has advanced past it.
type TicketUpdate struct {
	Status         *TicketStatus `json:"status,omitempty"`
	AssignedTo     *string       `json:"assignedTo,omitempty"`
	EstimatedCost  *string       `json:"estimatedCost,omitempty"`
	DispatchInfo   *string       `json:"dispatchDetails,omitempty"`
	RepairInfo     *string       `json:"repairDetails,omitempty"`
	KnownUpdatedAt *string       `json:"updatedAt,omitempty"`
}

// Stamp refreshes the row timestamp.
func (t *Ticket) Stamp(now time.Time) {
	t.UpdatedAt = now.UTC().Format(time.RFC3339)
}
