package models

import (
	"reflect"
	"testing"
	"time"
)

func TestTicketRowRoundTrip(t *testing.T) {
	ticket := &Ticket{
		CustomerName:   "Asha Verma",
		SerialNumber:   "SN-1001",
		ProductDetails: "Inverter",
		PurchaseDate:   "2025-01-15",
		Photos:         []string{"http://cdn/p1.jpg", "http://cdn/p2.jpg"},
		Fault:          "No output voltage",
		Status:         StatusUnderRepair,
		AssignedTo:     "EPR Team A",
		EstimatedCost:  "2,500",
		DispatchInfo:   "BlueDart TRP123",
		RepairInfo:     "Board replaced",
		UpdatedAt:      "2025-02-01T10:00:00Z",
	}

	row := ticket.ToRow()
	if len(row) != 12 {
		t.Fatalf("ToRow length = %d, want 12", len(row))
	}
	if row[4] != "http://cdn/p1.jpg; http://cdn/p2.jpg" {
		t.Errorf("photo cell = %q", row[4])
	}

	decoded := TicketFromRow(row, 4)
	ticket.ID = "5"
	ticket.TicketNumber = ticket.SerialNumber
	if !reflect.DeepEqual(decoded, ticket) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, ticket)
	}
}

func TestTicketFromRow_ShortRow(t *testing.T) {
	got := TicketFromRow([]interface{}{"Ravi", "SN-7", "Stabilizer"}, 0)

	if got.ID != "1" {
		t.Errorf("ID = %q, want 1", got.ID)
	}
	if got.SerialNumber != "SN-7" || got.CustomerName != "Ravi" {
		t.Errorf("identity cells wrong: %+v", got)
	}
	if got.Status != StatusNew {
		t.Errorf("empty status decoded as %q, want %q", got.Status, StatusNew)
	}
	if len(got.Photos) != 0 {
		t.Errorf("photos = %v, want empty", got.Photos)
	}
}

func TestTicketStamp(t *testing.T) {
	ticket := &Ticket{}
	ticket.Stamp(time.Date(2025, 3, 10, 15, 4, 5, 0, time.FixedZone("IST", 5*3600+1800)))

	if ticket.UpdatedAt != "2025-03-10T09:34:05Z" {
		t.Errorf("UpdatedAt = %q, want UTC RFC3339", ticket.UpdatedAt)
	}
}
