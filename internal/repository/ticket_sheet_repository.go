package repository

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/api/sheets/v4"

	"repair-app/internal/models"
)

const (
	ticketSheetTab  = "ServiceRequests"
	ticketDataRange = ticketSheetTab + "!A2:L"
)

// TicketSheetRepository stores tickets as rows of a Google Sheets tab. The
// sheet offers no atomic find-and-patch, so every mutation runs behind a
// single-writer mutex, and a serial-number to row-offset index rebuilt on each
// full read replaces per-call linear scans.
type TicketSheetRepository struct {
	sheets        *sheets.Service
	spreadsheetID string

	mu       sync.Mutex
	rowIndex map[string]int // serial number -> 0-based offset within the data range
}

func NewTicketSheetRepository(srv *sheets.Service, spreadsheetID string) *TicketSheetRepository {
	return &TicketSheetRepository{
		sheets:        srv,
		spreadsheetID: spreadsheetID,
		rowIndex:      make(map[string]int),
	}
}

func (r *TicketSheetRepository) List(ctx context.Context) ([]*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listLocked(ctx)
}

func (r *TicketSheetRepository) listLocked(ctx context.Context) ([]*models.Ticket, error) {
	resp, err := r.sheets.Spreadsheets.Values.Get(r.spreadsheetID, ticketDataRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read ticket sheet: %w", err)
	}

	tickets := make([]*models.Ticket, 0, len(resp.Values))
	index := make(map[string]int, len(resp.Values))
	for i, row := range resp.Values {
		t := models.TicketFromRow(row, i)
		tickets = append(tickets, t)
		if t.SerialNumber != "" {
			if _, seen := index[t.SerialNumber]; !seen {
				index[t.SerialNumber] = i
			}
		}
	}

	r.rowIndex = index
	return tickets, nil
}

func (r *TicketSheetRepository) Append(ctx context.Context, ticket *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	vr := &sheets.ValueRange{Values: [][]interface{}{ticket.ToRow()}}
	_, err := r.sheets.Spreadsheets.Values.Append(r.spreadsheetID, ticketSheetTab, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append ticket row: %w", err)
	}

	// The appended row's position is only known after the next full read.
	r.rowIndex = make(map[string]int)
	return nil
}

// FindAndPatch locates the ticket by serial number and applies patch to it
// under the writer lock, then writes the full row back. patch returns
// ErrConflict to abort without writing.
func (r *TicketSheetRepository) FindAndPatch(ctx context.Context, serialNumber string, patch func(*models.Ticket) error) (*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	offset, ticket, err := r.findLocked(ctx, serialNumber)
	if err != nil {
		return nil, err
	}

	if err := patch(ticket); err != nil {
		return nil, err
	}

	rowNumber := offset + 2 // data range starts at sheet row 2
	updateRange := fmt.Sprintf("%s!A%d:L%d", ticketSheetTab, rowNumber, rowNumber)
	vr := &sheets.ValueRange{Values: [][]interface{}{ticket.ToRow()}}

	_, err = r.sheets.Spreadsheets.Values.Update(r.spreadsheetID, updateRange, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("update ticket row: %w", err)
	}

	return ticket, nil
}

// findLocked resolves a serial number to its row, consulting the index first
// and falling back to a full re-read when the index is stale or empty.
func (r *TicketSheetRepository) findLocked(ctx context.Context, serialNumber string) (int, *models.Ticket, error) {
	if offset, ok := r.rowIndex[serialNumber]; ok {
		ticket, err := r.readRowLocked(ctx, offset)
		if err == nil && ticket.SerialNumber == serialNumber {
			return offset, ticket, nil
		}
		// stale index entry, rebuild below
	}

	tickets, err := r.listLocked(ctx)
	if err != nil {
		return 0, nil, err
	}

	offset, ok := r.rowIndex[serialNumber]
	if !ok {
		return 0, nil, models.ErrNotFound
	}
	return offset, tickets[offset], nil
}

func (r *TicketSheetRepository) readRowLocked(ctx context.Context, offset int) (*models.Ticket, error) {
	rowNumber := offset + 2
	readRange := fmt.Sprintf("%s!A%d:L%d", ticketSheetTab, rowNumber, rowNumber)

	resp, err := r.sheets.Spreadsheets.Values.Get(r.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read ticket row: %w", err)
	}
	if len(resp.Values) == 0 {
		return nil, models.ErrNotFound
	}
	return models.TicketFromRow(resp.Values[0], offset), nil
}
