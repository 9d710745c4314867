package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"repair-app/internal/models"
	"repair-app/internal/utils"
)

// TicketStore is the spreadsheet-backed storage for service requests.
type TicketStore interface {
	List(ctx context.Context) ([]*models.Ticket, error)
	Append(ctx context.Context, ticket *models.Ticket) error
	FindAndPatch(ctx context.Context, serialNumber string, patch func(*models.Ticket) error) (*models.Ticket, error)
}

// PhotoUploader pushes one file to blob storage and returns its public URL.
type PhotoUploader interface {
	Upload(ctx context.Context, reader io.Reader, size int64, contentType, filename string) (string, error)
}

// Notifier is the customer notification dispatcher.
type Notifier interface {
	Send(customer Customer, stage Stage, data map[string]string) error
}

type TicketService struct {
	store    TicketStore
	photos   PhotoUploader
	notifier Notifier
}

func NewTicketService(store TicketStore, photos PhotoUploader, notifier Notifier) *TicketService {
	return &TicketService{store: store, photos: photos, notifier: notifier}
}

// Create validates and appends a new ticket with status "new", then fires the
// Created notification best-effort: a notification failure never fails the
// ticket creation.
func (s *TicketService) Create(ctx context.Context, ticket *models.Ticket, customerEmail, customerPhone string) error {
	if err := utils.ValidateStruct(ticket); err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	ticket.Status = models.StatusNew
	ticket.AssignedTo = ""
	ticket.Stamp(time.Now())

	if err := s.store.Append(ctx, ticket); err != nil {
		return err
	}

	customer := Customer{Name: ticket.CustomerName, Email: customerEmail, Phone: customerPhone}
	if err := s.notifier.Send(customer, StageCreated, map[string]string{"id": ticket.SerialNumber}); err != nil {
		log.Printf("Failed to send creation notification for %s: %v", ticket.SerialNumber, err)
	}

	return nil
}

// List returns all tickets, optionally narrowed to one status.
func (s *TicketService) List(ctx context.Context, status models.TicketStatus) ([]*models.Ticket, error) {
	tickets, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if status == "" {
		return tickets, nil
	}

	filtered := make([]*models.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// Update overwrites only the provided fields and refreshes the row timestamp.
// When the update carries a version token (the last updatedAt the caller saw)
// and the stored row has advanced past it, the update fails with Conflict.
func (s *TicketService) Update(ctx context.Context, serialNumber string, update models.TicketUpdate) (*models.Ticket, error) {
	if update.Status != nil && !update.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrValidation, *update.Status)
	}

	return s.store.FindAndPatch(ctx, serialNumber, func(t *models.Ticket) error {
		if update.KnownUpdatedAt != nil && *update.KnownUpdatedAt != t.UpdatedAt {
			return fmt.Errorf("%w: ticket was modified by another caller", models.ErrConflict)
		}

		if update.Status != nil {
			t.Status = *update.Status
		}
		if update.AssignedTo != nil {
			t.AssignedTo = *update.AssignedTo
		}
		if update.EstimatedCost != nil {
			t.EstimatedCost = *update.EstimatedCost
		}
		if update.DispatchInfo != nil {
			t.DispatchInfo = *update.DispatchInfo
		}
		if update.RepairInfo != nil {
			t.RepairInfo = *update.RepairInfo
		}

		t.Stamp(time.Now())
		return nil
	})
}

// PhotoFile is one uploaded multipart file.
type PhotoFile struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// AttachPhotos uploads the files and appends their URLs to the ticket's photo
// list in submission order. Existing photos are never removed.
func (s *TicketService) AttachPhotos(ctx context.Context, serialNumber string, files []PhotoFile) ([]string, int, error) {
	if len(files) == 0 {
		return nil, 0, fmt.Errorf("%w: no photos uploaded", models.ErrValidation)
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := s.photos.Upload(ctx, f.Reader, f.Size, f.ContentType, f.Filename)
		if err != nil {
			return nil, 0, fmt.Errorf("photo upload: %w", err)
		}
		urls = append(urls, url)
	}

	total := 0
	_, err := s.store.FindAndPatch(ctx, serialNumber, func(t *models.Ticket) error {
		t.Photos = append(t.Photos, urls...)
		total = len(t.Photos)
		t.Stamp(time.Now())
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return urls, total, nil
}

// FindCustomer resolves the customer behind a request id for notification
// dispatch. The sheet does not store contact details, so placeholder contact
// values stand in until a contact column is added.
func (s *TicketService) FindCustomer(ctx context.Context, requestID string) (*Customer, error) {
	tickets, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tickets {
		if t.SerialNumber == requestID {
			return &Customer{
				Name:  t.CustomerName,
				Email: "customer@example.com",
				Phone: "+91-0000000000",
			}, nil
		}
	}
	return nil, models.ErrNotFound
}
