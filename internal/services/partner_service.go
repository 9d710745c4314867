package services

import (
	"context"
	"fmt"
	"strings"

	"repair-app/internal/models"
	"repair-app/internal/utils"
)

// RequestStore is the document-backed storage for partner service requests.
type RequestStore interface {
	Create(ctx context.Context, req *models.Request) error
	ListByPartner(ctx context.Context, partnerID string, status models.PartnerStatus) ([]models.Request, error)
	CountByPartner(ctx context.Context, partnerID string) (int64, error)
	UpdateStatus(ctx context.Context, partnerID, requestID string, status models.PartnerStatus) (*models.Request, error)
}

type PartnerService struct {
	requests RequestStore
}

func NewPartnerService(requests RequestStore) *PartnerService {
	return &PartnerService{requests: requests}
}

// List returns a partner's requests, newest update first. Status "All" (or
// empty) means no filter.
func (s *PartnerService) List(ctx context.Context, partnerID, status string) ([]models.Request, error) {
	var filter models.PartnerStatus
	if status != "" && status != "All" {
		filter = models.PartnerStatus(status)
		if !filter.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", models.ErrValidation, status)
		}
	}
	return s.requests.ListByPartner(ctx, partnerID, filter)
}

// Create registers a new partner request with a generated REQ-<prefix>-<seq>
// id and initial status Pending.
func (s *PartnerService) Create(ctx context.Context, partnerID string, req *models.Request) (*models.Request, error) {
	req.PartnerID = partnerID
	req.Status = models.PartnerPending

	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	count, err := s.requests.CountByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	req.RequestID = GenerateSequenceID("REQ", partnerID, count+1)

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// UpdateStatus patches a request's status, validating it against the partner
// vocabulary first.
func (s *PartnerService) UpdateStatus(ctx context.Context, partnerID, requestID, status string) (*models.Request, error) {
	var next models.PartnerStatus
	if status != "" {
		next = models.PartnerStatus(status)
		if !next.Valid() {
			return nil, fmt.Errorf("%w: invalid status, must be one of: Pending, Approved, Repaired, Dispatched", models.ErrValidation)
		}
	}
	return s.requests.UpdateStatus(ctx, partnerID, requestID, next)
}

// GenerateSequenceID builds ids like REQ-ABCD-001 from an owner id prefix and
// a running sequence number.
func GenerateSequenceID(kind, ownerID string, seq int64) string {
	prefix := ownerID
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	return fmt.Sprintf("%s-%s-%03d", kind, strings.ToUpper(prefix), seq)
}
