package models

// TicketStatus is the canonical lifecycle of a service request. The partner
// surface exposes a coarser four-state projection of the same lifecycle, see
// PartnerStatusFor.
type TicketStatus string

const (
	StatusNew              TicketStatus = "new"
	StatusValidation       TicketStatus = "validation"
	StatusAwaitingDispatch TicketStatus = "awaiting_dispatch"
	StatusAssignedEPR      TicketStatus = "assigned_epr"
	StatusEstimateProvided TicketStatus = "estimate_provided"
	StatusUnderRepair      TicketStatus = "under_repair"
	StatusReadyReturn      TicketStatus = "ready_return"
	StatusClosed           TicketStatus = "closed"
)

// PartnerStatus is the partner-facing projection of TicketStatus.
type PartnerStatus string

const (
	PartnerPending    PartnerStatus = "Pending"
	PartnerApproved   PartnerStatus = "Approved"
	PartnerRepaired   PartnerStatus = "Repaired"
	PartnerDispatched PartnerStatus = "Dispatched"
)

var canonicalStatuses = map[TicketStatus]struct{}{
	StatusNew:              {},
	StatusValidation:       {},
	StatusAwaitingDispatch: {},
	StatusAssignedEPR:      {},
	StatusEstimateProvided: {},
	StatusUnderRepair:      {},
	StatusReadyReturn:      {},
	StatusClosed:           {},
}

// projection table: every canonical state maps to exactly one partner state.
var partnerProjection = map[TicketStatus]PartnerStatus{
	StatusNew:              PartnerPending,
	StatusValidation:       PartnerPending,
	StatusAwaitingDispatch: PartnerPending,
	StatusAssignedEPR:      PartnerApproved,
	StatusEstimateProvided: PartnerApproved,
	StatusUnderRepair:      PartnerApproved,
	StatusReadyReturn:      PartnerRepaired,
	StatusClosed:           PartnerDispatched,
}

var partnerStatuses = map[PartnerStatus]struct{}{
	PartnerPending:    {},
	PartnerApproved:   {},
	PartnerRepaired:   {},
	PartnerDispatched: {},
}

func (s TicketStatus) Valid() bool {
	_, ok := canonicalStatuses[s]
	return ok
}

func (s PartnerStatus) Valid() bool {
	_, ok := partnerStatuses[s]
	return ok
}

// PartnerStatusFor projects a canonical status onto the partner vocabulary.
func PartnerStatusFor(s TicketStatus) (PartnerStatus, bool) {
	p, ok := partnerProjection[s]
	return p, ok
}
