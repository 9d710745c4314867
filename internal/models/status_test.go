package models

import "testing"

func TestPartnerProjectionCoversEveryStatus(t *testing.T) {
	for status := range canonicalStatuses {
		projected, ok := PartnerStatusFor(status)
		if !ok {
			t.Errorf("status %q has no partner projection", status)
			continue
		}
		if !projected.Valid() {
			t.Errorf("status %q projects to unknown partner status %q", status, projected)
		}
	}
}

func TestPartnerStatusFor(t *testing.T) {
	cases := map[TicketStatus]PartnerStatus{
		StatusNew:              PartnerPending,
		StatusAwaitingDispatch: PartnerPending,
		StatusAssignedEPR:      PartnerApproved,
		StatusUnderRepair:      PartnerApproved,
		StatusReadyReturn:      PartnerRepaired,
		StatusClosed:           PartnerDispatched,
	}
	for status, want := range cases {
		got, ok := PartnerStatusFor(status)
		if !ok || got != want {
			t.Errorf("PartnerStatusFor(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusEstimateProvided.Valid() {
		t.Error("estimate_provided should be valid")
	}
	if TicketStatus("Pending").Valid() {
		t.Error("partner vocabulary must not pass canonical validation")
	}
	if PartnerStatus("new").Valid() {
		t.Error("canonical vocabulary must not pass partner validation")
	}
}
