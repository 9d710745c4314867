package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DeviceOperational    = "Operational"
	DeviceFaulty         = "Faulty"
	DeviceUnderRepair    = "Under Repair"
	DeviceReplaced       = "Replaced"
	DeviceDecommissioned = "Decommissioned"
)

const (
	FaultOpen       = "Open"
	FaultInProgress = "In Progress"
	FaultResolved   = "Resolved"
)

var DeviceStatuses = []string{
	DeviceOperational, DeviceFaulty, DeviceUnderRepair, DeviceReplaced, DeviceDecommissioned,
}

// FaultEntry is one record in a device's append-only fault history.
type FaultEntry struct {
	FaultType    string    `bson:"fault_type" json:"faultType" validate:"required"`
	Description  string    `bson:"description" json:"description" validate:"required"`
	ReportedDate time.Time `bson:"reported_date" json:"reportedDate"`
	ResolvedDate time.Time `bson:"resolved_date,omitempty" json:"resolvedDate,omitempty"`
	Status       string    `bson:"status" json:"status" validate:"omitempty,oneof=Open 'In Progress' Resolved"`
	ReportedBy   string    `bson:"reported_by,omitempty" json:"reportedBy,omitempty"`
	ResolvedBy   string    `bson:"resolved_by,omitempty" json:"resolvedBy,omitempty"`
	Cost         float64   `bson:"cost,omitempty" json:"cost,omitempty"`
}

type Device struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	SerialNumber     string             `bson:"serial_number" json:"serialNumber" validate:"required"`
	ProjectID        string             `bson:"project_id" json:"projectId"`
	IntegratorID     string             `bson:"integrator_id" json:"integratorId"`
	ProductType      string             `bson:"product_type" json:"productType" validate:"required"`
	Model            string             `bson:"model,omitempty" json:"model,omitempty"`
	Manufacturer     string             `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	Status           string             `bson:"status" json:"status" validate:"omitempty,oneof=Operational Faulty 'Under Repair' Replaced Decommissioned"`
	FaultHistory     []FaultEntry       `bson:"fault_history" json:"faultHistory"`
	InstallationDate time.Time          `bson:"installation_date,omitempty" json:"installationDate,omitempty"`
	WarrantyExpiry   time.Time          `bson:"warranty_expiry,omitempty" json:"warrantyExpiry,omitempty"`
	Location         string             `bson:"location,omitempty" json:"location,omitempty"`
	Notes            string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}

// DeviceSummary is the slim device view embedded in project listings.
type DeviceSummary struct {
	SerialNumber string       `bson:"serial_number" json:"serialNumber"`
	ProductType  string       `bson:"product_type" json:"productType"`
	Status       string       `bson:"status" json:"status"`
	FaultHistory []FaultEntry `bson:"fault_history" json:"faultHistory"`
}

// OpenFaults counts fault-history entries not yet resolved.
func (d DeviceSummary) OpenFaults() int {
	n := 0
	for _, f := range d.FaultHistory {
		if f.Status != FaultResolved {
			n++
		}
	}
	return n
}

// FaultTypeCount is one entry of the most-common-faults ranking.
type FaultTypeCount struct {
	FaultType string `json:"faultType"`
	Count     int    `json:"count"`
}

// MonthlyFaults is one bucket of the 6-month trailing fault trend.
type MonthlyFaults struct {
	Month  string `json:"month"`
	Faults int    `json:"faults"`
}

// FaultStats aggregates an integrator's whole fleet.
type FaultStats struct {
	TotalDevices          int              `json:"totalDevices"`
	TotalFaults           int              `json:"totalFaults"`
	OpenFaults            int              `json:"openFaults"`
	ResolvedFaults        int              `json:"resolvedFaults"`
	DeviceStatusBreakdown map[string]int   `json:"deviceStatusBreakdown"`
	FaultTrends           []MonthlyFaults  `json:"faultTrends"`
	CommonFaults          []FaultTypeCount `json:"commonFaults"`
}
