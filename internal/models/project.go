package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Project struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ProjectID    string             `bson:"project_id" json:"projectId"`
	IntegratorID string             `bson:"integrator_id" json:"integratorId"`
	Name         string             `bson:"name" json:"name" validate:"required"`
	Location     string             `bson:"location" json:"location" validate:"required"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	// Derived counters, recomputed on device-list mutation and on read.
	NumberOfDevices int       `bson:"number_of_devices" json:"numberOfDevices"`
	OpenRequests    int       `bson:"open_requests" json:"openRequests"`
	Status          string    `bson:"status" json:"status" validate:"omitempty,oneof=Active Completed 'On Hold' Cancelled"`
	Budget          float64   `bson:"budget,omitempty" json:"budget,omitempty"`
	StartDate       time.Time `bson:"start_date" json:"startDate"`
	ExpectedEndDate time.Time `bson:"expected_end_date,omitempty" json:"expectedEndDate,omitempty"`
	ActualEndDate   time.Time `bson:"actual_end_date,omitempty" json:"actualEndDate,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}

// ProjectWithDevices is the read model for the integrator dashboard.
type ProjectWithDevices struct {
	Project
	Devices []DeviceSummary `json:"devices"`
}
