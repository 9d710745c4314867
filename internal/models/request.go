package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request is the document-backed service request used by channel partners.
type Request struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	RequestID     string             `bson:"id" json:"id"`
	PartnerID     string             `bson:"partner_id" json:"partnerId"`
	CustomerName  string             `bson:"customer_name" json:"customerName" validate:"required"`
	CustomerEmail string             `bson:"customer_email,omitempty" json:"customerEmail,omitempty" validate:"omitempty,email"`
	Product       string             `bson:"product" json:"product" validate:"required"`
	SerialNumber  string             `bson:"serial_number" json:"serialNumber" validate:"required"`
	Fault         string             `bson:"fault" json:"fault" validate:"required"`
	Status        PartnerStatus      `bson:"status" json:"status"`
	EstimatedCost float64            `bson:"estimated_cost,omitempty" json:"estimatedCost,omitempty"`
	ActualCost    float64            `bson:"actual_cost,omitempty" json:"actualCost,omitempty"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"lastUpdate"`
}
