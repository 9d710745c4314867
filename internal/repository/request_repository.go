package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"repair-app/internal/models"
)

type RequestRepository struct {
	collection *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{collection: db.Collection("requests")}
}

func (r *RequestRepository) Create(ctx context.Context, req *models.Request) error {
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	_, err := r.collection.InsertOne(ctx, req)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrConflict
	}
	return err
}

// ListByPartner returns a partner's requests, newest update first. A non-empty
// status narrows the result.
func (r *RequestRepository) ListByPartner(ctx context.Context, partnerID string, status models.PartnerStatus) ([]models.Request, error) {
	filter := bson.M{"partner_id": partnerID}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	requests := []models.Request{}
	err = cursor.All(ctx, &requests)
	return requests, err
}

func (r *RequestRepository) CountByPartner(ctx context.Context, partnerID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"partner_id": partnerID})
}

// UpdateStatus patches the request's status and returns the updated document.
func (r *RequestRepository) UpdateStatus(ctx context.Context, partnerID, requestID string, status models.PartnerStatus) (*models.Request, error) {
	update := bson.M{"$set": bson.M{"updated_at": time.Now()}}
	if status != "" {
		update["$set"].(bson.M)["status"] = status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Request
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"id": requestID, "partner_id": partnerID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}
