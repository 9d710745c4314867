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

type DeviceRepository struct {
	collection *mongo.Collection
}

func NewDeviceRepository(db *mongo.Database) *DeviceRepository {
	return &DeviceRepository{collection: db.Collection("devices")}
}

// InsertMany adds a batch of devices. Duplicate serial numbers are skipped
// rather than failing the batch (unordered insert); the number of documents
// actually written is returned.
func (r *DeviceRepository) InsertMany(ctx context.Context, devices []models.Device) (int, error) {
	docs := make([]interface{}, 0, len(devices))
	now := time.Now()
	for i := range devices {
		devices[i].CreatedAt = now
		devices[i].UpdatedAt = now
		if devices[i].Status == "" {
			devices[i].Status = models.DeviceOperational
		}
		if devices[i].FaultHistory == nil {
			devices[i].FaultHistory = []models.FaultEntry{}
		}
		docs = append(docs, devices[i])
	}

	opts := options.InsertMany().SetOrdered(false)
	result, err := r.collection.InsertMany(ctx, docs, opts)

	inserted := 0
	if result != nil {
		inserted = len(result.InsertedIDs)
	}

	var bulkErr mongo.BulkWriteException
	if errors.As(err, &bulkErr) {
		for _, we := range bulkErr.WriteErrors {
			if !mongo.IsDuplicateKeyError(we.WriteError) {
				return inserted, err
			}
		}
		// all write errors were duplicates; the rest of the batch landed
		return inserted, nil
	}

	return inserted, err
}

func (r *DeviceRepository) ListByProject(ctx context.Context, projectID string) ([]models.DeviceSummary, error) {
	opts := options.Find().SetProjection(bson.M{
		"serial_number": 1,
		"product_type":  1,
		"status":        1,
		"fault_history": 1,
	})

	cursor, err := r.collection.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}

	devices := []models.DeviceSummary{}
	err = cursor.All(ctx, &devices)
	return devices, err
}

func (r *DeviceRepository) ListByIntegrator(ctx context.Context, integratorID string) ([]models.Device, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"integrator_id": integratorID})
	if err != nil {
		return nil, err
	}

	devices := []models.Device{}
	err = cursor.All(ctx, &devices)
	return devices, err
}

func (r *DeviceRepository) CountByProject(ctx context.Context, projectID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"project_id": projectID})
}
