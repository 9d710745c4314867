package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique and query indexes the repositories rely
// on. Duplicate-key enforcement for user emails, request ids and device
// serial numbers lives here.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("requests").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "partner_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "partner_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("projects").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "project_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "integrator_id", Value: 1}, {Key: "updated_at", Value: -1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("devices").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "serial_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "integrator_id", Value: 1}, {Key: "status", Value: 1}}},
	})
	return err
}
