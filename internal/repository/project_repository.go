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

type ProjectRepository struct {
	collection *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{collection: db.Collection("projects")}
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	if project.StartDate.IsZero() {
		project.StartDate = project.CreatedAt
	}
	if project.Status == "" {
		project.Status = "Active"
	}

	_, err := r.collection.InsertOne(ctx, project)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrConflict
	}
	return err
}

func (r *ProjectRepository) ListByIntegrator(ctx context.Context, integratorID string) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"integrator_id": integratorID}, opts)
	if err != nil {
		return nil, err
	}

	projects := []models.Project{}
	err = cursor.All(ctx, &projects)
	return projects, err
}

func (r *ProjectRepository) FindByID(ctx context.Context, integratorID, projectID string) (*models.Project, error) {
	var project models.Project
	err := r.collection.FindOne(ctx, bson.M{"project_id": projectID, "integrator_id": integratorID}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) CountByIntegrator(ctx context.Context, integratorID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"integrator_id": integratorID})
}

func (r *ProjectRepository) SetDeviceCount(ctx context.Context, projectID string, count int) error {
	update := bson.M{"$set": bson.M{"number_of_devices": count, "updated_at": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"project_id": projectID}, update)
	return err
}
