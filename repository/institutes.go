package repository

import (
	"context"
	"fmt"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InstituteRepo struct {
	MongoCollection *mongo.Collection
}

func GetInstituteRepo(client *mongo.Client) *InstituteRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("INSTITUTES_COLLECTION")
	return &InstituteRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *InstituteRepo) AddInstitute(institute *model.Institute) error {
	timer := utils.TrackDBOperation("insert", "institutes")
	defer timer.ObserveDuration()

	if institute == nil || institute.Name == "" {
		utils.TrackError("database", "invalid_institute_data")
		return fmt.Errorf("invalid institute data: missing name")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, institute); err != nil {
		utils.TrackError("database", "institute_creation_failed")
		return fmt.Errorf("failed to create institute: %w", err)
	}

	return nil
}

func (r *InstituteRepo) FindByName(name string) (*model.Institute, error) {
	timer := utils.TrackDBOperation("find", "institutes")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var institute model.Institute
	err := r.MongoCollection.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&institute)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "institute_lookup_error")
		return nil, err
	}

	return &institute, nil
}

// EnsurePlaceholder creates a minimal record for an institute referenced on a
// certificate but never registered. Returns the existing or new institute.
func (r *InstituteRepo) EnsurePlaceholder(name string) (*model.Institute, error) {
	existing, err := r.FindByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	placeholder := &model.Institute{
		InstituteID: utils.GenerateStudentID(),
		Name:        name,
		Email:       fmt.Sprintf("%s@placeholder.local", utils.GenerateStudentID()),
		Contact:     "N/A",
		Location:    "N/A",
		Type:        "training_center",
		Status:      "active",
		CreatedAt:   time.Now(),
	}
	if err := r.AddInstitute(placeholder); err != nil {
		return nil, err
	}
	return placeholder, nil
}

func (r *InstituteRepo) ListInstitutes() ([]*model.Institute, error) {
	timer := utils.TrackDBOperation("find", "institutes")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch institutes: %w", err)
	}
	defer cursor.Close(ctx)

	var institutes []*model.Institute
	if err = cursor.All(ctx, &institutes); err != nil {
		return nil, fmt.Errorf("failed to decode institutes: %w", err)
	}

	return institutes, nil
}

func (r *InstituteRepo) CountInstitutes() (int64, error) {
	timer := utils.TrackDBOperation("count", "institutes")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.MongoCollection.CountDocuments(ctx, bson.M{})
}
