package repository

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AdminRepo struct {
	MongoCollection *mongo.Collection
}

func GetAdminRepo(client *mongo.Client) *AdminRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("ADMINS_COLLECTION")
	return &AdminRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *AdminRepo) AddAdmin(ctx context.Context, admin *model.Admin) error {
	timer := utils.TrackDBOperation("insert", "admins")
	defer timer.ObserveDuration()

	if admin.Username == "" || admin.Password == "" {
		utils.TrackError("database", "invalid_admin_data")
		return errors.New("username and password required")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, admin); err != nil {
		utils.TrackError("database", "admin_creation_failed")
		return errors.New("failed to add admin to database")
	}

	return nil
}

func (r *AdminRepo) FindByUsername(username string) (*model.Admin, error) {
	return r.findOne(bson.D{{Key: "username", Value: username}})
}

func (r *AdminRepo) FindByEmail(email string) (*model.Admin, error) {
	return r.findOne(bson.D{{Key: "email", Value: email}})
}

func (r *AdminRepo) FindAdmin(adminID string) (*model.Admin, error) {
	return r.findOne(bson.D{{Key: "admin_id", Value: adminID}})
}

// FindByUsernameOrEmail resolves the login identifier, which may be either.
func (r *AdminRepo) FindByUsernameOrEmail(username, email string) (*model.Admin, error) {
	if username != "" {
		return r.FindByUsername(username)
	}
	return r.FindByEmail(email)
}

func (r *AdminRepo) findOne(filter bson.D) (*model.Admin, error) {
	timer := utils.TrackDBOperation("find", "admins")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var admin model.Admin
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "admin_lookup_error")
		log.Println("Error finding admin:", err)
		return nil, err
	}

	return &admin, nil
}

// Exists reports whether an admin with this username or email is registered.
func (r *AdminRepo) Exists(username, email string) (bool, error) {
	timer := utils.TrackDBOperation("find", "admins")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"$or": []bson.M{
			{"username": username},
			{"email": email},
		},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AdminRepo) UpdatePassword(adminID, hashedPassword string) (int64, error) {
	timer := utils.TrackDBOperation("update", "admins")
	defer timer.ObserveDuration()

	if hashedPassword == "" {
		utils.TrackError("database", "invalid_password_hash")
		return 0, errors.New("password hashing error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"password":             hashedPassword,
			"last_password_change": time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"admin_id": adminID}, update)
	if err != nil {
		utils.TrackError("database", "password_update_failed")
		return 0, err
	}

	return result.ModifiedCount, nil
}

func (r *AdminRepo) Enable2FA(adminID, secret string, hashedRecoveryCodes []string) error {
	timer := utils.TrackDBOperation("update", "admins")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"two_factor_enabled": true,
			"two_factor_secret":  secret,
			"recovery_codes":     hashedRecoveryCodes,
		},
	}

	_, err := r.MongoCollection.UpdateOne(ctx, bson.M{"admin_id": adminID}, update)
	return err
}

func (r *AdminRepo) Disable2FA(adminID string) error {
	timer := utils.TrackDBOperation("update", "admins")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"two_factor_enabled": false,
			"two_factor_secret":  "",
			"recovery_codes":     []string{},
		},
	}

	_, err := r.MongoCollection.UpdateOne(ctx, bson.M{"admin_id": adminID}, update)
	return err
}

func (r *AdminRepo) UpdateRecoveryCodes(adminID string, hashedCodes []string) error {
	timer := utils.TrackDBOperation("update", "admins")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"recovery_codes": hashedCodes}}
	_, err := r.MongoCollection.UpdateOne(ctx, bson.M{"admin_id": adminID}, update)
	return err
}
