package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type StudentRepo struct {
	MongoCollection *mongo.Collection
}

func GetStudentRepo(client *mongo.Client) *StudentRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("STUDENTS_COLLECTION")
	return &StudentRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *StudentRepo) AddStudent(ctx context.Context, student *model.Student) error {
	timer := utils.TrackDBOperation("insert", "students")
	defer timer.ObserveDuration()

	if student.Email == "" || student.Password == "" {
		utils.TrackError("database", "invalid_student_data")
		return errors.New("email and password required")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, student); err != nil {
		utils.TrackError("database", "student_creation_failed")
		return errors.New("failed to add student to database")
	}

	return nil
}

func (r *StudentRepo) FindByEmail(email string) (*model.Student, error) {
	timer := utils.TrackDBOperation("find", "students")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var student model.Student
	err := r.MongoCollection.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&student)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "student_lookup_error")
		return nil, err
	}

	return &student, nil
}

func (r *StudentRepo) FindStudent(studentID string) (*model.Student, error) {
	timer := utils.TrackDBOperation("find", "students")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var student model.Student
	err := r.MongoCollection.FindOne(ctx, bson.D{{Key: "student_id", Value: studentID}}).Decode(&student)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "student_lookup_error")
		return nil, err
	}

	return &student, nil
}

func (r *StudentRepo) CountStudents() (int64, error) {
	timer := utils.TrackDBOperation("count", "students")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.MongoCollection.CountDocuments(ctx, bson.M{})
}
