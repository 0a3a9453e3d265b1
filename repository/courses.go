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

type CourseRepo struct {
	MongoCollection *mongo.Collection
}

func GetCourseRepo(client *mongo.Client) *CourseRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("COURSES_COLLECTION")
	return &CourseRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *CourseRepo) AddEnrollment(course *model.Course) error {
	timer := utils.TrackDBOperation("insert", "courses")
	defer timer.ObserveDuration()

	if course == nil {
		return fmt.Errorf("course cannot be nil")
	}
	if course.StudentID == "" || course.CourseName == "" {
		utils.TrackError("database", "invalid_course_data")
		return fmt.Errorf("invalid enrollment data: missing required fields")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, course); err != nil {
		utils.TrackError("database", "enrollment_failed")
		return fmt.Errorf("failed to create enrollment: %w", err)
	}

	return nil
}

func (r *CourseRepo) ListForStudent(studentID string) ([]*model.Course, error) {
	timer := utils.TrackDBOperation("find", "courses")
	defer timer.ObserveDuration()

	if studentID == "" {
		return nil, fmt.Errorf("studentID cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"enrolled_at": -1})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch enrollments: %w", err)
	}
	defer cursor.Close(ctx)

	var courses []*model.Course
	if err = cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("failed to decode enrollments: %w", err)
	}

	return courses, nil
}

// UpdateProgress moves an enrollment along. Reaching 100 marks it completed.
func (r *CourseRepo) UpdateProgress(studentID, courseID string, progress int, grade string) (bool, error) {
	timer := utils.TrackDBOperation("update", "courses")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	set := bson.M{"progress": progress}
	if grade != "" {
		set["grade"] = grade
	}
	if progress >= 100 {
		set["status"] = model.CourseCompleted
		set["completed_at"] = time.Now()
	} else if progress > 0 {
		set["status"] = model.CourseOngoing
	}

	result, err := r.MongoCollection.UpdateOne(
		ctx,
		bson.M{"course_id": courseID, "student_id": studentID},
		bson.M{"$set": set},
	)
	if err != nil {
		utils.TrackError("database", "progress_update_failed")
		return false, fmt.Errorf("failed to update progress: %w", err)
	}

	return result.MatchedCount > 0, nil
}

// AttachCertificate links an issued certificate to the enrollment.
func (r *CourseRepo) AttachCertificate(studentEmail, courseName, certificateUUID string) error {
	timer := utils.TrackDBOperation("update", "courses")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"certificate_uuid": certificateUUID}}
	_, err := r.MongoCollection.UpdateOne(
		ctx,
		bson.M{"student_email": studentEmail, "course_name": courseName},
		update,
	)
	return err
}
