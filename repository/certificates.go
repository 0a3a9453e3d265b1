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

type CertificateRepo struct {
	MongoCollection *mongo.Collection
}

func GetCertificateRepo(client *mongo.Client) *CertificateRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("CERTIFICATES_COLLECTION")
	return &CertificateRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *CertificateRepo) CreateCertificate(cert *model.Certificate) error {
	timer := utils.TrackDBOperation("insert", "certificates")
	defer timer.ObserveDuration()

	if cert == nil {
		utils.TrackError("database", "nil_certificate")
		return fmt.Errorf("certificate cannot be nil")
	}
	if cert.UUID == "" || cert.Student == "" || cert.Course == "" {
		utils.TrackError("database", "invalid_certificate_data")
		return fmt.Errorf("invalid certificate data: missing required fields")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, cert); err != nil {
		utils.TrackError("database", "certificate_creation_failed")
		return fmt.Errorf("failed to create certificate in database: %w", err)
	}

	utils.TrackCertificateOperation("create")
	return nil
}

func (r *CertificateRepo) GetCertificate(uuid string) (*model.Certificate, error) {
	timer := utils.TrackDBOperation("find", "certificates")
	defer timer.ObserveDuration()

	if uuid == "" {
		return nil, fmt.Errorf("uuid cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cert model.Certificate
	err := r.MongoCollection.FindOne(ctx, bson.M{"uuid": uuid}).Decode(&cert)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "certificate_fetch_failed")
		return nil, fmt.Errorf("failed to fetch certificate: %w", err)
	}

	return &cert, nil
}

// ListCertificates returns a filtered page sorted by creation time descending
// along with the total match count.
func (r *CertificateRepo) ListCertificates(institute, course, student string, page, limit int) ([]*model.Certificate, int64, error) {
	timer := utils.TrackDBOperation("find", "certificates")
	defer timer.ObserveDuration()

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{}
	if institute != "" {
		filter["institute"] = institute
	}
	if course != "" {
		filter["course"] = course
	}
	if student != "" {
		filter["student"] = bson.M{"$regex": student, "$options": "i"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := r.MongoCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count certificates: %w", err)
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch certificates: %w", err)
	}
	defer cursor.Close(ctx)

	var certs []*model.Certificate
	if err = cursor.All(ctx, &certs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode certificates: %w", err)
	}

	return certs, total, nil
}

func (r *CertificateRepo) ListByStudentEmail(email string) ([]*model.Certificate, error) {
	timer := utils.TrackDBOperation("find", "certificates")
	defer timer.ObserveDuration()

	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"student_email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch student certificates: %w", err)
	}
	defer cursor.Close(ctx)

	var certs []*model.Certificate
	if err = cursor.All(ctx, &certs); err != nil {
		return nil, fmt.Errorf("failed to decode certificates: %w", err)
	}

	return certs, nil
}

func (r *CertificateRepo) DeleteCertificate(uuid string) (bool, error) {
	timer := utils.TrackDBOperation("delete", "certificates")
	defer timer.ObserveDuration()

	if uuid == "" {
		return false, fmt.Errorf("uuid cannot be empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"uuid": uuid})
	if err != nil {
		utils.TrackError("database", "certificate_deletion_failed")
		return false, fmt.Errorf("failed to delete certificate: %w", err)
	}

	if result.DeletedCount > 0 {
		utils.TrackCertificateOperation("delete")
	}
	return result.DeletedCount > 0, nil
}

// AppendValidation records a public validation of the certificate.
func (r *CertificateRepo) AppendValidation(uuid string, record model.ValidationRecord) error {
	timer := utils.TrackDBOperation("update", "certificates")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"validation_log": record},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	_, err := r.MongoCollection.UpdateOne(ctx, bson.M{"uuid": uuid}, update)
	if err != nil {
		utils.TrackError("database", "validation_record_failed")
		return fmt.Errorf("failed to record validation: %w", err)
	}

	utils.TrackCertificateOperation("validate")
	return nil
}

func (r *CertificateRepo) CountCertificates() (int64, error) {
	timer := utils.TrackDBOperation("count", "certificates")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return r.MongoCollection.CountDocuments(ctx, bson.M{})
}

// CountByField groups certificates over a field ("course", "institute").
func (r *CertificateRepo) CountByField(field string) (map[string]int64, error) {
	timer := utils.TrackDBOperation("aggregate", "certificates")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate certificates by %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode aggregation: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

// MonthlyIssuance returns issuance counts grouped by YYYY-MM.
func (r *CertificateRepo) MonthlyIssuance() ([]model.MonthlyCount, error) {
	timer := utils.TrackDBOperation("aggregate", "certificates")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m",
				"date":   "$created_at",
			}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly issuance: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []model.MonthlyCount
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode aggregation: %w", err)
	}

	return rows, nil
}
