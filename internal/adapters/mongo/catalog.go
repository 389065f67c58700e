package mongo

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alhaqtravel/umrah-booking/internal/domain"
	"github.com/alhaqtravel/umrah-booking/internal/observability"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// CatalogRepository holds the admin-managed inventory: travel packages and
// the hotel/transfer/flight records they reference. Customers only ever see
// active records; admins own the full lifecycle.
type CatalogRepository struct {
	packages  *mongo.Collection
	hotels    *mongo.Collection
	transfers *mongo.Collection
	flights   *mongo.Collection
	logger    observability.Logger
}

func NewCatalogRepository(db *mongo.Database, logger observability.Logger) *CatalogRepository {
	return &CatalogRepository{
		packages:  db.Collection("packages"),
		hotels:    db.Collection("hotels"),
		transfers: db.Collection("transfers"),
		flights:   db.Collection("flights"),
		logger:    logger,
	}
}

type PackageDoc struct {
	ID           uuid.UUID `bson:"_id" json:"id"`
	Title        string    `bson:"title" json:"title"`
	Description  string    `bson:"description" json:"description"`
	Location     string    `bson:"location" json:"location"`
	Category     string    `bson:"category" json:"category"` // premium, standard, economy
	PriceCents   int64     `bson:"price_cents" json:"price_cents"`
	DurationDays int       `bson:"duration_days" json:"duration_days"`
	Features     []string  `bson:"features" json:"features"`
	Image        string    `bson:"image" json:"image"`
	Rating       float64   `bson:"rating" json:"rating"`
	HotelID      uuid.UUID `bson:"hotel_id" json:"hotel_id"`
	TransferID   uuid.UUID `bson:"transfer_id" json:"transfer_id"`
	FlightID     uuid.UUID `bson:"flight_id" json:"flight_id"`
	Status       string    `bson:"status" json:"status"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

func (c *CatalogRepository) ListActivePackages(ctx context.Context) ([]PackageDoc, error) {
	cur, err := c.packages.Find(ctx, bson.M{"status": StatusActive},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		c.logger.Error("failed to list packages", err)
		return nil, err
	}
	var docs []PackageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *CatalogRepository) ListAllPackages(ctx context.Context) ([]PackageDoc, error) {
	cur, err := c.packages.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []PackageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *CatalogRepository) GetActivePackage(ctx context.Context, id uuid.UUID) (*PackageDoc, error) {
	var doc PackageDoc
	err := c.packages.FindOne(ctx, bson.M{"_id": id, "status": StatusActive}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		c.logger.Error("failed to get package", err)
		return nil, err
	}
	return &doc, nil
}

// ResolveActivePackage is the booking-time price lookup: the slim view the
// booking service needs, from an active package only.
func (c *CatalogRepository) ResolveActivePackage(ctx context.Context, id uuid.UUID) (*domain.TravelPackage, error) {
	doc, err := c.GetActivePackage(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.TravelPackage{ID: doc.ID, Title: doc.Title, PriceCents: doc.PriceCents}, nil
}

func (c *CatalogRepository) CreatePackage(ctx context.Context, doc PackageDoc) error {
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	if doc.Status == "" {
		doc.Status = StatusActive
	}
	_, err := c.packages.InsertOne(ctx, doc)
	if err != nil {
		c.logger.Error("failed to create package", err)
	}
	return err
}

func (c *CatalogRepository) UpdatePackage(ctx context.Context, doc PackageDoc) error {
	doc.UpdatedAt = time.Now()
	return c.updateOne(ctx, c.packages, doc.ID, doc)
}

func (c *CatalogRepository) DeletePackage(ctx context.Context, id uuid.UUID) error {
	res, err := c.packages.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *CatalogRepository) SetPackageStatus(ctx context.Context, id uuid.UUID, status string) error {
	return c.setStatus(ctx, c.packages, id, status)
}

func (c *CatalogRepository) setStatus(ctx context.Context, coll *mongo.Collection, id uuid.UUID, status string) error {
	if status != StatusActive && status != StatusInactive {
		return &domain.ValidationError{Field: "status", Message: "must be active or inactive"}
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
