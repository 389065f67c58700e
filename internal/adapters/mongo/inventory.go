package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/alhaqtravel/umrah-booking/internal/domain"
)

type HotelDoc struct {
	ID          uuid.UUID `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Location    string    `bson:"location" json:"location"`
	Description string    `bson:"description" json:"description"`
	Image       string    `bson:"image" json:"image"`
	Rating      float64   `bson:"rating" json:"rating"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type TransferDoc struct {
	ID          uuid.UUID `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Type        string    `bson:"type" json:"type"` // bus, car, van
	Description string    `bson:"description" json:"description"`
	Capacity    int       `bson:"capacity" json:"capacity"`
	PriceCents  int64     `bson:"price_cents" json:"price_cents"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type FlightDoc struct {
	ID            uuid.UUID `bson:"_id" json:"id"`
	Airline       string    `bson:"airline" json:"airline"`
	FlightNumber  string    `bson:"flight_number" json:"flight_number"`
	Departure     string    `bson:"departure" json:"departure"`
	Destination   string    `bson:"destination" json:"destination"`
	DepartureTime string    `bson:"departure_time" json:"departure_time"`
	ArrivalTime   string    `bson:"arrival_time" json:"arrival_time"`
	Class         string    `bson:"class" json:"class"` // economy, business, first
	PriceCents    int64     `bson:"price_cents" json:"price_cents"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

func (c *CatalogRepository) ListActiveHotels(ctx context.Context) ([]HotelDoc, error) {
	var docs []HotelDoc
	return docs, c.findActive(ctx, c.hotels, &docs)
}

func (c *CatalogRepository) ListActiveTransfers(ctx context.Context) ([]TransferDoc, error) {
	var docs []TransferDoc
	return docs, c.findActive(ctx, c.transfers, &docs)
}

func (c *CatalogRepository) ListActiveFlights(ctx context.Context) ([]FlightDoc, error) {
	var docs []FlightDoc
	return docs, c.findActive(ctx, c.flights, &docs)
}

func (c *CatalogRepository) findActive(ctx context.Context, coll *mongo.Collection, out interface{}) error {
	cur, err := coll.Find(ctx, bson.M{"status": StatusActive})
	if err != nil {
		c.logger.Error("failed to list inventory", err)
		return err
	}
	return cur.All(ctx, out)
}

func (c *CatalogRepository) CreateHotel(ctx context.Context, doc HotelDoc) error {
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	if doc.Status == "" {
		doc.Status = StatusActive
	}
	_, err := c.hotels.InsertOne(ctx, doc)
	return err
}

func (c *CatalogRepository) UpdateHotel(ctx context.Context, doc HotelDoc) error {
	doc.UpdatedAt = time.Now()
	return c.updateOne(ctx, c.hotels, doc.ID, doc)
}

func (c *CatalogRepository) DeleteHotel(ctx context.Context, id uuid.UUID) error {
	return c.deleteOne(ctx, c.hotels, id)
}

func (c *CatalogRepository) SetHotelStatus(ctx context.Context, id uuid.UUID, status string) error {
	return c.setStatus(ctx, c.hotels, id, status)
}

func (c *CatalogRepository) CreateTransfer(ctx context.Context, doc TransferDoc) error {
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	if doc.Status == "" {
		doc.Status = StatusActive
	}
	_, err := c.transfers.InsertOne(ctx, doc)
	return err
}

func (c *CatalogRepository) UpdateTransfer(ctx context.Context, doc TransferDoc) error {
	doc.UpdatedAt = time.Now()
	return c.updateOne(ctx, c.transfers, doc.ID, doc)
}

func (c *CatalogRepository) DeleteTransfer(ctx context.Context, id uuid.UUID) error {
	return c.deleteOne(ctx, c.transfers, id)
}

func (c *CatalogRepository) SetTransferStatus(ctx context.Context, id uuid.UUID, status string) error {
	return c.setStatus(ctx, c.transfers, id, status)
}

func (c *CatalogRepository) CreateFlight(ctx context.Context, doc FlightDoc) error {
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	if doc.Status == "" {
		doc.Status = StatusActive
	}
	_, err := c.flights.InsertOne(ctx, doc)
	return err
}

func (c *CatalogRepository) UpdateFlight(ctx context.Context, doc FlightDoc) error {
	doc.UpdatedAt = time.Now()
	return c.updateOne(ctx, c.flights, doc.ID, doc)
}

func (c *CatalogRepository) DeleteFlight(ctx context.Context, id uuid.UUID) error {
	return c.deleteOne(ctx, c.flights, id)
}

func (c *CatalogRepository) SetFlightStatus(ctx context.Context, id uuid.UUID, status string) error {
	return c.setStatus(ctx, c.flights, id, status)
}

// updateOne applies the document as a $set so the stored _id and created_at
// survive the update.
func (c *CatalogRepository) updateOne(ctx context.Context, coll *mongo.Collection, id uuid.UUID, doc interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return err
	}
	delete(fields, "_id")
	delete(fields, "created_at")

	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c *CatalogRepository) deleteOne(ctx context.Context, coll *mongo.Collection, id uuid.UUID) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
