package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoSelectionTimeout = 5 * time.Second

// Demand is a sourcing window with a closing date. Read-only to this job.
type Demand struct {
	ID      primitive.ObjectID `bson:"_id"`
	Name    string             `bson:"name"`
	EndDate time.Time          `bson:"end_date"`
}

// Cart is a closed order submitted by a county against a demand. Depending on
// the collection revision it either embeds the county name and full product
// detail, or carries only reference ids that the reference collections
// resolve.
type Cart struct {
	ID         primitive.ObjectID `bson:"_id"`
	DemandID   string             `bson:"demand_id"`
	CountyID   interface{}        `bson:"county_id,omitempty"`
	CountyName string             `bson:"county_name,omitempty"`
	State      string             `bson:"state"`
	Products   []LineItem         `bson:"products"`
}

// LineItem is one ordered product inside a cart. Measurements are decoded as
// bson.D so their document order survives into the description.
type LineItem struct {
	ProductID    interface{} `bson:"_id,omitempty"`
	Name         string      `bson:"name,omitempty"`
	Measurements []bson.D    `bson:"measurements,omitempty"`
	Norms        []string    `bson:"norms,omitempty"`
	Quantity     float64     `bson:"quantity"`
}

// Product is the reference collection entry behind a cart line item.
type Product struct {
	ID           interface{} `bson:"_id"`
	Name         string      `bson:"name"`
	Measurements []bson.D    `bson:"measurements"`
	Norms        []string    `bson:"norms"`
}

// County is the purchasing entity whose name labels matrix columns.
type County struct {
	ID   interface{} `bson:"_id"`
	Name string      `bson:"name"`
}

type demandSource interface {
	DemandsClosingBetween(ctx context.Context, from, to time.Time) ([]Demand, error)
}

type cartSource interface {
	ClosedCarts(ctx context.Context, demandIDs []string) ([]Cart, error)
}

type referenceSource interface {
	Products(ctx context.Context) ([]Product, error)
	Counties(ctx context.Context) ([]County, error)
}

// mongoStore serves all four collections of the demand database.
type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	logger *log.Logger
}

func newMongoStore(ctx context.Context, uri string, logger *log.Logger) (*mongoStore, error) {
	dbName, err := databaseFromURI(uri)
	if err != nil {
		return nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, mongoSelectionTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(mongoSelectionTimeout))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &mongoStore{client: client, db: client.Database(dbName), logger: logger}, nil
}

func (s *mongoStore) Close(ctx context.Context) {
	if err := s.client.Disconnect(ctx); err != nil {
		s.logger.Printf("mongo disconnect failed: %v", err)
	}
}

func (s *mongoStore) DemandsClosingBetween(ctx context.Context, from, to time.Time) ([]Demand, error) {
	cur, err := s.db.Collection("demands").Find(ctx, bson.M{
		"end_date": bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return nil, fmt.Errorf("query demands: %w", err)
	}
	var demands []Demand
	if err := cur.All(ctx, &demands); err != nil {
		return nil, fmt.Errorf("decode demands: %w", err)
	}
	return demands, nil
}

func (s *mongoStore) ClosedCarts(ctx context.Context, demandIDs []string) ([]Cart, error) {
	cur, err := s.db.Collection("carts").Find(ctx, bson.M{
		"state":     "closed",
		"demand_id": bson.M{"$in": demandIDs},
	})
	if err != nil {
		return nil, fmt.Errorf("query carts: %w", err)
	}
	var carts []Cart
	if err := cur.All(ctx, &carts); err != nil {
		return nil, fmt.Errorf("decode carts: %w", err)
	}
	return carts, nil
}

func (s *mongoStore) Products(ctx context.Context) ([]Product, error) {
	cur, err := s.db.Collection("products").Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	var products []Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (s *mongoStore) Counties(ctx context.Context) ([]County, error) {
	cur, err := s.db.Collection("counties").Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("query counties: %w", err)
	}
	var counties []County
	if err := cur.All(ctx, &counties); err != nil {
		return nil, fmt.Errorf("decode counties: %w", err)
	}
	return counties, nil
}

// databaseFromURI extracts the database name from the connection string path.
func databaseFromURI(uri string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse connection string: %w", err)
	}
	name := strings.TrimPrefix(parsed.Path, "/")
	if name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("connection string must name a database")
	}
	return name, nil
}
