package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Client struct {
	DB *mongo.Database
}

func New(uri, database string) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	opts := options.Client().ApplyURI(uri).SetRetryWrites(true)
	m, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Client{DB: m.Database(database)}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.DB.Client().Ping(ctx, nil)
}

// EnsureIndexes creates the uniqueness constraints the engine relies on:
// one availability record per (farm, day) and fast image lookups per farm.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	availability := c.DB.Collection(availabilityCollection)
	_, err := availability.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "farm_id", Value: 1}, {Key: "day", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	images := c.DB.Collection(imagesCollection)
	_, err = images.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "farm_id", Value: 1}},
	})
	if err != nil {
		return err
	}
	farms := c.DB.Collection(farmsCollection)
	_, err = farms.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	return err
}
