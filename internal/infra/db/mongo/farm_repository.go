package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainfarms "farmstay/internal/domain/farms"
	"farmstay/internal/domain/identity"
)

const farmsCollection = "farms"

type FarmRepository struct {
	col *mongo.Collection
}

func NewFarmRepository(db *mongo.Database) *FarmRepository {
	return &FarmRepository{col: db.Collection(farmsCollection)}
}

func (r *FarmRepository) ByID(ctx context.Context, id domainfarms.FarmID) (*domainfarms.Farm, error) {
	var doc farmDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainfarms.ErrFarmNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *FarmRepository) Save(ctx context.Context, farm *domainfarms.Farm) error {
	doc := newFarmDocument(farm)
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

func (r *FarmRepository) List(ctx context.Context, owner identity.UserID) ([]*domainfarms.Farm, error) {
	filter := bson.M{}
	if owner != "" {
		filter["owner_id"] = string(owner)
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainfarms.Farm
	for cursor.Next(ctx) {
		var doc farmDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type farmDocument struct {
	ID               string `bson:"_id"`
	OwnerID          string `bson:"owner_id"`
	Name             string `bson:"name"`
	Location         string `bson:"location,omitempty"`
	Description      string `bson:"description,omitempty"`
	GuestsLimit      int    `bson:"guests_limit"`
	Bedrooms         int    `bson:"bedrooms,omitempty"`
	NightlyRateCents int64  `bson:"nightly_rate_cents"`
	ContactEmail     string `bson:"contact_email,omitempty"`
	CreatedAt        int64  `bson:"created_at"`
	UpdatedAt        int64  `bson:"updated_at"`
}

func newFarmDocument(f *domainfarms.Farm) farmDocument {
	return farmDocument{
		ID:               string(f.ID),
		OwnerID:          string(f.Owner),
		Name:             f.Name,
		Location:         f.Location,
		Description:      f.Description,
		GuestsLimit:      f.GuestsLimit,
		Bedrooms:         f.Bedrooms,
		NightlyRateCents: f.NightlyRateCents,
		ContactEmail:     f.ContactEmail,
		CreatedAt:        f.CreatedAt.UnixMilli(),
		UpdatedAt:        f.UpdatedAt.UnixMilli(),
	}
}

func (d farmDocument) toAggregate() *domainfarms.Farm {
	return &domainfarms.Farm{
		ID:               domainfarms.FarmID(d.ID),
		Owner:            identity.UserID(d.OwnerID),
		Name:             d.Name,
		Location:         d.Location,
		Description:      d.Description,
		GuestsLimit:      d.GuestsLimit,
		Bedrooms:         d.Bedrooms,
		NightlyRateCents: d.NightlyRateCents,
		ContactEmail:     d.ContactEmail,
		CreatedAt:        timestampToTime(d.CreatedAt),
		UpdatedAt:        timestampToTime(d.UpdatedAt),
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
