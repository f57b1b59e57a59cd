package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainfarms "farmstay/internal/domain/farms"
	domainimages "farmstay/internal/domain/images"
)

const imagesCollection = "farm_images"

type ImageRepository struct {
	col *mongo.Collection
}

func NewImageRepository(db *mongo.Database) *ImageRepository {
	return &ImageRepository{col: db.Collection(imagesCollection)}
}

func (r *ImageRepository) ByFarm(ctx context.Context, farmID domainfarms.FarmID) ([]domainimages.Image, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"farm_id": string(farmID)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []domainimages.Image
	for cursor.Next(ctx) {
		var doc imageDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *ImageRepository) Add(ctx context.Context, img domainimages.Image) error {
	_, err := r.col.InsertOne(ctx, newImageDocument(img))
	return err
}

func (r *ImageRepository) Remove(ctx context.Context, farmID domainfarms.FarmID, id domainimages.ImageID) (domainimages.Image, error) {
	var doc imageDocument
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": string(id), "farm_id": string(farmID)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domainimages.Image{}, domainimages.ErrImageNotFound
		}
		return domainimages.Image{}, err
	}
	return doc.toAggregate(), nil
}

// SetPrimary clears and sets inside the caller's session transaction. The
// two statements are never visible separately: the unit of work commits or
// aborts them together.
func (r *ImageRepository) SetPrimary(ctx context.Context, farmID domainfarms.FarmID, id domainimages.ImageID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": string(id), "farm_id": string(farmID)},
		bson.M{"$set": bson.M{"is_primary": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainimages.ErrImageNotFound
	}
	_, err = r.col.UpdateMany(ctx,
		bson.M{"farm_id": string(farmID), "_id": bson.M{"$ne": string(id)}},
		bson.M{"$set": bson.M{"is_primary": false}})
	return err
}

type imageDocument struct {
	ID        string `bson:"_id"`
	FarmID    string `bson:"farm_id"`
	URL       string `bson:"image_url"`
	IsPrimary bool   `bson:"is_primary"`
	CreatedAt int64  `bson:"created_at"`
}

func newImageDocument(img domainimages.Image) imageDocument {
	return imageDocument{
		ID:        string(img.ID),
		FarmID:    string(img.FarmID),
		URL:       img.URL,
		IsPrimary: img.Primary,
		CreatedAt: img.CreatedAt.UnixMilli(),
	}
}

func (d imageDocument) toAggregate() domainimages.Image {
	return domainimages.Image{
		ID:        domainimages.ImageID(d.ID),
		FarmID:    domainfarms.FarmID(d.FarmID),
		URL:       d.URL,
		Primary:   d.IsPrimary,
		CreatedAt: timestampToTime(d.CreatedAt),
	}
}
