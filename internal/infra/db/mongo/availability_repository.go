package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainavailability "farmstay/internal/domain/availability"
	domainfarms "farmstay/internal/domain/farms"
	"farmstay/internal/domain/shared/dayrange"
)

const availabilityCollection = "farm_availability"

// AvailabilityRepository stores one document per (farm, day) with a unique
// compound index. Writes run inside the session the unit of work injects
// into the context, so a batch commits or aborts as one.
type AvailabilityRepository struct {
	col *mongo.Collection
}

func NewAvailabilityRepository(db *mongo.Database) *AvailabilityRepository {
	return &AvailabilityRepository{col: db.Collection(availabilityCollection)}
}

func (r *AvailabilityRepository) SetDays(ctx context.Context, farmID domainfarms.FarmID, days []dayrange.Day, open bool) (domainavailability.WriteResult, error) {
	if len(days) == 0 {
		return domainavailability.WriteResult{}, nil
	}
	models := make([]mongo.WriteModel, 0, len(days))
	for _, d := range days {
		filter := bson.M{"farm_id": string(farmID), "day": d.String()}
		update := bson.M{"$set": bson.M{"is_open": open}}
		models = append(models, mongo.NewUpdateOneModel().SetFilter(filter).SetUpdate(update).SetUpsert(true))
	}
	res, err := r.col.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return domainavailability.WriteResult{}, fmt.Errorf("mongo: set availability batch: %w", err)
	}
	return domainavailability.WriteResult{
		Created: int(res.UpsertedCount),
		Updated: int(res.MatchedCount),
	}, nil
}

func (r *AvailabilityRepository) States(ctx context.Context, farmID domainfarms.FarmID, days []dayrange.Day) (map[dayrange.Day]domainavailability.DayState, error) {
	if len(days) == 0 {
		return map[dayrange.Day]domainavailability.DayState{}, nil
	}
	keys := make([]string, 0, len(days))
	for _, d := range days {
		keys = append(keys, d.String())
	}
	cursor, err := r.col.Find(ctx, bson.M{"farm_id": string(farmID), "day": bson.M{"$in": keys}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	states := make(map[dayrange.Day]domainavailability.DayState, len(days))
	for cursor.Next(ctx) {
		var doc availabilityDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		d, err := dayrange.ParseDay(doc.Day)
		if err != nil {
			return nil, err
		}
		if doc.IsOpen {
			states[d] = domainavailability.StateOpen
		} else {
			states[d] = domainavailability.StateClosed
		}
	}
	return states, cursor.Err()
}

func (r *AvailabilityRepository) Records(ctx context.Context, farmID domainfarms.FarmID, from, to dayrange.Day) ([]domainavailability.DayRecord, error) {
	filter := bson.M{"farm_id": string(farmID)}
	dayFilter := bson.M{}
	if !from.IsZero() {
		dayFilter["$gte"] = from.String()
	}
	if !to.IsZero() {
		dayFilter["$lte"] = to.String()
	}
	if len(dayFilter) > 0 {
		filter["day"] = dayFilter
	}
	opts := options.Find().SetSort(bson.D{{Key: "day", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domainavailability.DayRecord
	for cursor.Next(ctx) {
		var doc availabilityDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		d, err := dayrange.ParseDay(doc.Day)
		if err != nil {
			return nil, err
		}
		records = append(records, domainavailability.DayRecord{
			FarmID: farmID,
			Day:    d,
			Open:   doc.IsOpen,
		})
	}
	return records, cursor.Err()
}

type availabilityDocument struct {
	FarmID string `bson:"farm_id"`
	Day    string `bson:"day"`
	IsOpen bool   `bson:"is_open"`
}
