package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoDocument adds the ObjectID key to a stored entity.
type mongoDocument[T any] struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Body T                  `bson:",inline"`
}

// MongoCollection stores documents in a MongoDB collection keyed by ObjectID.
// Ids that are not valid ObjectID hex strings are reported as not found.
type MongoCollection[T any, P document[T]] struct {
	coll     *mongo.Collection
	notFound error
}

func NewMongoCollection[T any, P document[T]](db *mongo.Database, collection string, notFound error) *MongoCollection[T, P] {
	return &MongoCollection[T, P]{
		coll:     db.Collection(collection),
		notFound: notFound,
	}
}

func (r *MongoCollection[T, P]) List(ctx context.Context) ([]T, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.coll.Name(), err)
	}
	defer cur.Close(ctx)

	out := make([]T, 0, 16)
	for cur.Next(ctx) {
		var doc mongoDocument[T]
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", r.coll.Name(), err)
		}
		out = append(out, *r.unwrap(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoCollection[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, r.notFound
	}
	return r.single(r.coll.FindOne(ctx, bson.M{"_id": oid}))
}

func (r *MongoCollection[T, P]) Create(ctx context.Context, doc *T) (*T, error) {
	if err := prepare[T, P](doc); err != nil {
		return nil, err
	}

	stored := mongoDocument[T]{ID: primitive.NewObjectID(), Body: *doc}
	if _, err := r.coll.InsertOne(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to create %s document: %w", r.coll.Name(), err)
	}
	return r.unwrap(&stored), nil
}

func (r *MongoCollection[T, P]) Delete(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, r.notFound
	}
	return r.single(r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}))
}

func (r *MongoCollection[T, P]) Update(ctx context.Context, id string, patch Patch[T]) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, r.notFound
	}

	fields := patch.Fields()
	if len(fields) == 0 {
		return r.single(r.coll.FindOne(ctx, bson.M{"_id": oid}))
	}

	set, unset := bson.M{}, bson.M{}
	for k, v := range fields {
		if v == nil {
			unset[k] = ""
			continue
		}
		set[k] = v
	}
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return r.single(r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts))
}

func (r *MongoCollection[T, P]) single(res *mongo.SingleResult) (*T, error) {
	var doc mongoDocument[T]
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.notFound
		}
		return nil, fmt.Errorf("%s query: %w", r.coll.Name(), err)
	}
	return r.unwrap(&doc), nil
}

func (r *MongoCollection[T, P]) unwrap(doc *mongoDocument[T]) *T {
	out := doc.Body
	P(&out).SetID(doc.ID.Hex())
	return &out
}

// NewMongoStore returns a Store backed by the clients and projects collections
// of db. The store disconnects client on Close.
func NewMongoStore(client *mongo.Client, db *mongo.Database) *Store {
	return NewStore(
		"mongo",
		NewMongoCollection[domain.Client](db, ClientsCollection, domain.ErrClientNotFound),
		NewMongoCollection[domain.Project](db, ProjectsCollection, domain.ErrProjectNotFound),
		func(ctx context.Context) error { return client.Ping(ctx, nil) },
		func() error { return client.Disconnect(context.Background()) },
	)
}
