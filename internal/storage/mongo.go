package storage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo bundles the per-collection stores backed by one client.
type Mongo struct {
	client *mongo.Client

	Users      *MongoUserStore
	Categories *MongoCategoryStore
	Products   *MongoProductStore
	Orders     *MongoOrderStore
	OrderItems *MongoOrderItemStore
}

// ConnectMongo dials the database, verifies the connection and ensures the
// indexes the stores rely on.
func ConnectMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is empty")
	}
	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cli.Ping(pctx, nil); err != nil {
		_ = cli.Disconnect(ctx)
		return nil, err
	}

	db := cli.Database(dbName)

	users := db.Collection("users")
	_, _ = users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &Mongo{
		client:     cli,
		Users:      &MongoUserStore{coll: users},
		Categories: &MongoCategoryStore{coll: db.Collection("categories")},
		Products:   &MongoProductStore{coll: db.Collection("products")},
		Orders:     &MongoOrderStore{coll: db.Collection("orders")},
		OrderItems: &MongoOrderItemStore{coll: db.Collection("orderitems")},
	}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ErrDuplicateEmail reports a unique-index violation on users.email.
var ErrDuplicateEmail = errors.New("storage: email already exists")

// afterUpdate makes FindOneAndUpdate return the updated document, matching
// the {new: true} behavior handlers expect.
func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

func isDuplicateKey(err error) bool {
	var wex mongo.WriteException
	if errors.As(err, &wex) {
		for _, we := range wex.WriteErrors {
			if we.Code == 11000 {
				return true
			}
		}
	}
	return false
}
