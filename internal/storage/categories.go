package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/me-sujith/E-Commerce/internal/models"
)

type MongoCategoryStore struct {
	coll *mongo.Collection
}

func (s *MongoCategoryStore) List(ctx context.Context) ([]models.Category, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var cats []models.Category
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (s *MongoCategoryStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var c models.Category
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MongoCategoryStore) Create(ctx context.Context, c *models.Category) (primitive.ObjectID, error) {
	c.ID = primitive.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, c); err != nil {
		return primitive.NilObjectID, err
	}
	return c.ID, nil
}

func (s *MongoCategoryStore) Update(ctx context.Context, id primitive.ObjectID, c *models.Category) (*models.Category, error) {
	update := bson.M{"$set": bson.M{
		"name":  c.Name,
		"icon":  c.Icon,
		"color": c.Color,
	}}
	var out models.Category
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, afterUpdate()).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MongoCategoryStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
