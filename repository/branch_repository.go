package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"store-api/models"
)

type BranchRepository struct {
	collection *mongo.Collection
}

func NewBranchRepository(db *mongo.Database) *BranchRepository {
	return &BranchRepository{
		collection: db.Collection("branches"),
	}
}

func (r *BranchRepository) Find(ctx context.Context, page, pageSize int) ([]models.Branch, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var branches []models.Branch
	if err := cursor.All(ctx, &branches); err != nil {
		return nil, 0, err
	}
	return branches, total, nil
}

func (r *BranchRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Branch, error) {
	var branch models.Branch
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&branch)
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *BranchRepository) FindByStaff(ctx context.Context, staffID, exclude primitive.ObjectID) (*models.Branch, error) {
	filter := bson.M{"staffs": staffID}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	var branch models.Branch
	err := r.collection.FindOne(ctx, filter).Decode(&branch)
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *BranchRepository) Create(ctx context.Context, branch *models.Branch) error {
	if branch.ID.IsZero() {
		branch.ID = primitive.NewObjectID()
	}
	if branch.Staffs == nil {
		branch.Staffs = []primitive.ObjectID{}
	}
	if branch.Orders == nil {
		branch.Orders = []primitive.ObjectID{}
	}
	_, err := r.collection.InsertOne(ctx, branch)
	return err
}

func (r *BranchRepository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Branch, error) {
	delete(updates, "_id")

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var branch models.Branch
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&branch)
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *BranchRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddOrder appends a pickup order back-link to the branch's orders list.
func (r *BranchRepository) AddOrder(ctx context.Context, id, orderID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"orders": orderID}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *BranchRepository) AddStaff(ctx context.Context, id, staffID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"staffs": staffID}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *BranchRepository) RemoveStaff(ctx context.Context, id, staffID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"staffs": staffID}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
