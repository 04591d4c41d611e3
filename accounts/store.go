package accounts

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoRoleStore keeps roles in the "roles" array of account documents keyed
// by _id.
type MongoRoleStore struct {
	coll *mongo.Collection
}

// NewMongoRoleStore uses db.<collection>.
func NewMongoRoleStore(db *mongo.Database, collection string) *MongoRoleStore {
	return &MongoRoleStore{coll: db.Collection(collection)}
}

// AddRole adds role to the account's roles set.
func (s *MongoRoleStore) AddRole(ctx context.Context, uid, role string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: uid}},
		bson.D{{Key: "$addToSet", Value: bson.D{{Key: "roles", Value: role}}}},
	)
	if err != nil {
		return fmt.Errorf("add role %q to %s: %w", role, uid, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, uid)
	}
	return nil
}
