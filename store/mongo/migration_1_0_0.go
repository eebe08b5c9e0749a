// Copyright 2023 Arch Systems Inc.
//
//    All Rights Reserved

package mongo

import (
	"context"

	"github.com/mendersoftware/go-lib-micro/mongo/migrate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
)

type migration1_0_0 struct {
	client *mongo.Client
	db     string
}

// Up creates the indexes backing the deployment listing and the two
// version-history orderings
func (m *migration1_0_0) Up(from migrate.Version) error {
	ctx := context.Background()
	database := m.client.Database(m.db)

	collDeployments := database.Collection(DeploymentsCollectionName)
	idxDeployments := collDeployments.Indexes()

	// deployment requests are listed by fleet/org scope, released first
	scopeOptions := mopts.Index()
	scopeOptions.SetBackground(false)
	scopeOptions.SetName("scope_released")
	scopeIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "fleet_id", Value: 1},
			{Key: "org_id", Value: 1},
			{Key: "released_on", Value: -1},
		},
		Options: scopeOptions,
	}
	if _, err := idxDeployments.CreateOne(ctx, scopeIndex); err != nil {
		return err
	}

	collActions := database.Collection(ActionsCollectionName)
	idxActions := collActions.Indexes()

	// the reconciler looks up the latest unconfirmed action per device
	actionOptions := mopts.Index()
	actionOptions.SetBackground(false)
	actionOptions.SetName("device_unconfirmed")
	actionIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "device_id", Value: 1},
			{Key: "device_confirmation", Value: 1},
			{Key: "last_attempt_on", Value: -1},
		},
		Options: actionOptions,
	}
	if _, err := idxActions.CreateOne(ctx, actionIndex); err != nil {
		return err
	}

	collVersions := database.Collection(VersionsCollectionName)
	idxVersions := collVersions.Indexes()

	// current version is latest by creation, last reported is latest
	// by updated_ts; both orderings are served per (device, kind)
	createdOptions := mopts.Index()
	createdOptions.SetBackground(false)
	createdOptions.SetName("device_kind_created")
	createdIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "device_id", Value: 1},
			{Key: "kind", Value: 1},
			{Key: "created_ts", Value: -1},
		},
		Options: createdOptions,
	}
	if _, err := idxVersions.CreateOne(ctx, createdIndex); err != nil {
		return err
	}

	updatedOptions := mopts.Index()
	updatedOptions.SetBackground(false)
	updatedOptions.SetName("device_kind_updated")
	updatedIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "device_id", Value: 1},
			{Key: "kind", Value: 1},
			{Key: "updated_ts", Value: -1},
		},
		Options: updatedOptions,
	}
	if _, err := idxVersions.CreateOne(ctx, updatedIndex); err != nil {
		return err
	}

	return nil
}

func (m *migration1_0_0) Version() migrate.Version {
	return migrate.MakeVersion(1, 0, 0)
}
