// Copyright 2023 Arch Systems Inc.
//
//    All Rights Reserved

package mongo

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/mendersoftware/go-lib-micro/config"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	dconfig "github.com/iotile/deviceota/config"
	"github.com/iotile/deviceota/model"
	"github.com/iotile/deviceota/store"
)

const (
	// DeploymentsCollectionName refers to the name of the collection
	// of stored deployment requests
	DeploymentsCollectionName = "deployments"

	// ActionsCollectionName refers to the name of the collection of
	// deployment actions
	ActionsCollectionName = "deployment_actions"

	// VersionsCollectionName refers to the name of the collection of
	// device version attributes
	VersionsCollectionName = "device_versions"
)

// SetupDataStore returns the mongo data store and optionally runs migrations
func SetupDataStore(automigrate bool) (*DataStoreMongo, error) {
	ctx := context.Background()
	dbClient, err := NewClient(ctx, config.Config)
	if err != nil {
		return nil, errors.New(fmt.Sprintf("failed to connect to db: %v", err))
	}
	dbName := config.Config.GetString(dconfig.SettingDbName)
	err = Migrate(ctx, dbName, DbVersion, dbClient, automigrate)
	if err != nil {
		return nil, errors.New(fmt.Sprintf("failed to run migrations: %v", err))
	}
	dataStore := NewDataStoreWithClient(dbClient, config.Config)
	return dataStore, nil
}

func disconnectClient(parentCtx context.Context, client *mongo.Client) {
	ctx, cancel := context.WithTimeout(parentCtx, 1*time.Second)
	defer cancel()
	client.Disconnect(ctx)
}

// NewClient returns a mongo client
func NewClient(ctx context.Context, c config.Reader) (*mongo.Client, error) {

	clientOptions := mopts.Client()
	mongoURL := c.GetString(dconfig.SettingMongo)
	if !strings.Contains(mongoURL, "://") {
		return nil, errors.Errorf("Invalid mongoURL %q: missing schema.",
			mongoURL)
	}
	clientOptions.ApplyURI(mongoURL)

	username := c.GetString(dconfig.SettingDbUsername)
	if username != "" {
		credentials := mopts.Credential{
			Username: c.GetString(dconfig.SettingDbUsername),
		}
		password := c.GetString(dconfig.SettingDbPassword)
		if password != "" {
			credentials.Password = password
			credentials.PasswordSet = true
		}
		clientOptions.SetAuth(credentials)
	}

	if c.GetBool(dconfig.SettingDbSSL) {
		tlsConfig := &tls.Config{}
		tlsConfig.InsecureSkipVerify = c.GetBool(dconfig.SettingDbSSLSkipVerify)
		clientOptions.SetTLSConfig(tlsConfig)
	}

	// Set writeconcern to acknowlage after write has propagated to the
	// mongod instance and commited to the file system journal.
	wc := writeconcern.New(writeconcern.W(1), writeconcern.J(true))
	clientOptions.SetWriteConcern(wc)

	// Set 10s timeout
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to connect to mongo server")
	}

	// Validate connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "Error reaching mongo server")
	}

	return client, nil
}

// DataStoreMongo is the data storage service
type DataStoreMongo struct {
	// client holds the reference to the client used to communicate with the
	// mongodb server.
	client *mongo.Client
	// dbName contains the name of the deviceota database.
	dbName string
}

// NewDataStoreWithClient initializes a DataStore object
func NewDataStoreWithClient(client *mongo.Client, c config.Reader) *DataStoreMongo {
	dbName := c.GetString(dconfig.SettingDbName)

	return &DataStoreMongo{
		client: client,
		dbName: dbName,
	}
}

// Ping verifies the connection to the database
func (db *DataStoreMongo) Ping(ctx context.Context) error {
	res := db.client.Database(db.dbName).RunCommand(ctx, bson.M{"ping": 1})
	return res.Err()
}

// InsertDeploymentRequest stores a new deployment request
func (db *DataStoreMongo) InsertDeploymentRequest(
	ctx context.Context,
	request *model.DeploymentRequest,
) error {
	coll := db.client.Database(db.dbName).Collection(DeploymentsCollectionName)

	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	if request.CreatedTs.IsZero() {
		request.CreatedTs = time.Now().UTC()
	}
	_, err := coll.InsertOne(ctx, request)
	return err
}

// GetDeploymentRequest returns a deployment request, or nil when the ID
// is unknown
func (db *DataStoreMongo) GetDeploymentRequest(
	ctx context.Context,
	requestID string,
) (*model.DeploymentRequest, error) {
	coll := db.client.Database(db.dbName).Collection(DeploymentsCollectionName)

	cur := coll.FindOne(ctx, bson.M{"_id": requestID})

	request := &model.DeploymentRequest{}
	if err := cur.Decode(request); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return request, nil
}

// DeleteDeploymentRequest deletes a deployment request
func (db *DataStoreMongo) DeleteDeploymentRequest(
	ctx context.Context,
	requestID string,
) error {
	coll := db.client.Database(db.dbName).Collection(DeploymentsCollectionName)

	res, err := coll.DeleteOne(ctx, bson.M{"_id": requestID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrDeploymentNotFound
	}
	return nil
}

// ListDeploymentRequests returns the deployment requests matching the
// filter, most recently released first
func (db *DataStoreMongo) ListDeploymentRequests(
	ctx context.Context,
	filter model.DeploymentFilter,
) ([]model.DeploymentRequest, error) {
	coll := db.client.Database(db.dbName).Collection(DeploymentsCollectionName)

	if filter.Empty() {
		return []model.DeploymentRequest{}, nil
	}

	terms := bson.A{}
	if len(filter.FleetIDs) > 0 {
		terms = append(terms, bson.M{
			"fleet_id": bson.M{"$in": filter.FleetIDs},
		})
	}
	if len(filter.OrgIDs) > 0 {
		terms = append(terms, bson.M{
			"org_id": bson.M{"$in": filter.OrgIDs},
		})
	}
	if len(filter.FleetlessOrgIDs) > 0 {
		terms = append(terms, bson.M{
			"fleet_id": bson.M{"$exists": false},
			"org_id":   bson.M{"$in": filter.FleetlessOrgIDs},
		})
	}
	query := bson.M{"$or": terms}
	if filter.ReleasedOnly {
		query = bson.M{
			"$and": bson.A{
				bson.M{"$or": terms},
				bson.M{"released_on": bson.M{"$lte": time.Now().UTC()}},
				bson.M{"completed_on": bson.M{"$exists": false}},
			},
		}
	}

	findOpts := mopts.Find().
		SetSort(bson.D{{Key: "released_on", Value: -1}, {Key: "created_ts", Value: -1}})
	cur, err := coll.Find(ctx, query, findOpts)
	if err != nil {
		return nil, err
	}
	requests := []model.DeploymentRequest{}
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// InsertDeploymentAction stores a new deployment action
func (db *DataStoreMongo) InsertDeploymentAction(
	ctx context.Context,
	action *model.DeploymentAction,
) error {
	coll := db.client.Database(db.dbName).Collection(ActionsCollectionName)

	if action.ID == "" {
		action.ID = uuid.New().String()
	}
	if action.CreatedTs.IsZero() {
		action.CreatedTs = time.Now().UTC()
	}
	_, err := coll.InsertOne(ctx, action)
	return err
}

// UpdateDeploymentAction updates the mutable fields of an action
func (db *DataStoreMongo) UpdateDeploymentAction(
	ctx context.Context,
	action *model.DeploymentAction,
) error {
	coll := db.client.Database(db.dbName).Collection(ActionsCollectionName)

	_, err := coll.UpdateOne(ctx,
		bson.M{"_id": action.ID},
		bson.M{
			"$set": bson.M{
				"attempt_successful":  action.AttemptSuccessful,
				"device_confirmation": action.DeviceConfirmation,
				"last_attempt_on":     action.LastAttemptOn,
				"log":                 action.Log,
			},
		},
	)
	return err
}

// LatestUnconfirmedAction returns the device's most recently attempted
// successful action still awaiting device confirmation
func (db *DataStoreMongo) LatestUnconfirmedAction(
	ctx context.Context,
	deviceID string,
) (*model.DeploymentAction, error) {
	coll := db.client.Database(db.dbName).Collection(ActionsCollectionName)

	findOpts := mopts.FindOne().SetSort(bson.D{
		{Key: "last_attempt_on", Value: -1},
		{Key: "created_ts", Value: -1},
	})
	cur := coll.FindOne(ctx, bson.M{
		"device_id":           deviceID,
		"attempt_successful":  true,
		"device_confirmation": false,
	}, findOpts)

	action := &model.DeploymentAction{}
	if err := cur.Decode(action); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return action, nil
}

// ListDeviceActions returns all actions recorded for a device, newest
// first
func (db *DataStoreMongo) ListDeviceActions(
	ctx context.Context,
	deviceID string,
) ([]model.DeploymentAction, error) {
	return db.listActions(ctx, bson.M{"device_id": deviceID})
}

// ListRequestActions returns all actions recorded for a deployment
// request, newest first
func (db *DataStoreMongo) ListRequestActions(
	ctx context.Context,
	requestID string,
) ([]model.DeploymentAction, error) {
	return db.listActions(ctx, bson.M{"deployment_id": requestID})
}

func (db *DataStoreMongo) listActions(
	ctx context.Context,
	query bson.M,
) ([]model.DeploymentAction, error) {
	coll := db.client.Database(db.dbName).Collection(ActionsCollectionName)

	findOpts := mopts.Find().SetSort(bson.D{{Key: "created_ts", Value: -1}})
	cur, err := coll.Find(ctx, query, findOpts)
	if err != nil {
		return nil, err
	}
	actions := []model.DeploymentAction{}
	if err := cur.All(ctx, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

// InsertDeviceVersion appends a new version history record
func (db *DataStoreMongo) InsertDeviceVersion(
	ctx context.Context,
	attr *model.DeviceVersionAttribute,
) error {
	coll := db.client.Database(db.dbName).Collection(VersionsCollectionName)

	if attr.ID == "" {
		attr.ID = uuid.New().String()
	}
	if attr.CreatedTs.IsZero() {
		attr.CreatedTs = time.Now().UTC()
	}
	_, err := coll.InsertOne(ctx, attr)
	return err
}

// LatestDeviceVersion returns the most recently created version record
// for the (device, kind) pair
func (db *DataStoreMongo) LatestDeviceVersion(
	ctx context.Context,
	deviceID string,
	kind model.VersionKind,
) (*model.DeviceVersionAttribute, error) {
	coll := db.client.Database(db.dbName).Collection(VersionsCollectionName)

	findOpts := mopts.FindOne().SetSort(bson.D{{Key: "created_ts", Value: -1}})
	cur := coll.FindOne(ctx, bson.M{
		"device_id": deviceID,
		"kind":      kind,
	}, findOpts)

	attr := &model.DeviceVersionAttribute{}
	if err := cur.Decode(attr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return attr, nil
}

// ListDeviceVersions returns the device's version history, last reported
// first. An empty kind lists all kinds.
func (db *DataStoreMongo) ListDeviceVersions(
	ctx context.Context,
	deviceID string,
	kind model.VersionKind,
) ([]model.DeviceVersionAttribute, error) {
	coll := db.client.Database(db.dbName).Collection(VersionsCollectionName)

	query := bson.M{"device_id": deviceID}
	if kind != "" {
		query["kind"] = kind
	}
	findOpts := mopts.Find().SetSort(bson.D{{Key: "updated_ts", Value: -1}})
	cur, err := coll.Find(ctx, query, findOpts)
	if err != nil {
		return nil, err
	}
	attrs := []model.DeviceVersionAttribute{}
	if err := cur.All(ctx, &attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

// Close disconnects the client
func (db *DataStoreMongo) Close() error {
	ctx := context.Background()
	disconnectClient(ctx, db.client)
	return nil
}

func (db *DataStoreMongo) dropDatabase() error {
	ctx := context.Background()
	err := db.client.Database(db.dbName).Drop(ctx)
	return err
}
