// Package repository provides the MongoDB backing store of transfers and logs.
package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Options tunes the MongoDB client.
type Options struct {
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	// ConnectTimeout bounds the initial connect, ping and index creation.
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
	Compressors            []string
	// UseTransactions runs multi-document writes in a transaction. It needs
	// a replica set or sharded cluster.
	UseTransactions bool
}

// DefaultOptions returns the production client settings.
func DefaultOptions() Options {
	return Options{
		MaxPoolSize:            50,
		MinPoolSize:            10,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		Compressors:            []string{"zstd", "snappy", "zlib"},
		UseTransactions:        true,
	}
}

// MongoDB holds the client and the collections of the picking store.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database

	Products     *mongo.Collection
	Packagings   *mongo.Collection
	UoMs         *mongo.Collection
	Locations    *mongo.Collection
	Lots         *mongo.Collection
	Packages     *mongo.Collection
	PackageTypes *mongo.Collection
	Quants       *mongo.Collection
	Pickings     *mongo.Collection
	MoveLines    *mongo.Collection
	Counters     *mongo.Collection
	Logs         *mongo.Collection

	useTransactions bool
}

// NewMongoDB connects with DefaultOptions.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return Connect(context.Background(), uri, databaseName, DefaultOptions())
}

// Connect opens a client, checks the server answers and creates the
// lookup indexes.
func Connect(ctx context.Context, uri, databaseName string, opts Options) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetRegistry(NewRegistry()).
		SetMaxPoolSize(opts.MaxPoolSize).
		SetMinPoolSize(opts.MinPoolSize).
		SetMaxConnIdleTime(opts.MaxConnIdleTime).
		SetConnectTimeout(opts.ConnectTimeout).
		SetServerSelectionTimeout(opts.ServerSelectionTimeout).
		SetSocketTimeout(opts.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)
	if len(opts.Compressors) > 0 {
		clientOpts.SetCompressors(opts.Compressors)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	m := bind(client, databaseName)
	m.useTransactions = opts.UseTransactions
	if err := m.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

func bind(client *mongo.Client, databaseName string) *MongoDB {
	db := client.Database(databaseName)
	return &MongoDB{
		Client:       client,
		Database:     db,
		Products:     db.Collection("products"),
		Packagings:   db.Collection("product_packagings"),
		UoMs:         db.Collection("uoms"),
		Locations:    db.Collection("locations"),
		Lots:         db.Collection("lots"),
		Packages:     db.Collection("packages"),
		PackageTypes: db.Collection("package_types"),
		Quants:       db.Collection("quants"),
		Pickings:     db.Collection("pickings"),
		MoveLines:    db.Collection("move_lines"),
		Counters:     db.Collection("counters"),
		Logs:         db.Collection("logs"),
	}
}

type indexSpec struct {
	coll   *mongo.Collection
	keys   bson.D
	unique bool
}

func asc(fields ...string) bson.D {
	keys := make(bson.D, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, bson.E{Key: f, Value: 1})
	}
	return keys
}

func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	specs := []indexSpec{
		{coll: m.Products, keys: asc("barcode")},
		{coll: m.Packagings, keys: asc("barcode")},
		{coll: m.Locations, keys: asc("barcode")},
		{coll: m.PackageTypes, keys: asc("barcode")},
		{coll: m.Packages, keys: asc("name")},
		{coll: m.Lots, keys: asc("name", "product_id"), unique: true},
		{coll: m.Quants, keys: asc("package_id")},
		{coll: m.MoveLines, keys: asc("picking_id", "_id")},
		{coll: m.Pickings, keys: asc("state")},
		{coll: m.Logs, keys: asc("request_id")},
		{coll: m.Logs, keys: bson.D{{Key: "picking_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	}
	for _, s := range specs {
		model := mongo.IndexModel{Keys: s.keys}
		if s.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.coll.Indexes().CreateOne(ctx, model); err != nil {
			return err
		}
	}
	return nil
}

// SetLogsTTL makes log entries expire ttl after their timestamp. An existing
// TTL index is updated in place.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttl time.Duration) error {
	seconds := int32(ttl / time.Second)
	_, err := m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    asc("timestamp"),
		Options: options.Index().SetExpireAfterSeconds(seconds),
	})
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Name != "IndexOptionsConflict" {
		return err
	}
	return m.Database.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: m.Logs.Name()},
		{Key: "index", Value: bson.D{
			{Key: "keyPattern", Value: asc("timestamp")},
			{Key: "expireAfterSeconds", Value: seconds},
		}},
	}).Err()
}

// withTransaction runs fn in a transaction when enabled, else directly.
func (m *MongoDB) withTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !m.useTransactions {
		return fn(ctx)
	}
	session, err := m.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return err
}

// nextIDs reserves n consecutive ids of a sequence and returns the first.
func (m *MongoDB) nextIDs(ctx context.Context, sequence string, n int) (int64, error) {
	var counter struct {
		Value int64 `bson:"value"`
	}
	err := m.Counters.FindOneAndUpdate(ctx,
		bson.M{"_id": sequence},
		bson.M{"$inc": bson.M{"value": int64(n)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Value - int64(n) + 1, nil
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// Ping checks the primary answers within two seconds.
func (m *MongoDB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
