// internal/database/gate.go
package database

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/genun/genun-backend/internal/models"
)

const defaultPollInterval = 200 * time.Millisecond

type gateState int

const (
	gateUninitialized gateState = iota
	gateInitializing
	gateReady
	gateFailed
)

// Gate is the readiness barrier between workflows and the stores. It blocks
// until the database connection is live, then registers the indexes for all
// four collections exactly once. Concurrent callers before readiness share a
// single in-flight attempt; a failed attempt surfaces to every waiter and the
// next call re-attempts from scratch. The gate never reports ready with a
// partially registered schema set.
type Gate struct {
	mu      sync.Mutex
	state   gateState
	err     error
	pending chan struct{}

	ping         func(ctx context.Context) error
	register     func(ctx context.Context) error
	pollInterval time.Duration
}

// NewGate builds a gate from a connection probe and a schema-registration
// step. Both run inside EnsureReady.
func NewGate(ping, register func(ctx context.Context) error) *Gate {
	return &Gate{
		ping:         ping,
		register:     register,
		pollInterval: defaultPollInterval,
	}
}

// NewMongoGate wires a Gate to a live client and database.
func NewMongoGate(client *mongo.Client, db *mongo.Database) *Gate {
	return NewGate(
		func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		func(ctx context.Context) error {
			return createIndexes(ctx, db)
		},
	)
}

// EnsureReady is idempotent and safe under concurrent first access. It
// returns nil once the connection is live and every schema is registered.
func (g *Gate) EnsureReady(ctx context.Context) error {
	g.mu.Lock()
	switch g.state {
	case gateReady:
		g.mu.Unlock()
		return nil

	case gateInitializing:
		// Another caller owns the attempt; await its outcome.
		done := g.pending
		g.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.state == gateReady {
			return nil
		}
		return g.err

	default: // gateUninitialized or gateFailed: this caller runs the attempt
		g.state = gateInitializing
		g.pending = make(chan struct{})
		done := g.pending
		g.mu.Unlock()

		err := g.initialize(ctx)

		g.mu.Lock()
		if err != nil {
			g.state = gateFailed
			g.err = err
		} else {
			g.state = gateReady
			g.err = nil
		}
		close(done)
		g.mu.Unlock()
		return err
	}
}

func (g *Gate) initialize(ctx context.Context) error {
	// Wait for the connection to come up, polling at a cooperative interval.
	if err := g.ping(ctx); err != nil {
		logrus.WithError(err).Info("Waiting for database connection")
		ticker := time.NewTicker(g.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
			if err := g.ping(ctx); err == nil {
				break
			}
		}
	}

	if err := g.register(ctx); err != nil {
		return err
	}

	logrus.Info("Database connected and all schemas registered")
	return nil
}

// createIndexes registers the four collections. Index creation is the
// Mongo-side equivalent of schema registration: a missing index here means a
// store invariant (unique email, per-manufacturer category names) would not
// hold.
func createIndexes(ctx context.Context, db *mongo.Database) error {
	steps := []struct {
		collection string
		indexes    []mongo.IndexModel
	}{
		{
			collection: models.CollManufacturers,
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "email", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
			},
		},
		{
			collection: models.CollProducts,
			indexes: []mongo.IndexModel{
				{Keys: bson.D{{Key: "productId", Value: 1}}},
				{Keys: bson.D{{Key: "manufacturer", Value: 1}}},
			},
		},
		{
			collection: models.CollCategories,
			indexes: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "manufacturer", Value: 1}, {Key: "name", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
			},
		},
		{
			collection: models.CollAuthentications,
			indexes: []mongo.IndexModel{
				{Keys: bson.D{{Key: "manufacturer", Value: 1}}},
				{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			},
		},
	}

	for _, step := range steps {
		if _, err := db.Collection(step.collection).Indexes().CreateMany(ctx, step.indexes); err != nil {
			return err
		}
		logrus.WithField("collection", step.collection).Debug("Schema registered")
	}
	return nil
}
