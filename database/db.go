package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"doitto/config"
	"doitto/database/repository"
	"doitto/utils"

	firebase "firebase.google.com/go/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

// Backend is the process-wide backing store: the typed Gateway plus the
// hooks the health monitor and shutdown path need.
type Backend struct {
	Driver  string
	Gateway *repository.Gateway
	Ping    func(ctx context.Context) error
	Close   func() error
}

// Open builds the Gateway selected by STORE_DRIVER. app is only used by the
// firestore driver and may be nil otherwise.
func Open(ctx context.Context, app *firebase.App) (*Backend, error) {
	driver := strings.ToLower(strings.TrimSpace(config.AppConfig.StoreDriver))
	switch driver {
	case "", "firestore":
		return openFirestore(ctx, app)
	case "mongo", "mongodb":
		return openMongo(ctx)
	case "memory":
		utils.GetLogger().Warn("Using in-memory store; data is lost on exit")
		return &Backend{
			Driver:  "memory",
			Gateway: repository.NewMemoryGateway(),
			Ping:    func(context.Context) error { return nil },
			Close:   func() error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", config.AppConfig.StoreDriver)
	}
}

func openFirestore(ctx context.Context, app *firebase.App) (*Backend, error) {
	if app == nil {
		return nil, errors.New("firestore driver requires a firebase app")
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open firestore client: %w", err)
	}
	utils.GetLogger().Info("Connected to Firestore", zap.String("project", config.AppConfig.FirebaseProjectID))

	ping := func(ctx context.Context) error {
		iter := client.Collection(config.HelpersCollection).Limit(1).Documents(ctx)
		defer iter.Stop()
		if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
			return err
		}
		return nil
	}
	return &Backend{
		Driver:  "firestore",
		Gateway: repository.NewFirestoreGateway(client),
		Ping:    ping,
		Close:   client.Close,
	}, nil
}

func openMongo(ctx context.Context) (*Backend, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	db := client.Database(config.AppConfig.DatabaseName)
	if err := repository.EnsureMongoIndexes(ctx, db); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Connected to MongoDB", zap.String("database", config.AppConfig.DatabaseName))

	return &Backend{
		Driver:  "mongo",
		Gateway: repository.NewMongoGateway(db),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		Close: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return client.Disconnect(ctx)
		},
	}, nil
}
