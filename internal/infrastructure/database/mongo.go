package database

import (
	"context"
	"fmt"
	"time"

	"savora-web/internal/core/persistence"
	"savora-web/internal/infrastructure/config"
	"savora-web/internal/infrastructure/metrics"
	"savora-web/internal/pkg/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// DocumentStore MongoDB 上的歷史與收藏紀錄
type DocumentStore struct {
	client      *mongo.Client
	collections map[persistence.Collection]*mongo.Collection
	timeout     time.Duration
}

// Connect 連線並建立索引
func Connect(ctx context.Context, cfg config.MongoConfig) (*DocumentStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)
	s := &DocumentStore{
		client: client,
		collections: map[persistence.Collection]*mongo.Collection{
			persistence.History:   db.Collection(string(persistence.History)),
			persistence.Favorites: db.Collection(string(persistence.Favorites)),
		},
		timeout: timeout,
	}

	if err := s.createIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	common.LogInfo("文件資料庫已連線",
		zap.String("database", cfg.Database),
	)
	return s, nil
}

func (s *DocumentStore) createIndexes(ctx context.Context) error {
	for name, coll := range s.collections {
		_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		})
		if err != nil {
			return fmt.Errorf("failed to create index on %s: %w", name, err)
		}
	}
	return nil
}

// Append 新增一筆紀錄，timestamp 使用伺服器時間
func (s *DocumentStore) Append(ctx context.Context, collection persistence.Collection, entry persistence.Entry) (string, error) {
	coll, ok := s.collections[collection]
	if !ok {
		return "", fmt.Errorf("unknown collection %q", collection)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	id := primitive.NewObjectID()
	_, err := coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$setOnInsert": entry,
			"$currentDate": bson.M{"timestamp": true},
		},
		options.Update().SetUpsert(true),
	)
	metrics.PersistenceWrite(string(collection), metrics.Outcome(err))
	if err != nil {
		common.LogError("寫入紀錄失敗",
			zap.String("collection", string(collection)),
			zap.String("user_id", entry.UserID),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to write %s entry: %w", collection, err)
	}

	common.LogInfo("紀錄已寫入",
		zap.String("collection", string(collection)),
		zap.String("user_id", entry.UserID),
		zap.String("id", id.Hex()),
	)
	return id.Hex(), nil
}

// Ping 就緒檢查
func (s *DocumentStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Ping(ctx, nil)
}

// Close 中斷連線
func (s *DocumentStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
