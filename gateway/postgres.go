package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Govind-619/Sodfaa/utils"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Record is the single table behind every collection
type Record struct {
	ID         string         `gorm:"primaryKey;size:36"`
	Collection string         `gorm:"size:64;not null;index"`
	Data       datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Record) TableName() string {
	return "records"
}

func (r Record) document() Document {
	return Document{ID: r.ID, Data: json.RawMessage(r.Data), CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

// PostgresGateway stores documents as jsonb rows
type PostgresGateway struct {
	db   *gorm.DB
	feed ChangeFeed
	hub  *hub
}

// OpenPostgres connects with dsn and migrates the records table
func OpenPostgres(dsn string, feed ChangeFeed) (*PostgresGateway, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return NewPostgresGateway(db, feed), nil
}

// NewPostgresGateway wraps an open gorm connection. A nil feed means a LocalFeed.
func NewPostgresGateway(db *gorm.DB, feed ChangeFeed) *PostgresGateway {
	if feed == nil {
		feed = NewLocalFeed()
	}
	g := &PostgresGateway{db: db, feed: feed}
	g.hub = newHub(feed, g.List)
	return g
}

func (g *PostgresGateway) Create(ctx context.Context, collection string, record interface{}) (string, error) {
	data, err := encodeRecord(record)
	if err != nil {
		return "", persistenceError("create", collection, "", err)
	}
	rec := Record{ID: uuid.NewString(), Collection: collection, Data: datatypes.JSON(data)}
	if err := g.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", persistenceError("create", collection, "", err)
	}
	g.publish(ctx, collection)
	return rec.ID, nil
}

func (g *PostgresGateway) Get(ctx context.Context, collection, id string) (Document, error) {
	rec, err := g.find(ctx, collection, id)
	if err != nil {
		return Document{}, persistenceError("get", collection, id, err)
	}
	return rec.document(), nil
}

func (g *PostgresGateway) List(ctx context.Context, collection string, q Query) ([]Document, error) {
	var recs []Record
	if err := g.listScope(ctx, collection, q).Find(&recs).Error; err != nil {
		return nil, persistenceError("list", collection, "", err)
	}

	docs := make([]Document, len(recs))
	for i, r := range recs {
		docs[i] = r.document()
	}
	return applyQuery(docs, q), nil
}

// listScope pushes the equality filters of q down into the jsonb column
func (g *PostgresGateway) listScope(ctx context.Context, collection string, q Query) *gorm.DB {
	tx := g.db.WithContext(ctx).Where("collection = ?", collection)
	for field, value := range q.Where {
		tx = tx.Where(datatypes.JSONQuery("data").Equals(value, field))
	}
	return tx
}

func (g *PostgresGateway) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	rec, err := g.find(ctx, collection, id)
	if err != nil {
		return persistenceError("update", collection, id, err)
	}
	data, err := mergeFields(json.RawMessage(rec.Data), fields)
	if err != nil {
		return persistenceError("update", collection, id, err)
	}
	rec.Data = datatypes.JSON(data)
	if err := g.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return persistenceError("update", collection, id, err)
	}
	g.publish(ctx, collection)
	return nil
}

func (g *PostgresGateway) DeleteByID(ctx context.Context, collection, id string) error {
	result := g.db.WithContext(ctx).Where("id = ? AND collection = ?", id, collection).Delete(&Record{})
	if result.Error != nil {
		return persistenceError("delete", collection, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return persistenceError("delete", collection, id, ErrNotFound)
	}
	g.publish(ctx, collection)
	return nil
}

func (g *PostgresGateway) Subscribe(ctx context.Context, collection string, q Query, onChange func([]Document)) (func(), error) {
	return g.hub.subscribe(ctx, collection, q, onChange)
}

func (g *PostgresGateway) Close() error {
	g.hub.close()
	ferr := g.feed.Close()
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	return ferr
}

func (g *PostgresGateway) find(ctx context.Context, collection, id string) (Record, error) {
	var rec Record
	err := g.db.WithContext(ctx).Where("id = ? AND collection = ?", id, collection).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, ErrNotFound
	}
	return rec, err
}

func (g *PostgresGateway) publish(ctx context.Context, collection string) {
	if err := g.feed.Publish(ctx, collection); err != nil {
		utils.LogError("publish change for %s failed: %v", collection, err)
	}
}
