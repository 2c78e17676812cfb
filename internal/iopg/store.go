// Package iopg implements the storage hook on PostgreSQL. This is an
// impure I/O package: pgxpool carries the connections, GORM owns the
// documents table, field sets travel as jsonb.
package iopg

import (
	"context"
	"errors"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmodel/pkg/conn"
	"github.com/gnames/gnmodel/pkg/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// record is one row of the documents table.
type record struct {
	Kind      string `gorm:"primaryKey;type:varchar(255)"`
	ID        string `gorm:"primaryKey;column:id;type:varchar(255)"`
	Data      string `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

// TableName implements the GORM naming hook.
func (record) TableName() string {
	return "documents"
}

// pgStore implements store.Store over a pgxpool connection.
type pgStore struct {
	pool *pgxpool.Pool
	db   *gorm.DB
	enc  gnfmt.Encoder
}

// Dial connects to PostgreSQL and prepares the documents table. The
// address is a postgres:// URL, typically config.DatabaseConfig.DSN().
// Dial is a conn.Dialer.
func Dial(ctx context.Context, address string) (store.Store, error) {
	poolConfig, err := pgxpool.ParseConfig(address)
	if err != nil {
		return nil, ConnectionError(address, err)
	}
	// Sensible defaults; lifetime and idle limits are left to the
	// server side.
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, ConnectionError(address, err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, ConnectionError(address, err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		pool.Close()
		return nil, ConnectionError(address, err)
	}
	if err = gormDB.AutoMigrate(&record{}); err != nil {
		pool.Close()
		return nil, MigrateError(err)
	}

	return &pgStore{
		pool: pool,
		db:   gormDB,
		enc:  gnfmt.GNjson{},
	}, nil
}

// Ensure the dialer keeps the conn.Dialer shape.
var _ conn.Dialer = Dial

func (s *pgStore) Persist(
	ctx context.Context,
	kind, id string,
	fields store.Fields,
) (string, error) {
	if id == "" {
		id = store.NewID()
	}
	data, err := s.enc.Encode(fields)
	if err != nil {
		return "", EncodeError(kind, err)
	}
	rec := record{
		Kind:      kind,
		ID:        id,
		Data:      string(data),
		UpdatedAt: time.Now(),
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "kind"}, {Name: "id"},
			},
			DoUpdates: clause.AssignmentColumns(
				[]string{"data", "updated_at"},
			),
		}).
		Create(&rec).Error
	if err != nil {
		return "", PersistError(kind, id, err)
	}
	return id, nil
}

func (s *pgStore) Lookup(
	ctx context.Context,
	kind, id string,
) (store.Fields, error) {
	var rec record
	err := s.db.WithContext(ctx).
		Where("kind = ? AND id = ?", kind, id).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, LookupError(kind, id, err)
	}
	var res store.Fields
	if err = s.enc.Decode([]byte(rec.Data), &res); err != nil {
		return nil, DecodeError(kind, id, err)
	}
	return res, nil
}

func (s *pgStore) Delete(
	ctx context.Context,
	kind, id string,
) error {
	err := s.db.WithContext(ctx).
		Where("kind = ? AND id = ?", kind, id).
		Delete(&record{}).Error
	if err != nil {
		return DeleteError(kind, id, err)
	}
	return nil
}

// Close releases the connection pool. Implements store.Closer.
func (s *pgStore) Close(_ context.Context) error {
	s.pool.Close()
	return nil
}
