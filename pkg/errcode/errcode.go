package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Field encoding errors
	FieldsEncodeError
	FieldsDecodeError

	// PostgreSQL store errors
	PgConnectionError
	PgMigrateError
	PgPersistError
	PgLookupError
	PgDeleteError

	// SQLite store errors
	SqliteOpenError
	SqliteTableError
	SqlitePersistError
	SqliteLookupError
	SqliteDeleteError

	// Redis store errors
	RedisConnectionError
	RedisPersistError
	RedisLookupError
	RedisDeleteError
)
