package ioredis

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnmodel/pkg/errcode"
)

// ConnectionError creates an error for Redis connection failures.
func ConnectionError(address string, err error) error {
	msg := `Cannot connect to Redis

<em>Address:</em> %s

<em>Possible causes:</em>
  - Redis is not running
  - URL is malformed (expected redis://host:port/db)

<em>How to fix:</em>
  1. Check if Redis is running: redis-cli ping
  2. Verify the URL and credentials`

	return &gn.Error{
		Code: errcode.RedisConnectionError,
		Msg:  msg,
		Vars: []any{address},
		Err:  fmt.Errorf("cannot connect to redis: %w", err),
	}
}

// PersistError creates an error for document write failures.
func PersistError(kind, id string, err error) error {
	msg := "Cannot save document %q of kind %q"

	return &gn.Error{
		Code: errcode.RedisPersistError,
		Msg:  msg,
		Vars: []any{id, kind},
		Err:  fmt.Errorf("cannot persist document: %w", err),
	}
}

// LookupError creates an error for document read failures.
func LookupError(kind, id string, err error) error {
	msg := "Cannot load document %q of kind %q"

	return &gn.Error{
		Code: errcode.RedisLookupError,
		Msg:  msg,
		Vars: []any{id, kind},
		Err:  fmt.Errorf("cannot look document up: %w", err),
	}
}

// DeleteError creates an error for document delete failures.
func DeleteError(kind, id string, err error) error {
	msg := "Cannot delete document %q of kind %q"

	return &gn.Error{
		Code: errcode.RedisDeleteError,
		Msg:  msg,
		Vars: []any{id, kind},
		Err:  fmt.Errorf("cannot delete document: %w", err),
	}
}

// EncodeError creates an error for field-set encoding failures.
func EncodeError(kind string, err error) error {
	msg := "Cannot encode fields of a %q document"

	return &gn.Error{
		Code: errcode.FieldsEncodeError,
		Msg:  msg,
		Vars: []any{kind},
		Err:  fmt.Errorf("cannot encode fields: %w", err),
	}
}

// DecodeError creates an error for field-set decoding failures.
func DecodeError(kind, id string, err error) error {
	msg := "Cannot decode stored fields of document %q of kind %q"

	return &gn.Error{
		Code: errcode.FieldsDecodeError,
		Msg:  msg,
		Vars: []any{id, kind},
		Err:  fmt.Errorf("cannot decode fields: %w", err),
	}
}
