package iopg

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnmodel/pkg/errcode"
)

// ConnectionError creates an error for PostgreSQL connection failures.
func ConnectionError(address string, err error) error {
	msg := `Cannot connect to PostgreSQL

<em>Address:</em> %s

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Connection string is malformed
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running: pg_isready
  2. Verify the connection string and credentials`

	return &gn.Error{
		Code: errcode.PgConnectionError,
		Msg:  msg,
		Vars: []any{address},
		Err:  fmt.Errorf("cannot connect to postgres: %w", err),
	}
}

// MigrateError creates an error for documents table migration
// failures.
func MigrateError(err error) error {
	msg := `Cannot create the documents table

<em>Possible causes:</em>
  - Insufficient database permissions
  - Conflicting table definition from another application

<em>How to fix:</em>
  1. Check the database user has CREATE permissions
  2. Check database logs for details`

	return &gn.Error{
		Code: errcode.PgMigrateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("cannot migrate documents table: %w", err),
	}
}

// PersistError creates an error for document write failures.
func PersistError(kind, id string, err error) error {
	msg := "Cannot save document %q of kind %q"

	return &gn.Error{
		Code: errcode.PgPersistError,
		Msg:  msg,
		Vars: []any{id, kind},
		Err:  fmt.Errorf("cannot persist document: %w", err),
	}
}

// LookupError creates an error for document read failures.
func LookupError(kind, id string, err error) error {
	msg := "Cannot load document %q of kind %q"

	return &gn.Error{
		Code: errcode.PgLookupError,
		Msg:  msg,
		Vars: []any{id, kind},
		Err:  fmt.Errorf("cannot look document up: %w", err),
	}
}

// DeleteError creates an error for document delete failures.
func DeleteError(kind, id string, err error) error {
	msg := "Cannot delete document %q of kind %q"

	return &gn.Error{
		Code: errcode.PgDeleteError,
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
