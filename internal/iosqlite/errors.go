package iosqlite

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnmodel/pkg/errcode"
)

// OpenError creates an error for SQLite open failures.
func OpenError(path string, err error) error {
	msg := `Cannot open SQLite database

<em>Path:</em> %s

<em>Possible causes:</em>
  - Directory does not exist or is not writable
  - File is not an SQLite database`

	return &gn.Error{
		Code: errcode.SqliteOpenError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot open sqlite database: %w", err),
	}
}

// TableError creates an error for documents table creation failures.
func TableError(err error) error {
	msg := "Cannot create the documents table"

	return &gn.Error{
		Code: errcode.SqliteTableError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("cannot create documents table: %w", err),
	}
}

// PersistError creates an error for document write failures.
func PersistError(kind, id string, err error) error {
	msg := "Cannot save document %q of kind %q"

	return &gn.Error{
		Code: errcode.SqlitePersistError,
		Msg:  msg,
		Vars: []any{id, kind},
		Err:  fmt.Errorf("cannot persist document: %w", err),
	}
}

// LookupError creates an error for document read failures.
func LookupError(kind, id string, err error) error {
	msg := "Cannot load document %q of kind %q"

	return &gn.Error{
		Code: errcode.SqliteLookupError,
		Msg:  msg,
		Vars: []any{id, kind},
		Err:  fmt.Errorf("cannot look document up: %w", err),
	}
}

// DeleteError creates an error for document delete failures.
func DeleteError(kind, id string, err error) error {
	msg := "Cannot delete document %q of kind %q"

	return &gn.Error{
		Code: errcode.SqliteDeleteError,
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
