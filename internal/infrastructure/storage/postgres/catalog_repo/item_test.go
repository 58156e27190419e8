package catalog_repo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "items_item_code_key"}

	if !isUniqueViolation(unique) {
		t.Error("23505 must be recognized as a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert item: %w", unique)) {
		t.Error("wrapped 23505 must be recognized")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("a foreign key violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("connection refused")) {
		t.Error("plain errors are not unique violations")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "bill_items_item_id_fkey"}

	if !isForeignKeyViolation(fk) {
		t.Error("23503 must be recognized as a foreign key violation")
	}
	if !isForeignKeyViolation(fmt.Errorf("delete item: %w", fk)) {
		t.Error("wrapped 23503 must be recognized")
	}
	if isForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("a unique violation is not a foreign key violation")
	}
	if isForeignKeyViolation(nil) {
		t.Error("nil is not a foreign key violation")
	}
}
