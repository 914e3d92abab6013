package querier

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsMissing(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"no rows":        {err: pgx.ErrNoRows, want: true},
		"wrapped":        {err: fmt.Errorf("load: %w", pgx.ErrNoRows), want: true},
		"malformed uuid": {err: &pgconn.PgError{Code: "22P02"}, want: true},
		"unique":         {err: &pgconn.PgError{Code: "23505"}, want: false},
		"other":          {err: errors.New("boom"), want: false},
		"nil":            {err: nil, want: false},
	}
	for name, tc := range cases {
		if got := IsMissing(tc.err); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, got)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})) {
		t.Fatal("expected wrapped 23505 to be a unique violation")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("foreign key violation is not a unique violation")
	}
	if IsUniqueViolation(pgx.ErrNoRows) {
		t.Fatal("no rows is not a unique violation")
	}
}
