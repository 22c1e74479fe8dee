package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	constraintItemName           = `uni_items_name`
	constraintPackingEntryWorker = `fk_packing_entries_worker`
	constraintPackingEntryItem   = `fk_packing_entries_item`
	constraintSaleItem           = `fk_sales_item`
	constraintSaleBuyer          = `fk_sales_buyer`
)

func isUniqueViolation(err error, constraint string) bool {
	return isPgError(err, pgerrcode.UniqueViolation, constraint)
}

func isForeignKeyViolation(err error, constraint string) bool {
	return isPgError(err, pgerrcode.ForeignKeyViolation, constraint)
}

func isPgError(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}

	return constraint == "" ||
		pgErr.ConstraintName == constraint ||
		strings.Contains(pgErr.Message, `"`+constraint+`"`)
}
