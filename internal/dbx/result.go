package dbx

import (
	"database/sql"
	"fmt"

	"github.com/ikhlashousing/propertycms/internal/common"
)

// ExpectOneRow checks that a single-row UPDATE or DELETE touched exactly one
// row. Zero rows means the target does not exist.
func ExpectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}

	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
