package sqlxrepos

import (
	"database/sql"

	"github.com/pkg/errors"
)

// trapNoRowsErr maps psql "no rows" err to the domain's not-found sentinel.
func trapNoRowsErr(err, notFoundErr error, msg string) error {
	if err == sql.ErrNoRows {
		return notFoundErr
	}
	return errors.Wrap(err, msg)
}
