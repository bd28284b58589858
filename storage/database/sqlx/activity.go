package sqlxrepos

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/classreconnect/backend/core/user"
)

type activityRepository struct {
	db *sqlx.DB
}

var _ user.ActivityRepository = (*activityRepository)(nil) // interface compliance check

func NewActivityRepository(db *sqlx.DB) *activityRepository {
	return &activityRepository{db: db}
}

func (repo activityRepository) CreateActivity(ctx context.Context, act user.Activity) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO login_activity (id, user_id, role, event, ip, user_agent, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.New().String(), act.UserID, act.Role, act.Event,
		null.NewString(act.IP, act.IP != ""),
		null.NewString(act.UserAgent, act.UserAgent != ""),
		act.Timestamp.UTC())
	if err != nil {
		return errors.Wrap(err, "inserting login activity")
	}
	return nil
}

func (repo activityRepository) CreateProfileChange(ctx context.Context, chg user.ProfileChange) error {
	changes, err := json.Marshal(chg.Changes)
	if err != nil {
		return errors.Wrap(err, "encoding profile changes")
	}
	_, err = repo.db.ExecContext(ctx, `
		INSERT INTO profile_change (id, user_id, role, changes, ip, user_agent, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.New().String(), chg.UserID, chg.Role, changes,
		null.NewString(chg.IP, chg.IP != ""),
		null.NewString(chg.UserAgent, chg.UserAgent != ""),
		chg.ChangedAt.UTC())
	if err != nil {
		return errors.Wrap(err, "inserting profile change")
	}
	return nil
}
