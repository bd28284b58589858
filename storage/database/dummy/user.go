package dummydb

import (
	"context"
	"time"

	"github.com/classreconnect/backend/core/user"
)

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) *userRepository {
	return &userRepository{db: db.user}
}

func (repo *userRepository) query() []user.User {
	users := make([]user.User, 0, len(repo.db.table))
	for _, u := range repo.db.table {
		users = append(users, *u)
	}
	return users
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email, employeeID string, excludedUsers ...user.User) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, usr := range repo.query() {
		if isExcluded(usr, excludedUsers) {
			continue
		}
		if usr.Email == email {
			return user.ErrEmailExists
		}
		if employeeID != "" && usr.EmployeeID == employeeID {
			return user.ErrEmployeeIDExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr.ID = nextPK()
	repo.db.table[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if usr, ok := repo.db.table[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, usr := range repo.query() {
		if usr.Email == email {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) EarliestTeacher(ctx context.Context) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var earliest *user.User
	for _, usr := range repo.query() {
		if !usr.IsTeacher() {
			continue
		}
		usr := usr
		if earliest == nil ||
			usr.CreatedAt.Before(earliest.CreatedAt) ||
			(usr.CreatedAt.Equal(earliest.CreatedAt) && usr.ID < earliest.ID) {
			earliest = &usr
		}
	}
	if earliest == nil {
		return user.User{}, user.ErrNoTeacher
	}
	return *earliest, nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[usr.ID]; !ok {
		return user.User{}, user.ErrNotFound
	}
	repo.db.table[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) SetLastLogin(ctx context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[usr.ID]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	orig.LastLogin = time.Now().UTC()
	return *orig, nil
}

func isExcluded(usr user.User, excludedUsers []user.User) bool {
	for _, excl := range excludedUsers {
		if excl.ID == usr.ID {
			return true
		}
	}
	return false
}

// activity

type activityRepository struct {
	db *activityTable
}

var _ user.ActivityRepository = (*activityRepository)(nil) // interface compliance check

func NewActivityRepository(db *DB) *activityRepository {
	return &activityRepository{db: db.activity}
}

func (repo *activityRepository) CreateActivity(ctx context.Context, act user.Activity) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	act.ID = nextPK()
	repo.db.activities = append(repo.db.activities, act)
	return nil
}

func (repo *activityRepository) CreateProfileChange(ctx context.Context, chg user.ProfileChange) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	chg.ID = nextPK()
	repo.db.changes = append(repo.db.changes, chg)
	return nil
}

// Activities exposes recorded login activity for tests.
func (repo *activityRepository) Activities() []user.Activity {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append([]user.Activity(nil), repo.db.activities...)
}

// ProfileChanges exposes recorded profile diffs for tests.
func (repo *activityRepository) ProfileChanges() []user.ProfileChange {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append([]user.ProfileChange(nil), repo.db.changes...)
}
