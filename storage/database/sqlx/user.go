package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/classreconnect/backend/core/user"
)

type userRow struct {
	ID              string      `db:"id"`
	FirstName       string      `db:"first_name"`
	LastName        string      `db:"last_name"`
	Email           string      `db:"email"`
	PasswordHash    []byte      `db:"password_hash"`
	Role            string      `db:"role"`
	IsActive        bool        `db:"is_active"`
	Branch          null.String `db:"branch"`
	Semester        null.String `db:"semester"`
	Department      null.String `db:"department"`
	Subject         null.String `db:"subject"`
	EmployeeID      null.String `db:"employee_id"`
	YearsExperience null.String `db:"years_experience"`
	Hobby           null.String `db:"hobby"`
	CreatedAt       time.Time   `db:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at"`
	LastLogin       null.Time   `db:"last_login"`
}

func (r userRow) unpack() user.User {
	return user.User{
		ID:              r.ID,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		PasswordHash:    r.PasswordHash,
		Role:            r.Role,
		IsActive:        r.IsActive,
		Branch:          r.Branch.String,
		Semester:        r.Semester.String,
		Department:      r.Department.String,
		Subject:         r.Subject.String,
		EmployeeID:      r.EmployeeID.String,
		YearsExperience: r.YearsExperience.String,
		Hobby:           r.Hobby.String,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		LastLogin:       r.LastLogin.Time,
	}
}

func packUser(usr user.User) userRow {
	return userRow{
		ID:              usr.ID,
		FirstName:       usr.FirstName,
		LastName:        usr.LastName,
		Email:           usr.Email,
		PasswordHash:    usr.PasswordHash,
		Role:            usr.Role,
		IsActive:        usr.IsActive,
		Branch:          null.NewString(usr.Branch, usr.Branch != ""),
		Semester:        null.NewString(usr.Semester, usr.Semester != ""),
		Department:      null.NewString(usr.Department, usr.Department != ""),
		Subject:         null.NewString(usr.Subject, usr.Subject != ""),
		EmployeeID:      null.NewString(usr.EmployeeID, usr.EmployeeID != ""),
		YearsExperience: null.NewString(usr.YearsExperience, usr.YearsExperience != ""),
		Hobby:           null.NewString(usr.Hobby, usr.Hobby != ""),
		CreatedAt:       usr.CreatedAt.UTC(),
		UpdatedAt:       usr.UpdatedAt.UTC(),
		LastLogin:       null.NewTime(usr.LastLogin.UTC(), !usr.LastLogin.IsZero()),
	}
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo userRepository) CheckEmailUniqueness(ctx context.Context, email, employeeID string, excludedUsers ...user.User) error {
	excluded := make([]string, 0, len(excludedUsers))
	for _, usr := range excludedUsers {
		excluded = append(excluded, usr.ID)
	}

	check := func(column, value string, notFoundErr error) error {
		if value == "" {
			return nil
		}
		query := `SELECT EXISTS (SELECT 1 FROM "user" WHERE ` + column + ` = ?`
		args := []interface{}{value}
		if len(excluded) > 0 {
			q, inArgs, err := sqlx.In(` AND id NOT IN (?)`, excluded)
			if err != nil {
				return errors.Wrap(err, "building exclusion clause")
			}
			query += q
			args = append(args, inArgs...)
		}
		query += `)`

		var exists bool
		if err := repo.db.GetContext(ctx, &exists, repo.db.Rebind(query), args...); err != nil {
			return errors.Wrap(err, "checking user uniqueness")
		}
		if exists {
			return notFoundErr
		}
		return nil
	}

	if err := check("email", email, user.ErrEmailExists); err != nil {
		return err
	}
	return check("employee_id", employeeID, user.ErrEmployeeIDExists)
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = uuid.New().String()
	row := packUser(usr)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO "user" (
			id, first_name, last_name, email, password_hash, role, is_active,
			branch, semester, department, subject, employee_id, years_experience, hobby,
			created_at, updated_at, last_login
		) VALUES (
			:id, :first_name, :last_name, :email, :password_hash, :role, :is_active,
			:branch, :semester, :department, :subject, :employee_id, :years_experience, :hobby,
			:created_at, :updated_at, :last_login
		)`, row)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return row.unpack(), nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return user.User{}, user.ErrNotFound
	}
	var row userRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM "user" WHERE id = $1`, id); err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound, "finding user by ID")
	}
	return row.unpack(), nil
}

func (repo userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var row userRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM "user" WHERE email = $1`, email); err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound, "finding user by email")
	}
	return row.unpack(), nil
}

func (repo userRepository) EarliestTeacher(ctx context.Context) (user.User, error) {
	var row userRow
	err := repo.db.GetContext(ctx, &row, `
		SELECT * FROM "user"
		WHERE role = $1 AND is_active
		ORDER BY created_at, id
		LIMIT 1`, user.RoleTeacher)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNoTeacher
		}
		return user.User{}, errors.Wrap(err, "finding earliest teacher")
	}
	return row.unpack(), nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	row := packUser(usr)
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE "user" SET
			first_name = :first_name, last_name = :last_name, password_hash = :password_hash,
			is_active = :is_active, branch = :branch, semester = :semester,
			department = :department, subject = :subject, years_experience = :years_experience,
			hobby = :hobby, updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return row.unpack(), nil
}

func (repo userRepository) SetLastLogin(ctx context.Context, usr user.User) (user.User, error) {
	usr.LastLogin = time.Now().UTC()
	_, err := repo.db.ExecContext(ctx, `UPDATE "user" SET last_login = $1 WHERE id = $2`, usr.LastLogin, usr.ID)
	if err != nil {
		return user.User{}, errors.Wrap(err, "setting last login")
	}
	return usr, nil
}
