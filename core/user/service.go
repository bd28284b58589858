package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	pkgerrors "github.com/pkg/errors"

	"github.com/classreconnect/backend/core"
)

var (
	// errors
	ErrNotFound         = errors.New("user not found")
	ErrEmailExists      = errors.New("a user with this email already exists")
	ErrEmployeeIDExists = errors.New("a user with this employee ID already exists")
	ErrInvalidCreds     = errors.New("invalid credentials")
	ErrWrongRole        = errors.New("incorrect role selected")
	ErrNotActive        = errors.New("account deactivated")
	ErrNoTeacher        = errors.New("no teacher account found")
)

const (
	employeeIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	systemEmployeePfx  = "SYS-"
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email, employeeID string, excludedUsers ...User) error
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		// EarliestTeacher returns the teacher account with the earliest CreatedAt
		// (ties broken by ID) so callers get a deterministic pick.
		EarliestTeacher(ctx context.Context) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
		SetLastLogin(ctx context.Context, usr User) (User, error)
	}

	// ActivityRepository persists audit entries. All writes are best-effort:
	// callers log failures and move on.
	ActivityRepository interface {
		CreateActivity(ctx context.Context, act Activity) error
		CreateProfileChange(ctx context.Context, chg ProfileChange) error
	}

	Service interface {
		RegisterStudent(ctx context.Context, ns NewStudent) (User, error)
		RegisterTeacher(ctx context.Context, nt NewTeacher) (User, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByEmail(ctx context.Context, email string) (User, error)
		Authenticate(ctx context.Context, email, pwd, role string) (User, error)
		UpdateProfile(ctx context.Context, usr User, up UpdateProfile, meta RequestMeta) (User, error)
		RecordActivity(ctx context.Context, usr User, event string, meta RequestMeta) error
		// EnsureDefaultTeacher resolves the owner for seeded resources: the
		// earliest-created teacher, or a new synthetic "System Teacher" when
		// none exists.
		EnsureDefaultTeacher(ctx context.Context) (User, error)
		CheckUniqueness(email, employeeID string, excludedUsers ...User) error
		SetPassword(ctx context.Context, usr User, pwd string) (User, error)
	}

	service struct {
		repo    Repository
		actRepo ActivityRepository
		mailSvc core.EmailService
		logger  core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, actRepo ActivityRepository, mailSvc core.EmailService, logger core.Logger) *service {
	return &service{
		repo:    repo,
		actRepo: actRepo,
		mailSvc: mailSvc,
		logger:  logger,
	}
}

func (svc *service) CheckUniqueness(email, employeeID string, excludedUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(context.Background(), email, employeeID, excludedUsers...); err != nil {
		var field string
		switch err {
		case ErrEmailExists:
			field = "email"
		case ErrEmployeeIDExists:
			field = "employee_id"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

func (svc *service) RegisterStudent(ctx context.Context, ns NewStudent) (User, error) {
	now := time.Now().UTC()
	usr := User{
		FirstName: ns.FirstName,
		LastName:  ns.LastName,
		Email:     ns.Email,
		Role:      RoleStudent,
		IsActive:  true,
		Branch:    ns.Branch,
		Semester:  ns.Semester,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(ns.Password); err != nil {
		return User{}, err
	}
	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, err
	}
	svc.sendWelcomeMail(usr)
	return usr, nil
}

func (svc *service) RegisterTeacher(ctx context.Context, nt NewTeacher) (User, error) {
	now := time.Now().UTC()
	usr := User{
		FirstName:       nt.FirstName,
		LastName:        nt.LastName,
		Email:           nt.Email,
		Role:            RoleTeacher,
		IsActive:        true,
		Department:      nt.Department,
		Subject:         nt.Subject,
		EmployeeID:      nt.EmployeeID,
		YearsExperience: nt.YearsExperience,
		Hobby:           nt.Hobby,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := usr.SetPassword(nt.Password); err != nil {
		return User{}, err
	}
	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, err
	}
	svc.sendWelcomeMail(usr)
	return usr, nil
}

func (svc *service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

// Authenticate checks the credentials and, when `role` is provided, that it
// matches the account's role. LastLogin is set on success.
func (svc *service) Authenticate(ctx context.Context, email, pwd, role string) (User, error) {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		if err == ErrNotFound {
			return User{}, ErrInvalidCreds
		}
		return User{}, pkgerrors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidCreds
	}
	if role := core.CleanString(role, true /* lower */); role != "" && role != usr.Role {
		return User{}, ErrWrongRole
	}
	if !usr.IsActive {
		return User{}, ErrNotActive
	}
	usr, err = svc.repo.SetLastLogin(ctx, usr)
	if err != nil {
		return User{}, pkgerrors.Wrap(err, "setting lastLogin")
	}
	return usr, nil
}

func (svc *service) UpdateProfile(ctx context.Context, usr User, up UpdateProfile, meta RequestMeta) (User, error) {
	updated, changes := up.Apply(usr)
	if len(changes) == 0 {
		return usr, nil
	}
	updated.UpdatedAt = time.Now().UTC()

	updated, err := svc.repo.UpdateUser(ctx, updated)
	if err != nil {
		return User{}, pkgerrors.Wrap(err, "updating user")
	}

	chg := ProfileChange{
		UserID:    updated.ID,
		Role:      updated.Role,
		Changes:   changes,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		ChangedAt: time.Now().UTC(),
	}
	if err := svc.actRepo.CreateProfileChange(ctx, chg); err != nil {
		svc.logger.Warn("recording profile change", err, updated)
	}
	return updated, nil
}

func (svc *service) RecordActivity(ctx context.Context, usr User, event string, meta RequestMeta) error {
	act := Activity{
		UserID:    usr.ID,
		Role:      usr.Role,
		Event:     event,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Timestamp: time.Now().UTC(),
	}
	return svc.actRepo.CreateActivity(ctx, act)
}

func (svc *service) EnsureDefaultTeacher(ctx context.Context) (User, error) {
	usr, err := svc.repo.EarliestTeacher(ctx)
	if err == nil {
		return usr, nil
	}
	if err != ErrNoTeacher {
		return User{}, pkgerrors.Wrap(err, "finding earliest teacher")
	}

	eid, err := gonanoid.Generate(employeeIDAlphabet, 6)
	if err != nil {
		return User{}, pkgerrors.Wrap(err, "generating employee ID")
	}
	now := time.Now().UTC()
	sys := User{
		FirstName:       "System",
		LastName:        "Teacher",
		Email:           "system.teacher@classreconnect.local",
		Role:            RoleTeacher,
		IsActive:        true,
		Department:      "Computer Science",
		Subject:         "Other",
		EmployeeID:      systemEmployeePfx + eid,
		YearsExperience: "6-10 years",
		Hobby:           "Seeding default resources",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := sys.SetPassword("Temp123!"); err != nil {
		return User{}, err
	}
	sys, err = svc.repo.CreateUser(ctx, sys)
	if err != nil {
		return User{}, pkgerrors.Wrap(err, "creating system teacher")
	}
	return sys, nil
}

func (svc *service) SetPassword(ctx context.Context, usr User, pwd string) (User, error) {
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, err
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *service) sendWelcomeMail(usr User) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.FullName(), Address: usr.Email}},
		Subject:      fmt.Sprintf("Welcome to %s", core.Conf.AppName),
		TemplateName: "welcome",
		TemplateData: struct{ Name string }{usr.FirstName},
	})
}
