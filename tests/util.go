package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/classreconnect/backend/core/user"
)

func CreateStudent(
	t *testing.T,
	repo user.Repository,
	first, last, email, pwd string,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	usr := user.User{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Role:      user.RoleStudent,
		IsActive:  true,
		Branch:    user.Branches[0],
		Semester:  user.Semesters[0],
	}
	return createUser(t, repo, usr, pwd, createdAt...)
}

func CreateTeacher(
	t *testing.T,
	repo user.Repository,
	first, last, email, pwd string,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	usr := user.User{
		FirstName:       first,
		LastName:        last,
		Email:           email,
		Role:            user.RoleTeacher,
		IsActive:        true,
		Department:      user.Departments[0],
		Subject:         user.Subjects[0],
		EmployeeID:      "EMP-" + email,
		YearsExperience: user.ExperienceBrackets[0],
		Hobby:           "Reading",
	}
	return createUser(t, repo, usr, pwd, createdAt...)
}

func createUser(t *testing.T, repo user.Repository, usr user.User, pwd string, createdAt ...time.Time) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr.CreatedAt = tstamp
	usr.UpdatedAt = tstamp

	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}
