package main

import (
	"context"
	"fmt"

	"github.com/classreconnect/backend/core"
	"github.com/classreconnect/backend/core/user"
)

// addUser creates a user account, or reactivates and re-keys an existing one.
func (cli *commandLine) addUser(email, first, last, role, pwd string) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)
	role = core.CleanString(role, true /* lower */)

	if role != user.RoleStudent && role != user.RoleTeacher {
		return fmt.Errorf("unknown role %q", role)
	}

	usr, err := cli.usrSvc.GetByEmail(ctx, email)
	if err == nil {
		usr.IsActive = true
		if _, err := cli.usrSvc.SetPassword(ctx, usr, pwd); err != nil {
			return err
		}
		fmt.Printf("user %s updated\n", email)
		return nil
	}
	if err != user.ErrNotFound {
		return err
	}

	if role == user.RoleTeacher {
		nt := user.NewTeacher{
			FirstName:       first,
			LastName:        last,
			Email:           email,
			Password:        pwd,
			Department:      "Other",
			Subject:         "Other",
			EmployeeID:      "ADMIN-" + email,
			YearsExperience: "0-1 years",
			Hobby:           "N/A",
		}
		if err := nt.Validate(cli.usrSvc); err != nil {
			return err
		}
		if _, err := cli.usrSvc.RegisterTeacher(ctx, nt); err != nil {
			return err
		}
	} else {
		ns := user.NewStudent{
			FirstName: first,
			LastName:  last,
			Email:     email,
			Password:  pwd,
			Branch:    user.Branches[0],
			Semester:  user.Semesters[0],
		}
		if err := ns.Validate(cli.usrSvc); err != nil {
			return err
		}
		if _, err := cli.usrSvc.RegisterStudent(ctx, ns); err != nil {
			return err
		}
	}
	fmt.Printf("user %s created\n", email)
	return nil
}
