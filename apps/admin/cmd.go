package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/classreconnect/backend/core/resource"
	"github.com/classreconnect/backend/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db       *sqlx.DB
	usrSvc   user.Service
	tombRepo resource.TombstoneRepository
	seeder   *resource.Seeder
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate [ARGS...]                              - run database migrations (up by default)")
	fmt.Println("  adduser -email EMAIL -first NAME -last NAME [-role student|teacher] - create or reactivate a user")
	fmt.Println("  resetpassword -email EMAIL                     - reset user's password")
	fmt.Println("  seed                                           - insert missing default resources")
	fmt.Println("  restoredefault -title TITLE                    - clear a default resource's deletion record")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserEmail := addUserCmd.String("email", "", "The user's email. The password will be prompted next.")
	addUserFirst := addUserCmd.String("first", "", "The user's first name.")
	addUserLast := addUserCmd.String("last", "", "The user's last name.")
	addUserRole := addUserCmd.String("role", user.RoleStudent, "The user's role: student or teacher.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The user's email. The password will be prompted next.")

	restoreDefaultCmd := flag.NewFlagSet("restoredefault", flag.ExitOnError)
	restoreDefaultTitle := restoreDefaultCmd.String("title", "", "The default resource title to allow reseeding for.")

	switch args[1] {
	case "migrate":
		return cli.migrate(args[2:])
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" || *addUserFirst == "" || *addUserLast == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserEmail, *addUserFirst, *addUserLast, *addUserRole, pwd)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordEmail, pwd)
	case "seed":
		return cli.seed()
	case "restoredefault":
		if err := restoreDefaultCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *restoreDefaultTitle == "" {
			restoreDefaultCmd.Usage()
			return errHelp
		}
		return cli.restoreDefault(*restoreDefaultTitle)
	default:
		cli.printUsage()
		return errHelp
	}
}

func promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
