package user

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/classreconnect/backend/core"
)

// Roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

var AllRoles = []string{RoleStudent, RoleTeacher}

// Student branches
var Branches = []string{"COMPS", "IT", "AIDS", "EXTC"}

// Semesters
var Semesters = []string{
	"Semester 1", "Semester 2", "Semester 3", "Semester 4",
	"Semester 5", "Semester 6", "Semester 7", "Semester 8",
}

// Teacher departments
var Departments = []string{
	"Computer Science", "Information Technology", "Electronics & Telecommunication",
	"Artificial Intelligence", "Mathematics", "Other",
}

// Teacher subjects
var Subjects = []string{
	"Data Structures", "Database Management", "Digital Logic & Computer Organization",
	"Discrete Structures & Graph Theory", "Mathematics", "Programming Languages", "Other",
}

// Teacher experience brackets
var ExperienceBrackets = []string{
	"0-1 years", "2-3 years", "4-5 years", "6-10 years",
	"11-15 years", "16-20 years", "20+ years",
}

type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	PasswordHash []byte    `json:"-"`

	// student profile
	Branch   string `json:"branch,omitempty"`
	Semester string `json:"semester,omitempty"`

	// teacher profile
	Department      string `json:"department,omitempty"`
	Subject         string `json:"subject,omitempty"`
	EmployeeID      string `json:"employee_id,omitempty"`
	YearsExperience string `json:"years_experience,omitempty"`
	Hobby           string `json:"hobby,omitempty"`

	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
	LastLogin time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NewStudent contains information needed to register a student.
type NewStudent struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Branch    string `json:"branch" validate:"required,branch"`
	Semester  string `json:"semester" validate:"required,semester"`
}

func (ns *NewStudent) Validate(svc Service) error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)

	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckUniqueness(ns.Email, "")
}

// NewTeacher contains information needed to register a teacher.
type NewTeacher struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	Department      string `json:"department" validate:"required,department"`
	Subject         string `json:"subject" validate:"required,subject"`
	EmployeeID      string `json:"employee_id" validate:"required"`
	YearsExperience string `json:"years_experience" validate:"required,experience"`
	Hobby           string `json:"hobby" validate:"required"`
}

func (nt *NewTeacher) Validate(svc Service) error {
	nt.FirstName = core.CleanString(nt.FirstName)
	nt.LastName = core.CleanString(nt.LastName)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.EmployeeID = core.CleanString(nt.EmployeeID)
	nt.Hobby = core.CleanString(nt.Hobby)

	if err := core.Validate.Struct(nt); err != nil {
		return err
	}
	return svc.CheckUniqueness(nt.Email, nt.EmployeeID)
}

// UpdateProfile defines what information may be provided to modify an existing User.
// Password changes go through the admin CLI, not this path.
type UpdateProfile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// student profile
	Branch   string `json:"branch" validate:"omitempty,branch"`
	Semester string `json:"semester" validate:"omitempty,semester"`

	// teacher profile
	Department      string `json:"department" validate:"omitempty,department"`
	Subject         string `json:"subject" validate:"omitempty,subject"`
	YearsExperience string `json:"years_experience" validate:"omitempty,experience"`
	Hobby           string `json:"hobby"`
}

func (up *UpdateProfile) Validate() error {
	up.FirstName = core.CleanString(up.FirstName)
	up.LastName = core.CleanString(up.LastName)
	up.Hobby = core.CleanString(up.Hobby)
	return core.Validate.Struct(up)
}

// Apply copies the provided fields onto usr and returns the per-field changes.
func (up UpdateProfile) Apply(usr User) (User, []FieldChange) {
	var changes []FieldChange
	set := func(field string, dst *string, val string) {
		if val != "" && val != *dst {
			changes = append(changes, FieldChange{Field: field, OldValue: *dst, NewValue: val})
			*dst = val
		}
	}
	set("first_name", &usr.FirstName, up.FirstName)
	set("last_name", &usr.LastName, up.LastName)
	if usr.IsStudent() {
		set("branch", &usr.Branch, up.Branch)
		set("semester", &usr.Semester, up.Semester)
	}
	if usr.IsTeacher() {
		set("department", &usr.Department, up.Department)
		set("subject", &usr.Subject, up.Subject)
		set("years_experience", &usr.YearsExperience, up.YearsExperience)
		set("hobby", &usr.Hobby, up.Hobby)
	}
	return usr, changes
}

// Activity is a login/logout audit entry. Writes are best-effort.
type Activity struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Event     string    `json:"event"` // login | logout
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	Timestamp time.Time `json:"timestamp"`
}

// Activity events
const (
	EventLogin  = "login"
	EventLogout = "logout"
)

type FieldChange struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// ProfileChange records a profile update diff. Writes are best-effort.
type ProfileChange struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Role      string        `json:"role"`
	Changes   []FieldChange `json:"changes"`
	IP        string        `json:"ip"`
	UserAgent string        `json:"user_agent"`
	ChangedAt time.Time     `json:"changed_at"`
}

// RequestMeta carries request attribution for audit entries.
type RequestMeta struct {
	IP        string
	UserAgent string
}
