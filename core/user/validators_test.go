package user

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/classreconnect/backend/core"
)

func Test_validatePassword(t *testing.T) {
	newStudent := func(pwd string) NewStudent {
		return NewStudent{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane.doe@test.cd",
			Password:  pwd,
			Branch:    Branches[0],
			Semester:  Semesters[0],
		}
	}

	tests := []struct {
		name    string
		pwd     string
		wantTag string
	}{
		{name: "too short", pwd: "aB1!", wantTag: pwdMinLenTag},
		{name: "whitespace", pwd: "aB1! aB1!", wantTag: pwdNoSpaceTag},
		{name: "all numeric", pwd: "12345678", wantTag: pwdNotAllNumTag},
		{name: "no uppercase", pwd: "weak1!pwd", wantTag: pwdComplexityTag},
		{name: "no digit", pwd: "Weak!pwd", wantTag: pwdComplexityTag},
		{name: "no special", pwd: "Weak1pwd", wantTag: pwdComplexityTag},
		{name: "similar to email", pwd: "Jane.doe@test.cd1", wantTag: pwdAttrSimTag},
		{name: "valid", pwd: "G00d&Strong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.Validate.Struct(newStudent(tt.pwd))
			if tt.wantTag == "" {
				if err != nil {
					t.Errorf("Validate.Struct() error = %v; want nil", err)
				}
				return
			}
			fieldErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Validate.Struct() error = %v; want ValidationErrors", err)
			}
			for _, fe := range fieldErrs {
				if fe.Tag() == tt.wantTag {
					return
				}
			}
			t.Errorf("Validate.Struct() errors = %v; want tag %v", fieldErrs, tt.wantTag)
		})
	}
}

func Test_registerInValidation_choices(t *testing.T) {
	ns := NewStudent{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane.doe@test.cd",
		Password:  "G00d&Strong",
		Branch:    "UNDERWATER BASKETRY",
		Semester:  Semesters[0],
	}
	err := core.Validate.Struct(ns)
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		t.Fatalf("Validate.Struct() error = %v; want ValidationErrors", err)
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == branchTag {
			return
		}
	}
	t.Errorf("Validate.Struct() errors = %v; want tag %v", fieldErrs, branchTag)
}
