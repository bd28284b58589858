package tests

import (
	"context"
	"net/http"
	"testing"

	. "github.com/classreconnect/backend/apps/api/echo"
	"github.com/classreconnect/backend/core/user"
	testutil "github.com/classreconnect/backend/tests"
)

func TestAuthRegister(t *testing.T) {
	studentBody := func(email string) []byte {
		return marchallObj(t, user.NewStudent{
			FirstName: "John",
			LastName:  "Doe",
			Email:     email,
			Password:  "G00d&Strong",
			Branch:    user.Branches[0],
			Semester:  user.Semesters[0],
		})
	}
	teacherBody := marchallObj(t, user.NewTeacher{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane.reg@test.cd",
		Password:        "G00d&Strong",
		Department:      user.Departments[0],
		Subject:         user.Subjects[0],
		EmployeeID:      "EMP-9001",
		YearsExperience: user.ExperienceBrackets[0],
		Hobby:           "Chess",
	})

	tests := []struct {
		name     string
		path     string
		body     []byte
		wantCode int
		wantRole string
		wantErrs []string // field names in a validation error response
	}{
		{name: "register student", path: "/api/auth/register/student", body: studentBody("john.reg@test.cd"),
			wantCode: http.StatusCreated, wantRole: user.RoleStudent},
		{name: "register teacher", path: "/api/auth/register/teacher", body: teacherBody,
			wantCode: http.StatusCreated, wantRole: user.RoleTeacher},
		{name: "duplicate email", path: "/api/auth/register/student", body: studentBody("john.reg@test.cd"),
			wantCode: http.StatusBadRequest, wantErrs: []string{"email"}},
		{name: "missing fields", path: "/api/auth/register/student", body: marchallObj(t, user.NewStudent{Password: "G00d&Strong"}),
			wantCode: http.StatusBadRequest, wantErrs: []string{"first_name", "last_name", "email", "branch", "semester"}},
		{name: "weak password", path: "/api/auth/register/student",
			body: marchallObj(t, user.NewStudent{
				FirstName: "Weak", LastName: "Pwd", Email: "weak.reg@test.cd",
				Password: "12345678", Branch: user.Branches[0], Semester: user.Semesters[0],
			}),
			wantCode: http.StatusBadRequest, wantErrs: []string{"password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, tt.path, tt.body)
			app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantErrs != nil {
				var fldErrs map[string]string
				if err := unmarchallObj(t, rec, &fldErrs); err != nil {
					t.Fatalf("decoding error response: %v", err)
				}
				for _, fld := range tt.wantErrs {
					if _, ok := fldErrs[fld]; !ok {
						t.Errorf("missing field error %q in %v", fld, fldErrs)
					}
				}
				return
			}

			var resp AuthResponse
			if err := unmarchallObj(t, rec, &resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.Token == "" {
				t.Error("response token is empty")
			}
			if resp.User.Role != tt.wantRole {
				t.Errorf("response user role = %v; want %v", resp.User.Role, tt.wantRole)
			}
		})
	}
}

func TestAuthLogin(t *testing.T) {
	student := testutil.CreateStudent(t, usrRepo, "Log", "In", "log.in@test.cd", "G00d&Strong")

	inactive := testutil.CreateStudent(t, usrRepo, "No", "Entry", "no.entry@test.cd", "G00d&Strong")
	inactive.IsActive = false
	if _, err := usrRepo.UpdateUser(context.Background(), inactive); err != nil {
		t.Fatalf("UpdateUser() failed: %v", err)
	}

	login := func(email, pwd, role string) []byte {
		return marchallObj(t, LoginRequest{Email: email, Password: pwd, Role: role})
	}

	tests := []struct {
		name     string
		body     []byte
		wantCode int
		wantErr  string
	}{
		{name: "ok", body: login("log.in@test.cd", "G00d&Strong", user.RoleStudent), wantCode: http.StatusOK},
		{name: "no role ok", body: login("log.in@test.cd", "G00d&Strong", ""), wantCode: http.StatusOK},
		{name: "unknown email", body: login("ghost@test.cd", "G00d&Strong", ""),
			wantCode: http.StatusUnauthorized, wantErr: "invalid credentials"},
		{name: "bad password", body: login("log.in@test.cd", "nope", ""),
			wantCode: http.StatusUnauthorized, wantErr: "invalid credentials"},
		{name: "wrong role", body: login("log.in@test.cd", "G00d&Strong", user.RoleTeacher),
			wantCode: http.StatusForbidden, wantErr: "incorrect role selected"},
		{name: "deactivated", body: login("no.entry@test.cd", "G00d&Strong", ""),
			wantCode: http.StatusForbidden, wantErr: "account deactivated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/auth/login", tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantErr != "" {
				checkCodeAndData(t, httpTest{wantCode: tt.wantCode, wantData: marchallObj(t, httpErr{Error: tt.wantErr})}, rec)
				return
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, tt.wantCode, rec.Body.String())
			}
			var resp AuthResponse
			if err := unmarchallObj(t, rec, &resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.Message != "Login successful" {
				t.Errorf("response message = %v; want Login successful", resp.Message)
			}
			if resp.Token == "" {
				t.Error("response token is empty")
			}
			if resp.User.ID != student.ID {
				t.Errorf("response user = %v; want %v", resp.User.ID, student.ID)
			}
		})
	}
}

func TestAuthProfile(t *testing.T) {
	student := testutil.CreateStudent(t, usrRepo, "Pro", "File", "pro.file@test.cd", "")
	token := getToken(t, student)

	t.Run("requires auth", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/auth/profile")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("get", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/auth/profile", token)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, UserResponse{User: student})}, rec)
	})

	t.Run("update", func(t *testing.T) {
		body := marchallObj(t, user.UpdateProfile{FirstName: "Prudence", Semester: user.Semesters[2]})
		req, rec := newAuthRequest(http.MethodPut, "/api/auth/profile", token, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
		}
		var resp AuthResponse
		if err := unmarchallObj(t, rec, &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp.User.FirstName != "Prudence" || resp.User.Semester != user.Semesters[2] {
			t.Errorf("updated user = %v %v; want Prudence %v", resp.User.FirstName, resp.User.Semester, user.Semesters[2])
		}
	})

	t.Run("update rejects bad choices", func(t *testing.T) {
		body := marchallObj(t, map[string]string{"semester": "Semester 99"})
		req, rec := newAuthRequest(http.MethodPut, "/api/auth/profile", token, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("failed! code = %v; want %v", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestAuthTokenRefresh(t *testing.T) {
	student := testutil.CreateStudent(t, usrRepo, "Re", "Fresh", "re.fresh@test.cd", "")
	token := getToken(t, student)

	req, rec := newAuthRequest(http.MethodPost, "/api/auth/token-refresh", token)
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %v", rec.Code, rec.Body.String())
	}
	var resp TokenResponse
	if err := unmarchallObj(t, rec, &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Error("refreshed token is empty")
	}
}

func TestAuthLogout(t *testing.T) {
	student := testutil.CreateStudent(t, usrRepo, "Log", "Out", "log.out@test.cd", "")

	req, rec := newAuthRequest(http.MethodPost, "/api/auth/logout", getToken(t, student))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, MessageResponse{Message: "Logout recorded"}),
	}, rec)
}
