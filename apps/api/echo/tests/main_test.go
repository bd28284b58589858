package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	. "github.com/classreconnect/backend/apps/api/echo"
	"github.com/classreconnect/backend/core"
	"github.com/classreconnect/backend/core/assist"
	"github.com/classreconnect/backend/core/conversation"
	"github.com/classreconnect/backend/core/quiz"
	"github.com/classreconnect/backend/core/resource"
	"github.com/classreconnect/backend/core/user"
	answersvc "github.com/classreconnect/backend/services/answers"
	emailsvc "github.com/classreconnect/backend/services/email"
	logsvc "github.com/classreconnect/backend/services/logger"
	dummydb "github.com/classreconnect/backend/storage/database/dummy"
)

var (
	app Server

	usrRepo      user.Repository
	usrSvc       user.Service
	resRepo      resource.Repository
	tombRepo     resource.TombstoneRepository
	resSvc       resource.Service
	quizSvc      quiz.Service
	convSvc      conversation.Service
	answerClient *answersvc.DummyClient

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
	errNotFound     = httpErr{Error: "not found"}
)

var testCatalog = []resource.CatalogEntry{
	{Title: "DBMS Module 1", Subject: "DBMS", Description: "Introduction to databases."},
}

func TestMain(m *testing.M) {
	core.Conf.Debug = false
	core.Conf.TestMode = true

	// set up DB & repos
	db, err := dummydb.Open()
	if err != nil {
		os.Exit(1)
	}
	usrRepo = dummydb.NewUserRepository(db)
	resRepo = dummydb.NewResourceRepository(db)
	tombRepo = dummydb.NewTombstoneRepository(db)

	// set up services
	logger := logsvc.NewNopLogger()
	mailSvc := emailsvc.NewConsoleServiceMock()
	usrSvc = user.NewService(usrRepo, dummydb.NewActivityRepository(db), mailSvc, logger)
	resSvc = resource.NewService(resRepo, tombRepo, dummydb.NewAuditRepository(db), logger)
	quizSvc = quiz.NewService(dummydb.NewQuizRepository(db))
	convSvc = conversation.NewService(dummydb.NewConversationRepository(db))
	answerClient = &answersvc.DummyClient{}
	assistSvc := assist.NewService(answerClient, resRepo, testCatalog, logger)

	// set up server
	app = NewServer(ServerDeps{
		Logger:          logger,
		UserSvc:         usrSvc,
		ResourceSvc:     resSvc,
		QuizSvc:         quizSvc,
		ConversationSvc: convSvc,
		AssistSvc:       assistSvc,
		DisableReqLogs:  true,
	})

	os.Exit(m.Run())
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func unmarchallObj(t *testing.T, rec *httptest.ResponseRecorder, obj interface{}) error {
	t.Helper()
	return json.Unmarshal(rec.Body.Bytes(), obj)
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func TestHealth(t *testing.T) {
	req, rec := newRequest(http.MethodGet, "/api/health")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, map[string]string{"status": "OK", "message": core.Conf.AppName + " API is running"}),
	}, rec)
}
