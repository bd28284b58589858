package assist_test

import (
	"context"
	"strings"
	"testing"

	"github.com/classreconnect/backend/core"
	"github.com/classreconnect/backend/core/assist"
	"github.com/classreconnect/backend/core/resource"
	"github.com/classreconnect/backend/core/user"
	answersvc "github.com/classreconnect/backend/services/answers"
	logsvc "github.com/classreconnect/backend/services/logger"
	dummydb "github.com/classreconnect/backend/storage/database/dummy"
	testutil "github.com/classreconnect/backend/tests"
)

var testCatalog = []resource.CatalogEntry{
	{Title: "DBMS Module 1", Subject: "DBMS", Description: "Introduction to databases."},
	{Title: "DS Module 1", Subject: "Data Structures"},
}

func setup(t *testing.T, client assist.AnswerClient) (assist.Service, resource.Repository, user.Repository) {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	resRepo := dummydb.NewResourceRepository(db)
	svc := assist.NewService(client, resRepo, testCatalog, logsvc.NewNopLogger())
	return svc, resRepo, dummydb.NewUserRepository(db)
}

func TestService_Answer(t *testing.T) {
	ctx := context.Background()
	client := &answersvc.DummyClient{Text: "Normalization reduces redundancy."}
	svc, resRepo, usrRepo := setup(t, client)

	teacher := testutil.CreateTeacher(t, usrRepo, "Jane", "Doe", "jane@test.cd", "")
	if _, err := resRepo.CreateResource(ctx, resource.Resource{
		Title:      "OS Cheat Sheet",
		Subject:    "Operating Systems",
		UploadedBy: teacher.ID,
	}); err != nil {
		t.Fatalf("CreateResource() failed: %v", err)
	}

	ans, err := svc.Answer(ctx, "  What is normalization?  ")
	if err != nil {
		t.Fatalf("Answer() failed: %v", err)
	}
	if ans.Source != "dummy" {
		t.Errorf("Answer() source = %v; want dummy", ans.Source)
	}
	if ans.Text != client.Text {
		t.Errorf("Answer() text = %v; want %v", ans.Text, client.Text)
	}

	if len(client.Questions) != 1 || client.Questions[0] != "What is normalization?" {
		t.Errorf("client questions = %v; want cleaned question", client.Questions)
	}
	studyCtx := client.Contexts[0]
	for _, want := range []string{"OS Cheat Sheet", "[Operating Systems]", "DBMS Module 1", "Introduction to databases."} {
		if !strings.Contains(studyCtx, want) {
			t.Errorf("study context missing %q:\n%v", want, studyCtx)
		}
	}
}

func TestService_Answer_emptyQuestion(t *testing.T) {
	svc, _, _ := setup(t, &answersvc.DummyClient{Text: "nope"})

	_, err := svc.Answer(context.Background(), "   ")
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("Answer() error = %v; want ValidationError", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "question" {
		t.Errorf("Answer() validation fields = %v; want question", vErr.Fields)
	}
}

func TestService_Answer_unavailable(t *testing.T) {
	svc, _, _ := setup(t, &answersvc.DummyClient{Err: assist.ErrUnavailable})

	if _, err := svc.Answer(context.Background(), "Anyone home?"); err != assist.ErrUnavailable {
		t.Errorf("Answer() error = %v; want %v", err, assist.ErrUnavailable)
	}
}

func TestParseQuestions(t *testing.T) {
	text := "Suggested questions:\r\n" +
		"1. What is a database?\n" +
		"2.    What is an index?   \n" +
		"\n" +
		"not numbered\n" +
		"10. Why normalize?\n"

	got := assist.ParseQuestions(text)
	want := []string{"What is a database?", "What is an index?", "Why normalize?"}
	if len(got) != len(want) {
		t.Fatalf("ParseQuestions() = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseQuestions()[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}
