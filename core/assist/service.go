package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/classreconnect/backend/core"
	"github.com/classreconnect/backend/core/resource"
)

var (
	// errors
	ErrEmptyQuestion = errors.New("question is required")
	ErrUnavailable   = errors.New("AI service unavailable")
)

// maxContextResources caps how many resource titles are sent as grounding
// context to the answer service.
const maxContextResources = 8

type (
	// AnswerClient is an external service that can answer a free-form
	// question, optionally grounded in local study context.
	AnswerClient interface {
		// Answer returns the generated answer text. ErrUnavailable must be
		// returned when the backing service is unreachable or unconfigured.
		Answer(ctx context.Context, question, studyContext string) (string, error)
		// Source names the backing service for response attribution.
		Source() string
	}

	Answer struct {
		Source string `json:"source"`
		Text   string `json:"answer"`
	}

	Service interface {
		Answer(ctx context.Context, question string) (Answer, error)
		PredefinedQuestions() ([]string, error)
	}

	service struct {
		client  AnswerClient
		resRepo resource.Repository
		catalog []resource.CatalogEntry
		logger  core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(client AnswerClient, resRepo resource.Repository, catalog []resource.CatalogEntry, logger core.Logger) *service {
	return &service{
		client:  client,
		resRepo: resRepo,
		catalog: catalog,
		logger:  logger,
	}
}

func (svc *service) Answer(ctx context.Context, question string) (Answer, error) {
	q := core.CleanString(question)
	if q == "" {
		return Answer{}, core.NewValidationError(ErrEmptyQuestion, core.FieldError{Field: "question", Error: ErrEmptyQuestion.Error()})
	}

	text, err := svc.client.Answer(ctx, q, svc.studyContext(ctx))
	if err != nil {
		if pkgerrors.Cause(err) == ErrUnavailable {
			return Answer{}, ErrUnavailable
		}
		return Answer{}, pkgerrors.Wrap(err, "answering question")
	}
	return Answer{Source: svc.client.Source(), Text: text}, nil
}

// studyContext lists up to maxContextResources stored + catalog resources so
// answers can reference the site's subjects. A failed resource load degrades
// to catalog-only context rather than failing the question.
func (svc *service) studyContext(ctx context.Context) string {
	type entry struct{ title, subject, description string }

	var entries []entry
	if stored, err := svc.resRepo.QueryAllResources(ctx); err != nil {
		svc.logger.Warn("loading resources for study context", err)
	} else {
		for _, res := range stored {
			entries = append(entries, entry{res.Title, res.Subject, res.Description})
		}
	}
	for _, cat := range svc.catalog {
		entries = append(entries, entry{cat.Title, cat.Subject, cat.Description})
	}
	if len(entries) > maxContextResources {
		entries = entries[:maxContextResources]
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "- %s", e.title)
		if e.subject != "" {
			fmt.Fprintf(&b, " [%s]", e.subject)
		}
		if e.description != "" {
			fmt.Fprintf(&b, ": %s", e.description)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
