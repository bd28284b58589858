package answersvc

import (
	"context"
	"sync"

	"github.com/classreconnect/backend/core/assist"
)

// DummyClient is a recording AnswerClient for tests.
type DummyClient struct {
	mu sync.Mutex

	// Text is returned from Answer when Err is nil.
	Text string
	Err  error

	Questions []string
	Contexts  []string
}

var _ assist.AnswerClient = (*DummyClient)(nil)

func (c *DummyClient) Source() string { return "dummy" }

func (c *DummyClient) Answer(ctx context.Context, question, studyContext string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Questions = append(c.Questions, question)
	c.Contexts = append(c.Contexts, studyContext)
	if c.Err != nil {
		return "", c.Err
	}
	return c.Text, nil
}
