package answersvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	pkgerrors "github.com/pkg/errors"

	"github.com/classreconnect/backend/core"
	"github.com/classreconnect/backend/core/assist"
)

const (
	chatCompletionsPath = "/v1/chat/completions"

	systemPrompt = "You are a helpful, knowledgeable assistant for students and teachers. " +
		"Answer clearly, with step-by-step reasoning when useful. If code is requested, " +
		"provide concise, runnable examples. If the question relates to the site subjects, " +
		"reference them naturally."
)

type (
	chatRequest struct {
		Model    string        `json:"model"`
		Messages []chatMessage `json:"messages"`
	}

	chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	chatResponse struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
)

type grokClient struct {
	key     string
	model   string
	baseURL string
	client  *http.Client
	logger  core.Logger
}

var _ assist.AnswerClient = (*grokClient)(nil)

func NewGrokClient(logger core.Logger) *grokClient {
	return &grokClient{
		key:     strings.TrimSpace(core.Conf.Assist.GrokAPIKey),
		model:   core.Conf.Assist.GrokModel,
		baseURL: strings.TrimRight(core.Conf.Assist.GrokBaseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

func (c *grokClient) Source() string { return "grok" }

func (c *grokClient) Answer(ctx context.Context, question, studyContext string) (string, error) {
	if c.key == "" {
		return "", assist.ErrUnavailable
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "system", Content: "Local study context:\n" + studyContext},
			{Role: "user", Content: question},
		},
	})
	if err != nil {
		return "", pkgerrors.Wrap(err, "encoding chat request")
	}

	var text string
	err = retry.Do(
		func() error {
			text, err = c.complete(ctx, body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return err == assist.ErrUnavailable }),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn(fmt.Sprintf("grok attempt %d failed", n+1), err)
		}),
	)
	return text, err
}

func (c *grokClient) complete(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionsPath, bytes.NewReader(body))
	if err != nil {
		return "", pkgerrors.Wrap(err, "creating chat request")
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", assist.ErrUnavailable
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", assist.ErrUnavailable
	}
	var cr chatResponse
	if err := json.NewDecoder(res.Body).Decode(&cr); err != nil {
		return "", assist.ErrUnavailable
	}
	if len(cr.Choices) == 0 {
		return "", assist.ErrUnavailable
	}
	text := strings.TrimSpace(cr.Choices[0].Message.Content)
	if text == "" {
		return "", assist.ErrUnavailable
	}
	return text, nil
}
