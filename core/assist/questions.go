package assist

import (
	"os"
	"regexp"
	"strings"

	"github.com/classreconnect/backend/core"
)

var ErrQuestionsNotFound = os.ErrNotExist

var questionLineRegex = regexp.MustCompile(`^\d+\.\s*(.+)$`)

// PredefinedQuestions loads the suggested questions file and returns the
// question text of every numbered line ("N. question").
func (svc *service) PredefinedQuestions() ([]string, error) {
	data, err := os.ReadFile(core.Conf.Assist.QuestionsPath)
	if err != nil {
		return nil, err
	}
	return ParseQuestions(string(data)), nil
}

// ParseQuestions extracts numbered questions from raw text.
func ParseQuestions(text string) []string {
	var questions []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		if m := questionLineRegex.FindStringSubmatch(line); m != nil {
			questions = append(questions, m[1])
		}
	}
	return questions
}
