package quiz

import (
	"time"

	"github.com/classreconnect/backend/core"
)

// Question is a single multiple-choice question embedded in a Quiz.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
}

type Quiz struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Duration     int        `json:"duration"` // minutes
	Branch       string     `json:"branch"`
	Semester     string     `json:"semester"`
	Subject      string     `json:"subject"`
	NumQuestions int        `json:"num_questions"`
	SetPaper     string     `json:"set_paper,omitempty"`
	Questions    []Question `json:"questions"`
	CreatedBy    string     `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"` // UTC
}

// Answer records a student's response to one question of an attempt.
type Answer struct {
	QuestionIndex     int      `json:"question_index"`
	Question          string   `json:"question,omitempty"`
	UserAnswer        *int     `json:"user_answer,omitempty"`
	CorrectAnswer     *int     `json:"correct_answer,omitempty"`
	UserOptionText    string   `json:"user_option_text,omitempty"`
	CorrectOptionText string   `json:"correct_option_text,omitempty"`
	IsCorrect         bool     `json:"is_correct"`
	SolutionSteps     []string `json:"solution_steps,omitempty"`
}

// Result is a completed quiz attempt. QuizID carries the external quiz
// identifier as submitted; QuizRef is set when it resolves to a stored Quiz.
type Result struct {
	ID             string    `json:"id"`
	QuizID         string    `json:"quiz_id"`
	QuizRef        string    `json:"quiz_ref,omitempty"`
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name,omitempty"`
	Branch         string    `json:"branch,omitempty"`
	Semester       string    `json:"semester,omitempty"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     int       `json:"percentage"`
	Marks          int       `json:"marks,omitempty"`
	TotalMarks     int       `json:"total_marks,omitempty"`
	Answers        []Answer  `json:"answers"`
	CompletedAt    time.Time `json:"completed_at"` // UTC
}

// NewQuiz contains information needed to create a Quiz.
type NewQuiz struct {
	Name         string     `json:"name" validate:"required"`
	Duration     int        `json:"duration" validate:"required,gt=0"`
	Branch       string     `json:"branch" validate:"required"`
	Semester     string     `json:"semester" validate:"required"`
	Subject      string     `json:"subject" validate:"required"`
	NumQuestions int        `json:"num_questions" validate:"required,gt=0"`
	SetPaper     string     `json:"set_paper"`
	Questions    []Question `json:"questions"`
}

func (nq *NewQuiz) Validate() error {
	nq.Name = core.CleanString(nq.Name)
	return core.Validate.Struct(nq)
}

// NewResult contains a student's submitted attempt.
type NewResult struct {
	Score          int      `json:"score"`
	TotalQuestions int      `json:"total_questions" validate:"gt=0"`
	Percentage     *int     `json:"percentage"`
	Marks          int      `json:"marks"`
	TotalMarks     int      `json:"total_marks"`
	Answers        []Answer `json:"answers"`
	UserName       string   `json:"user_name"`
	Branch         string   `json:"branch"`
	Semester       string   `json:"semester"`
}

func (nr *NewResult) Validate() error {
	return core.Validate.Struct(nr)
}
