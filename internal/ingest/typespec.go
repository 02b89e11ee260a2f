package ingest

import (
	"fmt"
	"strings"

	"github.com/quizzy-dock/backend/internal/models"
)

const (
	// BatchSize is the number of questions per test.
	BatchSize = 5
	// BatchThreshold is the minimum count of newly inserted questions
	// before any tests are created.
	BatchThreshold = 5
)

// TypeSpec describes one question type to the generic ingestion
// pipeline: how to validate a submitted element and whether a trailing
// partial group still becomes a test.
type TypeSpec struct {
	Type             models.QuestionType
	Validate         func(i int, q models.QuestionInput) error
	KeepPartialBatch bool
}

var typeSpecs = map[models.QuestionType]TypeSpec{
	models.QuestionTypeMCQ: {
		Type:             models.QuestionTypeMCQ,
		Validate:         validateMCQ,
		KeepPartialBatch: true,
	},
	models.QuestionTypeOutput: {
		Type:             models.QuestionTypeOutput,
		Validate:         validateOutput,
		KeepPartialBatch: false,
	},
	models.QuestionTypeInterview: {
		Type:             models.QuestionTypeInterview,
		Validate:         validateInterview,
		KeepPartialBatch: true,
	},
}

// SpecFor returns the descriptor for a question type.
func SpecFor(t models.QuestionType) (TypeSpec, bool) {
	spec, ok := typeSpecs[t]
	return spec, ok
}

func validateCommon(i int, q models.QuestionInput) error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question %d: question text is required", i+1)
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return fmt.Errorf("question %d: explanation is required", i+1)
	}
	return nil
}

func validateMCQ(i int, q models.QuestionInput) error {
	if err := validateCommon(i, q); err != nil {
		return err
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %d: at least 2 options are required", i+1)
	}
	if q.CorrectAnswer == nil {
		return fmt.Errorf("question %d: correct_answer is required", i+1)
	}
	if *q.CorrectAnswer < 0 || *q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("question %d: correct_answer must be a zero-based index into options", i+1)
	}
	return nil
}

func validateOutput(i int, q models.QuestionInput) error {
	if err := validateCommon(i, q); err != nil {
		return err
	}
	if strings.TrimSpace(q.Output) == "" {
		return fmt.Errorf("question %d: output is required", i+1)
	}
	return nil
}

func validateInterview(i int, q models.QuestionInput) error {
	if err := validateCommon(i, q); err != nil {
		return err
	}
	if strings.TrimSpace(q.Answer) == "" {
		return fmt.Errorf("question %d: answer is required", i+1)
	}
	return nil
}

// ValidateRequest checks the whole submission before any persistence.
// One bad element rejects the entire batch.
func ValidateRequest(spec TypeSpec, req models.IngestRequest) error {
	if strings.TrimSpace(req.TopicID) == "" {
		return fmt.Errorf("topicId is required")
	}
	if len(req.Questions) == 0 {
		return fmt.Errorf("questions must be a non-empty array")
	}
	for i, q := range req.Questions {
		if err := spec.Validate(i, q); err != nil {
			return err
		}
	}
	return nil
}
