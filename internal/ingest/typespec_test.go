package ingest

import (
	"strings"
	"testing"

	"github.com/quizzy-dock/backend/internal/models"
)

func intPtr(v int) *int { return &v }

func TestValidateRequest_MCQ(t *testing.T) {
	spec, _ := SpecFor(models.QuestionTypeMCQ)

	valid := models.QuestionInput{
		Question:      "What is the output of typeof null?",
		Options:       []string{"\"object\"", "\"null\""},
		CorrectAnswer: intPtr(0),
		Explanation:   "A long-standing quirk of the language.",
	}

	cases := []struct {
		name    string
		req     models.IngestRequest
		wantErr string
	}{
		{
			name:    "missing topicId",
			req:     models.IngestRequest{Questions: []models.QuestionInput{valid}},
			wantErr: "topicId",
		},
		{
			name:    "empty questions",
			req:     models.IngestRequest{TopicID: "t1"},
			wantErr: "non-empty",
		},
		{
			name: "missing question text",
			req: models.IngestRequest{TopicID: "t1", Questions: []models.QuestionInput{
				{Options: valid.Options, CorrectAnswer: valid.CorrectAnswer, Explanation: "x"},
			}},
			wantErr: "question text",
		},
		{
			name: "missing explanation",
			req: models.IngestRequest{TopicID: "t1", Questions: []models.QuestionInput{
				{Question: "q", Options: valid.Options, CorrectAnswer: valid.CorrectAnswer},
			}},
			wantErr: "explanation",
		},
		{
			name: "too few options",
			req: models.IngestRequest{TopicID: "t1", Questions: []models.QuestionInput{
				{Question: "q", Options: []string{"only one"}, CorrectAnswer: intPtr(0), Explanation: "x"},
			}},
			wantErr: "options",
		},
		{
			name: "missing correct_answer",
			req: models.IngestRequest{TopicID: "t1", Questions: []models.QuestionInput{
				{Question: "q", Options: valid.Options, Explanation: "x"},
			}},
			wantErr: "correct_answer",
		},
		{
			name: "correct_answer out of range",
			req: models.IngestRequest{TopicID: "t1", Questions: []models.QuestionInput{
				{Question: "q", Options: valid.Options, CorrectAnswer: intPtr(2), Explanation: "x"},
			}},
			wantErr: "zero-based",
		},
		{
			name: "second element bad fails whole batch",
			req: models.IngestRequest{TopicID: "t1", Questions: []models.QuestionInput{
				valid,
				{Question: "q2", Explanation: "x"},
			}},
			wantErr: "question 2",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(spec, tc.req)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}

	if err := ValidateRequest(spec, models.IngestRequest{TopicID: "t1", Questions: []models.QuestionInput{valid}}); err != nil {
		t.Errorf("valid request should pass, got %v", err)
	}
}

func TestValidateRequest_OutputAndInterview(t *testing.T) {
	outputSpec, _ := SpecFor(models.QuestionTypeOutput)
	err := ValidateRequest(outputSpec, models.IngestRequest{TopicID: "t1", Questions: []models.QuestionInput{
		{Question: "What does this print?", Explanation: "x"},
	}})
	if err == nil || !strings.Contains(err.Error(), "output") {
		t.Errorf("output spec should require the output field, got %v", err)
	}

	interviewSpec, _ := SpecFor(models.QuestionTypeInterview)
	err = ValidateRequest(interviewSpec, models.IngestRequest{TopicID: "t1", Questions: []models.QuestionInput{
		{Question: "Explain event delegation.", Explanation: "x"},
	}})
	if err == nil || !strings.Contains(err.Error(), "answer") {
		t.Errorf("interview spec should require the answer field, got %v", err)
	}
}

func TestSpecFor_PartialBatchPolicy(t *testing.T) {
	mcq, _ := SpecFor(models.QuestionTypeMCQ)
	output, _ := SpecFor(models.QuestionTypeOutput)
	interview, _ := SpecFor(models.QuestionTypeInterview)

	if !mcq.KeepPartialBatch {
		t.Errorf("MCQ must keep trailing partial batches")
	}
	if output.KeepPartialBatch {
		t.Errorf("Output must drop trailing partial batches")
	}
	if !interview.KeepPartialBatch {
		t.Errorf("Interview follows the MCQ policy")
	}

	if _, ok := SpecFor("essay"); ok {
		t.Errorf("unknown type should not resolve")
	}
}
