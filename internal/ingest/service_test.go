package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quizzy-dock/backend/internal/catalog"
	"github.com/quizzy-dock/backend/internal/models"
)

// fakeStore mimics the mongo store: a unique (question, topicId) key
// per question type, an atomic counter per (subtopicId, questionType),
// and an append-only test collection.
type fakeStore struct {
	seen      map[string]bool
	questions []models.Question
	counters  map[string]int
	tests     []models.Test
	failTests bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		seen:     make(map[string]bool),
		counters: make(map[string]int),
	}
}

func dedupKey(qType models.QuestionType, q models.Question) string {
	return string(qType) + "|" + q.TopicID + "|" + q.Question
}

func (f *fakeStore) InsertQuestions(ctx context.Context, qType models.QuestionType, docs []models.Question) ([]models.Question, int, error) {
	var inserted []models.Question
	duplicates := 0
	for _, d := range docs {
		key := dedupKey(qType, d)
		if f.seen[key] {
			duplicates++
			continue
		}
		f.seen[key] = true
		f.questions = append(f.questions, d)
		inserted = append(inserted, d)
	}
	return inserted, duplicates, nil
}

func (f *fakeStore) ListQuestions(ctx context.Context, qType models.QuestionType, topicID string) ([]models.Question, error) {
	var result []models.Question
	for _, q := range f.questions {
		if q.TopicID == topicID {
			result = append(result, q)
		}
	}
	return result, nil
}

func (f *fakeStore) NextSeqBlock(ctx context.Context, subtopicID string, qType models.QuestionType, n int) (int, error) {
	key := subtopicID + "|" + string(qType)
	f.counters[key] += n
	return f.counters[key] - n + 1, nil
}

func (f *fakeStore) InsertTests(ctx context.Context, tests []models.Test) error {
	if f.failTests {
		return errors.New("tests collection unavailable")
	}
	f.tests = append(f.tests, tests...)
	return nil
}

type fakeCatalog struct {
	known map[string]*models.SubtopicRef
}

func (f *fakeCatalog) ResolveSubtopic(ctx context.Context, id string) (*models.SubtopicRef, error) {
	if ref, ok := f.known[id]; ok {
		return ref, nil
	}
	return nil, catalog.ErrSubtopicNotFound
}

const topicID = "f1c2e3d4-aaaa-bbbb-cccc-000000000001"

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	cat := &fakeCatalog{known: map[string]*models.SubtopicRef{
		topicID: {
			SubjectName:  "JavaScript",
			TopicName:    "Core Language",
			SubtopicName: "Closures",
			SubtopicID:   topicID,
		},
	}}
	return NewService(store, cat), store
}

func mcqInputs(n int, prefix string) []models.QuestionInput {
	answer := 0
	inputs := make([]models.QuestionInput, n)
	for i := range inputs {
		inputs[i] = models.QuestionInput{
			Question:      fmt.Sprintf("%s question %d: what does this closure capture?", prefix, i+1),
			Options:       []string{"the variable", "a copy", "nothing", "undefined"},
			CorrectAnswer: &answer,
			Explanation:   "Closures capture variables by reference.",
		}
	}
	return inputs
}

func outputInputs(n int) []models.QuestionInput {
	inputs := make([]models.QuestionInput, n)
	for i := range inputs {
		inputs[i] = models.QuestionInput{
			Question:    fmt.Sprintf("What does snippet %d print?", i+1),
			Output:      "42",
			Explanation: "The closure sees the final value of the loop variable.",
		}
	}
	return inputs
}

func mustSpec(t *testing.T, qt models.QuestionType) TypeSpec {
	t.Helper()
	spec, ok := SpecFor(qt)
	if !ok {
		t.Fatalf("no spec for %s", qt)
	}
	return spec
}

func TestIngest_BelowThresholdCreatesNoTests(t *testing.T) {
	svc, store := newTestService()
	spec := mustSpec(t, models.QuestionTypeMCQ)

	resp, err := svc.Ingest(context.Background(), spec, models.IngestRequest{
		TopicID:   topicID,
		Questions: mcqInputs(4, "below"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Saved != 4 || resp.Duplicates != 0 || resp.Total != 4 {
		t.Errorf("unexpected counts: %+v", resp)
	}
	if resp.TestsCreated != 0 || len(store.tests) != 0 {
		t.Errorf("expected no tests for 4 questions, got %d", len(store.tests))
	}
}

func TestIngest_ExactThresholdCreatesOneTest(t *testing.T) {
	svc, store := newTestService()
	spec := mustSpec(t, models.QuestionTypeMCQ)

	resp, err := svc.Ingest(context.Background(), spec, models.IngestRequest{
		TopicID:   topicID,
		Questions: mcqInputs(5, "exact"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.TestsCreated != 1 || len(store.tests) != 1 {
		t.Fatalf("expected exactly one test, got %d", len(store.tests))
	}
	test := store.tests[0]
	if test.TestName != "Part 1" {
		t.Errorf("expected 'Part 1', got %q", test.TestName)
	}
	if test.SubjectName != "JavaScript" || test.TopicName != "Core Language" || test.SubtopicName != "Closures" {
		t.Errorf("unexpected display metadata: %+v", test)
	}
	if test.SubtopicID != topicID || test.QuestionType != models.QuestionTypeMCQ {
		t.Errorf("unexpected join keys: %+v", test)
	}
	if test.SocialMediaStatus != models.SocialUnpublished {
		t.Errorf("new tests must start unpublished, got %q", test.SocialMediaStatus)
	}
}

func TestIngest_MCQKeepsTrailingPartialBatch(t *testing.T) {
	svc, store := newTestService()
	spec := mustSpec(t, models.QuestionTypeMCQ)

	resp, err := svc.Ingest(context.Background(), spec, models.IngestRequest{
		TopicID:   topicID,
		Questions: mcqInputs(7, "partial"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.TestsCreated != 2 || len(store.tests) != 2 {
		t.Fatalf("expected 2 tests for 7 MCQ questions, got %d", len(store.tests))
	}
	if len(store.tests[0].QuestionIDs) != 5 || len(store.tests[1].QuestionIDs) != 2 {
		t.Errorf("expected sizes [5 2], got [%d %d]",
			len(store.tests[0].QuestionIDs), len(store.tests[1].QuestionIDs))
	}
	if store.tests[0].TestName != "Part 1" || store.tests[1].TestName != "Part 2" {
		t.Errorf("expected Part 1/Part 2, got %q/%q", store.tests[0].TestName, store.tests[1].TestName)
	}
}

func TestIngest_OutputDropsTrailingPartialBatch(t *testing.T) {
	svc, store := newTestService()
	spec := mustSpec(t, models.QuestionTypeOutput)

	resp, err := svc.Ingest(context.Background(), spec, models.IngestRequest{
		TopicID:   topicID,
		Questions: outputInputs(7),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Saved != 7 {
		t.Errorf("all 7 questions should persist, got saved=%d", resp.Saved)
	}
	if resp.TestsCreated != 1 || len(store.tests) != 1 {
		t.Fatalf("expected 1 test for 7 output questions, got %d", len(store.tests))
	}
	if len(store.tests[0].QuestionIDs) != 5 {
		t.Errorf("expected test of size 5, got %d", len(store.tests[0].QuestionIDs))
	}
}

func TestIngest_PreservesSubmissionOrder(t *testing.T) {
	svc, store := newTestService()
	spec := mustSpec(t, models.QuestionTypeMCQ)

	_, err := svc.Ingest(context.Background(), spec, models.IngestRequest{
		TopicID:   topicID,
		Questions: mcqInputs(10, "order"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var batched []primitive.ObjectID
	for _, test := range store.tests {
		batched = append(batched, test.QuestionIDs...)
	}
	if len(batched) != 10 {
		t.Fatalf("expected 10 batched ids, got %d", len(batched))
	}
	for i, q := range store.questions {
		if batched[i] != q.ID {
			t.Fatalf("order broken at %d: batched %s, inserted %s", i, batched[i].Hex(), q.ID.Hex())
		}
	}
}

func TestIngest_IdempotentResubmission(t *testing.T) {
	svc, store := newTestService()
	spec := mustSpec(t, models.QuestionTypeMCQ)
	req := models.IngestRequest{TopicID: topicID, Questions: mcqInputs(6, "again")}

	if _, err := svc.Ingest(context.Background(), spec, req); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	countAfterFirst := len(store.questions)

	resp, err := svc.Ingest(context.Background(), spec, req)
	if err != nil {
		t.Fatalf("second submission: %v", err)
	}

	if resp.Saved != 0 || resp.Duplicates != 6 {
		t.Errorf("expected saved=0 duplicates=6, got saved=%d duplicates=%d", resp.Saved, resp.Duplicates)
	}
	if len(store.questions) != countAfterFirst {
		t.Errorf("resubmission grew the store: %d -> %d", countAfterFirst, len(store.questions))
	}
	if resp.TestsCreated != 0 {
		t.Errorf("no new tests expected on resubmission, got %d", resp.TestsCreated)
	}
}

func TestIngest_MixedDuplicatesBatchOnlyNew(t *testing.T) {
	svc, store := newTestService()
	spec := mustSpec(t, models.QuestionTypeMCQ)

	first := mcqInputs(2, "mixed")
	if _, err := svc.Ingest(context.Background(), spec, models.IngestRequest{TopicID: topicID, Questions: first}); err != nil {
		t.Fatalf("seed submission: %v", err)
	}
	testsBefore := len(store.tests)

	second := append(mcqInputs(2, "mixed"), mcqInputs(3, "fresh")...)
	resp, err := svc.Ingest(context.Background(), spec, models.IngestRequest{TopicID: topicID, Questions: second})
	if err != nil {
		t.Fatalf("mixed submission: %v", err)
	}

	if resp.Saved != 3 || resp.Duplicates != 2 {
		t.Errorf("expected saved=3 duplicates=2, got saved=%d duplicates=%d", resp.Saved, resp.Duplicates)
	}
	// 3 new < threshold, so batching is skipped even though 5 were submitted.
	if resp.TestsCreated != 0 || len(store.tests) != testsBefore {
		t.Errorf("expected no tests, got %d new", len(store.tests)-testsBefore)
	}
}

func TestIngest_UnknownTopicPersistsNothing(t *testing.T) {
	svc, store := newTestService()
	spec := mustSpec(t, models.QuestionTypeMCQ)

	_, err := svc.Ingest(context.Background(), spec, models.IngestRequest{
		TopicID:   "no-such-subtopic",
		Questions: mcqInputs(5, "orphan"),
	})
	if err != catalog.ErrSubtopicNotFound {
		t.Fatalf("expected ErrSubtopicNotFound, got %v", err)
	}
	if len(store.questions) != 0 || len(store.tests) != 0 {
		t.Errorf("nothing should persist for an unknown topic")
	}
}

func TestIngest_SequenceContinuesAcrossSubmissions(t *testing.T) {
	svc, store := newTestService()
	spec := mustSpec(t, models.QuestionTypeMCQ)

	if _, err := svc.Ingest(context.Background(), spec, models.IngestRequest{TopicID: topicID, Questions: mcqInputs(5, "s1")}); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := svc.Ingest(context.Background(), spec, models.IngestRequest{TopicID: topicID, Questions: mcqInputs(5, "s2")}); err != nil {
		t.Fatalf("second: %v", err)
	}

	if len(store.tests) != 2 {
		t.Fatalf("expected 2 tests, got %d", len(store.tests))
	}
	if store.tests[1].TestName != "Part 2" {
		t.Errorf("expected second test to be 'Part 2', got %q", store.tests[1].TestName)
	}
}

func TestIngest_TestCreationFailureIsSwallowed(t *testing.T) {
	svc, store := newTestService()
	store.failTests = true
	spec := mustSpec(t, models.QuestionTypeMCQ)

	resp, err := svc.Ingest(context.Background(), spec, models.IngestRequest{
		TopicID:   topicID,
		Questions: mcqInputs(5, "swallow"),
	})
	if err != nil {
		t.Fatalf("question insertion must still succeed: %v", err)
	}

	if resp.Saved != 5 {
		t.Errorf("questions should persist despite test failure, saved=%d", resp.Saved)
	}
	if resp.TestsCreated != 0 {
		t.Errorf("expected testsCreated=0 after swallowed failure, got %d", resp.TestsCreated)
	}
	if !resp.Success {
		t.Errorf("response should still report success")
	}
}

func TestChunkIDs(t *testing.T) {
	ids := make([]primitive.ObjectID, 12)
	for i := range ids {
		ids[i] = primitive.NewObjectID()
	}

	kept := chunkIDs(ids, 5, true)
	if len(kept) != 3 || len(kept[0]) != 5 || len(kept[1]) != 5 || len(kept[2]) != 2 {
		t.Errorf("keepPartial: unexpected grouping %v", lens(kept))
	}

	dropped := chunkIDs(ids, 5, false)
	if len(dropped) != 2 || len(dropped[0]) != 5 || len(dropped[1]) != 5 {
		t.Errorf("dropPartial: unexpected grouping %v", lens(dropped))
	}

	if got := chunkIDs(ids[:3], 5, false); got != nil {
		t.Errorf("3 ids with dropPartial should produce no groups, got %v", lens(got))
	}
	if got := chunkIDs(ids[:5], 5, false); len(got) != 1 {
		t.Errorf("exactly 5 ids should produce one full group, got %v", lens(got))
	}
}

func lens(groups [][]primitive.ObjectID) []int {
	sizes := make([]int, len(groups))
	for i, g := range groups {
		sizes[i] = len(g)
	}
	return sizes
}
