package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quizzy-dock/backend/internal/models"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// UpsertSubject creates a subject or extends an existing one with new
// topics/subtopics. Subtopic ids are assigned exactly once: a subtopic
// already present (matched by name within its topic) keeps its id.
func (s *Service) UpsertSubject(ctx context.Context, req models.UpsertSubjectRequest) (*models.Subject, error) {
	subject, err := s.store.GetSubjectByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		subject = &models.Subject{
			ID:   primitive.NewObjectID(),
			Name: req.Name,
		}
	}

	subject.Topics = mergeTopics(subject.Topics, req.Topics)

	if err := s.store.SaveSubject(ctx, subject); err != nil {
		return nil, err
	}

	if err := s.upsertMetadata(ctx, req); err != nil {
		return nil, err
	}

	return subject, nil
}

func (s *Service) upsertMetadata(ctx context.Context, req models.UpsertSubjectRequest) error {
	meta, err := s.store.GetMetadataByName(ctx, req.Name)
	if err != nil {
		return err
	}
	if meta == nil {
		order, err := s.store.NextOrder(ctx)
		if err != nil {
			return err
		}
		meta = &models.SubjectMetadata{
			Name:   req.Name,
			Order:  order,
			Status: models.SubjectActive,
		}
	}
	meta.ShortName = Slugify(req.Name)
	if req.Questions != "" {
		meta.Questions = req.Questions
	}
	return s.store.SaveMetadata(ctx, meta)
}

func (s *Service) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	return s.store.ListSubjects(ctx)
}

func (s *Service) ListMetadata(ctx context.Context) ([]models.SubjectMetadata, error) {
	return s.store.ListMetadata(ctx)
}

func (s *Service) ResolveSubtopic(ctx context.Context, subtopicID string) (*models.SubtopicRef, error) {
	return s.store.ResolveSubtopic(ctx, subtopicID)
}

// mergeTopics folds the submitted topic list into the existing
// hierarchy. Existing subtopics keep their ids; new ones get a fresh
// uuid. Nothing is ever removed.
func mergeTopics(existing []models.Topic, inputs []models.TopicInput) []models.Topic {
	for _, in := range inputs {
		idx := -1
		for i, t := range existing {
			if t.Name == in.Name {
				idx = i
				break
			}
		}
		if idx == -1 {
			existing = append(existing, models.Topic{Name: in.Name})
			idx = len(existing) - 1
		}

		for _, subName := range in.Subtopics {
			if hasSubtopic(existing[idx].Subtopics, subName) {
				continue
			}
			existing[idx].Subtopics = append(existing[idx].Subtopics, models.Subtopic{
				ID:   uuid.NewString(),
				Name: subName,
			})
		}
	}
	return existing
}

func hasSubtopic(subs []models.Subtopic, name string) bool {
	for _, s := range subs {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Slugify builds a URL-safe short name: lowercase alphanumerics with
// single hyphens for runs of anything else.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, c := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'):
			b.WriteRune(c)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// ValidateUpsert checks the request shape before any persistence.
func ValidateUpsert(req models.UpsertSubjectRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(req.Topics) == 0 {
		return fmt.Errorf("at least one topic is required")
	}
	for i, t := range req.Topics {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("topic %d: name is required", i+1)
		}
		if len(t.Subtopics) == 0 {
			return fmt.Errorf("topic %d: at least one subtopic is required", i+1)
		}
		for j, sub := range t.Subtopics {
			if strings.TrimSpace(sub) == "" {
				return fmt.Errorf("topic %d: subtopic %d: name is required", i+1, j+1)
			}
		}
	}
	return nil
}
