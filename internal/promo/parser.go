package promo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quizzy-dock/backend/internal/models"
)

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseSocialContent parses a model response into SocialMediaContent,
// tolerating markdown code fences around the JSON.
func ParseSocialContent(responseBody string) (*models.SocialMediaContent, error) {
	cleaned := stripCodeFences(responseBody)

	var content models.SocialMediaContent
	if err := json.Unmarshal([]byte(cleaned), &content); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateContent(&content); err != nil {
		return nil, err
	}
	return &content, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validateContent(content *models.SocialMediaContent) error {
	var errs []string

	if strings.TrimSpace(content.Title) == "" {
		errs = append(errs, "title is empty")
	}
	if strings.TrimSpace(content.Hook) == "" {
		errs = append(errs, "hook is empty")
	}
	if strings.TrimSpace(content.Description) == "" {
		errs = append(errs, "description is empty")
	}
	if strings.TrimSpace(content.CallToAction) == "" {
		errs = append(errs, "callToAction is empty")
	}
	if len(content.Hashtags) == 0 {
		errs = append(errs, "no hashtags")
	}
	for i, tag := range content.Hashtags {
		if !strings.HasPrefix(tag, "#") || strings.ContainsAny(tag, " \t") {
			errs = append(errs, fmt.Sprintf("hashtag %d: %q is not a single #tag", i+1, tag))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
