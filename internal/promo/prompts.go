package promo

import (
	"fmt"
	"strings"

	"github.com/quizzy-dock/backend/internal/models"
)

// maxSampleQuestions caps how many question stems are quoted in the
// prompt; marketing copy only needs a taste of the content.
const maxSampleQuestions = 3

func SocialSystemPrompt() string {
	return `You are a social media copywriter for a programming-skills quiz platform.
You write short, punchy promotional copy for individual quizzes. Your copy is
accurate about the quiz content, never clickbait about things the quiz does not
cover, and always returns strictly valid JSON with no surrounding prose.`
}

const socialPromptTemplate = `Write promotional social media copy for this quiz:

Subject: {{subject}}
Topic: {{topic}} — {{subtopic}}
Quiz: {{testName}} ({{questionCount}} {{questionKind}} questions)

Sample questions from the quiz:
{{sampleQuestions}}

Return ONLY a JSON object with this exact structure:
{
  "title": "... (max 60 characters, no emoji)",
  "hook": "... (one attention-grabbing sentence)",
  "description": "... (2-3 sentences about what the quiz covers)",
  "hashtags": ["#...", "#...", "#..."],
  "callToAction": "... (one sentence)"
}

Requirements:
- Mention the subject ({{subject}}) by name in the title or hook
- 3 to 6 hashtags, all lowercase, no spaces
- Do not quote full questions verbatim in the copy`

// BuildSocialPrompt renders the user prompt for a hydrated test by
// substituting its metadata into the template.
func BuildSocialPrompt(test *models.HydratedTest) string {
	replacer := strings.NewReplacer(
		"{{subject}}", test.SubjectName,
		"{{topic}}", test.TopicName,
		"{{subtopic}}", test.SubtopicName,
		"{{testName}}", test.TestName,
		"{{questionCount}}", fmt.Sprintf("%d", test.QuestionCount),
		"{{questionKind}}", questionKind(test.QuestionType),
		"{{sampleQuestions}}", sampleQuestions(test.Questions),
	)
	return replacer.Replace(socialPromptTemplate)
}

func questionKind(t models.QuestionType) string {
	switch t {
	case models.QuestionTypeMCQ:
		return "multiple-choice"
	case models.QuestionTypeOutput:
		return "output-prediction"
	case models.QuestionTypeInterview:
		return "interview-style"
	}
	return string(t)
}

func sampleQuestions(questions []models.Question) string {
	if len(questions) == 0 {
		return "(none available)"
	}
	n := len(questions)
	if n > maxSampleQuestions {
		n = maxSampleQuestions
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d. %s\n", i+1, firstLine(questions[i].Question))
	}
	return strings.TrimRight(b.String(), "\n")
}

// firstLine trims a question stem to its first line so multi-line code
// snippets don't bloat the prompt.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return s
}
