package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type SocialMediaStatus string

const (
	SocialPublished   SocialMediaStatus = "published"
	SocialUnpublished SocialMediaStatus = "unpublished"
)

// SocialMediaContent is operator-facing marketing copy attached to a
// test, either generated or written by hand.
type SocialMediaContent struct {
	Title        string   `json:"title" bson:"title"`
	Hook         string   `json:"hook" bson:"hook"`
	Description  string   `json:"description" bson:"description"`
	Hashtags     []string `json:"hashtags" bson:"hashtags"`
	CallToAction string   `json:"callToAction" bson:"callToAction"`
}

// Test is a named, ordered grouping of questions of one type. The
// order of QuestionIDs is significant: it defines presentation order
// and must survive the read path unchanged.
type Test struct {
	ID                 primitive.ObjectID   `json:"id" bson:"_id"`
	SubjectName        string               `json:"subjectName" bson:"subjectName"`
	TopicName          string               `json:"topicName" bson:"topicName"`
	SubtopicName       string               `json:"subtopicName" bson:"subtopicName"`
	SubtopicID         string               `json:"subtopicId" bson:"subtopicId"`
	QuestionType       QuestionType         `json:"questionType" bson:"questionType"`
	TestName           string               `json:"testName" bson:"testName"`
	QuestionIDs        []primitive.ObjectID `json:"questionIds" bson:"questionIds"`
	SocialMediaStatus  SocialMediaStatus    `json:"socialMediaStatus" bson:"socialMediaStatus"`
	SocialMediaContent *SocialMediaContent  `json:"socialMediaContent,omitempty" bson:"socialMediaContent,omitempty"`
}

// TestCounter backs "Part N" naming: one document per
// (subtopicId, questionType), bumped atomically when tests are created.
type TestCounter struct {
	SubtopicID   string       `bson:"subtopicId"`
	QuestionType QuestionType `bson:"questionType"`
	Seq          int          `bson:"seq"`
}

// ── Response Types ────────────────────────────────────

// HydratedTest is a Test with its question list resolved in stored order.
type HydratedTest struct {
	Test
	Questions     []Question `json:"questions"`
	QuestionCount int        `json:"questionCount"`
}

type TestResponse struct {
	Success bool         `json:"success"`
	Data    HydratedTest `json:"data"`
}

type TestListResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Data    []Test `json:"data"`
}

type UpdateSocialRequest struct {
	Status  SocialMediaStatus   `json:"status"`
	Content *SocialMediaContent `json:"content,omitempty"`
}
