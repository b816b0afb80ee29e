// internal/workers/assistant/answer-faq/models.go
package answerfaq

type Input struct {
	Question string `json:"question"`
}

type Output struct {
	Answer         string   `json:"answer"`
	Topic          string   `json:"faqTopic"`
	Matched        bool     `json:"faqMatched"`
	QuickQuestions []string `json:"quickQuestions"`
}
