// internal/workers/assistant/answer-faq/rules.go
package answerfaq

import "strings"

// rule maps question keywords to a canned answer. Rules are checked in
// order and the first hit wins, so broader keywords sit lower in the list.
type rule struct {
	topic    string
	keywords []string
	answer   string
}

var rules = []rule{
	{
		topic:    "documents",
		keywords: []string{"document", "upload"},
		answer:   "You can upload your documents in the Documents tab. Make sure each file is a PDF or image under 5MB. Required documents are listed with their current status.",
	},
	{
		topic:    "timeline",
		keywords: []string{"long", "time"},
		answer:   "Document verification typically takes 3-5 business days. You will be notified once HR has reviewed your submission.",
	},
	{
		topic:    "manager",
		keywords: []string{"manager", "supervisor"},
		answer:   "Your manager is listed on your profile page. If it has not been assigned yet, please reach out to HR.",
	},
	{
		topic:    "benefits",
		keywords: []string{"benefit"},
		answer:   "Details about your benefits are covered in the Benefits Overview training module. Complete it from the Training tab to learn about health coverage, retirement plans and more.",
	},
	{
		topic:    "office",
		keywords: []string{"office", "location"},
		answer:   "Your office location and directions were included in your welcome email and welcome packet. Check your profile for your assigned work location.",
	},
}

// quickQuestions are the suggested prompts shown alongside every answer.
var quickQuestions = []string{
	"How do I upload my documents?",
	"How long does verification take?",
	"Who is my manager?",
	"What benefits do I get?",
	"Where is the office located?",
}

// matchRule returns the first rule whose keywords appear in the question.
func matchRule(question string) (*rule, bool) {
	q := strings.ToLower(question)
	for i := range rules {
		for _, kw := range rules[i].keywords {
			if strings.Contains(q, kw) {
				return &rules[i], true
			}
		}
	}
	return nil, false
}
