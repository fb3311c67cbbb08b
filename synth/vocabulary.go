package synth

import (
	"fmt"

	"github.com/infodancer/mailseed/errors"
)

// Vocabulary holds the fixed tables messages are sampled from.
type Vocabulary struct {
	FirstNames []string
	LastNames  []string
	Domains    []string

	// Subjects are templates that may reference placeholders such as {topic}.
	Subjects []string

	Topics     []string
	Events     []string
	Days       []string
	Times      []string
	Paragraphs []string
	SignOffs   []string
}

// validate reports the first empty table.
func (v Vocabulary) validate() error {
	tables := []struct {
		name  string
		items []string
	}{
		{"first names", v.FirstNames},
		{"last names", v.LastNames},
		{"domains", v.Domains},
		{"subjects", v.Subjects},
		{"topics", v.Topics},
		{"events", v.Events},
		{"days", v.Days},
		{"times", v.Times},
		{"paragraphs", v.Paragraphs},
		{"sign-offs", v.SignOffs},
	}
	for _, t := range tables {
		if len(t.items) == 0 {
			return fmt.Errorf("%s: %w", t.name, errors.ErrEmptyVocabulary)
		}
	}
	return nil
}

// DefaultVocabulary returns the built-in tables. Each call returns fresh
// slices so callers may modify the result.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		FirstNames: []string{
			"Alice", "Bob", "Charlie", "Diana", "Edward", "Fiona", "George",
			"Hannah", "Ivan", "Julia", "Kevin", "Laura", "Michael", "Nina",
			"Oscar", "Patricia", "Quentin", "Rachel", "Steven", "Tina",
			"Ulrich", "Victoria", "William", "Xena", "Yuri", "Zara",
		},
		LastNames: []string{
			"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia",
			"Miller", "Davis", "Rodriguez", "Martinez", "Anderson", "Taylor",
			"Thomas", "Moore", "Jackson", "Martin", "Lee", "Thompson",
			"White", "Harris", "Clark", "Lewis", "Robinson", "Walker",
		},
		Domains: []string{
			"example.com", "test.org", "mail.test", "company.example",
			"dev.local", "staging.test", "demo.org", "sample.net",
		},
		Subjects: []string{
			"Meeting tomorrow at {time}",
			"Re: Project update",
			"Quick question about {topic}",
			"Invitation: {event}",
			"FYI: {topic} changes",
			"Action required: {topic}",
			"Weekly report - {date}",
			"Hello from {name}",
			"Important: {topic} deadline",
			"Follow up on our conversation",
			"Lunch on {day}?",
			"New {topic} proposal",
			"Reminder: {event}",
			"Thanks for your help with {topic}",
			"Schedule change notification",
			"Documents attached for review",
			"Team outing next {day}",
			"Quarterly review summary",
			"Re: Re: {topic} discussion",
			"Happy {day}!",
		},
		Topics: []string{
			"database migration", "API redesign", "server upgrade",
			"deployment pipeline", "security audit", "performance review",
			"budget allocation", "client onboarding", "feature release",
			"documentation update", "infrastructure", "testing strategy",
		},
		Events: []string{
			"Team Standup", "Sprint Planning", "Company All-Hands",
			"Product Demo", "Architecture Review", "Retrospective",
			"Holiday Party", "Training Session", "Workshop",
		},
		Days:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		Times: []string{"9:00 AM", "10:30 AM", "2:00 PM", "3:30 PM", "4:00 PM"},
		Paragraphs: []string{
			"I wanted to follow up on our earlier discussion. I think we should move forward with the proposed changes as soon as possible.",
			"Please find the details below. Let me know if you have any questions or concerns about the approach we discussed.",
			"I've reviewed the latest updates and everything looks good. We should be on track for the deadline.",
			"Could you take a look at this when you get a chance? I'd appreciate your feedback before we proceed.",
			"Just a quick note to let you know that the changes have been deployed to the staging environment for testing.",
			"I'll be out of office next week but will be available by email if anything urgent comes up.",
			"Great work on the latest release! The team has done an excellent job meeting all the requirements.",
			"We need to schedule a meeting to discuss the upcoming milestones. Please share your availability.",
			"The latest metrics are looking very positive. I've attached a summary report for your review.",
			"I wanted to share some thoughts on how we can improve our current workflow and reduce bottlenecks.",
			"Thanks for getting back to me so quickly. I agree with your suggestions and will implement them right away.",
			"We should consider the long-term implications of this decision before committing to a specific approach.",
		},
		SignOffs: []string{
			"Best regards", "Kind regards", "Thanks", "Cheers", "Best",
			"Regards", "Thank you", "All the best",
		},
	}
}
