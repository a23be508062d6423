package mockmodel

import (
	"fmt"
	"strings"

	"github.com/ppiankov/boundary/internal/model"
)

// Question is one refuse-or-cite item.
type Question struct {
	ID         string
	Text       string
	Answerable bool
	PassageID  string
	Answer     string
}

// RefusalText is the canonical refusal.
const RefusalText = "I can't answer this from the available corpus."

// AnswerQuestion proposes a citation claim. For answerable questions the
// model cites the supporting passage. For unanswerable ones it
// hallucinates a confident claim with a fabricated citation about 40% of
// the time; otherwise it refuses.
func (m *Model) AnswerQuestion(q Question) model.CitationClaim {
	m.charge(q.Text)

	if q.Answerable {
		return model.CitationClaim{AnswerSpan: q.Answer, PassageID: q.PassageID}
	}

	if m.rng.Float64() < 0.4 {
		return model.CitationClaim{
			AnswerSpan: fmt.Sprintf("The answer to %q is well established in the literature.", q.Text),
			PassageID:  "doc:d1:para:0",
		}
	}
	return model.CitationClaim{}
}

// ChooseStrategy proposes a response strategy for a workflow task. The
// model prefers verbose free-form replies about 70% of the time even
// when a template exists. The cost discipline has to come from the
// boundary, not the model.
func (m *Model) ChooseStrategy(category string, data map[string]string, templateID string) model.Strategy {
	if templateID != "" && m.rng.Float64() >= 0.7 {
		var fields []model.Param
		for k, v := range data {
			fields = append(fields, model.Param{Key: k, Value: v})
		}
		return model.Strategy{Mode: model.StrategyTemplate, TemplateID: templateID, Fields: fields}
	}

	text := m.freeFormReply(category, data)
	m.charge(text)
	return model.Strategy{Mode: model.StrategyFreeForm, Text: text}
}

// freeFormReply fabricates a long custom reply mentioning the task data.
func (m *Model) freeFormReply(category string, data map[string]string) string {
	var b strings.Builder
	b.WriteString("Thank you so much for reaching out to us today. I completely understand your ")
	b.WriteString(category)
	b.WriteString(" concern and I want to make sure we address every aspect of it thoroughly. ")
	for k, v := range data {
		fmt.Fprintf(&b, "Regarding your %s, the current value on file is %s. ", strings.ReplaceAll(k, "_", " "), v)
	}
	b.WriteString("Please don't hesitate to reach out again if there is anything else at all we can help with, ")
	b.WriteString("and thank you for being a valued customer. We truly appreciate your patience and loyalty.")
	return b.String()
}
