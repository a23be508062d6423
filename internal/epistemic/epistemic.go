// Package epistemic is the Epistemic Authority evaluator
// (refuse-or-cite domain). A claim is approved only when the cited
// passage's exact text supports the answer span under a conservative
// lexical overlap check. Over-refusal is the accepted trade-off over
// hallucination.
//
// Only an explicit refusal (empty claim) is auto-approved. An answer
// span asserted without a citation is not folded into the refusal
// path: it gets RequiresEvidence naming the missing passage, so the
// proposer can either cite or refuse.
package epistemic

import (
	"fmt"

	"github.com/ppiankov/boundary/internal/model"
	"github.com/ppiankov/boundary/internal/policy"
)

// Fetcher is the corpus collaborator. Synchronous, no retries at this
// layer.
type Fetcher interface {
	Fetch(passageID string) (string, bool)
}

// Evaluate decides a Citation proposal.
func Evaluate(p *model.Proposal, cfg *policy.Config, corpus Fetcher) model.Decision {
	claim := p.Citation
	if claim == nil {
		return model.Deny(model.ReasonEvaluatorFault, "epistemic.payload", "citation proposal without claim payload")
	}

	// Refusal is the canonical safe outcome and is never penalized.
	if claim.IsRefusal() {
		return model.Approve("epistemic.refusal", "refusal is always approved")
	}

	if claim.PassageID == "" {
		return model.Decision{
			Outcome:       model.RequiresEvidence,
			Reason:        model.ReasonEvidenceMissing,
			RuleID:        "epistemic.citation_required",
			MissingFields: []string{"passage_id"},
			Detail:        "answer span asserted without a citation",
		}
	}

	text, ok := corpus.Fetch(claim.PassageID)
	if !ok {
		return model.Deny(model.ReasonEvidenceMissing, "epistemic.unknown_passage",
			fmt.Sprintf("cited passage %q does not exist in the corpus", claim.PassageID))
	}

	score := Overlap(text, claim.AnswerSpan)
	if score < cfg.Thresholds.EpistemicOverlap {
		return model.Deny(model.ReasonUnsupported, "epistemic.overlap",
			fmt.Sprintf("passage supports %.0f%% of the answer span, threshold is %.0f%%",
				score*100, cfg.Thresholds.EpistemicOverlap*100))
	}

	return model.Approve("epistemic.overlap",
		fmt.Sprintf("passage %s supports the answer span (%.0f%%)", claim.PassageID, score*100))
}
