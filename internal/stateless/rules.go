package stateless

import (
	"sort"

	"github.com/pallendes/eslint-plugin-react/internal/component"
)

// ruleInput is the evidence gathered for one definition before the
// disqualification rules run.
type ruleInput struct {
	base         component.BaseKind
	line         int // definition start, anchors definition-level reasons
	decorators   []int
	childContext *MemberInfo
	lifecycle    []MemberInfo
	others       []MemberInfo
	badCtor      *MemberInfo
	findings     []Finding
}

// decideVerdict combines base resolution, member classification, and access
// findings into the final verdict. Any single reason disqualifies; reasons
// are ordered by source line, so the first one is the primary explanation.
//
// A child-context declaration exempts the definition outright because
// propagating context requires instance machinery this analysis does not
// attempt to prove absent.
func decideVerdict(in ruleInput, opts Options) (Verdict, []Reason) {
	if in.childContext != nil {
		return VerdictDisqualified, []Reason{{
			Code:   ReasonChildContext,
			Detail: in.childContext.Name,
			Line:   in.childContext.Line,
		}}
	}

	var reasons []Reason
	if in.base == component.BaseUnknown {
		reasons = append(reasons, Reason{Code: ReasonUnknownBase, Line: in.line})
	}
	for _, line := range in.decorators {
		reasons = append(reasons, Reason{Code: ReasonDecorator, Line: line})
	}
	for _, m := range in.lifecycle {
		reasons = append(reasons, Reason{Code: ReasonLifecycle, Detail: m.Name, Line: m.Line})
	}
	if in.badCtor != nil {
		reasons = append(reasons, Reason{Code: ReasonConstructor, Line: in.badCtor.Line})
	}
	for _, m := range in.others {
		detail := m.Name
		if detail == "" {
			detail = "unrecognized member"
		}
		reasons = append(reasons, Reason{Code: ReasonExtraMember, Detail: detail, Line: m.Line})
	}
	reasons = append(reasons, findingReasons(in.findings)...)

	// A restricted-base component that reads no outside data gains nothing
	// from the instance form, but flagging it is suppressed unless the
	// option turns the restricted base into a plain one.
	if in.base == component.BaseRestricted && !opts.IgnorePureComponentBase && !readsOutsideData(in.findings) {
		reasons = append(reasons, Reason{Code: ReasonRestrictedBase, Line: in.line})
	}

	if len(reasons) == 0 {
		return VerdictPureCandidate, nil
	}
	sort.SliceStable(reasons, func(i, j int) bool { return reasons[i].Line < reasons[j].Line })
	return VerdictDisqualified, reasons
}

// findingReasons lifts disqualifying capability tags into reasons, one per
// capability, anchored at its first occurrence.
func findingReasons(findings []Finding) []Reason {
	var reasons []Reason
	seen := map[Capability]bool{}
	for _, f := range findings {
		if seen[f.Capability] {
			continue
		}
		seen[f.Capability] = true
		switch f.Capability {
		case CapUsesState:
			reasons = append(reasons, Reason{Code: ReasonUsesState, Detail: f.Text, Line: f.Line})
		case CapUsesRefs:
			reasons = append(reasons, Reason{Code: ReasonUsesRefs, Detail: f.Text, Line: f.Line})
		case CapUnknownMember:
			reasons = append(reasons, Reason{Code: ReasonUnknownAccess, Detail: f.Text, Line: f.Line})
		}
	}
	return reasons
}

func readsOutsideData(findings []Finding) bool {
	for _, f := range findings {
		if f.Capability == CapReadsProps || f.Capability == CapReadsContext {
			return true
		}
	}
	return false
}
