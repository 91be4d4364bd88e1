package stateless

import (
	"testing"

	"github.com/pallendes/eslint-plugin-react/internal/component"
)

func TestDecideVerdict_PureCandidate(t *testing.T) {
	verdict, reasons := decideVerdict(ruleInput{
		base: component.BaseGeneric,
		line: 3,
		findings: []Finding{
			{Capability: CapReadsProps, Text: "this.props", Line: 5},
			{Capability: CapReadsContext, Text: "this.context", Line: 6},
		},
	}, Options{})
	if verdict != VerdictPureCandidate {
		t.Fatalf("expected pure candidate, got %s (%v)", verdict, reasons)
	}
	if len(reasons) != 0 {
		t.Errorf("expected no reasons, got %v", reasons)
	}
}

func TestDecideVerdict_Disqualifiers(t *testing.T) {
	tests := []struct {
		name string
		in   ruleInput
		want ReasonCode
	}{
		{
			name: "unknown base",
			in:   ruleInput{base: component.BaseUnknown, line: 1},
			want: ReasonUnknownBase,
		},
		{
			name: "decorator",
			in:   ruleInput{base: component.BaseGeneric, decorators: []int{2}},
			want: ReasonDecorator,
		},
		{
			name: "lifecycle member",
			in: ruleInput{
				base:      component.BaseGeneric,
				lifecycle: []MemberInfo{{Name: "shouldComponentUpdate", Kind: MemberLifecycle, Line: 4}},
			},
			want: ReasonLifecycle,
		},
		{
			name: "nontrivial constructor",
			in: ruleInput{
				base:    component.BaseGeneric,
				badCtor: &MemberInfo{Name: "constructor", Kind: MemberConstructor, Line: 3},
			},
			want: ReasonConstructor,
		},
		{
			name: "extra member",
			in: ruleInput{
				base:   component.BaseGeneric,
				others: []MemberInfo{{Name: "handleClick", Kind: MemberOther, Line: 9}},
			},
			want: ReasonExtraMember,
		},
		{
			name: "state access",
			in: ruleInput{
				base:     component.BaseGeneric,
				findings: []Finding{{Capability: CapUsesState, Text: "this.state", Line: 5}},
			},
			want: ReasonUsesState,
		},
		{
			name: "ref access",
			in: ruleInput{
				base:     component.BaseGeneric,
				findings: []Finding{{Capability: CapUsesRefs, Text: "this.refs", Line: 5}},
			},
			want: ReasonUsesRefs,
		},
		{
			name: "unrecognized self access",
			in: ruleInput{
				base:     component.BaseGeneric,
				findings: []Finding{{Capability: CapUnknownMember, Text: "this.bar", Line: 5}},
			},
			want: ReasonUnknownAccess,
		},
		{
			name: "restricted base without outside data",
			in:   ruleInput{base: component.BaseRestricted, line: 1},
			want: ReasonRestrictedBase,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, reasons := decideVerdict(tt.in, Options{})
			if verdict != VerdictDisqualified {
				t.Fatalf("expected disqualified, got %s", verdict)
			}
			if len(reasons) != 1 {
				t.Fatalf("expected 1 reason, got %v", reasons)
			}
			if reasons[0].Code != tt.want {
				t.Errorf("expected reason %s, got %s", tt.want, reasons[0].Code)
			}
		})
	}
}

func TestDecideVerdict_RestrictedBase(t *testing.T) {
	props := []Finding{{Capability: CapReadsProps, Text: "this.props", Line: 4}}
	state := []Finding{{Capability: CapUsesState, Text: "this.state", Line: 4}}

	tests := []struct {
		name     string
		findings []Finding
		opts     Options
		want     Verdict
		wantCode ReasonCode
	}{
		{"reading props stays a candidate", props, Options{}, VerdictPureCandidate, ""},
		{"no outside data is disqualified", nil, Options{}, VerdictDisqualified, ReasonRestrictedBase},
		{"option exempts the restricted base", nil, Options{IgnorePureComponentBase: true}, VerdictPureCandidate, ""},
		{"option never shields other reasons", state, Options{IgnorePureComponentBase: true}, VerdictDisqualified, ReasonUsesState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, reasons := decideVerdict(ruleInput{
				base:     component.BaseRestricted,
				line:     1,
				findings: tt.findings,
			}, tt.opts)
			if verdict != tt.want {
				t.Fatalf("expected %s, got %s (%v)", tt.want, verdict, reasons)
			}
			if tt.wantCode != "" {
				if len(reasons) != 1 || reasons[0].Code != tt.wantCode {
					t.Errorf("expected single reason %s, got %v", tt.wantCode, reasons)
				}
			}
			// the restricted-base reason must never appear under the option
			if tt.opts.IgnorePureComponentBase {
				for _, r := range reasons {
					if r.Code == ReasonRestrictedBase {
						t.Errorf("restricted base reason produced despite the option: %v", reasons)
					}
				}
			}
		})
	}
}

func TestDecideVerdict_ChildContextExemption(t *testing.T) {
	verdict, reasons := decideVerdict(ruleInput{
		base:         component.BaseUnknown,
		line:         1,
		childContext: &MemberInfo{Name: "childContextTypes", Kind: MemberMetadata, Line: 2},
		findings:     []Finding{{Capability: CapUsesState, Text: "this.state", Line: 5}},
	}, Options{})
	if verdict != VerdictDisqualified {
		t.Fatalf("expected disqualified, got %s", verdict)
	}
	if len(reasons) != 1 || reasons[0].Code != ReasonChildContext {
		t.Errorf("expected the child context reason alone, got %v", reasons)
	}
}

func TestDecideVerdict_ReasonOrdering(t *testing.T) {
	verdict, reasons := decideVerdict(ruleInput{
		base:      component.BaseGeneric,
		line:      1,
		lifecycle: []MemberInfo{{Name: "componentDidMount", Kind: MemberLifecycle, Line: 12}},
		others:    []MemberInfo{{Name: "helper", Kind: MemberOther, Line: 4}},
		findings:  []Finding{{Capability: CapUsesState, Text: "this.state", Line: 8}},
	}, Options{})
	if verdict != VerdictDisqualified {
		t.Fatalf("expected disqualified, got %s", verdict)
	}
	wantCodes := []ReasonCode{ReasonExtraMember, ReasonUsesState, ReasonLifecycle}
	if len(reasons) != len(wantCodes) {
		t.Fatalf("expected %d reasons, got %v", len(wantCodes), reasons)
	}
	for i, want := range wantCodes {
		if reasons[i].Code != want {
			t.Errorf("reason %d: expected %s, got %s", i, want, reasons[i].Code)
		}
	}
	for i := 1; i < len(reasons); i++ {
		if reasons[i].Line < reasons[i-1].Line {
			t.Errorf("reasons not ordered by line: %v", reasons)
		}
	}
}

func TestDecideVerdict_DuplicateCapabilities(t *testing.T) {
	verdict, reasons := decideVerdict(ruleInput{
		base: component.BaseGeneric,
		findings: []Finding{
			{Capability: CapUsesState, Text: "this.state", Line: 4},
			{Capability: CapUsesState, Text: "this.setState", Line: 7},
		},
	}, Options{})
	if verdict != VerdictDisqualified {
		t.Fatalf("expected disqualified, got %s", verdict)
	}
	if len(reasons) != 1 {
		t.Errorf("expected one reason per capability, got %v", reasons)
	}
	if reasons[0].Line != 4 {
		t.Errorf("expected the first occurrence to anchor the reason, got line %d", reasons[0].Line)
	}
}
