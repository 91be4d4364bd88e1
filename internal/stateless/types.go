// Package stateless decides whether a React component definition could be
// rewritten as a plain function component.
//
// The analysis is conservative by construction: any shape it cannot fully
// understand (an unknown base type, a computed member key, an unrecognized
// access to the instance) disqualifies the definition rather than guessing.
// A missed conversion opportunity is acceptable; advising an unsafe
// conversion is not.
package stateless

import "github.com/pallendes/eslint-plugin-react/internal/component"

// Message is the diagnostic text attached to every pure candidate.
const Message = "Component should be written as a pure function"

// Verdict is the outcome of classifying one component definition.
type Verdict string

const (
	// VerdictPureCandidate marks a definition that uses no instance-only
	// capability and can be rewritten as a function.
	VerdictPureCandidate Verdict = "pure_candidate"
	// VerdictDisqualified marks a definition that needs, or may need, the
	// instance form.
	VerdictDisqualified Verdict = "disqualified"
)

// Capability tags one observed use of the component instance.
type Capability string

const (
	CapReadsProps    Capability = "reads_props"
	CapReadsContext  Capability = "reads_context"
	CapUsesState     Capability = "uses_state"
	CapUsesRefs      Capability = "uses_refs"
	CapUnknownMember Capability = "unknown_member"
)

// ReasonCode categorizes a disqualifying condition.
type ReasonCode string

const (
	ReasonUnknownBase    ReasonCode = "unknown_base"
	ReasonRestrictedBase ReasonCode = "restricted_base"
	ReasonChildContext   ReasonCode = "child_context"
	ReasonDecorator      ReasonCode = "decorator"
	ReasonLifecycle      ReasonCode = "lifecycle_method"
	ReasonConstructor    ReasonCode = "nontrivial_constructor"
	ReasonExtraMember    ReasonCode = "extra_member"
	ReasonUsesState      ReasonCode = "uses_state"
	ReasonUsesRefs       ReasonCode = "uses_refs"
	ReasonUnknownAccess  ReasonCode = "unknown_self_access"
)

// Finding is one instance access observed inside render.
type Finding struct {
	Capability Capability `json:"capability"`
	Text       string     `json:"text"` // the matched source form, e.g. "this.props"
	Line       int        `json:"line"`
	Column     int        `json:"column"`
}

// Reason is one disqualifying condition, anchored to a source line.
type Reason struct {
	Code   ReasonCode `json:"code"`
	Detail string     `json:"detail,omitempty"`
	Line   int        `json:"line"`
}

// MemberKind buckets definition members by their role.
type MemberKind string

const (
	MemberRender      MemberKind = "render"
	MemberLifecycle   MemberKind = "lifecycle"
	MemberConstructor MemberKind = "constructor"
	MemberMetadata    MemberKind = "metadata"
	MemberOther       MemberKind = "other"
)

// MemberInfo describes one classified member.
type MemberInfo struct {
	Name   string     `json:"name,omitempty"`
	Kind   MemberKind `json:"kind"`
	Static bool       `json:"static,omitempty"`
	Line   int        `json:"line"`
}

// ComponentAnalysis is the classification of one definition.
type ComponentAnalysis struct {
	Name        string             `json:"name"`
	Form        component.Form     `json:"form"`
	Base        component.BaseKind `json:"base"`
	Line        int                `json:"line"`
	Column      int                `json:"column"`
	EndLine     int                `json:"endLine"`
	Verdict     Verdict            `json:"verdict"`
	Reasons     []Reason           `json:"reasons,omitempty"`
	Findings    []Finding          `json:"findings,omitempty"`
	Members     []MemberInfo       `json:"members,omitempty"`
	ReturnsNull bool               `json:"returnsNull,omitempty"`
	Notes       []string           `json:"notes,omitempty"`
}

// FileAnalysis is the classification of every definition in one module.
// Components appear in source order.
type FileAnalysis struct {
	Path       string              `json:"path"`
	Language   string              `json:"language"`
	Components []ComponentAnalysis `json:"components"`
}

// Options configures the analyzer. The zero value flags restricted-base
// components only when they read no outside data, and assumes the newest
// react version.
type Options struct {
	// IgnorePureComponentBase treats the shallow-compare base like the
	// generic one, so extending it never affects the verdict on its own.
	IgnorePureComponentBase bool
	// ReactVersion gates diagnostics that depend on framework behavior,
	// such as function components returning null. Empty assumes support.
	ReactVersion string
}
