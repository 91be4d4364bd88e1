package main

import (
	"reflect"
	"testing"

	"github.com/pallendes/eslint-plugin-react/internal/output"
	"github.com/pallendes/eslint-plugin-react/internal/stateless"
)

func TestDescribeCapabilitiesDedupes(t *testing.T) {
	findings := []stateless.Finding{
		{Capability: stateless.CapUsesState, Text: "this.state", Line: 4},
		{Capability: stateless.CapReadsProps, Text: "this.props", Line: 5},
		{Capability: stateless.CapUsesState, Text: "this.setState", Line: 9},
	}

	got := describeCapabilities(findings)
	want := []string{"reads_props", "uses_state"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("describeCapabilities = %v, want %v", got, want)
	}
}

func TestDescribeReasons(t *testing.T) {
	reasons := []stateless.Reason{
		{Code: stateless.ReasonUsesState, Detail: "this.state", Line: 7},
		{Code: stateless.ReasonLifecycle, Detail: "componentDidMount", Line: 12},
		{Code: stateless.ReasonUnknownBase, Line: 3},
	}

	got := describeReasons(reasons)
	want := []string{
		"uses_state this.state (line 7)",
		"lifecycle_method componentDidMount (line 12)",
		"unknown_base (line 3)",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("describeReasons = %v, want %v", got, want)
	}
}

func TestDescribeMembers(t *testing.T) {
	members := []stateless.MemberInfo{
		{Name: "render", Kind: stateless.MemberRender, Line: 4},
		{Name: "propTypes", Kind: stateless.MemberMetadata, Static: true, Line: 2},
		{Name: "", Kind: stateless.MemberOther, Line: 9},
	}

	got := describeMembers(members)
	want := []string{
		"render (render)",
		"propTypes (metadata, static)",
		"(computed) (other)",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("describeMembers = %v, want %v", got, want)
	}
}

func TestConvertComponentsResponseFilters(t *testing.T) {
	res := &output.RunResult{
		Root: "/repo",
		Files: []output.FileResult{
			{
				Path: "src/app.jsx",
				Components: []stateless.ComponentAnalysis{
					{Name: "App", Verdict: stateless.VerdictDisqualified, Line: 3},
					{Name: "Footer", Verdict: stateless.VerdictPureCandidate, Line: 20},
				},
			},
		},
		Summary: output.RunSummary{Components: 2, PureCandidates: 1, Disqualified: 1},
	}

	componentsVerdict = string(stateless.VerdictPureCandidate)
	defer func() { componentsVerdict = "" }()

	resp := convertComponentsResponse(res)
	if len(resp.Components) != 1 {
		t.Fatalf("expected 1 component after filtering, got %d", len(resp.Components))
	}
	if resp.Components[0].Name != "Footer" {
		t.Errorf("expected Footer, got %s", resp.Components[0].Name)
	}
	// Summary keeps the unfiltered counts
	if resp.Summary.Components != 2 {
		t.Errorf("summary should not be filtered, got %+v", resp.Summary)
	}
}

func TestConvertComponentsResponseLimit(t *testing.T) {
	res := &output.RunResult{
		Root: "/repo",
		Files: []output.FileResult{
			{
				Path: "src/app.jsx",
				Components: []stateless.ComponentAnalysis{
					{Name: "A", Verdict: stateless.VerdictPureCandidate, Line: 1},
					{Name: "B", Verdict: stateless.VerdictPureCandidate, Line: 5},
					{Name: "C", Verdict: stateless.VerdictPureCandidate, Line: 9},
				},
			},
		},
	}

	componentsLimit = 2
	defer func() { componentsLimit = 0 }()

	resp := convertComponentsResponse(res)
	if len(resp.Components) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(resp.Components))
	}
}
