package output

import (
	"testing"

	"github.com/pallendes/eslint-plugin-react/internal/stateless"
)

func TestDiagnosticsFor(t *testing.T) {
	components := []stateless.ComponentAnalysis{
		{
			Name:    "Header",
			Line:    1,
			Column:  1,
			Verdict: stateless.VerdictPureCandidate,
			Notes:   []string{"render returns null"},
		},
		{
			Name:    "Stateful",
			Line:    9,
			Column:  1,
			Verdict: stateless.VerdictDisqualified,
			Reasons: []stateless.Reason{{Code: stateless.ReasonUsesState, Line: 11}},
		},
		{
			Name:    "Footer",
			Line:    20,
			Column:  1,
			Verdict: stateless.VerdictPureCandidate,
		},
	}

	diags := DiagnosticsFor("src/app.jsx", components)

	if len(diags) != 2 {
		t.Fatalf("DiagnosticsFor() returned %d diagnostics, want 2", len(diags))
	}

	if diags[0].Component != "Header" || diags[1].Component != "Footer" {
		t.Errorf("unexpected components: %s, %s", diags[0].Component, diags[1].Component)
	}
	if diags[0].Message != stateless.Message {
		t.Errorf("unexpected message: %s", diags[0].Message)
	}
	if diags[0].Path != "src/app.jsx" || diags[0].Line != 1 {
		t.Errorf("unexpected position: %s:%d", diags[0].Path, diags[0].Line)
	}
	if len(diags[0].Notes) != 1 {
		t.Errorf("notes not carried over: %v", diags[0].Notes)
	}
	if len(diags[1].Notes) != 0 {
		t.Errorf("unexpected notes on Footer: %v", diags[1].Notes)
	}
}

func TestDiagnosticsForEmpty(t *testing.T) {
	if diags := DiagnosticsFor("src/app.jsx", nil); diags != nil {
		t.Errorf("DiagnosticsFor(nil) = %v, want nil", diags)
	}
}
