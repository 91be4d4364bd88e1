package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/pallendes/eslint-plugin-react/internal/output"
	"github.com/pallendes/eslint-plugin-react/internal/runner"
	"github.com/pallendes/eslint-plugin-react/internal/stateless"
)

var (
	componentsVerdict string
	componentsLimit   int
)

var componentsCmd = &cobra.Command{
	Use:   "components [path]",
	Short: "List component definitions and how they were classified",
	Long: `List every component definition found in the project with its
resolution, members, observed instance capabilities, and verdict.

Where 'reactlint lint' reports only convertible components, this command
shows both sides: pure candidates and disqualified definitions together
with every reason that disqualified them.

Examples:
  reactlint components
  reactlint components src/legacy
  reactlint components --verdict=disqualified
  reactlint components --verdict=pure_candidate --limit=20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runComponents,
}

func init() {
	componentsCmd.Flags().StringVar(&componentsVerdict, "verdict", "", "Only show one verdict (pure_candidate, disqualified)")
	componentsCmd.Flags().IntVar(&componentsLimit, "limit", 0, "Limit number of components shown (0 for all)")
	rootCmd.AddCommand(componentsCmd)
}

func runComponents(cmd *cobra.Command, args []string) {
	start := time.Now()
	repoRoot := mustGetRepoRoot()
	cfg := mustLoadConfig(repoRoot)
	format := resolveFormat(cfg)
	logger := newLogger(cfg, format)

	requireParser()

	switch componentsVerdict {
	case "", string(stateless.VerdictPureCandidate), string(stateless.VerdictDisqualified):
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid verdict '%s': must be pure_candidate or disqualified\n", componentsVerdict)
		os.Exit(1)
	}

	cache, closeCache := openCache(repoRoot, cfg.Cache.Enabled, logger)
	defer closeCache()

	r := runner.New(repoRoot, cfg, cache, logger)

	files, err := runner.Discover(repoRoot, cfg.Files, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error discovering files: %v\n", err)
		os.Exit(1)
	}
	if len(args) == 1 {
		files = filterByPrefix(files, args[0])
	}

	res, err := r.RunFiles(newContext(), files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cliResponse := convertComponentsResponse(res)

	out, err := FormatResponse(cliResponse, OutputFormat(format))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)

	logger.Debug("Component listing completed", map[string]interface{}{
		"components": len(cliResponse.Components),
		"duration":   time.Since(start).Milliseconds(),
	})
}

// ComponentsResponseCLI contains the component inventory for CLI output
type ComponentsResponseCLI struct {
	Root       string            `json:"root"`
	Components []ComponentCLI    `json:"components"`
	Summary    output.RunSummary `json:"summary"`
}

// ComponentCLI describes one classified definition
type ComponentCLI struct {
	Path         string   `json:"path"`
	Name         string   `json:"name"`
	Form         string   `json:"form"`
	Base         string   `json:"base"`
	Line         int      `json:"line"`
	Verdict      string   `json:"verdict"`
	Reasons      []string `json:"reasons,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
	Members      []string `json:"members,omitempty"`
	Notes        []string `json:"notes,omitempty"`
}

func convertComponentsResponse(res *output.RunResult) *ComponentsResponseCLI {
	resp := &ComponentsResponseCLI{
		Root:       res.Root,
		Components: []ComponentCLI{},
		Summary:    res.Summary,
	}

	for _, f := range res.Files {
		for i := range f.Components {
			c := &f.Components[i]
			if componentsVerdict != "" && string(c.Verdict) != componentsVerdict {
				continue
			}
			resp.Components = append(resp.Components, ComponentCLI{
				Path:         f.Path,
				Name:         c.Name,
				Form:         string(c.Form),
				Base:         string(c.Base),
				Line:         c.Line,
				Verdict:      string(c.Verdict),
				Reasons:      describeReasons(c.Reasons),
				Capabilities: describeCapabilities(c.Findings),
				Members:      describeMembers(c.Members),
				Notes:        c.Notes,
			})
		}
	}

	if componentsLimit > 0 && len(resp.Components) > componentsLimit {
		resp.Components = resp.Components[:componentsLimit]
	}

	return resp
}

func describeReasons(reasons []stateless.Reason) []string {
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		s := string(r.Code)
		if r.Detail != "" {
			s += " " + r.Detail
		}
		out = append(out, fmt.Sprintf("%s (line %d)", s, r.Line))
	}
	return out
}

// describeCapabilities collapses findings into the distinct capability
// set, sorted for stable output.
func describeCapabilities(findings []stateless.Finding) []string {
	seen := map[string]bool{}
	for _, f := range findings {
		seen[string(f.Capability)] = true
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func describeMembers(members []stateless.MemberInfo) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		name := m.Name
		if name == "" {
			name = "(computed)"
		}
		kind := string(m.Kind)
		if m.Static {
			kind += ", static"
		}
		out = append(out, fmt.Sprintf("%s (%s)", name, kind))
	}
	return out
}
