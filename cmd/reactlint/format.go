package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *LintResponseCLI:
		return formatLintHuman(v)
	case *ComponentsResponseCLI:
		return formatComponentsHuman(v)
	case *DoctorResponseCLI:
		return formatDoctorHuman(v)
	case *CacheStatsResponseCLI:
		return formatCacheStatsHuman(v)
	default:
		// For unknown types, fall back to JSON
		data, err := formatJSON(resp)
		if err != nil {
			return "", err
		}
		return "Human format not available, showing JSON:\n" + data, nil
	}
}

// formatLintHuman formats a LintResponseCLI in human-readable format
func formatLintHuman(resp *LintResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("reactlint v%s\n", resp.ToolVersion))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if len(resp.Diagnostics) == 0 {
		b.WriteString("No convertible components found.\n")
	}
	for _, d := range resp.Diagnostics {
		loc := fmt.Sprintf("%s:%d", d.Path, d.Line)
		if d.Column > 0 {
			loc += fmt.Sprintf(":%d", d.Column)
		}
		b.WriteString(fmt.Sprintf("%s  %s: %s\n", loc, d.Component, d.Message))
		for _, n := range d.Notes {
			b.WriteString(fmt.Sprintf("    note: %s\n", n))
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Scanned %d file(s): %d component(s), %d pure candidate(s), %d disqualified\n",
		resp.Summary.FilesScanned, resp.Summary.Components,
		resp.Summary.PureCandidates, resp.Summary.Disqualified))
	if resp.SuppressedCount > 0 {
		b.WriteString(fmt.Sprintf("%d finding(s) suppressed by baseline\n", resp.SuppressedCount))
	}
	if resp.Summary.FilesFromCache > 0 {
		b.WriteString(fmt.Sprintf("%d file(s) served from cache\n", resp.Summary.FilesFromCache))
	}

	if len(resp.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range resp.Warnings {
			b.WriteString(fmt.Sprintf("  ! %s: [%s] %s\n", w.Path, w.Code, w.Message))
		}
	}

	return b.String(), nil
}

// formatComponentsHuman formats a ComponentsResponseCLI in human-readable format
func formatComponentsHuman(resp *ComponentsResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString("Component Inventory\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString(fmt.Sprintf("%d component(s): %d pure candidate(s), %d disqualified\n",
		resp.Summary.Components, resp.Summary.PureCandidates, resp.Summary.Disqualified))

	lastPath := ""
	for _, c := range resp.Components {
		if c.Path != lastPath {
			b.WriteString("\n" + c.Path + "\n")
			lastPath = c.Path
		}
		b.WriteString(fmt.Sprintf("  %s (line %d, %s/%s): %s\n", c.Name, c.Line, c.Form, c.Base, c.Verdict))
		for _, r := range c.Reasons {
			b.WriteString(fmt.Sprintf("      reason: %s\n", r))
		}
		if len(c.Capabilities) > 0 {
			b.WriteString(fmt.Sprintf("      capabilities: %s\n", strings.Join(c.Capabilities, ", ")))
		}
		for _, n := range c.Notes {
			b.WriteString(fmt.Sprintf("      note: %s\n", n))
		}
	}

	return b.String(), nil
}

// formatDoctorHuman formats a DoctorResponseCLI in human-readable format
func formatDoctorHuman(resp *DoctorResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString("reactlint doctor\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	healthIcon := "✓"
	healthText := "All checks passed"
	if !resp.Healthy {
		healthIcon = "✗"
		healthText = "Issues found"
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", healthIcon, healthText))

	for _, check := range resp.Checks {
		var icon string
		switch check.Status {
		case "pass":
			icon = "✓"
		case "warn":
			icon = "⚠"
		case "fail":
			icon = "✗"
		default:
			icon = "?"
		}

		b.WriteString(fmt.Sprintf("%s %s: %s\n", icon, check.Name, check.Message))

		if len(check.SuggestedFixes) > 0 {
			b.WriteString("  Suggested fixes:\n")
			for _, fix := range check.SuggestedFixes {
				b.WriteString(fmt.Sprintf("    - %s\n", fix.Description))
				if fix.Command != "" {
					b.WriteString(fmt.Sprintf("      $ %s\n", fix.Command))
				}
			}
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// formatCacheStatsHuman formats a CacheStatsResponseCLI in human-readable format
func formatCacheStatsHuman(resp *CacheStatsResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString("Verdict Cache\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	status := "enabled"
	if !resp.Enabled {
		status = "disabled in configuration"
	}
	b.WriteString(fmt.Sprintf("Status: %s\n", status))
	b.WriteString(fmt.Sprintf("Entries: %d across %d file(s)\n", resp.Entries, resp.Paths))
	b.WriteString(fmt.Sprintf("Size: %s\n", formatBytes(resp.SizeBytes)))
	b.WriteString(fmt.Sprintf("Database: %s\n", resp.DBPath))

	return b.String(), nil
}

// formatBytes formats byte size in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
