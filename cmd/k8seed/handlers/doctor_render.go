package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	doctorColorGreen = lipgloss.Color("#22c55e")
	doctorColorRed   = lipgloss.Color("#ef4444")
	doctorColorBlue  = lipgloss.Color("#3b82f6")
	doctorColorDim   = lipgloss.Color("#6b7280")
	doctorColorWhite = lipgloss.Color("#f9fafb")
)

var (
	doctorTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(doctorColorWhite)

	doctorSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(doctorColorBlue)

	doctorDimStyle = lipgloss.NewStyle().
			Foreground(doctorColorDim)

	doctorGreenStyle = lipgloss.NewStyle().
				Foreground(doctorColorGreen)

	doctorRedStyle = lipgloss.NewStyle().
			Foreground(doctorColorRed)
)

// renderDoctorReport produces a lipgloss-styled diagnostic report string.
func renderDoctorReport(report *DoctorReport) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(doctorTitleStyle.Render(fmt.Sprintf("  k8seed doctor: %s", report.ClusterName)))
	b.WriteString("\n")
	b.WriteString(doctorDimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	b.WriteString(doctorSectionStyle.Render("  Tools"))
	b.WriteString("\n")
	for _, tool := range report.Tools {
		kind := "optional"
		if tool.Required {
			kind = "required"
		}
		if tool.Found {
			b.WriteString(fmt.Sprintf("    %s %-10s %s\n",
				doctorGreenStyle.Render("✓"), tool.Name,
				doctorDimStyle.Render(tool.Version)))
		} else {
			mark := doctorDimStyle.Render("-")
			if tool.Required {
				mark = doctorRedStyle.Render("✗")
			}
			b.WriteString(fmt.Sprintf("    %s %-10s %s\n",
				mark, tool.Name, doctorDimStyle.Render("missing ("+kind+")")))
		}
	}

	b.WriteString("\n")
	b.WriteString(doctorSectionStyle.Render("  Cluster"))
	b.WriteString("\n")
	if report.Cluster.Reachable {
		b.WriteString(fmt.Sprintf("    %s api server reachable\n", doctorGreenStyle.Render("✓")))
		readyLine := fmt.Sprintf("nodes ready %d/%d", report.Cluster.NodesReady, report.Cluster.NodesTotal)
		if report.Cluster.NodesTotal > 0 && report.Cluster.NodesReady == report.Cluster.NodesTotal {
			b.WriteString(fmt.Sprintf("    %s %s\n", doctorGreenStyle.Render("✓"), readyLine))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", doctorRedStyle.Render("✗"), readyLine))
		}
	} else {
		b.WriteString(fmt.Sprintf("    %s api server unreachable\n", doctorRedStyle.Render("✗")))
		b.WriteString(doctorDimStyle.Render("      " + report.Cluster.Error))
		b.WriteString("\n")
	}

	if len(report.Releases) > 0 {
		b.WriteString("\n")
		b.WriteString(doctorSectionStyle.Render("  Releases"))
		b.WriteString("\n")
		for _, rel := range report.Releases {
			mark := doctorDimStyle.Render("-")
			if rel.Status == "deployed" {
				mark = doctorGreenStyle.Render("✓")
			}
			b.WriteString(fmt.Sprintf("    %s %s/%s %s\n",
				mark, rel.Namespace, rel.Name,
				doctorDimStyle.Render(fmt.Sprintf("%s (%s)", rel.Chart, rel.Status))))
		}
	}

	b.WriteString("\n")
	return b.String()
}
