package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/specgate/specgate/internal/application"
	"github.com/specgate/specgate/internal/domain"
	"github.com/specgate/specgate/internal/domain/gate"
)

// ── Warm terminal palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderGateReport renders the full gate verdict for terminal output.
func RenderGateReport(report *application.GateReport) string {
	var b strings.Builder

	// ── Header ──
	verdict := report.Verdict
	verdictText, verdictColor := "PASSED", success
	if !verdict.Passed {
		verdictText, verdictColor = "FAILED", danger
	}
	verdictStyled := lipgloss.NewStyle().Bold(true).Foreground(verdictColor).Render(verdictText)
	title := headerStyle.Render("specgate")
	subtitle := dimStyle.Render(fmt.Sprintf("quality gate · %s", verdict.Environment))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdictStyled))
	b.WriteString("\n\n")

	// ── Checks ──
	for _, check := range verdict.Checks {
		renderCheck(&b, check)
	}

	if report.QA != nil && len(report.QA.Stages) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + titleStyle.Render("Stages") + "\n")
		for _, st := range report.QA.Stages {
			renderStage(&b, st)
		}
	}

	if len(report.Violations) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + titleStyle.Render("Guardrail Violations") + "\n")
		for _, v := range report.Violations {
			fmt.Fprintf(&b, "    %s %s\n", failStyle.Render("●"), fileStyle.Render(v.FilePath))
			fmt.Fprintf(&b, "         %s\n", dimStyle.Render(v.Reason))
		}
	}

	if report.Validation != nil {
		renderFindings(&b, report.Validation)
	}

	if !verdict.Passed && len(verdict.UnmetRequirements) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + separatorLine + "\n\n")
		b.WriteString("  " + titleStyle.Render("Unmet Requirements") + "\n")
		for _, req := range verdict.UnmetRequirements {
			fmt.Fprintf(&b, "    %s %s\n", failStyle.Render("✗"), req)
		}
	}

	b.WriteString("\n")
	return b.String()
}

func renderCheck(b *strings.Builder, check gate.CheckResult) {
	var icon string
	switch check.Status {
	case domain.GatePass:
		icon = passStyle.Render("●")
	case domain.GateFail:
		icon = failStyle.Render("●")
	case domain.GateWarn:
		icon = warnStyle.Render("●")
	default:
		icon = skipStyle.Render("○")
	}

	name := padRight(check.Name, 24)
	if check.Status == domain.GateSkip {
		fmt.Fprintf(b, "  %s %s %s\n", icon, skipStyle.Render(name), skipStyle.Render("skipped"))
		return
	}
	if check.Detail != "" {
		fmt.Fprintf(b, "  %s %s %s\n", icon, name, faintStyle.Render(check.Detail))
	} else {
		fmt.Fprintf(b, "  %s %s\n", icon, name)
	}
}

func renderStage(b *strings.Builder, st domain.QAStageResult) {
	name := padRight(st.Stage, 24)
	switch {
	case st.Skipped:
		fmt.Fprintf(b, "    %s %s %s\n",
			skipStyle.Render("○"), skipStyle.Render(name), skipStyle.Render(st.SkipReason))
	case st.Passed:
		fmt.Fprintf(b, "    %s %s %s\n",
			passStyle.Render("●"), name, dimStyle.Render(st.Duration.String()))
	default:
		fmt.Fprintf(b, "    %s %s %s\n",
			failStyle.Render("●"), name, dimStyle.Render(fmt.Sprintf("%d errors", len(st.Errors))))
	}
}

func renderFindings(b *strings.Builder, vr *domain.ValidationResult) {
	if len(vr.Errors)+len(vr.Warnings) == 0 {
		return
	}

	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Findings") + "  ")
	if len(vr.Errors) > 0 {
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", len(vr.Errors))) + "  ")
	}
	if len(vr.Warnings) > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", len(vr.Warnings))))
	}
	b.WriteString("\n\n")

	for _, f := range vr.Errors {
		renderFinding(b, f)
	}
	for _, f := range vr.Warnings {
		renderFinding(b, f)
	}
}

func renderFinding(b *strings.Builder, f domain.Finding) {
	tag := severityTag(f.Severity)
	loc := f.File
	if f.Line > 0 {
		loc = fmt.Sprintf("%s:%d", f.File, f.Line)
	}

	if loc != "" {
		fmt.Fprintf(b, "    %s %s\n", tag, fileStyle.Render(loc))
		fmt.Fprintf(b, "         %s\n", dimStyle.Render(f.Message))
		if f.FixHint != "" {
			fmt.Fprintf(b, "         %s\n", faintStyle.Render(f.FixHint))
		}
	} else {
		fmt.Fprintf(b, "    %s %s\n", tag, dimStyle.Render(f.Message))
	}
}

// RenderCoverage formats an endpoint coverage report.
func RenderCoverage(pv *domain.PreValidationResult) string {
	var b strings.Builder

	pct := int(pv.CoverageRate * 100)
	color := success
	switch {
	case pct < 70:
		color = danger
	case pct < 90:
		color = warning
	}
	rateStyled := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%d%%", pct))

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s  %s\n", titleStyle.Render("Endpoint Coverage"), rateStyled, coloredBar(pct, 20))

	if len(pv.Missing) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n",
			titleStyle.Render("Missing"), dimStyle.Render(fmt.Sprintf("(%d)", len(pv.Missing))))
		for _, gap := range pv.Missing {
			line := fmt.Sprintf("    %s %s %s", failStyle.Render("●"), padRight(gap.Method, 7), gap.Path)
			if gap.IsAction {
				line += "  " + infoTagStyle.Render("action")
			}
			b.WriteString(line + "\n")
		}
	}

	if len(pv.Extra) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s %s\n",
			titleStyle.Render("Undeclared"), dimStyle.Render(fmt.Sprintf("(%d)", len(pv.Extra))))
		for _, sig := range pv.Extra {
			fmt.Fprintf(&b, "    %s %s\n", warnStyle.Render("●"), dimStyle.Render(sig))
		}
	}

	for _, d := range pv.Diagnostics {
		b.WriteString("\n")
		b.WriteString("  " + warnTagStyle.Render("warn ") + " " + dimStyle.Render(d) + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

// RenderScenarios formats generated scenarios as a terminal listing.
func RenderScenarios(scenarios []domain.TestScenario) string {
	if len(scenarios) == 0 {
		return "  " + dimStyle.Render("No scenarios generated.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n\n",
		titleStyle.Render("Scenarios"), dimStyle.Render(fmt.Sprintf("(%d)", len(scenarios))))

	for _, sc := range scenarios {
		var icon string
		switch sc.Type {
		case domain.ScenarioGuardViolation, domain.ScenarioTransitionInvalid:
			icon = warnStyle.Render("●")
		case domain.ScenarioInvariantCheck:
			icon = infoTagStyle.Render("○")
		default:
			icon = passStyle.Render("●")
		}
		fmt.Fprintf(&b, "  %s %s %s  %s\n",
			icon, dimStyle.Render(sc.ID), titleStyle.Render(sc.Name), faintStyle.Render(sc.Type))
		for _, step := range sc.Steps {
			fmt.Fprintf(&b, "      %s %s %s %s\n",
				faintStyle.Render(fmt.Sprintf("%d.", step.Order)),
				padRight(step.Method, 7), step.Endpoint,
				dimStyle.Render(fmt.Sprintf("→ %d", step.ExpectedStatus)))
		}
	}

	b.WriteString("\n")
	return b.String()
}

// RenderDiff formats a snapshot diff.
func RenderDiff(diff *domain.SnapshotDiff) string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s  %s %s %s\n\n",
		titleStyle.Render("Snapshot Diff"),
		passStyle.Render(fmt.Sprintf("+%d", diff.CreatedCount)),
		warnStyle.Render(fmt.Sprintf("~%d", diff.UpdatedCount)),
		failStyle.Render(fmt.Sprintf("-%d", diff.DeletedCount)))

	for _, ch := range diff.Changes {
		var icon string
		switch ch.ChangeType {
		case domain.ChangeCreated:
			icon = passStyle.Render("+")
		case domain.ChangeDeleted:
			icon = failStyle.Render("-")
		default:
			icon = warnStyle.Render("~")
		}
		line := fmt.Sprintf("    %s %s:%s", icon, ch.EntityType, ch.EntityID)
		if len(ch.ChangedFields) > 0 {
			line += "  " + faintStyle.Render(strings.Join(ch.ChangedFields, ", "))
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

func severityTag(severity string) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

func coloredBar(pct, width int) string {
	filled := max(0, min(pct*width/100, width))
	empty := width - filled

	color := success
	switch {
	case pct < 40:
		color = danger
	case pct < 80:
		color = warning
	}
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
