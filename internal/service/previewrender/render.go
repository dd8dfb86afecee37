package previewrender

import (
	"strings"

	"github.com/policydraft/backend/internal/service/normalizer"
)

// 预览渲染是纯投影：从视图模型生成前端可直接遍历的渲染模型，
// 空字段与空数组对应的小节一律不出现在输出里

// 分数配色：>=80 绿，>=60 黄，其余红，读数与比例条使用同一色档
const (
	ScoreColorGreen  = "green"
	ScoreColorYellow = "yellow"
	ScoreColorRed    = "red"
)

// BadgeUnknown 枚举之外取值的兜底徽标样式
const BadgeUnknown = "badge-unknown"

var checkStatusBadges = map[string]string{
	"compliant":     "badge-success",
	"needs_review":  "badge-warning",
	"non_compliant": "badge-danger",
}

var severityBadges = map[string]string{
	"high":   "badge-danger",
	"medium": "badge-warning",
	"low":    "badge-info",
}

var priorityBadges = map[string]string{
	"high":   "badge-danger",
	"medium": "badge-warning",
	"low":    "badge-info",
}

// Preview 渲染结果：两侧独立，均可缺席
type Preview struct {
	Policy     *Policy `json:"policy,omitempty"`
	Compliance *Report `json:"compliance,omitempty"`
}

// Policy 制度草案的渲染模型
type Policy struct {
	Title    string    `json:"title,omitempty"`
	Sections []Section `json:"sections"`
}

// Section 制度草案的一个小节，四种载荷形态按需取用
type Section struct {
	Key     string        `json:"key"`
	Heading string        `json:"heading"`
	Text    string        `json:"text,omitempty"`
	Items   []string      `json:"items,omitempty"`
	Pairs   []LabeledText `json:"pairs,omitempty"`
	Blocks  []Block       `json:"blocks,omitempty"`
}

type LabeledText struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type Block struct {
	Heading string   `json:"heading,omitempty"`
	Text    string   `json:"text,omitempty"`
	Items   []string `json:"items,omitempty"`
}

// Report 合规报告的渲染模型
type Report struct {
	Collapsible     bool             `json:"collapsible"`
	StatusLabel     string           `json:"status_label,omitempty"`
	StatusBadge     string           `json:"status_badge,omitempty"`
	Score           Score            `json:"score"`
	Checks          []Check          `json:"checks,omitempty"`
	Gaps            []Gap            `json:"gaps,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	BestPractices   []string         `json:"best_practices,omitempty"`
	FinalAssessment string           `json:"final_assessment,omitempty"`
}

// Score 分数读数与比例条共用同一色档
type Score struct {
	Value    int    `json:"value"`
	Color    string `json:"color"`
	BarWidth int    `json:"bar_width"` // 百分比，0-100
}

type Check struct {
	Category    string   `json:"category,omitempty"`
	Status      string   `json:"status,omitempty"`
	StatusBadge string   `json:"status_badge"`
	Findings    string   `json:"findings,omitempty"`
	Regulations []string `json:"regulations,omitempty"`
}

type Gap struct {
	Description     string `json:"description,omitempty"`
	Severity        string `json:"severity,omitempty"`
	SeverityBadge   string `json:"severity_badge"`
	AffectedSection string `json:"affected_section,omitempty"`
	LegalRisk       string `json:"legal_risk,omitempty"`
}

type Recommendation struct {
	Issue          string   `json:"issue,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	PriorityBadge  string   `json:"priority_badge"`
	Steps          []string `json:"steps,omitempty"`
}

// Render 从当前预览投影生成渲染模型，两侧都缺席时返回 nil（什么都不渲染）
func Render(policy *normalizer.PolicyResult, report *normalizer.ComplianceReport) *Preview {
	if policy == nil && report == nil {
		return nil
	}
	return &Preview{
		Policy:     renderPolicy(policy),
		Compliance: renderReport(report),
	}
}

// ScoreColor 分数到色档的映射
func ScoreColor(score int) string {
	switch {
	case score >= 80:
		return ScoreColorGreen
	case score >= 60:
		return ScoreColorYellow
	default:
		return ScoreColorRed
	}
}

// BarWidth 比例条宽度，百分比截断到 0-100
func BarWidth(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// CheckStatusBadge 检查状态徽标，未知取值落到兜底样式
func CheckStatusBadge(status string) string {
	return badgeFor(checkStatusBadges, status)
}

// SeverityBadge 缺口严重度徽标
func SeverityBadge(severity string) string {
	return badgeFor(severityBadges, severity)
}

// PriorityBadge 整改优先级徽标
func PriorityBadge(priority string) string {
	return badgeFor(priorityBadges, priority)
}

func badgeFor(badges map[string]string, value string) string {
	if badge, ok := badges[strings.ToLower(strings.TrimSpace(value))]; ok {
		return badge
	}
	return BadgeUnknown
}

func renderPolicy(policy *normalizer.PolicyResult) *Policy {
	if policy == nil {
		return nil
	}

	out := &Policy{Title: policy.PolicyTitle, Sections: []Section{}}
	doc := policy.PolicyDocument
	if doc != nil {
		appendTextSection(out, "purpose", "目的", doc.Purpose)
		appendTextSection(out, "scope", "适用范围", doc.Scope)

		if len(doc.Definitions) > 0 {
			pairs := make([]LabeledText, 0, len(doc.Definitions))
			for _, d := range doc.Definitions {
				pairs = append(pairs, LabeledText{Label: d.Term, Text: d.Definition})
			}
			out.Sections = append(out.Sections, Section{Key: "definitions", Heading: "术语定义", Pairs: pairs})
		}

		appendTextSection(out, "policy_statement", "制度正文", doc.PolicyStatement)

		if len(doc.Procedures) > 0 {
			blocks := make([]Block, 0, len(doc.Procedures))
			for _, p := range doc.Procedures {
				blocks = append(blocks, Block{Heading: p.SectionTitle, Text: p.Content, Items: p.Steps})
			}
			out.Sections = append(out.Sections, Section{Key: "procedures", Heading: "执行流程", Blocks: blocks})
		}

		if len(doc.Responsibilities) > 0 {
			blocks := make([]Block, 0, len(doc.Responsibilities))
			for _, r := range doc.Responsibilities {
				blocks = append(blocks, Block{Heading: r.Role, Items: r.Responsibilities})
			}
			out.Sections = append(out.Sections, Section{Key: "responsibilities", Heading: "岗位职责", Blocks: blocks})
		}

		if e := doc.Enforcement; e != nil {
			blocks := make([]Block, 0, 3)
			if e.ViolationReporting != "" {
				blocks = append(blocks, Block{Heading: "违规上报", Text: e.ViolationReporting})
			}
			if e.InvestigationProcess != "" {
				blocks = append(blocks, Block{Heading: "调查流程", Text: e.InvestigationProcess})
			}
			if len(e.DisciplinaryActions) > 0 {
				blocks = append(blocks, Block{Heading: "惩戒措施", Items: e.DisciplinaryActions})
			}
			if len(blocks) > 0 {
				out.Sections = append(out.Sections, Section{Key: "enforcement", Heading: "执行与惩戒", Blocks: blocks})
			}
		}

		appendTextSection(out, "effective_date", "生效日期", doc.EffectiveDate)
		appendTextSection(out, "review_cycle", "复审周期", doc.ReviewCycle)
	}

	if len(policy.FormattingNotes) > 0 {
		out.Sections = append(out.Sections, Section{Key: "formatting_notes", Heading: "排版说明", Items: policy.FormattingNotes})
	}

	return out
}

func appendTextSection(out *Policy, key, heading, text string) {
	if text == "" {
		return
	}
	out.Sections = append(out.Sections, Section{Key: key, Heading: heading, Text: text})
}

func renderReport(report *normalizer.ComplianceReport) *Report {
	if report == nil {
		return nil
	}

	out := &Report{
		Collapsible: true,
		StatusLabel: report.ComplianceStatus,
		Score: Score{
			Value:    report.OverallScore,
			Color:    ScoreColor(report.OverallScore),
			BarWidth: BarWidth(report.OverallScore),
		},
		BestPractices:   report.BestPractices,
		FinalAssessment: report.FinalAssessment,
	}
	if report.ComplianceStatus != "" {
		out.StatusBadge = CheckStatusBadge(report.ComplianceStatus)
	}

	for _, c := range report.Checks {
		out.Checks = append(out.Checks, Check{
			Category:    c.Category,
			Status:      c.Status,
			StatusBadge: CheckStatusBadge(c.Status),
			Findings:    c.Findings,
			Regulations: c.Regulations,
		})
	}

	for _, g := range report.IdentifiedGaps {
		out.Gaps = append(out.Gaps, Gap{
			Description:     g.Description,
			Severity:        g.Severity,
			SeverityBadge:   SeverityBadge(g.Severity),
			AffectedSection: g.AffectedSection,
			LegalRisk:       g.LegalRisk,
		})
	}

	for _, r := range report.Recommendations {
		out.Recommendations = append(out.Recommendations, Recommendation{
			Issue:          r.Issue,
			Recommendation: r.Recommendation,
			Priority:       r.Priority,
			PriorityBadge:  PriorityBadge(r.Priority),
			Steps:          r.ImplementationSteps,
		})
	}

	return out
}
