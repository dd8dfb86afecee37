package normalizer

// 网关返回的子代理结果没有强约束的 schema，以下视图模型的所有字段均为可选，
// 缺失字段保持零值，由前端决定是否渲染

// Definition 术语定义
type Definition struct {
	Term       string `json:"term,omitempty"`
	Definition string `json:"definition,omitempty"`
}

// Procedure 流程章节
type Procedure struct {
	SectionTitle string   `json:"section_title,omitempty"`
	Content      string   `json:"content,omitempty"`
	Steps        []string `json:"steps,omitempty"`
}

// Responsibility 岗位职责
type Responsibility struct {
	Role             string   `json:"role,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

// Enforcement 执行与惩戒条款
type Enforcement struct {
	ViolationReporting   string   `json:"violation_reporting,omitempty"`
	InvestigationProcess string   `json:"investigation_process,omitempty"`
	DisciplinaryActions  []string `json:"disciplinary_actions,omitempty"`
}

// PolicyDocument 制度正文
type PolicyDocument struct {
	Purpose          string           `json:"purpose,omitempty"`
	Scope            string           `json:"scope,omitempty"`
	Definitions      []Definition     `json:"definitions,omitempty"`
	PolicyStatement  string           `json:"policy_statement,omitempty"`
	Procedures       []Procedure      `json:"procedures,omitempty"`
	Responsibilities []Responsibility `json:"responsibilities,omitempty"`
	Enforcement      *Enforcement     `json:"enforcement,omitempty"`
	EffectiveDate    string           `json:"effective_date,omitempty"`
	ReviewCycle      string           `json:"review_cycle,omitempty"`
}

// PolicyResult 制度起草代理的产出
type PolicyResult struct {
	PolicyTitle     string          `json:"policy_title,omitempty"`
	PolicyDocument  *PolicyDocument `json:"policy_document,omitempty"`
	FormattingNotes []string        `json:"formatting_notes,omitempty"`
}

// ComplianceCheck 单项合规检查
type ComplianceCheck struct {
	Category    string   `json:"category,omitempty"`
	Status      string   `json:"status,omitempty"` // compliant, needs_review, non_compliant
	Findings    string   `json:"findings,omitempty"`
	Regulations []string `json:"regulations,omitempty"`
}

// IdentifiedGap 识别出的合规缺口
type IdentifiedGap struct {
	Description     string `json:"description,omitempty"`
	Severity        string `json:"severity,omitempty"` // high, medium, low
	AffectedSection string `json:"affected_section,omitempty"`
	LegalRisk       string `json:"legal_risk,omitempty"`
}

// Recommendation 整改建议
type Recommendation struct {
	Issue               string   `json:"issue,omitempty"`
	Recommendation      string   `json:"recommendation,omitempty"`
	Priority            string   `json:"priority,omitempty"` // high, medium, low
	ImplementationSteps []string `json:"implementation_steps,omitempty"`
}

// ComplianceReport 合规检查代理的产出
type ComplianceReport struct {
	ComplianceStatus string            `json:"compliance_status,omitempty"` // compliant, needs_review
	OverallScore     int               `json:"overall_score"`               // 0-100，0 是合法分值，不能因省略而丢失
	Checks           []ComplianceCheck `json:"compliance_checks,omitempty"`
	IdentifiedGaps   []IdentifiedGap   `json:"identified_gaps,omitempty"`
	Recommendations  []Recommendation  `json:"recommendations,omitempty"`
	BestPractices    []string          `json:"best_practices,omitempty"`
	FinalAssessment  string            `json:"final_assessment,omitempty"`
}
