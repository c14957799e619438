package models

// ReviewSeverity is the severity of a PR review finding
type ReviewSeverity string

const (
	SeverityCritical ReviewSeverity = "critical"
	SeverityHigh     ReviewSeverity = "high"
	SeverityMedium   ReviewSeverity = "medium"
	SeverityLow      ReviewSeverity = "low"
)

// ReviewCategory is the area a PR review finding belongs to
type ReviewCategory string

const (
	CategorySecurity    ReviewCategory = "security"
	CategoryQuality     ReviewCategory = "quality"
	CategoryStyle       ReviewCategory = "style"
	CategoryTest        ReviewCategory = "test"
	CategoryDocs        ReviewCategory = "docs"
	CategoryPattern     ReviewCategory = "pattern"
	CategoryPerformance ReviewCategory = "performance"
)

// TriageCategory is the classification assigned to an issue
type TriageCategory string

const (
	TriageBug           TriageCategory = "bug"
	TriageFeature       TriageCategory = "feature"
	TriageDocumentation TriageCategory = "documentation"
	TriageQuestion      TriageCategory = "question"
	TriageDuplicate     TriageCategory = "duplicate"
	TriageSpam          TriageCategory = "spam"
	TriageFeatureCreep  TriageCategory = "feature_creep"
)

// AutoFixStatus is the stage of an auto-fix run
type AutoFixStatus string

const (
	AutoFixPending      AutoFixStatus = "pending"
	AutoFixAnalyzing    AutoFixStatus = "analyzing"
	AutoFixCreatingSpec AutoFixStatus = "creating_spec"
	AutoFixBuilding     AutoFixStatus = "building"
	AutoFixQAReview     AutoFixStatus = "qa_review"
	AutoFixPRCreated    AutoFixStatus = "pr_created"
	AutoFixCompleted    AutoFixStatus = "completed"
	AutoFixFailed       AutoFixStatus = "failed"
)

// ReviewVerdict is the overall outcome posted for a PR review
type ReviewVerdict string

const (
	VerdictApprove        ReviewVerdict = "approve"
	VerdictRequestChanges ReviewVerdict = "request_changes"
	VerdictComment        ReviewVerdict = "comment"
)

// Priority is the urgency assigned to a triaged issue
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var (
	reviewSeverities = []ReviewSeverity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}
	reviewCategories = []ReviewCategory{
		CategorySecurity, CategoryQuality, CategoryStyle, CategoryTest,
		CategoryDocs, CategoryPattern, CategoryPerformance,
	}
	triageCategories = []TriageCategory{
		TriageBug, TriageFeature, TriageDocumentation, TriageQuestion,
		TriageDuplicate, TriageSpam, TriageFeatureCreep,
	}
	autoFixPipeline = []AutoFixStatus{
		AutoFixPending, AutoFixAnalyzing, AutoFixCreatingSpec, AutoFixBuilding,
		AutoFixQAReview, AutoFixPRCreated, AutoFixCompleted,
	}
	reviewVerdicts = []ReviewVerdict{VerdictApprove, VerdictRequestChanges, VerdictComment}
	priorities     = []Priority{PriorityHigh, PriorityMedium, PriorityLow}
)

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func parseEnum[T ~string](typeName string, set []T, s string) (T, error) {
	v := T(s)
	if !contains(set, v) {
		return "", &InvalidEnumValueError{Type: typeName, Value: s}
	}
	return v, nil
}

// Valid reports whether s is a known severity
func (s ReviewSeverity) Valid() bool { return contains(reviewSeverities, s) }

// ParseReviewSeverity converts a string to a ReviewSeverity
func ParseReviewSeverity(s string) (ReviewSeverity, error) {
	return parseEnum("ReviewSeverity", reviewSeverities, s)
}

func (s *ReviewSeverity) UnmarshalText(text []byte) error {
	v, err := ParseReviewSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Valid reports whether c is a known review category
func (c ReviewCategory) Valid() bool { return contains(reviewCategories, c) }

// ParseReviewCategory converts a string to a ReviewCategory
func ParseReviewCategory(s string) (ReviewCategory, error) {
	return parseEnum("ReviewCategory", reviewCategories, s)
}

func (c *ReviewCategory) UnmarshalText(text []byte) error {
	v, err := ParseReviewCategory(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Valid reports whether c is a known triage category
func (c TriageCategory) Valid() bool { return contains(triageCategories, c) }

// ParseTriageCategory converts a string to a TriageCategory
func ParseTriageCategory(s string) (TriageCategory, error) {
	return parseEnum("TriageCategory", triageCategories, s)
}

func (c *TriageCategory) UnmarshalText(text []byte) error {
	v, err := ParseTriageCategory(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Valid reports whether s is a known auto-fix status
func (s AutoFixStatus) Valid() bool {
	return s == AutoFixFailed || contains(autoFixPipeline, s)
}

// ParseAutoFixStatus converts a string to an AutoFixStatus
func ParseAutoFixStatus(s string) (AutoFixStatus, error) {
	if v := AutoFixStatus(s); v.Valid() {
		return v, nil
	}
	return "", &InvalidEnumValueError{Type: "AutoFixStatus", Value: s}
}

func (s *AutoFixStatus) UnmarshalText(text []byte) error {
	v, err := ParseAutoFixStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// IsTerminal reports whether no further stage follows s
func (s AutoFixStatus) IsTerminal() bool {
	return s == AutoFixCompleted || s == AutoFixFailed
}

// Next returns the stage that normally follows s.
// Terminal and unknown statuses return themselves.
func (s AutoFixStatus) Next() AutoFixStatus {
	for i, stage := range autoFixPipeline[:len(autoFixPipeline)-1] {
		if stage == s {
			return autoFixPipeline[i+1]
		}
	}
	return s
}

// AutoFixStatuses returns every status in pipeline order, failed last
func AutoFixStatuses() []AutoFixStatus {
	out := make([]AutoFixStatus, 0, len(autoFixPipeline)+1)
	out = append(out, autoFixPipeline...)
	return append(out, AutoFixFailed)
}

// Valid reports whether v is a known verdict
func (v ReviewVerdict) Valid() bool { return contains(reviewVerdicts, v) }

// ParseReviewVerdict converts a string to a ReviewVerdict
func ParseReviewVerdict(s string) (ReviewVerdict, error) {
	return parseEnum("ReviewVerdict", reviewVerdicts, s)
}

func (v *ReviewVerdict) UnmarshalText(text []byte) error {
	p, err := ParseReviewVerdict(string(text))
	if err != nil {
		return err
	}
	*v = p
	return nil
}

// Valid reports whether p is a known priority
func (p Priority) Valid() bool { return contains(priorities, p) }

// ParsePriority converts a string to a Priority
func ParsePriority(s string) (Priority, error) {
	return parseEnum("Priority", priorities, s)
}

func (p *Priority) UnmarshalText(text []byte) error {
	v, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
