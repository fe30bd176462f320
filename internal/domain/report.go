package domain

// Rule identifies one editorial check.
type Rule string

const (
	RuleWordCountFloor     Rule = "word_count_floor"
	RuleImageCountFloor    Rule = "image_count_floor"
	RuleHasValuedImage     Rule = "has_valued_image"
	RuleNoGenericPhrases   Rule = "no_generic_phrases"
	RuleTopicInOpening     Rule = "topic_in_opening"
	RuleTopicInClosing     Rule = "topic_in_closing"
	RuleHasMetaDescription Rule = "has_meta_description"
	RuleHasSourcesSection  Rule = "has_sources_section"
	RuleNoBannedYears      Rule = "no_banned_years"
)

// IssueNoContent replaces per-rule issue codes when the analyzed body was
// empty, so callers see one distinguished cause instead of nine symptoms.
const IssueNoContent = "no_content"

// RuleOutcome is one rule's verdict against a single article.
type RuleOutcome struct {
	Rule     Rule
	Pass     bool
	Blocking bool
	Message  string
}

// AuditReport aggregates the full rule run for one article. Reports are built
// fresh per audit call and never mutated after construction.
type AuditReport struct {
	OverallPass bool
	Score       float64
	Issues      []string
	Outcomes    []RuleOutcome
	Details     map[Rule]RuleOutcome
}
