// Package signal extracts expertise and authority indicators from free text.
//
// Two extraction passes are provided: Keywords matches fixed per-category
// keyword lists, and Authority applies an ordered list of regex rules that
// detect first-person expertise claims (experience, quantified results,
// speaking engagements, and so on). Both are pure functions of their input.
package signal

import (
	"regexp"
	"strings"

	"github.com/leadgauge/leadgauge/pkg/prospect"
)

// Category names a keyword group.
type Category string

// Keyword categories, in declaration order.
const (
	TalentManagement  Category = "talent_management"
	PeopleDevelopment Category = "people_development"
	HRTechnology      Category = "hr_technology"
	RoleSeniority     Category = "role_seniority"
	Industry          Category = "industry"
	CompanySize       Category = "company_size"
	CareerTransition  Category = "career_transition"
	RedFlag           Category = "red_flag"
)

// Categories lists all keyword categories in declaration order.
var Categories = []Category{
	TalentManagement,
	PeopleDevelopment,
	HRTechnology,
	RoleSeniority,
	Industry,
	CompanySize,
	CareerTransition,
	RedFlag,
}

// keywordLists holds the fixed keyword table per category. Matching is
// case-insensitive substring containment.
var keywordLists = map[Category][]string{
	TalentManagement: {
		"talent management", "talent acquisition", "talent retention",
		"talent strategy", "talent pipeline", "succession planning",
		"performance management", "workforce planning", "employee retention",
	},
	PeopleDevelopment: {
		"people development", "leadership development", "employee development",
		"coaching", "mentoring", "upskilling", "reskilling",
		"learning and development", "l&d", "career development",
	},
	HRTechnology: {
		"hr tech", "hr technology", "hris", "ats", "people analytics",
		"hr software", "hr platform", "workday", "hr automation",
	},
	RoleSeniority: {
		"ceo", "chief executive", "founder", "co-founder", "chro",
		"chief people officer", "cpo", "vp of people", "vp people",
		"head of talent", "head of people", "head of hr", "hr director",
		"people operations",
	},
	Industry: {
		"software", "saas", "tech", "technology", "startup",
		"consulting", "professional services", "fintech", "healthtech",
	},
	CompanySize: {
		"enterprise", "fortune 500", "global", "multinational",
		"mid-size", "midsize", "scale-up", "scaleup", "startup",
		"small business", "smb",
	},
	CareerTransition: {
		"new role", "recently joined", "excited to announce", "starting as",
		"joining", "next chapter", "new position", "stepping into",
	},
	RedFlag: {
		"retired", "former", "ex-", "seeking opportunities", "open to work",
		"student", "aspiring", "freelance", "self-employed",
	},
}

// Keywords returns the keywords from each category found in text.
// Matching is case-insensitive substring containment. Categories with no
// matches are omitted from the result. Empty text yields an empty map.
func Keywords(text string) map[Category][]string {
	hits := make(map[Category][]string)
	if text == "" {
		return hits
	}
	lower := strings.ToLower(text)

	for _, cat := range Categories {
		for _, kw := range keywordLists[cat] {
			if strings.Contains(lower, kw) {
				hits[cat] = append(hits[cat], kw)
			}
		}
	}
	return hits
}

// HasKeyword reports whether text contains any keyword of the category.
func HasKeyword(text string, cat Category) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywordLists[cat] {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// KeywordList returns the fixed keyword list for a category.
func KeywordList(cat Category) []string {
	return keywordLists[cat]
}

// authorityRule is one entry in the ordered authority detection list.
// Rules are evaluated top to bottom; each rule contributes at most one
// signal (its first match), but every rule is always tried.
type authorityRule struct {
	re         *regexp.Regexp
	typ        prospect.SignalType
	confidence int
}

var authorityRules = []authorityRule{
	{
		// "in my 10+ years of experience", "15 years' experience"
		re:         regexp.MustCompile(`(?i)\b(\d+)\+?\s*years['’]?\s*(?:of\s+)?experience\b`),
		typ:        prospect.SignalExperience,
		confidence: 90,
	},
	{
		// First-person delivery claims: "I implemented", "we led", ...
		re:         regexp.MustCompile(`(?i)\b(?:i|we)\s+(?:implemented|led|developed|built|launched|designed|scaled)\b`),
		typ:        prospect.SignalExperience,
		confidence: 85,
	},
	{
		// Quantified results: "increased retention by 40%"
		re:         regexp.MustCompile(`(?i)\b(?:achieved|increased|improved|reduced|grew|cut|boosted)\b[^.!?]{0,80}?\d+\s*%`),
		typ:        prospect.SignalResults,
		confidence: 95,
	},
	{
		// Named methodology or framework
		re:         regexp.MustCompile(`(?i)\b(?:framework|methodology|playbook|system)\s+(?:i|we)\s+(?:use|developed|created|built)\b`),
		typ:        prospect.SignalMethodology,
		confidence: 85,
	},
	{
		// Case-study language
		re:         regexp.MustCompile(`(?i)\b(?:case stud(?:y|ies)|success story|client story|we helped)\b`),
		typ:        prospect.SignalCaseStudy,
		confidence: 80,
	},
	{
		// Speaking engagements
		re:         regexp.MustCompile(`(?i)\b(?:i spoke at|speaking at|keynote|panelist|presented at|my talk at)\b`),
		typ:        prospect.SignalSpeaking,
		confidence: 85,
	},
	{
		// Teaching and mentoring
		re:         regexp.MustCompile(`(?i)\b(?:i teach|i mentor|i coach|i've trained|i have trained|guest lecture)\b`),
		typ:        prospect.SignalTeaching,
		confidence: 75,
	},
}

// contextRadius is how many characters of surrounding text each signal keeps.
const contextRadius = 80

// Authority extracts authority signals from text by applying the ordered
// rule list. Every rule is tried; a rule that matches contributes one signal
// for its first match. Multiple rules matching the same text all produce
// signals. Empty or short text returns nil.
func Authority(text string) []prospect.Signal {
	if text == "" {
		return nil
	}

	var signals []prospect.Signal
	for _, rule := range authorityRules {
		loc := rule.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		signals = append(signals, prospect.Signal{
			Type:       rule.typ,
			Text:       text[loc[0]:loc[1]],
			Confidence: rule.confidence,
			Context:    contextWindow(text, loc[0], loc[1]),
		})
	}
	return signals
}

// contextWindow returns text around [start,end) clipped to contextRadius
// on each side.
func contextWindow(text string, start, end int) string {
	from := start - contextRadius
	if from < 0 {
		from = 0
	}
	to := end + contextRadius
	if to > len(text) {
		to = len(text)
	}
	return strings.TrimSpace(text[from:to])
}
