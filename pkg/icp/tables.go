package icp

// WeightedPatterns maps a group of interchangeable patterns to one weight.
// When scoring, the best matching entry wins; weights are never summed.
type WeightedPatterns struct {
	Patterns []string
	Weight   int
}

// roleTable scores seniority from the headline. Evaluated only after the
// exclude list is checked.
var roleTable = []WeightedPatterns{
	{Patterns: []string{"ceo", "chief executive", "founder", "co-founder"}, Weight: 100},
	{Patterns: []string{"chro", "chief people officer", "cpo"}, Weight: 95},
	{Patterns: []string{"vp of people", "vp people", "vp of talent", "vp hr", "vp of hr"}, Weight: 90},
	{Patterns: []string{"head of talent", "head of people", "head of hr"}, Weight: 85},
	{Patterns: []string{"hr director", "director of people", "talent director", "people director"}, Weight: 75},
	{Patterns: []string{"people operations", "hr manager", "talent manager", "hr business partner"}, Weight: 60},
}

// roleExcludes hard-veto the role score: any match forces 0 regardless of
// what the role table would score.
var roleExcludes = []string{
	"retired", "former", "ex-", "seeking opportunities", "open to work",
	"student", "aspiring", "freelance", "self-employed",
}

var industryTable = []WeightedPatterns{
	{Patterns: []string{"software", "saas", "tech", "technology"}, Weight: 100},
	{Patterns: []string{"fintech", "healthtech", "startup"}, Weight: 90},
	{Patterns: []string{"consulting", "professional services"}, Weight: 80},
	{Patterns: []string{"finance", "healthcare", "education"}, Weight: 60},
}

// companySizeTable scores company-size fit. Unlike the other tables, a text
// with no match scores the mid-size default rather than 0.
var companySizeTable = []WeightedPatterns{
	{Patterns: []string{"mid-size", "midsize", "51-200", "201-500", "scale-up", "scaleup", "growth-stage"}, Weight: 100},
	{Patterns: []string{"startup", "early-stage", "small business", "smb"}, Weight: 80},
	{Patterns: []string{"enterprise", "fortune 500", "global", "multinational"}, Weight: 50},
}

// companySizeDefault is the mid-size assumption applied when no size keyword
// is present.
const companySizeDefault = 70

var transitionTable = []WeightedPatterns{
	{Patterns: []string{
		"new role", "recently joined", "excited to announce", "starting as",
		"joining", "next chapter", "new position", "stepping into",
	}, Weight: 100},
}

var leadershipTable = []WeightedPatterns{
	{Patterns: []string{"ceo", "chief", "founder", "president"}, Weight: 100},
	{Patterns: []string{"vp", "vice president", "head of"}, Weight: 85},
	{Patterns: []string{"director"}, Weight: 70},
	{Patterns: []string{"manager", "lead"}, Weight: 55},
}

// Expertise area tables, scored per content item with max-wins semantics,
// then accumulated across items with the post/article damping rule.
var expertiseTables = map[Dimension][]WeightedPatterns{
	DimTalentManagement: {
		{Patterns: []string{"talent management", "succession planning", "talent strategy"}, Weight: 80},
		{Patterns: []string{"talent acquisition", "performance management", "workforce planning", "employee retention", "talent pipeline"}, Weight: 60},
		{Patterns: []string{"hiring", "recruiting", "retention"}, Weight: 40},
	},
	DimPeopleDevelopment: {
		{Patterns: []string{"people development", "leadership development", "learning and development"}, Weight: 80},
		{Patterns: []string{"coaching", "mentoring", "upskilling", "reskilling", "l&d"}, Weight: 60},
		{Patterns: []string{"training", "career development", "employee development"}, Weight: 40},
	},
	DimHRTechnology: {
		{Patterns: []string{"hr technology", "hr tech", "people analytics"}, Weight: 80},
		{Patterns: []string{"hris", "ats", "hr software", "hr platform"}, Weight: 60},
		{Patterns: []string{"workday", "hr automation"}, Weight: 40},
	},
}

// Content damping multipliers: a single post is weak evidence of expertise,
// a published article is full evidence.
const (
	postWeight    = 0.3
	articleWeight = 1.0
)

// Tenure bands, months in role. Short tenure scores highest because a recent
// arrival is the best time to sell tooling.
const (
	tenureUnknownScore = 60
	tenureBand6        = 100
	tenureBand12       = 90
	tenureBand24       = 80
	tenureBandLong     = 50
)
