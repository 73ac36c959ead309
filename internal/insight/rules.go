package insight

// Category names one insight grouping of a report.
type Category string

const (
	CategoryThemes          Category = "themes"
	CategoryBlockers        Category = "blockers"
	CategoryAchievements    Category = "achievements"
	CategoryRecommendations Category = "recommendations"
)

// Caps bound the length of each category list.
var Caps = map[Category]int{
	CategoryThemes:          6,
	CategoryBlockers:        5,
	CategoryAchievements:    5,
	CategoryRecommendations: 6,
}

type rule struct {
	trigger  string
	insight  string
	category Category
}

// rules is scanned top to bottom; order decides which insights survive the caps.
var rules = []rule{
	{"project", "Project delivery and timeline management", CategoryThemes},
	{"team", "Team collaboration and cross-functional work", CategoryThemes},
	{"collaborat", "Team collaboration and cross-functional work", CategoryThemes},
	{"campaign", "Campaign execution and marketing initiatives", CategoryThemes},
	{"customer", "Customer engagement and experience", CategoryThemes},
	{"metric", "Data-driven measurement and reporting", CategoryThemes},
	{"data", "Data-driven measurement and reporting", CategoryThemes},
	{"process", "Process improvement and workflow efficiency", CategoryThemes},
	{"resource", "Resource optimization and capacity", CategoryThemes},
	{"training", "Team growth and skill development", CategoryThemes},
	{"skill", "Team growth and skill development", CategoryThemes},

	{"blocker", "Blockers stalling work until dependencies are cleared", CategoryBlockers},
	{"integration", "Complex technical dependencies and integrations", CategoryBlockers},
	{"challenge", "Recurring challenges slowing day-to-day execution", CategoryBlockers},
	{"difficult", "Recurring challenges slowing day-to-day execution", CategoryBlockers},
	{"issue", "Open issues that need escalation and ownership", CategoryBlockers},
	{"resource", "Resource constraints affecting project velocity", CategoryBlockers},
	{"capacity", "Resource constraints affecting project velocity", CategoryBlockers},
	{"depend", "Cross-team dependencies delaying delivery", CategoryBlockers},
	{"deadline", "Timeline pressure and shifting deadlines", CategoryBlockers},
	{"delay", "Timeline pressure and shifting deadlines", CategoryBlockers},
	{"communicat", "Team communication and alignment gaps", CategoryBlockers},
	{"stakeholder", "Stakeholder expectation management", CategoryBlockers},

	{"milestone", "Met project milestones and deliverables", CategoryAchievements},
	{"complete", "Successfully delivered key initiatives", CategoryAchievements},
	{"finished", "Successfully delivered key initiatives", CategoryAchievements},
	{"delivered", "Successfully delivered key initiatives", CategoryAchievements},
	{"launch", "Launched new campaigns and initiatives", CategoryAchievements},
	{"progress", "Steady progress against planned objectives", CategoryAchievements},
	{"improv", "Improved internal team processes and workflows", CategoryAchievements},
	{"achiev", "Achieved notable wins worth celebrating", CategoryAchievements},
}

var defaults = map[Category][]string{
	CategoryThemes: {
		"Project delivery and timeline management",
		"Team collaboration and cross-functional work",
		"Resource optimization and capacity",
		"Technical excellence and innovation",
		"Team growth and skill development",
	},
	CategoryBlockers: {
		"Resource constraints affecting project velocity",
		"Complex technical dependencies and integrations",
		"Team communication and alignment gaps",
		"Capacity planning and workload distribution",
		"Stakeholder expectation management",
	},
	CategoryAchievements: {
		"Successfully delivered key marketing initiatives",
		"Improved internal team processes and workflows",
		"Enhanced cross-team collaboration",
		"Met project milestones and deliverables",
		"Developed new skills and capabilities",
	},
}

// recommendations do not depend on transcript content.
var recommendations = []string{
	"Implement dedicated project management tools for better visibility",
	"Establish regular cross-functional sync meetings",
	"Create resource pool for high-priority initiatives",
	"Develop clear escalation and issue resolution process",
	"Invest in team development and training programs",
	"Establish metrics and KPIs for tracking progress",
}
