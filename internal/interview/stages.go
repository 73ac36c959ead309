package interview

// Stage is one of the four fixed interview topics.
type Stage string

const (
	StageProjects   Stage = "Projects"
	StageProgress   Stage = "Progress"
	StageChallenges Stage = "Challenges"
	StagePlans      Stage = "Plans"
)

// Stages is the fixed order an interview walks through.
var Stages = []Stage{StageProjects, StageProgress, StageChallenges, StagePlans}

// exchangesPerStage user/agent exchanges are held in a stage before moving on.
const (
	exchangesPerStage = 3
	messagesPerStage  = exchangesPerStage * 2
)

var stageDescriptions = map[Stage]string{
	StageProjects:   "What are you working on?",
	StageProgress:   "What progress have you made?",
	StageChallenges: "What challenges are you facing?",
	StagePlans:      "What are your upcoming plans?",
}

var stageQuestions = map[Stage][]string{
	StageProjects: {
		"Can you tell me more about the scope and goals of this project?",
		"What are the key deliverables you're aiming for?",
		"Who are the main stakeholders involved in this project?",
		"How long is this project expected to take?",
	},
	StageProgress: {
		"What specific milestones have you reached recently?",
		"How are you tracking progress compared to your initial timeline?",
		"What's working well so far?",
		"Have you had any quick wins to celebrate?",
		"What metrics are you using to measure success?",
	},
	StageChallenges: {
		"What specific obstacles are you facing?",
		"How is this affecting your project timeline?",
		"Have you identified any resource constraints?",
		"What support or tools would help you overcome this?",
		"Is this something you can handle internally or do you need escalation?",
	},
	StagePlans: {
		"What are your priorities for the next sprint or period?",
		"How are you planning to build on the progress you've made?",
		"What dependencies do you need to watch for?",
		"How will you measure success going forward?",
		"Any skills or training you'd like to develop?",
	},
}

// Index returns the position of s in Stages, or -1 for an unknown stage.
func (s Stage) Index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return -1
}

// Known reports whether s is one of the fixed stages.
func (s Stage) Known() bool {
	return s.Index() >= 0
}

// Description is the one-line prompt shown for the stage in the UI.
func (s Stage) Description() string {
	return stageDescriptions[s]
}

// Questions returns the follow-up templates for s. Unknown stages have none.
func (s Stage) Questions() []string {
	return stageQuestions[s]
}

// StageAt returns the stage in effect for a call made with historyLen
// exchange messages already recorded. It never decreases as historyLen grows.
func StageAt(historyLen int) Stage {
	idx := (historyLen - messagesPerStage - 1) / messagesPerStage
	if idx < 0 {
		idx = 0
	}
	if idx > len(Stages)-1 {
		idx = len(Stages) - 1
	}
	return Stages[idx]
}

// StageByIndex maps an index back to its stage; out-of-range values clamp.
func StageByIndex(i int) Stage {
	if i < 0 {
		return Stages[0]
	}
	if i >= len(Stages) {
		return Stages[len(Stages)-1]
	}
	return Stages[i]
}
