// Package interview drives the scripted four-stage check-in conversation.
package interview

import (
	"fmt"
	"strings"
)

const (
	closingMessage = "Thank you for sharing such detailed information! That concludes our interview. " +
		"Your insights have been recorded and will be included in the team summary report. Great work!"
	genericAck = "Thank you for that response. Can you tell me more?"

	snippetRunes = 50
)

// completionThreshold is the history length at which the final stage has
// held a full set of exchanges. The final stage completes at and beyond it
// and nowhere else, so completion never turns back off as history grows.
var completionThreshold = messagesPerStage * (len(Stages) + 1)

// Result is the outcome of one interview turn.
type Result struct {
	AgentMessage string
	NextStage    Stage
	Complete     bool
}

// Advance computes the agent's reply to userText given the current stage and
// the exchange history recorded before this turn. It is deterministic: the
// same inputs always produce the same Result.
func Advance(stage Stage, history []Message, userText string) Result {
	if !stage.Known() {
		return Result{AgentMessage: genericAck, NextStage: stage}
	}

	n := len(history)
	if stage == lastStage() {
		if n >= completionThreshold {
			return Result{AgentMessage: closingMessage, NextStage: stage, Complete: true}
		}
	} else if shouldAdvance(n) {
		next := Stages[stage.Index()+1]
		return Result{
			AgentMessage: fmt.Sprintf("Great insights on %s! Now let's move to the next topic: %s. %s",
				strings.ToLower(string(stage)), next, followUp(next, 0)),
			NextStage: next,
		}
	}

	return Result{
		AgentMessage: acknowledge(stage, userText) + " " + followUp(stage, n),
		NextStage:    stage,
	}
}

// Greeting is the opening agent message for a new interview.
func Greeting(name string) string {
	return fmt.Sprintf("Hi %s! I'm here to conduct a quick interview about your current projects and progress. "+
		"Let's start with the first topic: %s", name, Stages[0].Description())
}

func shouldAdvance(historyLen int) bool {
	return historyLen > messagesPerStage && historyLen%messagesPerStage == 0
}

func lastStage() Stage {
	return Stages[len(Stages)-1]
}

func followUp(stage Stage, round int) string {
	qs := stage.Questions()
	if len(qs) == 0 {
		return "Tell me more."
	}
	return qs[round%len(qs)]
}

func acknowledge(stage Stage, userText string) string {
	switch stage {
	case StageProjects:
		return fmt.Sprintf("That's great! %s... sounds like important work.", snippet(userText))
	case StageProgress:
		return "Excellent progress! It sounds like you've made meaningful strides."
	case StageChallenges:
		return "I understand - those are common challenges."
	case StagePlans:
		return "Those are solid plans moving forward."
	default:
		return "Thank you for that response."
	}
}

func snippet(text string) string {
	r := []rune(strings.TrimSpace(text))
	if len(r) > snippetRunes {
		r = r[:snippetRunes]
	}
	return string(r)
}
