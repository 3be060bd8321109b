package telegram

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Callback action constants.
const (
	actionQuiz        = "quiz"
	actionLearn       = "learn"
	actionProgress    = "progress"
	actionLeaderboard = "leaderboard"
)

// Quiz sub-actions. Sub-actions tied to one question carry its instance id.
const (
	quizStart   = "start"
	quizReveal  = "reveal"
	quizHint    = "hint"
	quizCorrect = "yes"
	quizWrong   = "no"
	quizNext    = "next"
	quizEnd     = "end"
)

// Learn sub-actions.
const (
	learnJump = "jump"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

func (cd callbackData) param(i int) string {
	if i < len(cd.Params) {
		return cd.Params[i]
	}
	return ""
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildQuizCallback(sub string) string {
	return callbackData{Action: actionQuiz, Params: []string{sub}}.encode()
}

// buildQuizInstanceCallback builds callback data for a button of one
// presented question.
func buildQuizInstanceCallback(sub string, instance uuid.UUID) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{sub, instance.String()},
	}.encode()
}

func buildLearnJumpCallback(index int) string {
	return callbackData{
		Action: actionLearn,
		Params: []string{learnJump, strconv.Itoa(index)},
	}.encode()
}

func buildProgressCallback() string {
	return actionProgress
}

func buildLeaderboardCallback() string {
	return actionLeaderboard
}
