// Package practice tracks the state of one practice page.
package practice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/tuicount/internal/model"
)

// State is the lifecycle stage of an attempt.
type State int

// Attempt states.
const (
	Ready State = iota
	InProgress
	Finished
)

// Result is the evaluation of a single answer.
type Result int

// Answer results.
const (
	Unchecked Result = iota
	Correct
	Wrong
)

// maxAnswerDigits bounds the answer text; 1000*1000 has seven digits.
const maxAnswerDigits = 7

// Attempt holds the problems, answers and timing of one page.
type Attempt struct {
	state     State
	problems  []model.Problem
	answers   []string
	negative  []bool
	results   []Result
	deadline  time.Duration
	startedAt time.Time
	endedAt   time.Time
	expired   bool
}

// New returns an attempt in the Ready state.
func New() *Attempt {
	return &Attempt{}
}

// Start begins a page with the given problems. A deadline of 0 disables it.
func (a *Attempt) Start(problems []model.Problem, deadlineSeconds int, now time.Time) {
	n := len(problems)
	a.problems = append([]model.Problem(nil), problems...)
	a.answers = make([]string, n)
	a.negative = make([]bool, n)
	a.results = make([]Result, n)
	a.deadline = 0
	if deadlineSeconds > 0 {
		a.deadline = time.Duration(deadlineSeconds) * time.Second
	}
	a.startedAt = now
	a.endedAt = time.Time{}
	a.expired = false
	a.state = InProgress
}

// Reset returns the attempt to Ready and drops the page.
func (a *Attempt) Reset() {
	*a = Attempt{}
}

// State returns the lifecycle stage.
func (a *Attempt) State() State {
	return a.state
}

// Expired reports whether the deadline finished the attempt.
func (a *Attempt) Expired() bool {
	return a.expired
}

// Problems returns the problems of the page.
func (a *Attempt) Problems() []model.Problem {
	return a.problems
}

// Len returns the number of problems on the page.
func (a *Attempt) Len() int {
	return len(a.problems)
}

// HasDeadline reports whether the page is timed.
func (a *Attempt) HasDeadline() bool {
	return a.deadline > 0
}

func (a *Attempt) editable(i int) bool {
	return a.state == InProgress && i >= 0 && i < len(a.problems) && a.results[i] == Unchecked
}

// SetAnswer replaces the answer text of problem i. Non-digit runes are dropped.
func (a *Attempt) SetAnswer(i int, text string) {
	if !a.editable(i) {
		return
	}
	var b strings.Builder
	for _, r := range text {
		if r < '0' || r > '9' {
			continue
		}
		if b.Len() >= maxAnswerDigits {
			break
		}
		b.WriteRune(r)
	}
	a.answers[i] = b.String()
}

// AnswerText returns the digits typed for problem i.
func (a *Attempt) AnswerText(i int) string {
	if i < 0 || i >= len(a.answers) {
		return ""
	}
	return a.answers[i]
}

// ToggleNegative flips the sign of the answer of problem i.
func (a *Attempt) ToggleNegative(i int) {
	if !a.editable(i) {
		return
	}
	a.negative[i] = !a.negative[i]
}

// Negative reports whether the answer of problem i is negative.
func (a *Attempt) Negative(i int) bool {
	if i < 0 || i >= len(a.negative) {
		return false
	}
	return a.negative[i]
}

// Answer returns the signed answer of problem i. ok is false when nothing was typed.
func (a *Attempt) Answer(i int) (int, bool) {
	text := a.AnswerText(i)
	if text == "" {
		return 0, false
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	if a.negative[i] {
		v = -v
	}
	return v, true
}

// Check evaluates problem i if it has an answer and was not checked yet.
func (a *Attempt) Check(i int) Result {
	if !a.editable(i) {
		return a.Result(i)
	}
	if v, ok := a.Answer(i); ok {
		a.results[i] = evaluate(v, a.problems[i])
	}
	return a.results[i]
}

// Result returns the evaluation of problem i.
func (a *Attempt) Result(i int) Result {
	if i < 0 || i >= len(a.results) {
		return Unchecked
	}
	return a.results[i]
}

// AllAnswered reports whether every problem has answer text.
func (a *Attempt) AllAnswered() bool {
	for _, answer := range a.answers {
		if answer == "" {
			return false
		}
	}
	return len(a.answers) > 0
}

// Submit evaluates every unchecked problem, counting empty answers as wrong,
// and finishes the attempt.
func (a *Attempt) Submit(now time.Time) {
	if a.state != InProgress {
		return
	}
	a.finish(now)
}

// Tick finishes the attempt when the deadline has elapsed and reports whether
// it did.
func (a *Attempt) Tick(now time.Time) bool {
	if a.state != InProgress || a.deadline <= 0 {
		return false
	}
	if now.Sub(a.startedAt) < a.deadline {
		return false
	}
	a.expired = true
	a.finish(a.startedAt.Add(a.deadline))
	return true
}

func (a *Attempt) finish(at time.Time) {
	for i, problem := range a.problems {
		if a.results[i] != Unchecked {
			continue
		}
		a.results[i] = Wrong
		if v, ok := a.Answer(i); ok {
			a.results[i] = evaluate(v, problem)
		}
	}
	a.endedAt = at
	a.state = Finished
}

func evaluate(answer int, problem model.Problem) Result {
	if answer == problem.CorrectAnswer {
		return Correct
	}
	return Wrong
}

// ErrorCount returns the number of wrong answers.
func (a *Attempt) ErrorCount() int {
	count := 0
	for _, r := range a.results {
		if r == Wrong {
			count++
		}
	}
	return count
}

// Elapsed returns the time spent on the page, frozen once finished.
func (a *Attempt) Elapsed(now time.Time) time.Duration {
	switch a.state {
	case Ready:
		return 0
	case Finished:
		return a.endedAt.Sub(a.startedAt)
	}
	if d := now.Sub(a.startedAt); d > 0 {
		return d
	}
	return 0
}

// Clock renders the elapsed time as "m:ss".
func (a *Attempt) Clock(now time.Time) string {
	return FormatClock(a.Elapsed(now))
}

// FormatClock renders d as "m:ss".
func FormatClock(d time.Duration) string {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// RemainingSeconds returns the whole seconds left before the deadline, or 0
// without a deadline.
func (a *Attempt) RemainingSeconds(now time.Time) int {
	if a.deadline <= 0 {
		return 0
	}
	left := int(a.deadline/time.Second) - int(a.Elapsed(now)/time.Second)
	if left < 0 {
		return 0
	}
	return left
}

// DeadlineProgress returns the used share of the deadline in [0, 1].
func (a *Attempt) DeadlineProgress(now time.Time) float64 {
	if a.deadline <= 0 {
		return 0
	}
	p := float64(a.Elapsed(now)) / float64(a.deadline)
	if p > 1 {
		return 1
	}
	return p
}

// Session builds the record of a finished attempt.
func (a *Attempt) Session(settings model.Settings, now time.Time) (model.PracticeSession, error) {
	if a.state != Finished {
		return model.PracticeSession{}, fmt.Errorf("attempt is not finished")
	}
	return model.NewPracticeSession(now, a.Elapsed(now), a.ErrorCount(), len(a.problems), settings), nil
}
