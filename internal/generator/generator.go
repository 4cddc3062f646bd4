// Package generator builds arithmetic problem pages.
package generator

import (
	"math"
	"math/rand"
	"time"

	"github.com/verte-zerg/tuicount/internal/model"
)

// maxDivisionFactor bounds both the divisor and the quotient of division problems.
const maxDivisionFactor = 12

type makeFunc func(rnd *rand.Rand, countingRange int) model.Problem

var makers = map[model.Operation]makeFunc{
	model.OpAdd:      makeAdd,
	model.OpSubtract: makeSubtract,
	model.OpMultiply: makeMultiply,
	model.OpDivide:   makeDivide,
}

// Generator produces randomized arithmetic problems.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator drawing from src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Generate returns count problems, each using an operation drawn uniformly from ops.
// An empty operation set yields no problems.
func (g *Generator) Generate(count, countingRange int, ops []model.Operation) []model.Problem {
	enabled := distinctOperations(ops)
	if len(enabled) == 0 || count <= 0 {
		return []model.Problem{}
	}
	if countingRange < 0 {
		countingRange = 0
	}
	result := make([]model.Problem, 0, count)
	for i := 0; i < count; i++ {
		op := enabled[g.rnd.Intn(len(enabled))]
		result = append(result, makers[op](g.rnd, countingRange))
	}
	return result
}

func distinctOperations(ops []model.Operation) []model.Operation {
	seen := map[model.Operation]struct{}{}
	out := make([]model.Operation, 0, len(ops))
	// Canonical order keeps seeded output independent of input order.
	for _, op := range model.AllOperations() {
		for _, candidate := range ops {
			if candidate != op {
				continue
			}
			if _, ok := seen[op]; !ok {
				seen[op] = struct{}{}
				out = append(out, op)
			}
		}
	}
	return out
}

func makeAdd(rnd *rand.Rand, countingRange int) model.Problem {
	a := between(rnd, 0, countingRange)
	b := between(rnd, 0, countingRange-a)
	return model.Problem{Operand1: a, Operand2: b, Operation: model.OpAdd, CorrectAnswer: a + b}
}

func makeSubtract(rnd *rand.Rand, countingRange int) model.Problem {
	a := between(rnd, 0, countingRange)
	b := between(rnd, 0, countingRange)
	return model.Problem{Operand1: a, Operand2: b, Operation: model.OpSubtract, CorrectAnswer: a - b}
}

func makeMultiply(rnd *rand.Rand, countingRange int) model.Problem {
	maxFactor := MaxFactor(countingRange)
	a := between(rnd, 0, maxFactor)
	b := between(rnd, 0, maxFactor)
	return model.Problem{Operand1: a, Operand2: b, Operation: model.OpMultiply, CorrectAnswer: a * b}
}

func makeDivide(rnd *rand.Rand, countingRange int) model.Problem {
	limit := minInt(countingRange, maxDivisionFactor)
	answer := between(rnd, 0, limit)
	divisor := between(rnd, 1, maxInt(1, limit))
	return model.Problem{Operand1: answer * divisor, Operand2: divisor, Operation: model.OpDivide, CorrectAnswer: answer}
}

// MaxFactor is the largest multiplication operand for a counting range.
func MaxFactor(countingRange int) int {
	if countingRange < 1 {
		return 1
	}
	return maxInt(1, int(math.Sqrt(float64(countingRange))))
}

// between draws uniformly from [lo, hi]; it returns lo when hi < lo.
func between(rnd *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rnd.Intn(hi-lo+1)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
