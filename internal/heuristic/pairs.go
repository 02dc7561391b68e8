package heuristic

import (
	"github.com/elektrokombinacija/mapf-grid-solver/internal/core"
	"github.com/elektrokombinacija/mapf-grid-solver/internal/epea"
)

// Aggregator selects how a set of pair costs is combined into a single
// joint estimate (spec.md §4.3): SPC sums them (a disjoint relaxation,
// admissible by the standard sum-of-disjoint-subproblems argument); MPC
// takes their max (also admissible, and never tighter than SPC).
type Aggregator int

const (
	SPC Aggregator = iota
	MPC
)

// pairCost sentinels for table entries that aren't a solved nonnegative
// cost: sameCell marks the (c, c) diagonal, which is never queried by a
// real search (two agents never legally occupy the same cell) but is
// filled in for completeness; unreachable marks a pair subproblem EPEA*
// could not solve within its budget, in which case HAt falls back to the
// (weaker but still admissible) sum of the two agents' individual SIC
// distances rather than treating the pair as impassable.
const (
	sameCell    = -1
	unreachable = -2
)

// Pairs is the tighter two-agent heuristic (C5 of spec.md §4.3): agents are
// grouped into disjoint pairs (2k, 2k+1), and for every pair the exact
// 2-agent joint-optimal cost is precomputed for every legal placement of
// that pair's two agents on the grid, by running EPEA* on the 2-agent
// subproblem. A leftover agent when N is odd falls back to its SIC value.
type Pairs struct {
	problem     *core.ProblemInstance
	sic         *SIC
	aggregator  Aggregator
	numPairs   int
	oddAgent   int // -1 if N is even
	pairCost   [][][]int
	subSolveMs int64
}

// BuildPairs constructs the pair-cost tables by solving every legal
// 2-agent subproblem to optimality with EPEA* (spec.md §4.3, §4.5 "pairs
// variant"). subSolveMs bounds each subproblem solve; a subproblem that
// can't be solved in time falls back to the SIC sum for that placement
// rather than failing the whole build.
func BuildPairs(problem *core.ProblemInstance, aggregator Aggregator, subSolveMs int64) (*Pairs, error) {
	sic, err := Build(problem)
	if err != nil {
		return nil, err
	}

	n := problem.NumAgents()
	p := &Pairs{
		problem:    problem,
		sic:        sic,
		aggregator: aggregator,
		numPairs:   n / 2,
		oddAgent:   -1,
		subSolveMs: subSolveMs,
	}
	if n%2 == 1 {
		p.oddAgent = n - 1
	}

	numLoc := problem.Grid.NumLocations()
	p.pairCost = make([][][]int, p.numPairs)
	for k := 0; k < p.numPairs; k++ {
		table := make([][]int, numLoc)
		for i := range table {
			table[i] = make([]int, numLoc)
			for j := range table[i] {
				table[i][j] = sameCell
			}
		}

		agentA, agentB := problem.Agents[2*k], problem.Agents[2*k+1]
		for c1 := 0; c1 < numLoc; c1++ {
			for c2 := 0; c2 < numLoc; c2++ {
				if c1 == c2 {
					continue
				}
				cost, err := solvePairCost(problem, agentA, agentB, c1, c2, subSolveMs)
				if err != nil {
					table[c1][c2] = unreachable
					continue
				}
				table[c1][c2] = cost
			}
		}
		p.pairCost[k] = table
	}

	return p, nil
}

func solvePairCost(problem *core.ProblemInstance, agentA, agentB core.Agent, c1, c2 int, maxTimeMs int64) (int, error) {
	cell1, cell2 := problem.Grid.CellAt(c1), problem.Grid.CellAt(c2)
	subAgents := []core.Agent{
		{AgentNum: 0, GoalX: agentA.GoalX, GoalY: agentA.GoalY},
		{AgentNum: 1, GoalX: agentB.GoalX, GoalY: agentB.GoalY},
	}
	subStarts := []core.Cell{cell1, cell2}

	subProblem, err := core.NewProblemInstance(problem.Grid, subAgents, subStarts, problem.Config)
	if err != nil {
		return 0, err
	}
	subSIC, err := Build(subProblem)
	if err != nil {
		return 0, err
	}

	engine := epea.New(subProblem, epea.NewSICGroups(subSIC, 2))
	plan, _, err := engine.Solve(maxTimeMs)
	if err != nil {
		return 0, err
	}
	return plan.Cost(subAgents, problem.Config.SumOfCostsVariant), nil
}

// NumGroups implements epea.Heuristic: one group per pair, plus a trailing
// singleton for an odd leftover agent.
func (p *Pairs) NumGroups() int {
	if p.oddAgent >= 0 {
		return p.numPairs + 1
	}
	return p.numPairs
}

// GroupAgents implements epea.Heuristic.
func (p *Pairs) GroupAgents(g int) []int {
	if g < p.numPairs {
		return []int{2 * g, 2*g + 1}
	}
	return []int{p.oddAgent}
}

// HAt implements epea.Heuristic and returns the group's own value under
// either aggregator. The engine sums HAt over all groups, so an EPEA* run
// given a Pairs built with MPC searches with the SPC sum; the max
// aggregation is applied only by H below.
func (p *Pairs) HAt(g int, cells []core.Cell) int {
	if g >= p.numPairs {
		return p.sic.HSingle(p.oddAgent, cells[0].X, cells[0].Y)
	}
	c1 := p.problem.Grid.Cardinality(cells[0].X, cells[0].Y)
	c2 := p.problem.Grid.Cardinality(cells[1].X, cells[1].Y)
	v := p.pairCost[g][c1][c2]
	switch v {
	case sameCell:
		return 0
	case unreachable:
		return p.sic.HSingle(2*g, cells[0].X, cells[0].Y) + p.sic.HSingle(2*g+1, cells[1].X, cells[1].Y)
	default:
		return v
	}
}

// H returns the joint heuristic value under the configured aggregator
// (spec.md §4.3): SPC sums every group's HAt; MPC takes the max.
func (p *Pairs) H(state *core.WorldState) int {
	if p.aggregator == SPC {
		return epea.FullH(p, state)
	}
	max := 0
	for g := 0; g < p.NumGroups(); g++ {
		agents := p.GroupAgents(g)
		cells := make([]core.Cell, len(agents))
		for i, a := range agents {
			cells[i] = core.Cell{X: state.Agents[a].X, Y: state.Agents[a].Y}
		}
		if v := p.HAt(g, cells); v > max {
			max = v
		}
	}
	return max
}
