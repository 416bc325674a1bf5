package engine

import (
	"math"
	"math/rand"
	"sort"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// GeneticConfig holds parameters for the insertion-order search.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	Seed           int64
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 30,
		Generations:    40,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
		Seed:           42,
	}
}

// chromosome is an insertion order: a permutation of request indices.
type chromosome struct {
	order   []int
	fitness float64
}

// orderSearch evolves insertion orders for a fixed packer configuration.
// The greedy sorted order is always part of the initial population, so the
// result is never worse than AddArray.
type orderSearch[T any] struct {
	cfg    model.PackerConfig
	config GeneticConfig
	rects  []model.Rectangle[T]
	rng    *rand.Rand
}

// SearchOrder looks for an insertion order of rects that needs fewer bins
// (then leaves less waste) than the sorted greedy order, and returns a
// packer filled in that order. The search is deterministic for a given
// seed.
func SearchOrder[T any](cfg model.PackerConfig, rects []model.Rectangle[T], config GeneticConfig) (*Packer[T], error) {
	if _, err := NewWithConfig[T](cfg); err != nil {
		return nil, err
	}
	for _, r := range rects {
		if err := validateRequest(r); err != nil {
			return nil, err
		}
	}
	if config.PopulationSize < 1 {
		config.PopulationSize = 1
	}

	s := &orderSearch[T]{
		cfg:    cfg,
		config: config,
		rects:  SortRects(rects, cfg.Options.Logic),
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
	best := s.run()
	return s.decode(best)
}

func (s *orderSearch[T]) run() chromosome {
	population := s.initPopulation()
	for i := range population {
		population[i].fitness = s.evaluate(population[i])
	}

	if len(s.rects) < 2 {
		return population[0]
	}

	for gen := 0; gen < s.config.Generations; gen++ {
		sort.SliceStable(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		next := make([]chromosome, 0, s.config.PopulationSize)

		// Elitism: carry over the best individuals unchanged
		eliteCount := min(s.config.EliteCount, len(population))
		for i := 0; i < eliteCount; i++ {
			next = append(next, copyChromosome(population[i]))
		}

		for len(next) < s.config.PopulationSize {
			parent1 := s.tournamentSelect(population)
			parent2 := s.tournamentSelect(population)
			child := s.orderCrossover(parent1, parent2)
			s.mutate(&child)
			child.fitness = s.evaluate(child)
			next = append(next, child)
		}
		population = next
	}

	sort.SliceStable(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
	return population[0]
}

// initPopulation seeds the greedy order first, then random permutations.
func (s *orderSearch[T]) initPopulation() []chromosome {
	n := len(s.rects)
	population := make([]chromosome, s.config.PopulationSize)

	greedy := make([]int, n)
	for i := range greedy {
		greedy[i] = i
	}
	population[0] = chromosome{order: greedy}

	for i := 1; i < len(population); i++ {
		population[i] = chromosome{order: s.rng.Perm(n)}
	}
	return population
}

// evaluate packs the order and scores it: fewer bins dominate, then
// efficiency of the regular bins.
func (s *orderSearch[T]) evaluate(c chromosome) float64 {
	p, err := s.decode(c)
	if err != nil {
		return math.Inf(-1)
	}
	_, eff := binStats(p.bins)
	return -float64(len(p.bins)) + eff/100.0
}

// decode packs the rectangles in chromosome order into a fresh packer.
func (s *orderSearch[T]) decode(c chromosome) (*Packer[T], error) {
	p, err := NewWithConfig[T](s.cfg)
	if err != nil {
		return nil, err
	}
	ordered := make([]model.Rectangle[T], len(c.order))
	for i, idx := range c.order {
		ordered[i] = s.rects[idx]
	}
	if _, err := p.AddSequence(ordered); err != nil {
		return nil, err
	}
	return p, nil
}

// tournamentSelect picks the best individual from a random tournament.
func (s *orderSearch[T]) tournamentSelect(population []chromosome) chromosome {
	best := population[s.rng.Intn(len(population))]
	for i := 1; i < s.config.TournamentSize; i++ {
		candidate := population[s.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1): a slice of parent1 is
// kept in place and the rest is filled in parent2's relative order.
func (s *orderSearch[T]) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.order)
	if n <= 2 {
		return copyChromosome(parent1)
	}

	point1 := s.rng.Intn(n)
	point2 := s.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{order: make([]int, n)}
	inSegment := make(map[int]bool, point2-point1+1)
	for i := point1; i <= point2; i++ {
		child.order[i] = parent1.order[i]
		inSegment[parent1.order[i]] = true
	}

	childIdx := (point2 + 1) % n
	for _, idx := range parent2.order {
		if !inSegment[idx] {
			child.order[childIdx] = idx
			childIdx = (childIdx + 1) % n
		}
	}
	return child
}

// mutate applies swap and inversion mutations.
func (s *orderSearch[T]) mutate(c *chromosome) {
	n := len(c.order)
	if n < 2 {
		return
	}

	if s.rng.Float64() < s.config.MutationRate {
		i, j := s.rng.Intn(n), s.rng.Intn(n)
		c.order[i], c.order[j] = c.order[j], c.order[i]
	}

	if s.rng.Float64() < s.config.MutationRate*0.5 {
		i, j := s.rng.Intn(n), s.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.order[i], c.order[j] = c.order[j], c.order[i]
			i++
			j--
		}
	}
}

func copyChromosome(c chromosome) chromosome {
	order := make([]int, len(c.order))
	copy(order, c.order)
	return chromosome{order: order, fitness: c.fitness}
}
