package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/videopoker/internal/scoring"
)

// RoundResult represents the outcome of a single round
type RoundResult struct {
	Bet      int              // Credits wagered
	Payout   int              // Credits paid by the paytable
	Category scoring.Category // Paytable category of the final hand
	Held     int              // Number of cards held before the draw
}

// Net returns the credits won (positive) or lost (negative)
func (r RoundResult) Net() int {
	return r.Payout - r.Bet
}

// CategoryStats tracks how often a paytable category was hit
type CategoryStats struct {
	Hits int
	Paid int
}

// Statistics tracks simulation results
type Statistics struct {
	Rounds  int
	Wagered int
	Paid    int

	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	Categories [scoring.NumCategories]CategoryStats

	MaxPayout int // Largest single payout observed
	HeldCards int // Total cards held across all rounds
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := float64(result.Net())
	s.Rounds++
	s.Wagered += result.Bet
	s.Paid += result.Payout
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)
	s.HeldCards += result.Held

	if int(result.Category) < scoring.NumCategories {
		s.Categories[result.Category].Hits++
		s.Categories[result.Category].Paid += result.Payout
	}

	if result.Payout > s.MaxPayout {
		s.MaxPayout = result.Payout
	}
}

// Merge folds other into s. Workers each keep their own Statistics and the
// caller merges them once they finish.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.Wagered += other.Wagered
	s.Paid += other.Paid
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.HeldCards += other.HeldCards
	for i := range s.Categories {
		s.Categories[i].Hits += other.Categories[i].Hits
		s.Categories[i].Paid += other.Categories[i].Paid
	}
	if other.MaxPayout > s.MaxPayout {
		s.MaxPayout = other.MaxPayout
	}
}

// Mean returns the mean net credits per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of net credits per round
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// ReturnToPlayer returns credits paid per credit wagered
func (s *Statistics) ReturnToPlayer() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return float64(s.Paid) / float64(s.Wagered)
}

// HitRate returns the fraction of rounds that finished in category c
func (s *Statistics) HitRate(c scoring.Category) float64 {
	if s.Rounds == 0 || int(c) >= scoring.NumCategories {
		return 0
	}
	return float64(s.Categories[c].Hits) / float64(s.Rounds)
}

// Median returns the median net result
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks that paid minus wagered equals the summed net results
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(float64(s.Paid-s.Wagered)-s.SumNet) <= 1e-6
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: paid=%d wagered=%d net=%.6f", s.Paid, s.Wagered, s.SumNet)
	}

	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)", len(s.Values), s.Rounds)
	}

	hits, paid := 0, 0
	for _, c := range s.Categories {
		hits += c.Hits
		paid += c.Paid
	}
	if hits != s.Rounds {
		return fmt.Errorf("category hits (%d) do not match rounds (%d)", hits, s.Rounds)
	}
	if paid != s.Paid {
		return fmt.Errorf("category payouts (%d) do not match total paid (%d)", paid, s.Paid)
	}

	return nil
}
