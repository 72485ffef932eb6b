// Package selector implements the option-selection algorithm at the heart of
// the momenta service: given a snapshot of option contracts, a spot price,
// and a directional signal, it deterministically picks the single contract
// that best represents an at-the-money position near the target tenor.
package selector

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/momentalabs/momenta/internal/domain"
)

const (
	// DefaultTargetDTE is the target time-to-expiry in days.
	DefaultTargetDTE = 10.0

	// DefaultPoolSize caps how many near-tenor contracts advance to the
	// strike-proximity stage.
	DefaultPoolSize = 20
)

// Selector picks ATM option contracts for one underlying asset. The zero
// value is not usable; construct with New.
type Selector struct {
	asset     string
	targetDTE float64
	poolSize  int
}

// New creates a Selector for the given underlying asset. Non-positive
// targetDTE or poolSize fall back to the defaults.
func New(asset string, targetDTE float64, poolSize int) *Selector {
	if targetDTE <= 0 {
		targetDTE = DefaultTargetDTE
	}
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	return &Selector{
		asset:     asset,
		targetDTE: targetDTE,
		poolSize:  poolSize,
	}
}

// candidate pairs a contract with its tenor distance so sorting never has to
// recompute or mutate the contract itself.
type candidate struct {
	option    domain.OptionContract
	tenorDist float64
}

// Select returns the contract that best expresses the given side as an ATM
// position, or false when no eligible contract exists — a normal outcome,
// not an error.
//
// The search runs in two stages: the eligible contracts (matching option
// type and underlying asset) are ranked by distance to the target tenor, the
// nearest poolSize of them form the candidate pool, and the pool is then
// ranked by strike distance to spot. Both sorts are stable, so identical
// input always produces the identical pick.
func (s *Selector) Select(options []domain.OptionContract, spot decimal.Decimal, side domain.Side, now time.Time) (domain.OptionContract, bool) {
	wantType := side.ContractType()

	pool := make([]candidate, 0, len(options))
	for _, o := range options {
		if o.Type != wantType || o.UnderlyingAsset != s.asset {
			continue
		}
		pool = append(pool, candidate{
			option:    o,
			tenorDist: math.Abs(o.DaysToExpiry(now) - s.targetDTE),
		})
	}
	if len(pool) == 0 {
		return domain.OptionContract{}, false
	}

	// Stage one: closest to the target tenor first.
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].tenorDist < pool[j].tenorDist
	})
	if len(pool) > s.poolSize {
		pool = pool[:s.poolSize]
	}

	// Stage two: most at-the-money strike within the pool.
	sort.SliceStable(pool, func(i, j int) bool {
		di := pool[i].option.Strike.Sub(spot).Abs()
		dj := pool[j].option.Strike.Sub(spot).Abs()
		return di.LessThan(dj)
	})

	return pool[0].option, true
}

// Asset returns the underlying asset this selector is configured for.
func (s *Selector) Asset() string { return s.asset }

// TargetDTE returns the tenor, in days, the selector aims for.
func (s *Selector) TargetDTE() float64 { return s.targetDTE }
