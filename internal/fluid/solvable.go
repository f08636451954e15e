package fluid

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

/* ----------------------------------------------------------------------
 * Solvability oracle. Decides whether the colors on the board can be
 * rearranged into a solved configuration at all, by proving or refuting
 * the existence of a partition of containers: one group per color whose
 * capacities sum to that color's packet count, plus a leftover group for
 * the empty space. Stages run in order of increasing cost and the first
 * verdict wins.
 */

// IsSolvable runs the full oracle pipeline. It never mutates the state.
func (s GameState) IsSolvable() bool {
	if s.IsSolved() {
		return true
	}
	counts := s.ColorCounts()
	sizes := s.ContainerSizes()
	if !requiredSumsReachable(counts, sizes, s.EmptySpace()) {
		return false
	}
	if everyColorFitsOwnContainer(counts, sizes) {
		return true
	}
	return s.solveExact(counts, sizes)
}

// requiredSumsReachable is the fast necessary check: every color count and
// the total empty space must be a subset sum of the container capacities
// (each container usable at most once). A miss certifies unsolvable.
func requiredSumsReachable(counts map[int]int, sizes []int, emptySpace int) bool {
	total := 0
	for _, c := range sizes {
		total += c
	}
	reachable := make([]bool, total+1)
	reachable[0] = true
	for _, c := range sizes {
		for sum := total - c; sum >= 0; sum-- {
			if reachable[sum] {
				reachable[sum+c] = true
			}
		}
	}
	for _, n := range counts {
		if !reachable[n] {
			return false
		}
	}
	return reachable[emptySpace]
}

// everyColorFitsOwnContainer is the fast sufficient check: when no
// packet-count value is shared by more colors than there are containers of
// that exact capacity, each color can simply be assigned its own matching
// container. A single shared capacity also settles it, since stage 1 has
// already verified every count is a multiple of it.
func everyColorFitsOwnContainer(counts map[int]int, sizes []int) bool {
	byCapacity := make(map[int]int)
	for _, c := range sizes {
		byCapacity[c]++
	}
	if len(byCapacity) == 1 {
		return true
	}
	needed := make(map[int]int)
	for _, n := range counts {
		needed[n]++
	}
	for size, colors := range needed {
		if byCapacity[size] < colors {
			return false
		}
	}
	return true
}

// capacityPool tracks how many unassigned containers of each capacity
// remain.
type capacityPool map[int]int

func (p capacityPool) clone() capacityPool {
	return maps.Clone(p)
}

// take consumes a way the given number of times. All subtraction is
// guarded; running out of a capacity means the commitment is impossible,
// never a wraparound.
func (p capacityPool) take(w way, times int) bool {
	for c, n := range w {
		need := n * times
		if p[c] < need {
			return false
		}
		p[c] -= need
	}
	return true
}

// way is one combination of container usage (capacity -> count) that sums
// exactly to a target size.
type way map[int]int

func (w way) fits(pool capacityPool) bool {
	for c, n := range w {
		if pool[c] < n {
			return false
		}
	}
	return true
}

// liquidTarget is an exact amount of fluid that some group of containers
// must sum to: one per distinct color packet-count, with count colors
// sharing it, plus possibly the synthetic empty-space target.
type liquidTarget struct {
	size  int
	count int
	ways  []way
}

// solveExact is the stage-3 decision procedure: enumerate the ways each
// target size can be assembled from the capacity pool, commit every forced
// choice, then backtrack over what is left.
func (s GameState) solveExact(counts map[int]int, sizes []int) bool {
	pool := make(capacityPool)
	for _, c := range sizes {
		pool[c]++
	}

	needed := make(map[int]int)
	maxColor := 0
	for _, n := range counts {
		needed[n]++
		maxColor = max(maxColor, n)
	}
	if empty := s.EmptySpace(); empty > maxColor {
		needed[empty]++
	}

	targets := make([]*liquidTarget, 0, len(needed))
	for size, count := range needed {
		targets = append(targets, &liquidTarget{size: size, count: count})
	}
	slices.SortFunc(targets, func(a, b *liquidTarget) int {
		return b.size - a.size
	})

	enumerateWays(pool, targets)

	targets, pool, ok := commitForcedChoices(targets, pool)
	if !ok {
		return false
	}

	rest := make([]*liquidTarget, 0, len(targets))
	for _, t := range targets {
		for range t.count {
			rest = append(rest, t)
		}
	}

	var search exactSearch
	return search.run(pool, rest)
}

// enumerateWays records, per target size, every usage combination of the
// distinct capacities (largest first) that reaches it exactly. Partial sums
// never exceed the largest target.
func enumerateWays(pool capacityPool, targets []*liquidTarget) {
	caps := slices.Sorted(maps.Keys(pool))
	slices.Reverse(caps)

	bySize := make(map[int]*liquidTarget, len(targets))
	maxTarget := 0
	for _, t := range targets {
		bySize[t.size] = t
		maxTarget = max(maxTarget, t.size)
	}

	usage := make([]int, len(caps))
	var walk func(idx, sum int)
	walk = func(idx, sum int) {
		if idx == len(caps) {
			if t, ok := bySize[sum]; ok && sum > 0 {
				w := make(way)
				for i, n := range usage {
					if n > 0 {
						w[caps[i]] = n
					}
				}
				t.ways = append(t.ways, w)
			}
			return
		}
		for n := 0; n <= pool[caps[idx]]; n++ {
			if sum+n*caps[idx] > maxTarget {
				break
			}
			usage[idx] = n
			walk(idx+1, sum+n*caps[idx])
		}
		usage[idx] = 0
	}
	walk(0, 0)
}

// commitForcedChoices repeatedly commits any target with exactly one way
// left: its containers leave the pool (once per color sharing the size)
// and every other target's ways are re-checked against the reduced pool.
// A target with no ways, or a commitment the pool cannot cover, certifies
// unsolvable.
func commitForcedChoices(
	targets []*liquidTarget, pool capacityPool,
) ([]*liquidTarget, capacityPool, bool) {
	for {
		forced := -1
		for i, t := range targets {
			if len(t.ways) == 0 {
				return nil, nil, false
			}
			if len(t.ways) == 1 && forced < 0 {
				forced = i
			}
		}
		if forced < 0 {
			return targets, pool, true
		}

		t := targets[forced]
		if !pool.take(t.ways[0], t.count) {
			return nil, nil, false
		}
		targets = slices.Delete(targets, forced, forced+1)

		for _, other := range targets {
			kept := other.ways[:0]
			for _, w := range other.ways {
				if w.fits(pool) {
					kept = append(kept, w)
				}
			}
			other.ways = kept
		}
	}
}

// exactSearch is the fork-join backtracking over the remaining targets.
// Every way at a level is explored as its own goroutine over a private
// copy of the pool. done is a best-effort early-exit hint shared by all
// branches: a branch that misses it by a step only does wasted work, the
// verdict is unaffected.
type exactSearch struct {
	done atomic.Bool
}

func (e *exactSearch) run(pool capacityPool, rest []*liquidTarget) bool {
	if e.done.Load() {
		return true
	}
	if len(rest) == 0 {
		e.done.Store(true)
		return true
	}

	t := rest[0]
	var (
		wg    sync.WaitGroup
		found atomic.Bool
	)
	for _, w := range t.ways {
		if e.done.Load() {
			found.Store(true)
			break
		}
		branch := pool.clone()
		if !branch.take(w, 1) {
			continue
		}
		wg.Add(1)
		go func(branch capacityPool) {
			defer wg.Done()
			if e.run(branch, rest[1:]) {
				found.Store(true)
			}
		}(branch)
	}
	wg.Wait()
	return found.Load()
}
