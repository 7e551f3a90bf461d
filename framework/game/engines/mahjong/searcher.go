package mahjong

import (
	"sort"
	"sync"
)

// maxDistance 一般形向听数上界
const maxDistance = 8

// Cache 向听数缓存，Get/Set 需并发安全
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}) bool
}

// mapCache 默认的进程内缓存
type mapCache struct {
	mu sync.RWMutex
	m  map[string]interface{}
}

func newMapCache() *mapCache {
	return &mapCache{m: make(map[string]interface{}, 4096)}
}

func (c *mapCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *mapCache) Set(key string, value interface{}) bool {
	c.mu.Lock()
	c.m[key] = value
	c.mu.Unlock()
	return true
}

// Bounds 三种和牌形的向听数下界
type Bounds struct {
	Standard int
	Chiitoi  int
	Kokushi  int
}

func (b Bounds) Min() int {
	m := b.Standard
	if b.Chiitoi < m {
		m = b.Chiitoi
	}
	if b.Kokushi < m {
		m = b.Kokushi
	}
	return m
}

// WinningTile 听牌时的和牌张及其役
type WinningTile struct {
	Tile  Tile
	Yakus Yakus
	Han   Han
}

// Outcome 最短路径上可达的一种得分结果
type Outcome struct {
	Yakus Yakus
	Han   Han
}

// Analysis 向听分析结果
type Analysis struct {
	Distance int           // 向听数，0 为听牌
	Bounds   Bounds        // 各和牌形的下界
	Shapes   []Shape       // 最短路径上可达的和牌形
	Waits    []WinningTile // Distance 为 0 时的和牌张
	Outcomes []Outcome     // 最短路径上可达的得分结果（去重，高者在前）
	Progress []Tile        // 有效进张
	Ukeire   int           // 有效进张剩余枚数（4 - 手中张数）
}

// Candidate 一种打法：打出 Discard 之后的分析
type Candidate struct {
	Discard  Tile
	Analysis Analysis
}

// Searcher 向听搜索，可复用并发安全的缓存
type Searcher struct {
	cache Cache
}

type SearcherOption func(*Searcher)

// WithCache 使用外部缓存（例如 ristretto）
func WithCache(c Cache) SearcherOption {
	return func(s *Searcher) {
		if c != nil {
			s.cache = c
		}
	}
}

func NewSearcher(opts ...SearcherOption) *Searcher {
	s := &Searcher{}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = newMapCache()
	}
	return s
}

// Analyze 使用临时缓存的一次性分析
func Analyze(r ReadyHand) Analysis {
	return NewSearcher().Analyze(r)
}

// Bounds 计算并缓存各和牌形下界
func (s *Searcher) Bounds(h Hand34) Bounds {
	key := h.key()
	if v, ok := s.cache.Get(key); ok {
		if b, ok := v.(Bounds); ok {
			return b
		}
	}
	b := Bounds{
		Standard: ShantenNormal(h),
		Chiitoi:  ShantenChiitoi(h),
		Kokushi:  ShantenKokushi(h),
	}
	s.cache.Set(key, b)
	return b
}

func (s *Searcher) lowerBound(h Hand34) int { return s.Bounds(h).Min() }

// maybeEffective 摸到这张牌是否可能推进：与手中某张相关，或为幺九牌（国士）
func maybeEffective(h Hand34, t Tile) bool {
	if h[t] >= 4 {
		return false
	}
	if t.IsYaochuu() {
		return true
	}
	for _, x := range NewOrphan(t).Income() {
		if h[x] > 0 {
			return true
		}
	}
	return false
}

// searchState 搜索节点，origins 记录到达该节点的首摸牌集合（按位）
type searchState struct {
	hand    Hand34
	origins uint64
}

type frontierResult struct {
	outcomes map[string]Outcome
	waits    []WinningTile
	shapes   [3]bool
	progress uint64
}

// Analyze 逐步放宽目标向听数 S，在每个 S 下做广度优先的摸打搜索：
// 深度 d 的手牌只有在下界不超过 S-d 时才保留，深度 S 时摸牌即需和牌
func (s *Searcher) Analyze(r ReadyHand) Analysis {
	h := r.Counts()
	bounds := s.Bounds(h)

	for target := bounds.Min(); target <= maxDistance; target++ {
		res, ok := s.searchAt(h, target)
		if !ok {
			continue
		}
		return buildAnalysis(h, target, bounds, res)
	}
	return Analysis{Distance: bounds.Min(), Bounds: bounds}
}

func (s *Searcher) searchAt(start Hand34, target int) (*frontierResult, bool) {
	res := &frontierResult{outcomes: make(map[string]Outcome)}
	level := []searchState{{hand: start}}

	for depth := 0; depth <= target && len(level) > 0; depth++ {
		next := make(map[Hand34]uint64)
		for _, st := range level {
			for t := Tile(0); t < TileKinds; t++ {
				if !maybeEffective(st.hand, t) {
					continue
				}
				origins := st.origins
				if depth == 0 {
					origins = 1 << t
				}
				drawn := st.hand
				drawn[t]++

				if depth == target {
					s.scoreFrontier(drawn, t, origins, depth, res)
					continue
				}
				for x := Tile(0); x < TileKinds; x++ {
					if drawn[x] == 0 || x == t {
						continue
					}
					discarded := drawn
					discarded[x]--
					if s.lowerBound(discarded) > target-depth-1 {
						continue
					}
					next[discarded] |= origins
				}
			}
		}
		level = level[:0]
		for hand, origins := range next {
			level = append(level, searchState{hand: hand, origins: origins})
		}
	}
	return res, res.progress != 0
}

func (s *Searcher) scoreFrontier(drawn Hand34, t Tile, origins uint64, depth int, res *frontierResult) {
	// 未和牌的 14 张下界 >= 0
	if s.lowerBound(drawn) >= 0 {
		return
	}
	f := fullFromCounts(drawn, t)
	patterns := Decompose(f)
	if len(patterns) == 0 {
		return
	}
	yakus, han := Yakus{}, Han{}
	for _, p := range patterns {
		res.shapes[p.Shape()] = true
		ys := YakusOf(p)
		if h := ys.Han(); han.Less(h) {
			yakus, han = ys, h
		}
	}
	res.progress |= origins
	key := yakus.String()
	if _, ok := res.outcomes[key]; !ok {
		res.outcomes[key] = Outcome{Yakus: yakus, Han: han}
	}
	if depth == 0 {
		res.waits = append(res.waits, WinningTile{Tile: t, Yakus: yakus, Han: han})
	}
}

func buildAnalysis(h Hand34, distance int, bounds Bounds, res *frontierResult) Analysis {
	a := Analysis{Distance: distance, Bounds: bounds, Waits: res.waits}
	for shape, ok := range res.shapes {
		if ok {
			a.Shapes = append(a.Shapes, Shape(shape))
		}
	}
	for _, o := range res.outcomes {
		a.Outcomes = append(a.Outcomes, o)
	}
	sort.Slice(a.Outcomes, func(i, j int) bool {
		if c := a.Outcomes[i].Han.Compare(a.Outcomes[j].Han); c != 0 {
			return c > 0
		}
		return a.Outcomes[i].Yakus.String() < a.Outcomes[j].Yakus.String()
	})
	for t := Tile(0); t < TileKinds; t++ {
		if res.progress&(1<<t) != 0 {
			a.Progress = append(a.Progress, t)
			a.Ukeire += 4 - int(h[t])
		}
	}
	return a
}

// Candidates 枚举 14 张手牌的每种打法，向听数小者在前，其次有效进张多者在前
func (s *Searcher) Candidates(f FullHand) []Candidate {
	h := f.Counts()
	var out []Candidate
	for t := Tile(0); t < TileKinds; t++ {
		if h[t] == 0 {
			continue
		}
		next := h
		next[t]--
		out = append(out, Candidate{Discard: t, Analysis: s.Analyze(readyFromCounts(next))})
	}
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := out[i].Analysis, out[j].Analysis
		if ai.Distance != aj.Distance {
			return ai.Distance < aj.Distance
		}
		return ai.Ukeire > aj.Ukeire
	})
	return out
}
