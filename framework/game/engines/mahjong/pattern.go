package mahjong

import (
	"sort"
	"strings"
)

// Shape 和牌形
type Shape uint8

const (
	ShapeStandard Shape = iota // 四面子一雀头
	ShapeChiitoi               // 七对子
	ShapeKokushi               // 国士无双
)

var shapeNames = [...]string{"standard", "chiitoitsu", "kokushi"}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// Pattern 一种和牌拆解，块有序
type Pattern struct {
	blocks   []Block
	lastDraw Tile
}

func newPattern(blocks []Block, lastDraw Tile) Pattern {
	total := 0
	for _, b := range blocks {
		total += b.Len()
	}
	if total != FullSize {
		panic("mahjong: 拆解牌数不为 14")
	}
	switch len(blocks) {
	case 5, 7, 14:
	default:
		panic("mahjong: 拆解块数不合法")
	}
	sorted := append([]Block(nil), blocks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	return Pattern{blocks: sorted, lastDraw: lastDraw}
}

func (p Pattern) Blocks() []Block { return append([]Block(nil), p.blocks...) }

func (p Pattern) LastDraw() Tile { return p.lastDraw }

func (p Pattern) Shape() Shape {
	switch len(p.blocks) {
	case 7:
		return ShapeChiitoi
	case 14:
		return ShapeKokushi
	default:
		return ShapeStandard
	}
}

// Pair 标准形的雀头
func (p Pattern) Pair() (Block, bool) {
	if p.Shape() != ShapeStandard {
		return Block{}, false
	}
	for _, b := range p.blocks {
		if b.Kind() == BlockPair {
			return b, true
		}
	}
	return Block{}, false
}

func (p Pattern) String() string {
	parts := make([]string, len(p.blocks))
	for i, b := range p.blocks {
		parts[i] = b.String()
	}
	return strings.Join(parts, " ")
}

// Decompose 枚举 14 张手牌的全部和牌拆解，不和牌时返回空
func Decompose(f FullHand) []Pattern {
	var out []Pattern
	if p, ok := decomposeKokushi(f); ok {
		out = append(out, p)
	}
	if p, ok := decomposeChiitoi(f); ok {
		out = append(out, p)
	}
	if standardPrefilter(f.tiles[:]) {
		decomposeStandard(f.Counts(), 4, 1, nil, f.lastDraw, &out)
	}
	return dedupPatterns(out)
}

func decomposeKokushi(f FullHand) (Pattern, bool) {
	dup := 0
	for i, t := range f.tiles {
		if !t.IsYaochuu() {
			return Pattern{}, false
		}
		if i > 0 && f.tiles[i-1] == t {
			dup++
		}
	}
	if dup != 1 {
		return Pattern{}, false
	}
	blocks := make([]Block, FullSize)
	for i, t := range f.tiles {
		blocks[i] = NewOrphan(t)
	}
	return newPattern(blocks, f.lastDraw), true
}

func decomposeChiitoi(f FullHand) (Pattern, bool) {
	blocks := make([]Block, 0, 7)
	for i := 0; i < FullSize; i += 2 {
		if f.tiles[i] != f.tiles[i+1] {
			return Pattern{}, false
		}
		// 四张同种牌不能当两个对子
		if i+2 < FullSize && f.tiles[i+2] == f.tiles[i] {
			return Pattern{}, false
		}
		blocks = append(blocks, NewPair(f.tiles[i]))
	}
	return newPattern(blocks, f.lastDraw), true
}

// standardPrefilter 按相邻相关性切分连通段，每段张数模 3 必须为 0，恰有一段模 3 余 2（雀头所在段）
func standardPrefilter(sorted []Tile) bool {
	pairSeams := 0
	size := 1
	check := func() bool {
		switch size % 3 {
		case 0:
			return true
		case 2:
			pairSeams++
			return pairSeams == 1
		default:
			return false
		}
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].IsRelated(sorted[i]) {
			size++
			continue
		}
		if !check() {
			return false
		}
		size = 1
	}
	return check() && pairSeams == 1
}

// decomposeStandard 从最小的牌种开始，依次尝试刻子、顺子、雀头
func decomposeStandard(h Hand34, groupsLeft, pairsLeft int, acc []Block, lastDraw Tile, out *[]Pattern) {
	if groupsLeft == 0 && pairsLeft == 0 {
		*out = append(*out, newPattern(acc, lastDraw))
		return
	}

	i := -1
	for k := 0; k < TileKinds; k++ {
		if h[k] > 0 {
			i = k
			break
		}
	}
	if i == -1 {
		return
	}
	t := Tile(i)

	if groupsLeft > 0 && h[i] >= 3 {
		next := h
		next[i] -= 3
		decomposeStandard(next, groupsLeft-1, pairsLeft, withBlock(acc, NewTriplet(t)), lastDraw, out)
	}
	if groupsLeft > 0 && t.IsNumbered() && t.Rank() <= 7 && h[i+1] > 0 && h[i+2] > 0 {
		next := h
		next[i]--
		next[i+1]--
		next[i+2]--
		decomposeStandard(next, groupsLeft-1, pairsLeft, withBlock(acc, NewSequence(t)), lastDraw, out)
	}
	if pairsLeft > 0 && h[i] >= 2 {
		next := h
		next[i] -= 2
		decomposeStandard(next, groupsLeft, pairsLeft-1, withBlock(acc, NewPair(t)), lastDraw, out)
	}
}

// withBlock 追加时复制，避免分支之间共享底层数组
func withBlock(acc []Block, b Block) []Block {
	out := make([]Block, len(acc), len(acc)+1)
	copy(out, acc)
	return append(out, b)
}

func dedupPatterns(ps []Pattern) []Pattern {
	if len(ps) < 2 {
		return ps
	}
	seen := make(map[string]struct{}, len(ps))
	out := ps[:0]
	for _, p := range ps {
		k := p.String()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
