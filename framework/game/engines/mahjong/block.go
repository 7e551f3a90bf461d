package mahjong

import "strings"

// BlockKind 面子/搭子类型
type BlockKind uint8

const (
	BlockTriplet    BlockKind = iota // 刻子
	BlockSequence                    // 顺子
	BlockPair                        // 对子
	BlockIncomplete                  // 搭子，只在向听搜索中出现
	BlockOrphan                      // 孤张
)

var blockKindNames = [...]string{"triplet", "sequence", "pair", "incomplete", "orphan"}

func (k BlockKind) String() string {
	if int(k) < len(blockKindNames) {
		return blockKindNames[k]
	}
	return "unknown"
}

// Block 手牌拆解出的一个组，值类型
type Block struct {
	kind  BlockKind
	tiles [3]Tile
	n     uint8
}

func NewTriplet(t Tile) Block {
	return Block{kind: BlockTriplet, tiles: [3]Tile{t, t, t}, n: 3}
}

// NewSequence 以 t 为首的顺子，t 必须是 1-7 的数牌
func NewSequence(t Tile) Block {
	if !t.IsNumbered() || t.Rank() > 7 {
		panic("mahjong: 非法顺子起点 " + t.String())
	}
	return Block{kind: BlockSequence, tiles: [3]Tile{t, t + 1, t + 2}, n: 3}
}

func NewPair(t Tile) Block {
	return Block{kind: BlockPair, tiles: [3]Tile{t, t}, n: 2}
}

// NewIncomplete 两张相关但未成型的牌，a < b
func NewIncomplete(a, b Tile) Block {
	if b < a {
		a, b = b, a
	}
	if a == b || !a.IsRelated(b) {
		panic("mahjong: 非法搭子 " + a.String() + b.String())
	}
	return Block{kind: BlockIncomplete, tiles: [3]Tile{a, b}, n: 2}
}

func NewOrphan(t Tile) Block {
	return Block{kind: BlockOrphan, tiles: [3]Tile{t}, n: 1}
}

func (b Block) Kind() BlockKind { return b.kind }

// Tile 代表牌：刻子/对子的牌，顺子的首张
func (b Block) Tile() Tile { return b.tiles[0] }

func (b Block) Last() Tile { return b.tiles[b.n-1] }

func (b Block) Len() int { return int(b.n) }

func (b Block) Tiles() []Tile { return append([]Tile(nil), b.tiles[:b.n]...) }

func (b Block) Contains(t Tile) bool {
	for _, x := range b.tiles[:b.n] {
		if x == t {
			return true
		}
	}
	return false
}

// IsGroup 是否为完整面子（刻子或顺子）
func (b Block) IsGroup() bool { return b.kind == BlockTriplet || b.kind == BlockSequence }

// HasYaochuu 是否含幺九牌
func (b Block) HasYaochuu() bool {
	for _, x := range b.tiles[:b.n] {
		if x.IsYaochuu() {
			return true
		}
	}
	return false
}

// Income 能让该组向完整面子推进的进张
func (b Block) Income() []Tile {
	var out []Tile
	switch b.kind {
	case BlockOrphan:
		for _, t := range AllTiles {
			if t.IsRelated(b.tiles[0]) {
				out = append(out, t)
			}
		}
	case BlockPair:
		out = append(out, b.tiles[0])
	case BlockIncomplete:
		a, c := b.tiles[0], b.tiles[1]
		switch c - a {
		case 1:
			if a.Rank() > 1 {
				out = append(out, a-1)
			}
			if c.Rank() < 9 {
				out = append(out, c+1)
			}
		case 2:
			out = append(out, a+1)
		}
	}
	return out
}

// Less 先按类型再按牌排序
func (b Block) Less(o Block) bool {
	if b.kind != o.kind {
		return b.kind < o.kind
	}
	for i := uint8(0); i < b.n && i < o.n; i++ {
		if b.tiles[i] != o.tiles[i] {
			return b.tiles[i] < o.tiles[i]
		}
	}
	return b.n < o.n
}

func (b Block) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(FormatTiles(b.tiles[:b.n]))
	sb.WriteByte(']')
	return sb.String()
}
