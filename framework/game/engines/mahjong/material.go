package mahjong

// Tile 牌种，共 34 种，顺序即规范排序：万 1-9、筒 1-9、索 1-9、东南西北、白发中
type Tile uint8

const (
	// 万子 (0-8)
	Man1 Tile = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9

	// 筒子 (9-17)
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9

	// 索子 (18-26)
	So1
	So2
	So3
	So4
	So5
	So6
	So7
	So8
	So9

	// 风牌 (27-30)
	East
	South
	West
	North

	// 三元牌 (31-33)
	White
	Green
	Red

	TileKinds = 34
)

// Suit 花色
type Suit uint8

const (
	SuitMan Suit = iota
	SuitPin
	SuitSo
	SuitHonor
)

var suitLetters = [3]byte{'m', 'p', 's'}

var honorNames = [7]string{"ton", "nan", "shaa", "pei", "haku", "hatsu", "chun"}

// AllTiles 规范顺序的全部牌种
var AllTiles = func() [TileKinds]Tile {
	var out [TileKinds]Tile
	for i := range out {
		out[i] = Tile(i)
	}
	return out
}()

// kokushiTiles 幺九牌
var kokushiTiles = [13]Tile{
	Man1, Man9,
	Pin1, Pin9,
	So1, So9,
	East, South, West, North,
	White, Green, Red,
}

// greenTiles 绿一色可用的牌
var greenTiles = [TileKinds]bool{
	So2: true, So3: true, So4: true, So6: true, So8: true, Green: true,
}

func (t Tile) Valid() bool { return t < TileKinds }

func (t Tile) Suit() Suit {
	if t >= East {
		return SuitHonor
	}
	return Suit(t / 9)
}

// Rank 数牌点数 1-9，字牌返回 0
func (t Tile) Rank() int {
	if t >= East {
		return 0
	}
	return int(t%9) + 1
}

func (t Tile) IsNumbered() bool { return t.Valid() && t < East }

func (t Tile) IsHonor() bool { return t >= East && t.Valid() }

func (t Tile) IsWind() bool { return t >= East && t <= North }

func (t Tile) IsDragon() bool { return t >= White && t <= Red }

// IsTerminal 老头牌（1、9）
func (t Tile) IsTerminal() bool {
	r := t.Rank()
	return r == 1 || r == 9
}

// IsYaochuu 幺九牌：老头牌或字牌
func (t Tile) IsYaochuu() bool { return t.IsTerminal() || t.IsHonor() }

// IsSimple 中张牌
func (t Tile) IsSimple() bool { return t.IsNumbered() && !t.IsTerminal() }

// IsRelated 两张牌能否同属一个顺子或对子：同一张，或同花色且点数差不超过 2
func (t Tile) IsRelated(o Tile) bool {
	if !t.Valid() || !o.Valid() {
		return false
	}
	if t == o {
		return true
	}
	if !t.IsNumbered() || t.Suit() != o.Suit() {
		return false
	}
	d := t.Rank() - o.Rank()
	return d >= -2 && d <= 2
}

// next 同花色下一张数牌
func (t Tile) next() (Tile, bool) {
	if !t.IsNumbered() || t.Rank() == 9 {
		return 0, false
	}
	return t + 1, true
}

func (t Tile) String() string {
	switch {
	case t.IsNumbered():
		return string([]byte{byte('0' + t.Rank()), suitLetters[t.Suit()]})
	case t.IsHonor():
		return honorNames[t-East]
	default:
		return "invalid"
	}
}
