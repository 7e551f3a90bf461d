package mahjong

// Score 计算和牌的最高得分拆解；不和牌时 ok 为 false
// 有拆解但无役时返回空役集合与 0 番
func Score(f FullHand) (yakus Yakus, han Han, ok bool) {
	patterns := Decompose(f)
	if len(patterns) == 0 {
		return nil, Han{}, false
	}
	yakus = Yakus{}
	for _, p := range patterns {
		ys := YakusOf(p)
		if h := ys.Han(); han.Less(h) {
			yakus, han = ys, h
		}
	}
	return yakus, han, true
}

// handFacts 一个拆解的统计信息，各役判定共用
type handFacts struct {
	shape    Shape
	win      Tile
	counts   Hand34
	groups   []Block
	pair     Block
	triplets int
	seqs     int
	honors   int
	suits    [3]int // 各花色数牌张数
}

func newHandFacts(p Pattern) *handFacts {
	hf := &handFacts{shape: p.Shape(), win: p.lastDraw}
	for _, b := range p.blocks {
		for _, t := range b.tiles[:b.n] {
			hf.counts[t]++
			if t.IsHonor() {
				hf.honors++
			} else {
				hf.suits[t.Suit()]++
			}
		}
		switch b.kind {
		case BlockTriplet:
			hf.triplets++
			hf.groups = append(hf.groups, b)
		case BlockSequence:
			hf.seqs++
			hf.groups = append(hf.groups, b)
		case BlockPair:
			hf.pair = b
		}
	}
	return hf
}

func (hf *handFacts) all(pred func(Tile) bool) bool {
	for t, c := range hf.counts {
		if c > 0 && !pred(Tile(t)) {
			return false
		}
	}
	return true
}

// suitCount 出现的数牌花色数
func (hf *handFacts) suitCount() int {
	n := 0
	for _, c := range hf.suits {
		if c > 0 {
			n++
		}
	}
	return n
}

// YakusOf 判定单个拆解成立的役；有役满时只保留役满
func YakusOf(p Pattern) Yakus {
	hf := newHandFacts(p)
	if ys := yakumanOf(hf); len(ys) > 0 {
		return ys.sorted()
	}
	return ordinaryOf(hf).sorted()
}

func yakumanOf(hf *handFacts) Yakus {
	var ys Yakus
	add := func(k YakuKind) { ys = append(ys, Yaku{Kind: k}) }

	if hf.shape == ShapeKokushi {
		// 摸牌前 13 种各一张，摸到的是成对的那张
		if hf.counts[hf.win] == 2 {
			add(YakuKokushimusou13)
		} else {
			add(YakuKokushimusou)
		}
		return ys
	}

	if hf.all(Tile.IsHonor) {
		add(YakuTsuuiisou)
	}
	if hf.all(func(t Tile) bool { return greenTiles[t] }) {
		add(YakuRyuuiisou)
	}
	if hf.all(Tile.IsTerminal) {
		add(YakuChinroutou)
	}
	if hf.shape != ShapeStandard {
		return ys
	}

	dragonTriplets, windTriplets := 0, 0
	for _, g := range hf.groups {
		if g.kind != BlockTriplet {
			continue
		}
		switch {
		case g.Tile().IsDragon():
			dragonTriplets++
		case g.Tile().IsWind():
			windTriplets++
		}
	}
	if dragonTriplets == 3 {
		add(YakuDaisangen)
	}
	switch {
	case windTriplets == 4:
		add(YakuDaisuushii)
	case windTriplets == 3 && hf.pair.Tile().IsWind():
		add(YakuShousuushii)
	}

	// 自摸假设：全部刻子都是暗刻
	if hf.triplets == 4 {
		if hf.pair.Tile() == hf.win {
			add(YakuSuuankoutanki)
		} else {
			add(YakuSuuankou)
		}
	}

	if k, ok := chuurenOf(hf); ok {
		add(k)
	}
	return ys
}

var chuurenBase = [9]uint8{3, 1, 1, 1, 1, 1, 1, 1, 3}

// chuurenOf 九莲宝灯：同一花色 1112345678999 再加任意一张
func chuurenOf(hf *handFacts) (YakuKind, bool) {
	if hf.honors > 0 || hf.suitCount() != 1 {
		return 0, false
	}
	first := Tile(0)
	for s, c := range hf.suits {
		if c > 0 {
			first = Tile(s * 9)
		}
	}
	var ranks [9]uint8
	copy(ranks[:], hf.counts[first:first+9])
	for i, need := range chuurenBase {
		if ranks[i] < need {
			return 0, false
		}
	}
	ranks[hf.win-first]--
	if ranks == chuurenBase {
		return YakuJunseichuurenpoutou, true
	}
	return YakuChuurenpoutou, true
}

func ordinaryOf(hf *handFacts) Yakus {
	var ys Yakus
	add := func(k YakuKind) { ys = append(ys, Yaku{Kind: k}) }

	if hf.shape == ShapeChiitoi {
		add(YakuChiitoitsu)
	}
	if hf.all(Tile.IsSimple) {
		add(YakuTanyao)
	}
	if hf.all(Tile.IsYaochuu) {
		add(YakuHonroutou)
	}
	switch {
	case hf.suitCount() == 1 && hf.honors == 0:
		add(YakuChiniisou)
	case hf.suitCount() == 1:
		add(YakuHoniisou)
	}
	if hf.shape != ShapeStandard {
		return ys
	}

	dragonTriplets := 0
	for _, g := range hf.groups {
		if g.kind == BlockTriplet && g.Tile().IsDragon() {
			dragonTriplets++
			ys = append(ys, Yaku{Kind: YakuSangenpai, Tile: g.Tile()})
		}
	}
	if dragonTriplets == 2 && hf.pair.Tile().IsDragon() {
		add(YakuShousangen)
	}

	if isPinfu(hf) {
		add(YakuPinfu)
	}
	switch peikouCount(hf) {
	case 2:
		add(YakuRyanpeikou)
	case 1:
		add(YakuIipeikou)
	}

	if hf.triplets == 4 {
		add(YakuToitoihou)
	}
	if hf.triplets == 3 {
		add(YakuSanankou)
	}
	if sanshoku(hf, BlockTriplet) {
		add(YakuSanshokudoukou)
	}
	if sanshoku(hf, BlockSequence) {
		add(YakuSanshokudoujun)
	}
	if ittsuu(hf) {
		add(YakuIkkitsuukan)
	}

	// 全带幺九：每组都含幺九牌且至少有一个顺子
	if hf.seqs > 0 && hf.pair.HasYaochuu() {
		chanta := true
		for _, g := range hf.groups {
			if !g.HasYaochuu() {
				chanta = false
				break
			}
		}
		if chanta {
			if hf.honors == 0 {
				add(YakuJunchantaiyaochuu)
			} else {
				add(YakuHonchantaiyaochuu)
			}
		}
	}
	return ys
}

// isPinfu 四个顺子，雀头不是三元牌，和牌张构成两面听
func isPinfu(hf *handFacts) bool {
	if hf.seqs != 4 || hf.pair.Tile().IsDragon() {
		return false
	}
	for _, g := range hf.groups {
		first := g.Tile()
		if hf.win == first && first.Rank() != 7 {
			return true
		}
		if hf.win == g.Last() && first.Rank() != 1 {
			return true
		}
	}
	return false
}

// peikouCount 相同顺子的对数
func peikouCount(hf *handFacts) int {
	var seen [TileKinds]int
	pairs := 0
	for _, g := range hf.groups {
		if g.kind != BlockSequence {
			continue
		}
		seen[g.Tile()]++
		if seen[g.Tile()]%2 == 0 {
			pairs++
		}
	}
	return pairs
}

// sanshoku 三种花色同点数的同类面子
func sanshoku(hf *handFacts, kind BlockKind) bool {
	var bySuit [9][3]bool
	for _, g := range hf.groups {
		if g.kind != kind || !g.Tile().IsNumbered() {
			continue
		}
		bySuit[g.Tile().Rank()-1][g.Tile().Suit()] = true
	}
	for _, s := range bySuit {
		if s[0] && s[1] && s[2] {
			return true
		}
	}
	return false
}

// ittsuu 同一花色的 123、456、789
func ittsuu(hf *handFacts) bool {
	var starts [3][3]bool
	for _, g := range hf.groups {
		if g.kind != BlockSequence {
			continue
		}
		if r := g.Tile().Rank(); r%3 == 1 {
			starts[g.Tile().Suit()][r/3] = true
		}
	}
	for _, s := range starts {
		if s[0] && s[1] && s[2] {
			return true
		}
	}
	return false
}
