package mahjong

import (
	"sort"
	"strings"
)

// YakuKind 役种
type YakuKind uint8

const (
	// 一番
	YakuTanyao YakuKind = iota
	YakuSangenpai // 役牌（三元牌刻子），附带牌
	YakuPinfu
	YakuIipeikou

	// 二番
	YakuSanshokudoukou
	YakuToitoihou
	YakuSanankou
	YakuShousangen
	YakuHonroutou
	YakuChiitoitsu
	YakuHonchantaiyaochuu
	YakuIkkitsuukan
	YakuSanshokudoujun

	// 三番
	YakuRyanpeikou
	YakuJunchantaiyaochuu
	YakuHoniisou

	// 六番
	YakuChiniisou

	// 役满
	YakuDaisangen
	YakuSuuankou
	YakuTsuuiisou
	YakuRyuuiisou
	YakuChinroutou
	YakuKokushimusou
	YakuShousuushii
	YakuChuurenpoutou

	// 双倍役满
	YakuSuuankoutanki
	YakuKokushimusou13
	YakuJunseichuurenpoutou
	YakuDaisuushii

	yakuKinds
)

type yakuInfo struct {
	name string
	han  Han
}

var yakuTable = [yakuKinds]yakuInfo{
	YakuTanyao:              {"Tanyao", NewHan(1)},
	YakuSangenpai:           {"Yakuhai", NewHan(1)},
	YakuPinfu:               {"Pinfu", NewHan(1)},
	YakuIipeikou:            {"Iipeikou", NewHan(1)},
	YakuSanshokudoukou:      {"Sanshokudoukou", NewHan(2)},
	YakuToitoihou:           {"Toitoihou", NewHan(2)},
	YakuSanankou:            {"Sanankou", NewHan(2)},
	YakuShousangen:          {"Shousangen", NewHan(2)},
	YakuHonroutou:           {"Honroutou", NewHan(2)},
	YakuChiitoitsu:          {"Chiitoitsu", NewHan(2)},
	YakuHonchantaiyaochuu:   {"Honchantaiyaochuu", NewHan(2)},
	YakuIkkitsuukan:         {"Ikkitsuukan", NewHan(2)},
	YakuSanshokudoujun:      {"Sanshokudoujun", NewHan(2)},
	YakuRyanpeikou:          {"Ryanpeikou", NewHan(3)},
	YakuJunchantaiyaochuu:   {"Junchantaiyaochuu", NewHan(3)},
	YakuHoniisou:            {"Honiisou", NewHan(3)},
	YakuChiniisou:           {"Chiniisou", NewHan(6)},
	YakuDaisangen:           {"Daisangen", Yakuman()},
	YakuSuuankou:            {"Suuankou", Yakuman()},
	YakuTsuuiisou:           {"Tsuuiisou", Yakuman()},
	YakuRyuuiisou:           {"Ryuuiisou", Yakuman()},
	YakuChinroutou:          {"Chinroutou", Yakuman()},
	YakuKokushimusou:        {"Kokushimusou", Yakuman()},
	YakuShousuushii:         {"Shousuushii", Yakuman()},
	YakuChuurenpoutou:       {"Chuurenpoutou", Yakuman()},
	YakuSuuankoutanki:       {"Suuankoutanki", DoubleYakuman()},
	YakuKokushimusou13:      {"Kokushimusou13", DoubleYakuman()},
	YakuJunseichuurenpoutou: {"Junseichuurenpoutou", DoubleYakuman()},
	YakuDaisuushii:          {"Daisuushii", DoubleYakuman()},
}

func (k YakuKind) Han() Han { return yakuTable[k].han }

func (k YakuKind) String() string { return yakuTable[k].name }

// Yaku 役，Tile 只对役牌有意义
type Yaku struct {
	Kind YakuKind
	Tile Tile
}

func (y Yaku) Han() Han { return y.Kind.Han() }

func (y Yaku) String() string {
	if y.Kind == YakuSangenpai {
		return y.Kind.String() + "(" + y.Tile.String() + ")"
	}
	return y.Kind.String()
}

// Yakus 一次评估得到的役集合
type Yakus []Yaku

func (ys Yakus) Han() Han {
	var h Han
	for _, y := range ys {
		h = h.Add(y.Han())
	}
	return h
}

func (ys Yakus) Contains(k YakuKind) bool {
	for _, y := range ys {
		if y.Kind == k {
			return true
		}
	}
	return false
}

func (ys Yakus) sorted() Yakus {
	out := append(Yakus(nil), ys...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Tile < out[j].Tile
	})
	return out
}

func (ys Yakus) String() string {
	parts := make([]string, len(ys))
	for i, y := range ys {
		parts[i] = y.String()
	}
	return strings.Join(parts, " ")
}
