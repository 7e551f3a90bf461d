package mahjong

import "testing"

func y(k YakuKind) Yaku { return Yaku{Kind: k} }

func TestScore(t *testing.T) {
	cases := []struct {
		name       string
		hand, draw string
		want       Yakus
		han        Han
	}{
		{"tanyao pinfu", "234m 567m 234p 67s 55p", "8s", Yakus{y(YakuTanyao), y(YakuPinfu)}, NewHan(2)},
		{"kanchan is not pinfu", "234m 567m 234p 68s 55p", "7s", Yakus{y(YakuTanyao)}, NewHan(1)},
		{"edge wait is not pinfu", "123m 567m 234p 89s 55p", "7s", Yakus{}, NewHan(0)},
		{"yakuhai", "haku3 123m 456p 789s 1p", "1p", Yakus{{Kind: YakuSangenpai, Tile: White}}, NewHan(1)},
		{"no yaku", "123m 456p 789s ton3 9p", "9p", Yakus{}, NewHan(0)},
		{"chiitoitsu", "1p2 2s2 3m2 4p2 5s2 6m2 7p", "7p", Yakus{y(YakuChiitoitsu)}, NewHan(2)},
		{"ryanpeikou beats chiitoitsu", "223344m 556677p 9s", "9s", Yakus{y(YakuRyanpeikou)}, NewHan(3)},
		{"iipeikou", "223344m 567p 789s 1p", "1p", Yakus{y(YakuIipeikou)}, NewHan(1)},
		{"honiisou ittsuu yakuhai", "123m 456m 789m chun3 1m", "1m",
			Yakus{{Kind: YakuSangenpai, Tile: Red}, y(YakuIkkitsuukan), y(YakuHoniisou)}, NewHan(6)},
		{"junchan sanshoku", "123m 123p 123s 789m 9p", "9p", Yakus{y(YakuSanshokudoujun), y(YakuJunchantaiyaochuu)}, NewHan(5)},
		{"chanta", "123m 789p ton3 999s 1p", "1p", Yakus{y(YakuHonchantaiyaochuu)}, NewHan(2)},
		{"sanankou sanshoku tanyao", "222m 222p 222s 456m 7p", "7p",
			Yakus{y(YakuTanyao), y(YakuSanshokudoukou), y(YakuSanankou)}, NewHan(5)},
		{"shousangen", "haku3 hatsu3 chun 234m 567p", "chun",
			Yakus{{Kind: YakuSangenpai, Tile: White}, {Kind: YakuSangenpai, Tile: Green}, y(YakuShousangen)}, NewHan(4)},
		{"honroutou chiitoitsu", "1m2 9m2 1p2 9p2 ton2 nan2 haku", "haku",
			Yakus{y(YakuHonroutou), y(YakuChiitoitsu)}, NewHan(4)},
		{"chiniisou", "123m 345m 678m 99m 11m", "1m", Yakus{y(YakuChiniisou)}, NewHan(6)},
		{"daisangen", "haku3 hatsu3 chun3 123m 9p", "9p", Yakus{y(YakuDaisangen)}, Yakuman()},
		{"suuankou", "111m 222p 33s ton3 55p", "3s", Yakus{y(YakuSuuankou)}, Yakuman()},
		{"suuankou tanki", "111m 222p 333s ton3 5p", "5p", Yakus{y(YakuSuuankoutanki)}, DoubleYakuman()},
		{"tsuuiisou daisuushii", "ton3 nan3 shaa3 pei3 haku", "haku",
			Yakus{y(YakuTsuuiisou), y(YakuSuuankoutanki), y(YakuDaisuushii)}, DoubleYakuman()},
		{"shousuushii", "ton3 nan3 shaa3 pei 123m", "pei", Yakus{y(YakuShousuushii)}, Yakuman()},
		{"ryuuiisou", "234s 234s 666s 88s hatsu2", "hatsu", Yakus{y(YakuRyuuiisou)}, Yakuman()},
		{"chinroutou", "1m3 9m3 1p3 9p3 1s", "1s", Yakus{y(YakuChinroutou), y(YakuSuuankoutanki)}, DoubleYakuman()},
		{"chuuren", "1m3 2345678m 8m 9m2", "9m", Yakus{y(YakuChuurenpoutou)}, Yakuman()},
		{"junsei chuuren", "1m3 2345678m 9m3", "5m", Yakus{y(YakuJunseichuurenpoutou)}, DoubleYakuman()},
		{"kokushi", "1p2 19s 19m haku hatsu chun ton nan shaa pei", "9p", Yakus{y(YakuKokushimusou)}, Yakuman()},
		{"kokushi 13 sided", "19p 19s 19m haku hatsu chun ton nan shaa pei", "1m", Yakus{y(YakuKokushimusou13)}, DoubleYakuman()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ys, han, ok := Score(mustFull(t, c.hand, c.draw))
			if !ok {
				t.Fatalf("expected a winning hand")
			}
			if ys.String() != c.want.String() {
				t.Fatalf("yakus: got [%v], want [%v]", ys, c.want)
			}
			if han != c.han {
				t.Fatalf("han: got %v, want %v", han, c.han)
			}
		})
	}
}

func TestScore_NotWinning(t *testing.T) {
	for _, c := range [][2]string{
		{"123456789p 238m hatsu", "8m"},
		{"1p2 2s2 3m2 4p2 5s2 6m3", "6s"},
		{"124578p 124578m 1s", "1s"},
	} {
		if ys, _, ok := Score(mustFull(t, c[0], c[1])); ok {
			t.Fatalf("%s + %s: unexpected win %v", c[0], c[1], ys)
		}
	}
}

func TestYakus_ExclusiveVariants(t *testing.T) {
	ys, _, _ := Score(mustFull(t, "111m 222p 333s ton3 5p", "5p"))
	if ys.Contains(YakuSuuankou) {
		t.Fatalf("suuankou tanki must suppress suuankou: %v", ys)
	}
	ys, _, _ = Score(mustFull(t, "19p 19s 19m haku hatsu chun ton nan shaa pei", "pei"))
	if ys.Contains(YakuKokushimusou) {
		t.Fatalf("13-sided kokushi must suppress kokushi: %v", ys)
	}
	ys, _, _ = Score(mustFull(t, "123p 123p 789p 789p 1p", "1p"))
	if ys.Contains(YakuIipeikou) || !ys.Contains(YakuRyanpeikou) || ys.Contains(YakuHoniisou) {
		t.Fatalf("unexpected exclusive set: %v", ys)
	}
}
