package mahjong

import (
	"math/rand"
	"sort"
	"testing"
)

func TestDecompose_PatternCounts(t *testing.T) {
	cases := []struct {
		hand, draw string
		want       int
	}{
		{"123456789p 1234m", "4m", 1},
		{"123456789p 238m hatsu", "8m", 0},
		{"1p3 2p3 3p 4p3 1m3", "2p", 2},
		{"1p3 2p3 3p3 4p3 haku", "haku", 3},
		{"124578p 124578m 1s", "1s", 0},
		{"1p2 2s2 3m2 4p2 5s2 6m3", "6s", 0},
		{"1p2 2s2 3m2 4p2 5s2 6m2 7p", "7p", 1},
		{"19p 19s 19m haku hatsu chun ton nan shaa pei", "chun", 1},
		// 两杯口同时也是七对子
		{"223344m 556677p 9s", "9s", 2},
	}
	for _, c := range cases {
		t.Run(c.hand+"+"+c.draw, func(t *testing.T) {
			ps := Decompose(mustFull(t, c.hand, c.draw))
			if len(ps) != c.want {
				t.Fatalf("got %d patterns %v, want %d", len(ps), ps, c.want)
			}
		})
	}
}

func TestDecompose_Shapes(t *testing.T) {
	ps := Decompose(mustFull(t, "123456789p 1234m", "4m"))
	if len(ps) != 1 || len(ps[0].Blocks()) != 5 || ps[0].Shape() != ShapeStandard {
		t.Fatalf("expected one standard pattern, got %v", ps)
	}
	pair, ok := ps[0].Pair()
	if !ok || pair.Tile() != Man4 {
		t.Fatalf("pair: %v %v", pair, ok)
	}

	ps = Decompose(mustFull(t, "1p2 2s2 3m2 4p2 5s2 6m2 7p", "7p"))
	if len(ps) != 1 || ps[0].Shape() != ShapeChiitoi || len(ps[0].Blocks()) != 7 {
		t.Fatalf("expected one seven-pairs pattern, got %v", ps)
	}
	for _, b := range ps[0].Blocks() {
		if b.Kind() != BlockPair {
			t.Fatalf("non-pair block %v", b)
		}
	}

	ps = Decompose(mustFull(t, "19p 19s 19m haku hatsu chun ton nan shaa pei", "1m"))
	if len(ps) != 1 || ps[0].Shape() != ShapeKokushi || len(ps[0].Blocks()) != 14 {
		t.Fatalf("expected one thirteen-orphans pattern, got %v", ps)
	}
}

func TestDecompose_FourOfAKindIsNotTwoPairs(t *testing.T) {
	ps := Decompose(mustFull(t, "1m4 2p2 3p2 4s2 5s2 6s", "6s"))
	for _, p := range ps {
		if p.Shape() == ShapeChiitoi {
			t.Fatalf("four 1m accepted as two pairs: %v", p)
		}
	}
}

// randomStandardHand 随机生成四面子一雀头，保证每种牌不超过 4 张
func randomStandardHand(rng *rand.Rand) ([]Block, []Tile) {
	for {
		var h Hand34
		var blocks []Block
		ok := true
		for i := 0; i < 4; i++ {
			if rng.Intn(2) == 0 {
				t := Tile(rng.Intn(TileKinds))
				blocks = append(blocks, NewTriplet(t))
			} else {
				t := Tile(rng.Intn(3)*9 + rng.Intn(7))
				blocks = append(blocks, NewSequence(t))
			}
		}
		blocks = append(blocks, NewPair(Tile(rng.Intn(TileKinds))))
		for _, b := range blocks {
			for _, t := range b.Tiles() {
				h[t]++
				if h[t] > 4 {
					ok = false
				}
			}
		}
		if ok {
			return blocks, h.Tiles()
		}
	}
}

func TestDecompose_Completeness(t *testing.T) {
	rng := rand.New(rand.NewSource(20240601))
	for i := 0; i < 500; i++ {
		blocks, tiles := randomStandardHand(rng)
		last := tiles[rng.Intn(len(tiles))]
		f, err := NewFullHand(tiles, last)
		if err != nil {
			t.Fatalf("build hand: %v", err)
		}
		want := newPattern(blocks, last).String()
		found := false
		for _, p := range Decompose(f) {
			if p.String() == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("hand %s: construction %s not among %v", f, want, Decompose(f))
		}
	}
}

func TestDecompose_KokushiAndChiitoiExclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		// 只在幺九牌里抽，最容易同时接近两种形
		var tiles []Tile
		var h Hand34
		for len(tiles) < FullSize {
			t := kokushiTiles[rng.Intn(len(kokushiTiles))]
			if h[t] >= 2 {
				continue
			}
			h[t]++
			tiles = append(tiles, t)
		}
		sort.Slice(tiles, func(i, j int) bool { return tiles[i] < tiles[j] })
		f, err := NewFullHand(tiles, tiles[0])
		if err != nil {
			t.Fatal(err)
		}
		_, kokushi := decomposeKokushi(f)
		_, chiitoi := decomposeChiitoi(f)
		if kokushi && chiitoi {
			t.Fatalf("hand %s satisfies both shapes", f)
		}
	}
}

func TestStandardPrefilter(t *testing.T) {
	cases := []struct {
		tiles string
		want  bool
	}{
		{"123456789p 1234m 4m", true},
		{"123456789p 238m 8m hatsu", false},
		{"19m 19p 19s ton nan shaa pei haku hatsu chun2", false},
		{"124578p 124578m 1s2", true},
		{"111m 222p 333s ton3 5p2", true},
	}
	for _, c := range cases {
		tiles, err := ParseTiles(c.tiles)
		if err != nil {
			t.Fatal(err)
		}
		if got := standardPrefilter(tiles); got != c.want {
			t.Fatalf("%s: got %v want %v", c.tiles, got, c.want)
		}
	}
}

func TestNewPatternPanicsOnBadTotal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	newPattern([]Block{NewTriplet(Man1), NewPair(Man2)}, Man1)
}
