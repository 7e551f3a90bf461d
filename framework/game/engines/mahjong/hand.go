package mahjong

import (
	"fmt"
	"sort"
)

const (
	ReadySize = 13
	FullSize  = 14
)

// Hand34 按牌种计数
type Hand34 [TileKinds]uint8

func Hand34FromTiles(tiles []Tile) Hand34 {
	var h Hand34
	for _, t := range tiles {
		h[t]++
	}
	return h
}

// Tiles 按规范顺序展开
func (h Hand34) Tiles() []Tile {
	out := make([]Tile, 0, FullSize)
	for i, c := range h {
		for ; c > 0; c-- {
			out = append(out, Tile(i))
		}
	}
	return out
}

func (h Hand34) Total() int {
	n := 0
	for _, c := range h {
		n += int(c)
	}
	return n
}

func (h Hand34) key() string {
	b := make([]byte, TileKinds)
	for i, c := range h {
		b[i] = byte(c)
	}
	return string(b)
}

// ReadyHand 13 张手牌，始终有序
type ReadyHand struct {
	tiles [ReadySize]Tile
}

// FullHand 摸牌后的 14 张手牌，记录最后摸到的牌
type FullHand struct {
	tiles    [FullSize]Tile
	lastDraw Tile
}

func checkTiles(tiles []Tile) error {
	var h Hand34
	for _, t := range tiles {
		if !t.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidTile, t)
		}
		h[t]++
		if h[t] > 4 {
			return fmt.Errorf("%w: %s 超过 4 张", ErrTileCount, t)
		}
	}
	return nil
}

// NewReadyHand 由 13 张牌构造手牌
func NewReadyHand(tiles []Tile) (ReadyHand, error) {
	if len(tiles) != ReadySize {
		return ReadyHand{}, fmt.Errorf("%w: 需要 %d 张，实际 %d 张", ErrTileCount, ReadySize, len(tiles))
	}
	if err := checkTiles(tiles); err != nil {
		return ReadyHand{}, err
	}
	var r ReadyHand
	copy(r.tiles[:], tiles)
	sort.Slice(r.tiles[:], func(i, j int) bool { return r.tiles[i] < r.tiles[j] })
	return r, nil
}

// NewFullHand 由 14 张牌构造，lastDraw 必须在其中
func NewFullHand(tiles []Tile, lastDraw Tile) (FullHand, error) {
	if len(tiles) != FullSize {
		return FullHand{}, fmt.Errorf("%w: 需要 %d 张，实际 %d 张", ErrTileCount, FullSize, len(tiles))
	}
	if err := checkTiles(tiles); err != nil {
		return FullHand{}, err
	}
	var f FullHand
	copy(f.tiles[:], tiles)
	sort.Slice(f.tiles[:], func(i, j int) bool { return f.tiles[i] < f.tiles[j] })
	if !f.Contains(lastDraw) {
		return FullHand{}, fmt.Errorf("%w: %s", ErrTileNotPresent, lastDraw)
	}
	f.lastDraw = lastDraw
	return f, nil
}

func (r ReadyHand) Tiles() []Tile { return append([]Tile(nil), r.tiles[:]...) }

func (r ReadyHand) Counts() Hand34 { return Hand34FromTiles(r.tiles[:]) }

func (r ReadyHand) String() string { return FormatTiles(r.tiles[:]) }

// Draw 摸一张牌
func (r ReadyHand) Draw(t Tile) (FullHand, error) {
	if !t.Valid() {
		return FullHand{}, fmt.Errorf("%w: %d", ErrInvalidTile, t)
	}
	var f FullHand
	n, copies := 0, 0
	inserted := false
	for _, x := range r.tiles {
		if !inserted && t < x {
			f.tiles[n] = t
			n++
			inserted = true
		}
		if x == t {
			copies++
		}
		f.tiles[n] = x
		n++
	}
	if !inserted {
		f.tiles[n] = t
	}
	if copies >= 4 {
		return FullHand{}, fmt.Errorf("%w: %s 已有 4 张", ErrTileCount, t)
	}
	f.lastDraw = t
	return f, nil
}

func (f FullHand) Tiles() []Tile { return append([]Tile(nil), f.tiles[:]...) }

func (f FullHand) LastDraw() Tile { return f.lastDraw }

func (f FullHand) Counts() Hand34 { return Hand34FromTiles(f.tiles[:]) }

func (f FullHand) Contains(t Tile) bool {
	i := sort.Search(FullSize, func(i int) bool { return f.tiles[i] >= t })
	return i < FullSize && f.tiles[i] == t
}

// Discard 打出一张牌，牌不存在时返回 ErrTileNotPresent，原手牌不变
func (f FullHand) Discard(t Tile) (ReadyHand, error) {
	i := sort.Search(FullSize, func(i int) bool { return f.tiles[i] >= t })
	if i == FullSize || f.tiles[i] != t {
		return ReadyHand{}, fmt.Errorf("%w: %s", ErrTileNotPresent, t)
	}
	var r ReadyHand
	copy(r.tiles[:i], f.tiles[:i])
	copy(r.tiles[i:], f.tiles[i+1:])
	return r, nil
}

func (f FullHand) String() string { return FormatTiles(f.tiles[:]) }

// fullFromCounts 由计数构造 14 张手牌，调用方保证张数正确
func fullFromCounts(h Hand34, lastDraw Tile) FullHand {
	var f FullHand
	n := 0
	for i, c := range h {
		for ; c > 0; c-- {
			f.tiles[n] = Tile(i)
			n++
		}
	}
	f.lastDraw = lastDraw
	return f
}

func readyFromCounts(h Hand34) ReadyHand {
	var r ReadyHand
	n := 0
	for i, c := range h {
		for ; c > 0; c-- {
			r.tiles[n] = Tile(i)
			n++
		}
	}
	return r
}
