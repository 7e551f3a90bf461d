package mahjong

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// tileNotation 单个记法片段：字牌名或「数字串+花色」，后接可选的重复次数
var tileNotation = regexp.MustCompile(`((ton|nan|shaa|pei|haku|hatsu|chun)|([1-9]+)([psm]))(\d+)?`)

var honorByName = func() map[string]Tile {
	m := make(map[string]Tile, len(honorNames))
	for i, name := range honorNames {
		m[name] = East + Tile(i)
	}
	return m
}()

// ParseTiles 解析任意张数的牌面记法，例如 "123p 4m3 hatsu2"，结果按规范顺序排序
func ParseTiles(s string) ([]Tile, error) {
	var out []Tile
	last := 0
	for _, m := range tileNotation.FindAllStringSubmatchIndex(s, -1) {
		if gap := s[last:m[0]]; strings.TrimSpace(gap) != "" {
			return nil, fmt.Errorf("%w: 无法识别 %q", ErrInvalidNotation, gap)
		}
		last = m[1]

		repeat := 1
		if m[10] >= 0 {
			n, err := strconv.Atoi(s[m[10]:m[11]])
			if err != nil {
				return nil, fmt.Errorf("%w: 重复次数 %q", ErrInvalidNotation, s[m[10]:m[11]])
			}
			if n > 4 {
				return nil, fmt.Errorf("%w: %q 超过 4 张", ErrTileCount, s[m[0]:m[1]])
			}
			repeat = n
		}

		var kinds []Tile
		if m[4] >= 0 {
			kinds = append(kinds, honorByName[s[m[4]:m[5]]])
		} else {
			suit := strings.IndexByte("mps", s[m[8]])
			for _, d := range s[m[6]:m[7]] {
				kinds = append(kinds, Tile(suit*9+int(d-'1')))
			}
		}
		for _, k := range kinds {
			for i := 0; i < repeat; i++ {
				out = append(out, k)
			}
		}
	}
	if gap := s[last:]; strings.TrimSpace(gap) != "" {
		return nil, fmt.Errorf("%w: 无法识别 %q", ErrInvalidNotation, gap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// ParseTile 解析单张牌，例如 "4m"、"hatsu"
func ParseTile(s string) (Tile, error) {
	tiles, err := ParseTiles(s)
	if err != nil {
		return 0, err
	}
	if len(tiles) != 1 {
		return 0, fmt.Errorf("%w: %q 应为 1 张牌，实际 %d 张", ErrTileCount, s, len(tiles))
	}
	return tiles[0], nil
}

// ParseReadyHand 解析 13 张手牌
func ParseReadyHand(s string) (ReadyHand, error) {
	tiles, err := ParseTiles(s)
	if err != nil {
		return ReadyHand{}, err
	}
	return NewReadyHand(tiles)
}

// FormatTiles 以空格分隔输出
func FormatTiles(tiles []Tile) string {
	var b strings.Builder
	for i, t := range tiles {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}
