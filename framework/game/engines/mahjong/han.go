package mahjong

import "fmt"

const (
	maxHan     = 13
	maxYakuman = 2
)

// Han 番数：普通番上限 13，役满倍数上限 2（双倍役满），役满总是大于任何普通番
type Han struct {
	value   uint8
	yakuman uint8
}

func NewHan(v int) Han {
	if v < 0 {
		v = 0
	}
	if v > maxHan {
		v = maxHan
	}
	return Han{value: uint8(v)}
}

func Yakuman() Han { return Han{yakuman: 1} }

func DoubleYakuman() Han { return Han{yakuman: 2} }

func (h Han) IsYakuman() bool { return h.yakuman > 0 }

// Value 普通番数，役满时为 0
func (h Han) Value() int { return int(h.value) }

// Multiplier 役满倍数
func (h Han) Multiplier() int { return int(h.yakuman) }

// Add 饱和加法，任一方为役满时结果按役满倍数相加
func (h Han) Add(o Han) Han {
	if h.IsYakuman() || o.IsYakuman() {
		m := h.yakuman + o.yakuman
		if m > maxYakuman {
			m = maxYakuman
		}
		return Han{yakuman: m}
	}
	return NewHan(int(h.value) + int(o.value))
}

// Compare 返回 -1、0、1
func (h Han) Compare(o Han) int {
	switch {
	case h.yakuman != o.yakuman:
		if h.yakuman < o.yakuman {
			return -1
		}
		return 1
	case h.value != o.value:
		if h.value < o.value {
			return -1
		}
		return 1
	}
	return 0
}

func (h Han) Less(o Han) bool { return h.Compare(o) < 0 }

func (h Han) String() string {
	switch h.yakuman {
	case 0:
		return fmt.Sprintf("%d han", h.value)
	case 1:
		return "yakuman"
	default:
		return "double yakuman"
	}
}
