package api

import (
	"yakuchecker/framework/game/engines/mahjong"
)

// HandRequest score / decompose / discard 共用，analyze 只需 Hand
type HandRequest struct {
	Hand    string `json:"hand" binding:"required"`
	Draw    string `json:"draw"`
	Discard string `json:"discard"`
}

type BatchRequest struct {
	Hands []string `json:"hands" binding:"required"`
}

type YakuView struct {
	Name string `json:"name"`
	Han  string `json:"han"`
	Tile string `json:"tile,omitempty"`
}

type ScoreView struct {
	Hand    string     `json:"hand"`
	Full    string     `json:"full"`
	Winning bool       `json:"winning"`
	Yaku    []YakuView `json:"yaku"`
	Han     string     `json:"han"`
}

type PatternView struct {
	Shape  string     `json:"shape"`
	Blocks []string   `json:"blocks"`
	Yaku   []YakuView `json:"yaku"`
	Han    string     `json:"han"`
}

type WaitView struct {
	Tile string     `json:"tile"`
	Yaku []YakuView `json:"yaku"`
	Han  string     `json:"han"`
}

type OutcomeView struct {
	Yaku []YakuView `json:"yaku"`
	Han  string     `json:"han"`
}

type BoundsView struct {
	Standard int `json:"standard"`
	Chiitoi  int `json:"chiitoitsu"`
	Kokushi  int `json:"kokushi"`
}

type AnalysisView struct {
	Hand     string        `json:"hand"`
	Distance int           `json:"distance"`
	Bounds   BoundsView    `json:"bounds"`
	Shapes   []string      `json:"shapes"`
	Tenpai   []WaitView    `json:"tenpai"`
	Outcomes []OutcomeView `json:"outcomes"`
	Progress []string      `json:"progress"`
	Ukeire   int           `json:"ukeire"`
}

type DiscardView struct {
	Discard  string        `json:"discard"`
	Analysis *AnalysisView `json:"analysis"`
}

type BatchItem struct {
	Hand     string        `json:"hand"`
	Analysis *AnalysisView `json:"analysis,omitempty"`
	Error    string        `json:"error,omitempty"`
}

func yakuViews(ys mahjong.Yakus) []YakuView {
	out := make([]YakuView, 0, len(ys))
	for _, y := range ys {
		v := YakuView{Name: y.Kind.String(), Han: y.Han().String()}
		if y.Kind == mahjong.YakuSangenpai {
			v.Tile = y.Tile.String()
		}
		out = append(out, v)
	}
	return out
}

func tileStrings(ts []mahjong.Tile) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}

func newAnalysisView(r mahjong.ReadyHand, a mahjong.Analysis) *AnalysisView {
	v := &AnalysisView{
		Hand:     r.String(),
		Distance: a.Distance,
		Bounds:   BoundsView{Standard: a.Bounds.Standard, Chiitoi: a.Bounds.Chiitoi, Kokushi: a.Bounds.Kokushi},
		Shapes:   make([]string, len(a.Shapes)),
		Tenpai:   make([]WaitView, len(a.Waits)),
		Outcomes: make([]OutcomeView, len(a.Outcomes)),
		Progress: tileStrings(a.Progress),
		Ukeire:   a.Ukeire,
	}
	for i, s := range a.Shapes {
		v.Shapes[i] = s.String()
	}
	for i, w := range a.Waits {
		v.Tenpai[i] = WaitView{Tile: w.Tile.String(), Yaku: yakuViews(w.Yakus), Han: w.Han.String()}
	}
	for i, o := range a.Outcomes {
		v.Outcomes[i] = OutcomeView{Yaku: yakuViews(o.Yakus), Han: o.Han.String()}
	}
	return v
}

func newPatternView(p mahjong.Pattern) PatternView {
	blocks := p.Blocks()
	v := PatternView{Shape: p.Shape().String(), Blocks: make([]string, len(blocks))}
	for i, b := range blocks {
		v.Blocks[i] = b.String()
	}
	ys := mahjong.YakusOf(p)
	v.Yaku = yakuViews(ys)
	v.Han = ys.Han().String()
	return v
}
