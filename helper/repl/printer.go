package repl

import (
	"fmt"
	"io"
	"strings"

	"yakuchecker/framework/game/engines/mahjong"

	"github.com/fatih/color"
)

var suitColors = [...]color.Attribute{
	mahjong.SuitMan:   color.FgHiRed,
	mahjong.SuitPin:   color.FgHiBlue,
	mahjong.SuitSo:    color.FgHiGreen,
	mahjong.SuitHonor: color.FgHiYellow,
}

// Printer 终端着色输出
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) tile(t mahjong.Tile) {
	color.New(suitColors[t.Suit()]).Fprint(p.w, t.String())
}

// Tiles 按花色着色输出一组牌
func (p *Printer) Tiles(ts []mahjong.Tile) {
	for i, t := range ts {
		if i > 0 {
			fmt.Fprint(p.w, " ")
		}
		p.tile(t)
	}
}

func (p *Printer) Errorf(format string, args ...interface{}) {
	color.New(color.FgHiRed).Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Prompt(s string) {
	color.New(color.FgHiBlack).Fprint(p.w, s)
}

func (p *Printer) yakus(ys mahjong.Yakus, han mahjong.Han) {
	if len(ys) == 0 {
		color.New(color.FgHiRed).Fprint(p.w, "[无役]")
		return
	}
	c := color.FgHiGreen
	if han.IsYakuman() {
		c = color.FgHiMagenta
	}
	color.New(c).Fprintf(p.w, "[%s] %s", ys, han)
}

// Score 输出和牌判定
func (p *Printer) Score(f mahjong.FullHand, ys mahjong.Yakus, han mahjong.Han, ok bool) {
	p.Tiles(f.Tiles())
	fmt.Fprint(p.w, " | ")
	if !ok {
		fmt.Fprintln(p.w, "未和牌")
		return
	}
	p.yakus(ys, han)
	fmt.Fprintln(p.w)
}

func distanceText(d int) string {
	switch d {
	case 0:
		return "听牌"
	default:
		return fmt.Sprintf("%d 向听", d)
	}
}

// Analysis 输出向听分析
func (p *Printer) Analysis(r mahjong.ReadyHand, a mahjong.Analysis) {
	p.Tiles(r.Tiles())
	fmt.Fprintln(p.w)

	shapes := make([]string, len(a.Shapes))
	for i, s := range a.Shapes {
		shapes[i] = s.String()
	}
	color.New(color.FgHiWhite).Fprintf(p.w, "%s", distanceText(a.Distance))
	fmt.Fprintf(p.w, " (%s)  进张 %d 枚: ", strings.Join(shapes, "/"), a.Ukeire)
	p.Tiles(a.Progress)
	fmt.Fprintln(p.w)

	for _, w := range a.Waits {
		fmt.Fprint(p.w, "  和 ")
		p.tile(w.Tile)
		fmt.Fprint(p.w, " ")
		p.yakus(w.Yakus, w.Han)
		fmt.Fprintln(p.w)
	}
	if a.Distance > 0 && len(a.Outcomes) > 0 {
		fmt.Fprint(p.w, "  最高打点 ")
		p.yakus(a.Outcomes[0].Yakus, a.Outcomes[0].Han)
		fmt.Fprintln(p.w)
	}
}

// Candidates 输出 14 张时每种打法的结果
func (p *Printer) Candidates(cs []mahjong.Candidate) {
	for _, c := range cs {
		fmt.Fprint(p.w, "打 ")
		p.tile(c.Discard)
		fmt.Fprintf(p.w, " => %s, 进张 %d 枚: ", distanceText(c.Analysis.Distance), c.Analysis.Ukeire)
		p.Tiles(c.Analysis.Progress)
		fmt.Fprintln(p.w)
	}
}
