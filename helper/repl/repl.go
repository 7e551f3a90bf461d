package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"yakuchecker/framework/game/engines/mahjong"
)

// errQuit 输入结束
var errQuit = errors.New("quit")

type session struct {
	in       *bufio.Scanner
	out      *Printer
	searcher *mahjong.Searcher
}

func newSession(in io.Reader, out io.Writer, s *mahjong.Searcher) *session {
	if s == nil {
		s = mahjong.NewSearcher()
	}
	return &session{in: bufio.NewScanner(in), out: NewPrinter(out), searcher: s}
}

// readLine 读取下一个非空行，输入结束或 q 时返回 errQuit
func (s *session) readLine(prompt string) (string, error) {
	for {
		s.out.Prompt(prompt)
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return "", err
			}
			return "", errQuit
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "q" || line == "quit" {
			return "", errQuit
		}
		if line != "" {
			return line, nil
		}
	}
}

func (s *session) readHand() (mahjong.ReadyHand, error) {
	for {
		line, err := s.readLine("手牌> ")
		if err != nil {
			return mahjong.ReadyHand{}, err
		}
		r, err := mahjong.ParseReadyHand(line)
		if err != nil {
			s.out.Errorf("%v", err)
			continue
		}
		return r, nil
	}
}

func (s *session) readDraw(r mahjong.ReadyHand) (mahjong.FullHand, error) {
	for {
		line, err := s.readLine("摸牌> ")
		if err != nil {
			return mahjong.FullHand{}, err
		}
		t, err := mahjong.ParseTile(line)
		if err == nil {
			var f mahjong.FullHand
			if f, err = r.Draw(t); err == nil {
				return f, nil
			}
		}
		s.out.Errorf("%v", err)
	}
}

func (s *session) readDiscard(f mahjong.FullHand) (mahjong.ReadyHand, error) {
	for {
		line, err := s.readLine("打牌> ")
		if err != nil {
			return mahjong.ReadyHand{}, err
		}
		t, err := mahjong.ParseTile(line)
		if err == nil {
			var r mahjong.ReadyHand
			if r, err = f.Discard(t); err == nil {
				return r, nil
			}
		}
		s.out.Errorf("%v", err)
	}
}

func (s *session) score(f mahjong.FullHand) {
	ys, han, ok := mahjong.Score(f)
	s.out.Score(f, ys, han, ok)
}

func done(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

// RunYaku 循环读取 13 张手牌和摸牌，输出役种
func RunYaku(in io.Reader, out io.Writer) error {
	s := newSession(in, out, nil)
	for {
		r, err := s.readHand()
		if err != nil {
			return done(err)
		}
		f, err := s.readDraw(r)
		if err != nil {
			return done(err)
		}
		s.score(f)
	}
}

// RunShanten 读取手牌后循环 摸牌 -> 判定 -> 打牌 -> 分析
func RunShanten(in io.Reader, out io.Writer, searcher *mahjong.Searcher) error {
	s := newSession(in, out, searcher)
	r, err := s.readHand()
	if err != nil {
		return done(err)
	}
	s.out.Analysis(r, s.searcher.Analyze(r))
	for {
		f, err := s.readDraw(r)
		if err != nil {
			return done(err)
		}
		s.score(f)
		s.out.Candidates(s.searcher.Candidates(f))
		if r, err = s.readDiscard(f); err != nil {
			return done(err)
		}
		s.out.Analysis(r, s.searcher.Analyze(r))
	}
}

// Check 一次性分析，13 张输出向听，14 张输出每种打法
func Check(out io.Writer, searcher *mahjong.Searcher, hand string) error {
	if searcher == nil {
		searcher = mahjong.NewSearcher()
	}
	p := NewPrinter(out)
	tiles, err := mahjong.ParseTiles(hand)
	if err != nil {
		return err
	}
	switch len(tiles) {
	case mahjong.ReadySize:
		r, err := mahjong.NewReadyHand(tiles)
		if err != nil {
			return err
		}
		p.Analysis(r, searcher.Analyze(r))
	case mahjong.FullSize:
		f, err := drawLast(hand)
		if err != nil {
			return err
		}
		ys, han, ok := mahjong.Score(f)
		p.Score(f, ys, han, ok)
		p.Candidates(searcher.Candidates(f))
	default:
		return fmt.Errorf("%w: 需要 13 或 14 张，实际 %d 张", mahjong.ErrTileCount, len(tiles))
	}
	return nil
}

// drawLast 14 张时最后一个记号是摸牌，其余 13 张为手牌
func drawLast(hand string) (mahjong.FullHand, error) {
	fields := strings.Fields(hand)
	last := fields[len(fields)-1]
	t, err := mahjong.ParseTile(last)
	if err != nil {
		return mahjong.FullHand{}, fmt.Errorf("最后一个记号 %q 应为单张摸牌: %w", last, err)
	}
	r, err := mahjong.ParseReadyHand(strings.Join(fields[:len(fields)-1], " "))
	if err != nil {
		return mahjong.FullHand{}, err
	}
	return r.Draw(t)
}
