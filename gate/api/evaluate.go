package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	nethttp "net/http"
	"sync"
	"time"

	"yakuchecker/common/cache"
	"yakuchecker/common/http"
	"yakuchecker/common/log"
	"yakuchecker/common/workerpool"
	"yakuchecker/framework/game/engines/mahjong"

	"golang.org/x/sync/singleflight"
)

const analyzeKeyPrefix = "analyze:"

// 后台计算完成后写共享缓存的期限
const lateSaveTimeout = 5 * time.Second

// Analyzer 向听分析，mahjong.Searcher 实现
type Analyzer interface {
	Analyze(r mahjong.ReadyHand) mahjong.Analysis
}

// Evaluator 持有计算所需的共享资源，由 app 装配
type Evaluator struct {
	Searcher   Analyzer
	Pool       *workerpool.Pool
	Results    *cache.GeneralCache // 分析结果本地缓存，可为 nil
	Store      cache.Store         // 共享结果缓存，可为 nil
	BatchLimit int

	flight singleflight.Group
}

// toCodeError 把引擎和调度错误映射为统一响应码
func toCodeError(err error) error {
	switch {
	case errors.Is(err, mahjong.ErrInvalidNotation),
		errors.Is(err, mahjong.ErrInvalidTile),
		errors.Is(err, mahjong.ErrTileCount):
		return http.NewCodeError(nethttp.StatusBadRequest, http.CodeInvalidParam, err.Error())
	case errors.Is(err, mahjong.ErrTileNotPresent):
		return http.NewCodeError(nethttp.StatusBadRequest, http.CodeTileNotPresent, err.Error())
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, workerpool.ErrQueueFull),
		errors.Is(err, workerpool.ErrClosed):
		return http.NewCodeError(nethttp.StatusServiceUnavailable, http.CodeBusy, err.Error())
	}
	return err
}

func bind(c *http.Context, req interface{}) error {
	if err := c.BindJSON(req); err != nil {
		return http.NewCodeError(nethttp.StatusBadRequest, http.CodeInvalidParam, err.Error())
	}
	return nil
}

// parseFull 解析 13 张手牌和摸牌
func parseFull(hand, draw string) (mahjong.ReadyHand, mahjong.FullHand, error) {
	r, err := mahjong.ParseReadyHand(hand)
	if err != nil {
		return r, mahjong.FullHand{}, err
	}
	t, err := mahjong.ParseTile(draw)
	if err != nil {
		return r, mahjong.FullHand{}, err
	}
	f, err := r.Draw(t)
	return r, f, err
}

// ScoreHandler 和牌判定与役种计算
func (e *Evaluator) ScoreHandler(c *http.Context) error {
	var req HandRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	r, f, err := parseFull(req.Hand, req.Draw)
	if err != nil {
		return toCodeError(err)
	}
	ys, han, ok := mahjong.Score(f)
	c.Success(&ScoreView{
		Hand:    r.String(),
		Full:    f.String(),
		Winning: ok,
		Yaku:    yakuViews(ys),
		Han:     han.String(),
	})
	return nil
}

// DecomposeHandler 列出全部和牌拆解
func (e *Evaluator) DecomposeHandler(c *http.Context) error {
	var req HandRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	_, f, err := parseFull(req.Hand, req.Draw)
	if err != nil {
		return toCodeError(err)
	}
	patterns := mahjong.Decompose(f)
	views := make([]PatternView, len(patterns))
	for i, p := range patterns {
		views[i] = newPatternView(p)
	}
	c.Success(views)
	return nil
}

// AnalyzeHandler 向听数、听牌与有效进张
func (e *Evaluator) AnalyzeHandler(c *http.Context) error {
	var req HandRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	r, err := mahjong.ParseReadyHand(req.Hand)
	if err != nil {
		return toCodeError(err)
	}
	v, err := e.analyze(c.Ctx(), r)
	if err != nil {
		return toCodeError(err)
	}
	c.Success(v)
	return nil
}

// DiscardHandler 摸一张打一张后重新分析
func (e *Evaluator) DiscardHandler(c *http.Context) error {
	var req HandRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	_, f, err := parseFull(req.Hand, req.Draw)
	if err != nil {
		return toCodeError(err)
	}
	d, err := mahjong.ParseTile(req.Discard)
	if err != nil {
		return toCodeError(err)
	}
	next, err := f.Discard(d)
	if err != nil {
		return toCodeError(err)
	}
	v, err := e.analyze(c.Ctx(), next)
	if err != nil {
		return toCodeError(err)
	}
	c.Success(&DiscardView{Discard: d.String(), Analysis: v})
	return nil
}

// BatchHandler 批量分析，单手失败不影响其他手
func (e *Evaluator) BatchHandler(c *http.Context) error {
	var req BatchRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if e.BatchLimit > 0 && len(req.Hands) > e.BatchLimit {
		return http.NewCodeError(nethttp.StatusBadRequest, http.CodeInvalidParam,
			fmt.Sprintf("单次最多 %d 手", e.BatchLimit))
	}

	items := make([]BatchItem, len(req.Hands))
	var wg sync.WaitGroup
	for i, hand := range req.Hands {
		items[i].Hand = hand
		r, err := mahjong.ParseReadyHand(hand)
		if err != nil {
			items[i].Error = err.Error()
			continue
		}
		wg.Add(1)
		go func(i int, r mahjong.ReadyHand) {
			defer wg.Done()
			v, err := e.analyze(c.Ctx(), r)
			if err != nil {
				items[i].Error = err.Error()
				return
			}
			items[i].Analysis = v
		}(i, r)
	}
	wg.Wait()
	c.Success(items)
	return nil
}

// analyze 依次查本地缓存、共享缓存，都未命中时提交到 worker pool 计算
func (e *Evaluator) analyze(ctx context.Context, r mahjong.ReadyHand) (*AnalysisView, error) {
	key := analyzeKeyPrefix + r.String()
	if e.Results != nil {
		if v, ok := e.Results.Get(key); ok {
			if view, ok := v.(*AnalysisView); ok {
				return view, nil
			}
		}
	}
	if e.Store != nil {
		if view, ok := e.loadShared(ctx, key); ok {
			e.remember(key, view)
			return view, nil
		}
	}

	// 同一手牌只计算一次：计算不受请求期限约束，跑完后写入缓存，
	// 超时的请求和重试的请求都等待同一次计算
	ch := e.flight.DoChan(key, func() (interface{}, error) {
		return workerpool.Do(context.Background(), e.Pool, func() *AnalysisView {
			return e.compute(key, r)
		})
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			log.Warn("分析被拒绝 hand=%s err=%v", r, res.Err)
			return nil, res.Err
		}
		return res.Val.(*AnalysisView), nil
	case <-ctx.Done():
		log.Warn("分析超时，结果将在后台写入缓存 hand=%s", r)
		return nil, ctx.Err()
	}
}

func (e *Evaluator) compute(key string, r mahjong.ReadyHand) *AnalysisView {
	start := time.Now()
	a := e.Searcher.Analyze(r)
	log.Debug("分析完成 hand=%s distance=%d cost=%v", r, a.Distance, time.Since(start))

	view := newAnalysisView(r, a)
	e.remember(key, view)
	if e.Store != nil {
		saveCtx, cancel := context.WithTimeout(context.Background(), lateSaveTimeout)
		defer cancel()
		e.saveShared(saveCtx, key, view)
	}
	return view
}

func (e *Evaluator) remember(key string, view *AnalysisView) {
	if e.Results != nil {
		e.Results.Set(key, view)
	}
}

func (e *Evaluator) loadShared(ctx context.Context, key string) (*AnalysisView, bool) {
	raw, err := e.Store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn("共享缓存读取失败: %v", err)
		}
		return nil, false
	}
	var view AnalysisView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		log.Warn("共享缓存数据损坏 key=%s: %v", key, err)
		return nil, false
	}
	return &view, true
}

func (e *Evaluator) saveShared(ctx context.Context, key string, view *AnalysisView) {
	raw, err := json.Marshal(view)
	if err != nil {
		log.Error("序列化分析结果失败: %v", err)
		return
	}
	if err := e.Store.Set(ctx, key, string(raw)); err != nil {
		log.Warn("共享缓存写入失败: %v", err)
	}
}
