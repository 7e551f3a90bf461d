package api

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"yakuchecker/common/cache"
	"yakuchecker/common/http"
	"yakuchecker/common/workerpool"
	"yakuchecker/framework/game/engines/mahjong"
	"yakuchecker/gate/monitor"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu   sync.Mutex
	m    map[string]string
	gets int
	sets int
}

func newMemStore() *memStore { return &memStore{m: map[string]string{}} }

func (s *memStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	v, ok := s.m[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (s *memStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	s.m[key] = value
	return nil
}

func (s *memStore) Close() error { return nil }

type fixedLoad float64

func (f fixedLoad) Latest() monitor.LoadInfo { return monitor.LoadInfo{Load: float64(f)} }

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fixture struct {
	server  *http.HttpServer
	eval    *Evaluator
	results *cache.GeneralCache
	store   *memStore
}

func newFixture(t *testing.T, pool *workerpool.Pool, load float64) *fixture {
	t.Helper()
	return buildFixture(t, pool, load, mahjong.NewSearcher(), 5*time.Second)
}

func buildFixture(t *testing.T, pool *workerpool.Pool, load float64, analyzer Analyzer, timeout time.Duration) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	results, err := cache.NewGeneralCache(1000, time.Minute)
	require.NoError(t, err)
	t.Cleanup(results.Close)
	if pool == nil {
		pool = workerpool.New(2, 16)
		t.Cleanup(pool.Shutdown)
	}

	f := &fixture{results: results, store: newMemStore()}
	f.eval = &Evaluator{
		Searcher:   analyzer,
		Pool:       pool,
		Results:    results,
		Store:      f.store,
		BatchLimit: 4,
	}
	f.server = http.NewHttpServer()
	f.server.Use(http.RequestIDMiddleware(), http.RecoveryMiddleware())
	RegisterRoutes(f.server, f.eval, &Health{Load: fixedLoad(load)}, timeout)
	return f
}

func (f *fixture) call(t *testing.T, method, path string, body interface{}, out interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if out != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return w.Code, env
}

func TestPingAndHealth(t *testing.T) {
	f := newFixture(t, nil, 10)
	status, env := f.call(t, nethttp.MethodGet, "/ping", nil, nil)
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, http.CodeSuccess, env.Code)

	_, env = f.call(t, nethttp.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.CodeSuccess, env.Code)

	f = newFixture(t, nil, 95)
	_, env = f.call(t, nethttp.MethodGet, "/health", nil, nil)
	assert.Equal(t, CodeUnhealthy, env.Code)
}

func TestScoreHandler(t *testing.T) {
	f := newFixture(t, nil, 0)
	var v ScoreView
	status, env := f.call(t, nethttp.MethodPost, "/api/v1/score",
		HandRequest{Hand: "234m 567m 234p 67s 55p", Draw: "8s"}, &v)
	require.Equal(t, nethttp.StatusOK, status, env.Message)
	assert.True(t, v.Winning)
	assert.Equal(t, "2 han", v.Han)
	require.Len(t, v.Yaku, 2)
	assert.Equal(t, "Tanyao", v.Yaku[0].Name)
	assert.Equal(t, "Pinfu", v.Yaku[1].Name)

	v = ScoreView{}
	f.call(t, nethttp.MethodPost, "/api/v1/score",
		HandRequest{Hand: "haku3 123m 456p 789s 1p", Draw: "1p"}, &v)
	require.Len(t, v.Yaku, 1)
	assert.Equal(t, "haku", v.Yaku[0].Tile)

	v = ScoreView{}
	f.call(t, nethttp.MethodPost, "/api/v1/score",
		HandRequest{Hand: "123456789p 238m hatsu", Draw: "8m"}, &v)
	assert.False(t, v.Winning)
	assert.Empty(t, v.Yaku)
}

func TestScoreHandler_BadInput(t *testing.T) {
	f := newFixture(t, nil, 0)
	cases := []HandRequest{
		{Hand: "123x", Draw: "1m"},
		{Hand: "123m", Draw: "1m"},
		{Hand: "1m4 123456789p", Draw: "1m"},
		{Hand: "234m 567m 234p 67s 55p", Draw: ""},
	}
	for _, c := range cases {
		status, env := f.call(t, nethttp.MethodPost, "/api/v1/score", c, nil)
		assert.Equal(t, nethttp.StatusBadRequest, status, c.Hand)
		assert.Equal(t, http.CodeInvalidParam, env.Code, c.Hand)
	}

	status, _ := f.call(t, nethttp.MethodPost, "/api/v1/score", map[string]string{}, nil)
	assert.Equal(t, nethttp.StatusBadRequest, status)
}

func TestDecomposeHandler(t *testing.T) {
	f := newFixture(t, nil, 0)
	var views []PatternView
	f.call(t, nethttp.MethodPost, "/api/v1/decompose",
		HandRequest{Hand: "223344m 556677p 9s", Draw: "9s"}, &views)
	require.Len(t, views, 2)
	shapes := map[string]bool{}
	for _, v := range views {
		shapes[v.Shape] = true
	}
	assert.True(t, shapes["standard"])
	assert.True(t, shapes["chiitoitsu"])
}

func TestAnalyzeHandler_Cached(t *testing.T) {
	f := newFixture(t, nil, 0)
	req := HandRequest{Hand: "123m 456m 789m 123p 4p"}

	var v AnalysisView
	status, env := f.call(t, nethttp.MethodPost, "/api/v1/analyze", req, &v)
	require.Equal(t, nethttp.StatusOK, status, env.Message)
	assert.Equal(t, 0, v.Distance)
	assert.Equal(t, []string{"1p", "4p"}, v.Progress)
	assert.Equal(t, 6, v.Ukeire)
	require.Len(t, v.Tenpai, 2)
	assert.Equal(t, "Ikkitsuukan", v.Tenpai[0].Yaku[0].Name)
	assert.Equal(t, 1, f.store.sets)

	f.results.Wait()
	var again AnalysisView
	f.call(t, nethttp.MethodPost, "/api/v1/analyze", req, &again)
	assert.Equal(t, v, again)
	assert.Equal(t, 1, f.store.gets, "本地命中后不应再查共享缓存")
}

func TestAnalyzeHandler_SharedStore(t *testing.T) {
	f := newFixture(t, nil, 0)
	req := HandRequest{Hand: "1p2 2s2 3m2 4p2 5s2 6m2 7p"}
	var v AnalysisView
	f.call(t, nethttp.MethodPost, "/api/v1/analyze", req, &v)

	// 另一个实例只共享 redis
	other := newFixture(t, nil, 0)
	other.store = f.store
	other.eval.Store = f.store
	var shared AnalysisView
	other.call(t, nethttp.MethodPost, "/api/v1/analyze", req, &shared)
	assert.Equal(t, v, shared)
	assert.Equal(t, 1, f.store.sets)
}

func TestDiscardHandler(t *testing.T) {
	f := newFixture(t, nil, 0)
	var v DiscardView
	status, env := f.call(t, nethttp.MethodPost, "/api/v1/discard",
		HandRequest{Hand: "123m 456m 789m 123p 4p", Draw: "9s", Discard: "9s"}, &v)
	require.Equal(t, nethttp.StatusOK, status, env.Message)
	assert.Equal(t, "9s", v.Discard)
	assert.Equal(t, 0, v.Analysis.Distance)

	status, env = f.call(t, nethttp.MethodPost, "/api/v1/discard",
		HandRequest{Hand: "123m 456m 789m 123p 4p", Draw: "9s", Discard: "5s"}, nil)
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, http.CodeTileNotPresent, env.Code)
}

func TestBatchHandler(t *testing.T) {
	f := newFixture(t, nil, 0)
	var items []BatchItem
	status, env := f.call(t, nethttp.MethodPost, "/api/v1/analyze/batch",
		BatchRequest{Hands: []string{"123m 456m 789m 123p 4p", "bad hand"}}, &items)
	require.Equal(t, nethttp.StatusOK, status, env.Message)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Analysis)
	assert.Equal(t, 0, items[0].Analysis.Distance)
	assert.Nil(t, items[1].Analysis)
	assert.NotEmpty(t, items[1].Error)

	status, env = f.call(t, nethttp.MethodPost, "/api/v1/analyze/batch",
		BatchRequest{Hands: make([]string, 5)}, nil)
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, http.CodeInvalidParam, env.Code)
}

func TestAnalyzeHandler_Busy(t *testing.T) {
	pool := workerpool.New(1, 1)
	block := make(chan struct{})
	started := make(chan struct{})
	require.True(t, pool.TrySubmit(func() {
		close(started)
		<-block
	}))
	<-started
	// 占满队列
	require.True(t, pool.TrySubmit(func() {}))
	defer func() {
		close(block)
		pool.Shutdown()
	}()

	f := newFixture(t, pool, 0)
	status, env := f.call(t, nethttp.MethodPost, "/api/v1/analyze",
		HandRequest{Hand: "123m 456m 789m 1p 4p 7s ton"}, nil)
	assert.Equal(t, nethttp.StatusServiceUnavailable, status)
	assert.Equal(t, http.CodeBusy, env.Code)
}

// gatedAnalyzer 在 release 关闭前阻塞，模拟耗时很长的分析
type gatedAnalyzer struct {
	inner   *mahjong.Searcher
	release chan struct{}
	calls   int32
}

func (g *gatedAnalyzer) Analyze(r mahjong.ReadyHand) mahjong.Analysis {
	atomic.AddInt32(&g.calls, 1)
	<-g.release
	return g.inner.Analyze(r)
}

func TestAnalyzeHandler_OverdueResultIsCached(t *testing.T) {
	g := &gatedAnalyzer{inner: mahjong.NewSearcher(), release: make(chan struct{})}
	f := buildFixture(t, nil, 0, g, 30*time.Millisecond)
	req := HandRequest{Hand: "123m 456m 789m 123p 4p"}

	status, env := f.call(t, nethttp.MethodPost, "/api/v1/analyze", req, nil)
	assert.Equal(t, nethttp.StatusServiceUnavailable, status)
	assert.Equal(t, http.CodeBusy, env.Code)

	// 计算仍在进行，重试等待同一次计算而不是重新提交
	status, _ = f.call(t, nethttp.MethodPost, "/api/v1/analyze", req, nil)
	assert.Equal(t, nethttp.StatusServiceUnavailable, status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&g.calls))

	close(g.release)
	r, err := mahjong.ParseReadyHand(req.Hand)
	require.NoError(t, err)
	key := analyzeKeyPrefix + r.String()
	assert.Eventually(t, func() bool {
		f.results.Wait()
		_, ok := f.results.Get(key)
		return ok
	}, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		f.store.mu.Lock()
		defer f.store.mu.Unlock()
		return f.store.sets == 1
	}, 2*time.Second, 10*time.Millisecond)

	var v AnalysisView
	status, env = f.call(t, nethttp.MethodPost, "/api/v1/analyze", req, &v)
	require.Equal(t, nethttp.StatusOK, status, env.Message)
	assert.Equal(t, 0, v.Distance)
	assert.Equal(t, int32(1), atomic.LoadInt32(&g.calls))
}
