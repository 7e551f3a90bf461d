package mahjong

// 向听数下界，0 为听牌，-1 为已和牌

// ShantenNormal 一般形向听数：8 - 2*面子 - min(搭子, 4-面子) - 雀头
func ShantenNormal(h Hand34) int {
	best := 8
	dfsNormalShanten(h, 0, 0, 0, &best)
	return best
}

// dfsNormalShanten m：面子数、p：雀头数（0/1）、t：搭子数、best：全局最小向听
func dfsNormalShanten(h Hand34, m, p, t int, best *int) {
	if m > 4 {
		return
	}

	t2 := t
	if limit := 4 - m; t2 > limit {
		t2 = limit
	}
	if sh := 8 - 2*m - t2 - p; sh < *best {
		*best = sh
	}

	i := -1
	for k := 0; k < TileKinds; k++ {
		if h[k] > 0 {
			i = k
			break
		}
	}
	if i == -1 {
		return
	}
	tile := Tile(i)

	// 刻子
	if h[i] >= 3 {
		next := h
		next[i] -= 3
		dfsNormalShanten(next, m+1, p, t, best)
	}
	// 顺子
	if tile.IsNumbered() && tile.Rank() <= 7 && h[i+1] > 0 && h[i+2] > 0 {
		next := h
		next[i]--
		next[i+1]--
		next[i+2]--
		dfsNormalShanten(next, m+1, p, t, best)
	}
	// 雀头
	if p == 0 && h[i] >= 2 {
		next := h
		next[i] -= 2
		dfsNormalShanten(next, m, 1, t, best)
	}
	// 对子当搭子
	if h[i] >= 2 {
		next := h
		next[i] -= 2
		dfsNormalShanten(next, m, p, t+1, best)
	}
	if tile.IsNumbered() {
		// 两面/边张
		if tile.Rank() <= 8 && h[i+1] > 0 {
			next := h
			next[i]--
			next[i+1]--
			dfsNormalShanten(next, m, p, t+1, best)
		}
		// 嵌张
		if tile.Rank() <= 7 && h[i+2] > 0 {
			next := h
			next[i]--
			next[i+2]--
			dfsNormalShanten(next, m, p, t+1, best)
		}
	}
	// 孤张
	next := h
	next[i]--
	dfsNormalShanten(next, m, p, t, best)
}

// ShantenChiitoi 七对子向听数
func ShantenChiitoi(h Hand34) int {
	pairs := 0
	unique := 0
	for i := 0; i < TileKinds; i++ {
		if h[i] > 0 {
			unique++
		}
		if h[i] >= 2 {
			pairs++
		}
	}
	sh := 6 - pairs
	if unique < 7 {
		sh += 7 - unique
	}
	return sh
}

// ShantenKokushi 国士无双向听数
func ShantenKokushi(h Hand34) int {
	unique := 0
	pair := false
	for _, t := range kokushiTiles {
		if h[t] > 0 {
			unique++
			if h[t] >= 2 {
				pair = true
			}
		}
	}
	sh := 13 - unique
	if pair {
		sh--
	}
	return sh
}

// ShantenAll 三种和牌形向听数的最小值
func ShantenAll(h Hand34) int {
	best := ShantenNormal(h)
	if v := ShantenChiitoi(h); v < best {
		best = v
	}
	if v := ShantenKokushi(h); v < best {
		best = v
	}
	return best
}
