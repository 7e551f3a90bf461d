package mahjong

import "errors"

// 输入构造错误
var (
	ErrInvalidNotation = errors.New("无效的牌面记法")
	ErrInvalidTile     = errors.New("无效的牌")
	ErrTileCount       = errors.New("牌数不合法")
)

// 手牌操作错误
var (
	ErrTileNotPresent = errors.New("手牌中没有这张牌")
)
