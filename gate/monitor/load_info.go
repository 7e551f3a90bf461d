package monitor

// LoadInfo 负载信息
// 用于计算 gate 节点的综合负载评分
type LoadInfo struct {
	Pending    int     `json:"pending"`    // 排队中的计算任务
	Workers    int     `json:"workers"`    // worker 数量
	Goroutines int     `json:"goroutines"` // 当前协程数
	CPUUsage   float64 `json:"cpu"`        // CPU 使用率（0-100）
	MemUsage   float64 `json:"mem"`        // 内存使用率（0-100）
	Load       float64 `json:"load"`
}

// CalculateLoad 计算综合负载评分
// 权重：CPU 40%、内存 20%、队列积压 40%
// 返回值越小表示负载越低
func (li *LoadInfo) CalculateLoad() float64 {
	// 积压按 worker 数归一化，超过 4 倍 worker 视为满载
	backlog := 0.0
	if li.Workers > 0 {
		backlog = float64(li.Pending) / float64(4*li.Workers)
	}
	if backlog > 1.0 {
		backlog = 1.0
	}
	return li.CPUUsage*0.4 + li.MemUsage*0.2 + backlog*100*0.4
}
