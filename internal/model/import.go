package model

// ClassifiedData 分类整理后的导入数据
type ClassifiedData struct {
	Customers    []*Customer    `json:"customers"`
	Consumptions []*Consumption `json:"consumptions"`
}

// PreCheckResult 文件预检查结果
type PreCheckResult struct {
	FileExt string `json:"fileExt"`
	Valid   bool   `json:"isValid"`
	Message string `json:"message"`
}

// SaveResult 数据保存结果
type SaveResult struct {
	CustomerCount    int    `json:"customerCount"`
	ConsumptionCount int    `json:"consumptionCount"`
	LastUpdated      string `json:"lastUpdated"`
}

// IngestSummary 单次解析的统计信息
type IngestSummary struct {
	Filename         string `json:"filename,omitempty"`
	TotalRows        int    `json:"totalRows"`
	HeaderRow        int    `json:"headerRow"` // -1 表示未找到表头，使用默认表头
	CustomerCount    int    `json:"customerCount"`
	ConsumptionCount int    `json:"consumptionCount"`
}

// Statistics 数据统计信息
type Statistics struct {
	CustomerCount     int            `json:"customerCount"`
	ConsumptionCount  int            `json:"consumptionCount"`
	TotalAmount       float64        `json:"totalAmount"`
	StoreDistribution map[string]int `json:"storeDistribution"`
	LastUpdated       string         `json:"lastUpdated"`
}

// ExportData 数据导出快照
type ExportData struct {
	Customers    []*Customer    `json:"customers"`
	Consumptions []*Consumption `json:"consumptions"`
	ExportTime   string         `json:"exportTime"`
	Statistics   *Statistics    `json:"statistics"`
}
