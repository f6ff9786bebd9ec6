package model

// Consumption 消费记录
type Consumption struct {
	CustomerID    string  `json:"customerId"`
	Date          string  `json:"date"`
	ProjectName   string  `json:"projectName"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
	Technician    string  `json:"technician"`
	Satisfaction  string  `json:"satisfaction"`
}

// ConsumptionKey 消费记录去重键。
// 使用可比较结构体而非字符串拼接，字段内出现分隔符时不会串键。
type ConsumptionKey struct {
	CustomerID  string
	Date        string
	ProjectName string
	Amount      float64
}

// Key 返回记录的自然去重键
func (c *Consumption) Key() ConsumptionKey {
	return ConsumptionKey{
		CustomerID:  c.CustomerID,
		Date:        c.Date,
		ProjectName: c.ProjectName,
		Amount:      c.Amount,
	}
}
