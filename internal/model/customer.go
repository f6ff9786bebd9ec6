package model

// Customer 客户档案
type Customer struct {
	CustomerID   string `json:"customerId"`
	Name         string `json:"name"`
	Gender       string `json:"gender"`
	Age          int    `json:"age"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Birthday     string `json:"birthday"`
	MemberCardNo string `json:"memberCardNo"`
	MemberLevel  string `json:"memberLevel"`
	Store        string `json:"store"`
	Remarks      string `json:"remarks"`

	// 健康档案与生活习惯，按规范字段名分组存放
	Health map[string]string `json:"health"`
	Habits map[string]string `json:"habits"`

	// 未识别的列原样保留，避免丢数据
	Extra map[string]string `json:"extra,omitempty"`
}

// NewCustomer 按默认值构造客户档案
func NewCustomer(id string) *Customer {
	return &Customer{
		CustomerID:  id,
		Name:        "未命名客户",
		Gender:      "未知",
		MemberLevel: "标准会员",
		Store:       "总店",
		Health:      make(map[string]string),
		Habits:      make(map[string]string),
	}
}

// Merge 浅合并：incoming 的非空字段覆盖当前值，空字段保留原值
func (c *Customer) Merge(incoming *Customer) {
	if incoming == nil {
		return
	}
	if incoming.Name != "" {
		c.Name = incoming.Name
	}
	if incoming.Gender != "" {
		c.Gender = incoming.Gender
	}
	if incoming.Age != 0 {
		c.Age = incoming.Age
	}
	if incoming.Phone != "" {
		c.Phone = incoming.Phone
	}
	if incoming.Address != "" {
		c.Address = incoming.Address
	}
	if incoming.Birthday != "" {
		c.Birthday = incoming.Birthday
	}
	if incoming.MemberCardNo != "" {
		c.MemberCardNo = incoming.MemberCardNo
	}
	if incoming.MemberLevel != "" {
		c.MemberLevel = incoming.MemberLevel
	}
	if incoming.Store != "" {
		c.Store = incoming.Store
	}
	if incoming.Remarks != "" {
		c.Remarks = incoming.Remarks
	}
	c.Health = overlay(c.Health, incoming.Health)
	c.Habits = overlay(c.Habits, incoming.Habits)
	c.Extra = overlay(c.Extra, incoming.Extra)
}

func overlay(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		if v != "" {
			dst[k] = v
		}
	}
	return dst
}
