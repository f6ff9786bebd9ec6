package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"beautycrm/internal/grid"
	"beautycrm/internal/model"
)

// Classifier 记录分类器
// 把标准化后的数据行拆分为客户档案与消费记录两类。
type Classifier struct {
	logger *zap.Logger
}

// NewClassifier 创建分类器
func NewClassifier(logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{logger: logger}
}

// Classify 对网格数据行做分类
// headerRow 为表头所在行，-1 表示未定位到表头（此时使用默认表头，
// 从网格第一个有数据的行开始提取，绝不因为表头检测失败放弃导入）。
func (c *Classifier) Classify(g *grid.Grid, headerRow int, canonical []string) *model.ClassifiedData {
	out := &model.ClassifiedData{
		Customers:    []*model.Customer{},
		Consumptions: []*model.Consumption{},
	}

	r := g.Ref()
	firstDataRow := headerRow + 1
	if headerRow < 0 {
		canonical = CanonicalizeHeaders(grid.DefaultHeaders)
		firstDataRow = r.StartRow
		// 网格首行若恰好就是默认表头文本，跳过它
		if rowEqualsHeaders(g, r.StartRow, grid.DefaultHeaders) {
			firstDataRow = r.StartRow + 1
		}
		c.logger.Warn("未找到表头行，使用默认表头提取")
	}

	dataRows := 0
	for row := firstDataRow; row <= r.EndRow; row++ {
		fields := c.extractRow(g, row, canonical)
		if len(fields) == 0 {
			continue
		}
		dataRows++

		if isConsumptionRow(fields) {
			out.Consumptions = append(out.Consumptions, buildConsumption(fields))
			continue
		}
		out.Customers = append(out.Customers, c.buildCustomer(fields, row))
	}

	// 有数据行却没有识别出任何客户时，合成一个占位客户，
	// 保证下游始终有实体可挂靠消费记录，而不是静默丢数据。
	if len(out.Customers) == 0 && dataRows > 0 {
		placeholder := model.NewCustomer(fmt.Sprintf("CUST_DEFAULT_%d", time.Now().UnixMilli()))
		placeholder.Name = "默认客户"
		placeholder.Remarks = "系统自动创建"
		out.Customers = append(out.Customers, placeholder)
		c.logger.Info("未识别出客户，创建默认客户", zap.String("customerId", placeholder.CustomerID))
	}

	c.logger.Info("数据分类完成",
		zap.Int("dataRows", dataRows),
		zap.Int("customers", len(out.Customers)),
		zap.Int("consumptions", len(out.Consumptions)))
	return out
}

// extractRow 按标准字段名提取一行的非空单元格
func (c *Classifier) extractRow(g *grid.Grid, row int, canonical []string) map[string]string {
	r := g.Ref()
	fields := make(map[string]string)
	for col := r.StartCol; col <= r.EndCol; col++ {
		i := col - r.StartCol
		if i >= len(canonical) {
			break
		}
		name := canonical[i]
		if name == "" {
			continue
		}
		v, ok := g.Get(grid.CellAddr{Row: row, Col: col})
		if !ok || v.IsEmpty() {
			continue
		}
		fields[name] = strings.TrimSpace(v.Text())
	}
	return fields
}

// isConsumptionRow 行级分类规则：
// 同时具备日期类字段与项目名称类字段的行是消费记录。
func isConsumptionRow(fields map[string]string) bool {
	return fields[FieldConsumptionDate] != "" && fields[FieldProjectName] != ""
}

// buildConsumption 构造消费记录
func buildConsumption(fields map[string]string) *model.Consumption {
	amount := parseAmount(fields[FieldAmount])
	if amount < 0 {
		amount = 0
	}
	return &model.Consumption{
		CustomerID:    fields[FieldCustomerID],
		Date:          fields[FieldConsumptionDate],
		ProjectName:   fields[FieldProjectName],
		Amount:        amount,
		PaymentMethod: fields[FieldPaymentMethod],
		Technician:    fields[FieldTechnician],
		Satisfaction:  fields[FieldSatisfaction],
	}
}

// buildCustomer 构造客户档案，缺失字段取文档化的默认值
func (c *Classifier) buildCustomer(fields map[string]string, row int) *model.Customer {
	id := fields[FieldCustomerID]
	if id == "" {
		id = GenerateCustomerID()
	}

	customer := model.NewCustomer(id)
	for name, value := range fields {
		switch name {
		case FieldCustomerID:
			// 已处理
		case FieldName:
			customer.Name = value
		case FieldGender:
			customer.Gender = value
		case FieldAge:
			customer.Age = parseInt(value)
		case FieldPhone:
			customer.Phone = value
		case FieldAddress:
			customer.Address = value
		case FieldBirthday:
			customer.Birthday = value
		case FieldMemberCardNo:
			customer.MemberCardNo = value
		case FieldMemberLevel:
			customer.MemberLevel = value
		case FieldStore:
			customer.Store = value
		case FieldRemarks:
			customer.Remarks = value
		default:
			switch {
			case IsHealthField(name):
				customer.Health[name] = value
			case IsHabitField(name):
				customer.Habits[name] = value
			default:
				if customer.Extra == nil {
					customer.Extra = make(map[string]string)
				}
				customer.Extra[name] = value
			}
		}
	}

	if fields[FieldCustomerID] == "" {
		c.logger.Debug("客户缺少ID，已生成",
			zap.Int("row", row),
			zap.String("customerId", customer.CustomerID))
	}
	return customer
}

// GenerateCustomerID 为缺少ID的客户生成标识：导入时间戳 + 随机片段
func GenerateCustomerID() string {
	return fmt.Sprintf("CUST_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// rowEqualsHeaders 判断指定行的文本是否与给定表头一致
func rowEqualsHeaders(g *grid.Grid, row int, headers []string) bool {
	cells := g.RowText(row)
	if len(cells) < len(headers) {
		return false
	}
	for i, h := range headers {
		if NormalizeHeader(cells[i]) != h {
			return false
		}
	}
	return true
}

func parseAmount(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// "28岁" 这类带单位的值取前导数字
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n, _ := strconv.Atoi(s[:i])
	return n
}
