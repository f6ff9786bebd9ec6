package parser

import (
	"strings"
	"testing"

	"beautycrm/internal/grid"
)

func TestClassify_CSVHappyPath(t *testing.T) {
	t.Parallel()

	g := gridFromRows([][]string{
		{"客户ID", "姓名", "性别"},
		{"C001", "张三", "男"},
		{"C002", "李四", "女"},
	})

	loc, found := NewHeaderLocator().Locate(g)
	if !found {
		t.Fatalf("expected header found")
	}
	canonical := CanonicalizeHeaders(loc.Headers)

	out := NewClassifier(nil).Classify(g, loc.Row, canonical)
	if len(out.Customers) != 2 {
		t.Fatalf("want 2 customers got %d", len(out.Customers))
	}
	if len(out.Consumptions) != 0 {
		t.Fatalf("want 0 consumptions got %d", len(out.Consumptions))
	}

	c := out.Customers[0]
	if c.CustomerID != "C001" || c.Name != "张三" || c.Gender != "男" {
		t.Fatalf("unexpected customer: %+v", c)
	}
	c = out.Customers[1]
	if c.CustomerID != "C002" || c.Name != "李四" || c.Gender != "女" {
		t.Fatalf("unexpected customer: %+v", c)
	}
}

func TestClassify_ConsumptionRow(t *testing.T) {
	t.Parallel()

	// 同时具备日期与项目字段的行是消费记录，即使没有客户ID也不按客户处理
	g := gridFromRows([][]string{
		{"客户ID", "消费日期", "项目", "金额"},
		{"C001", "2024-01-01", "面部护理", "300"},
	})

	loc, _ := NewHeaderLocator().Locate(g)
	out := NewClassifier(nil).Classify(g, loc.Row, CanonicalizeHeaders(loc.Headers))

	if len(out.Consumptions) != 1 {
		t.Fatalf("want 1 consumption got %d", len(out.Consumptions))
	}
	rec := out.Consumptions[0]
	if rec.CustomerID != "C001" || rec.Date != "2024-01-01" || rec.ProjectName != "面部护理" || rec.Amount != 300 {
		t.Fatalf("unexpected consumption: %+v", rec)
	}

	// 行数据里只有消费记录时必须合成占位客户
	if len(out.Customers) != 1 {
		t.Fatalf("want 1 synthesized customer got %d", len(out.Customers))
	}
	if out.Customers[0].Remarks != "系统自动创建" {
		t.Fatalf("synthesized customer not marked: %+v", out.Customers[0])
	}
}

func TestClassify_DefaultsForMissingFields(t *testing.T) {
	t.Parallel()

	g := gridFromRows([][]string{
		{"客户ID", "姓名", "年龄"},
		{"C001", "", "28"},
	})

	loc, _ := NewHeaderLocator().Locate(g)
	out := NewClassifier(nil).Classify(g, loc.Row, CanonicalizeHeaders(loc.Headers))

	c := out.Customers[0]
	if c.Name != "未命名客户" {
		t.Fatalf("missing name should default: %q", c.Name)
	}
	if c.Gender != "未知" {
		t.Fatalf("missing gender should default: %q", c.Gender)
	}
	if c.Age != 28 {
		t.Fatalf("age not parsed: %d", c.Age)
	}
}

func TestClassify_HealthAndHabitGroups(t *testing.T) {
	t.Parallel()

	g := gridFromRows([][]string{
		{"客户ID", "姓名", "过敏史", "饮食习惯", "血型"},
		{"C001", "张三", "花粉过敏", "清淡", "O"},
	})

	loc, _ := NewHeaderLocator().Locate(g)
	out := NewClassifier(nil).Classify(g, loc.Row, CanonicalizeHeaders(loc.Headers))

	c := out.Customers[0]
	if c.Health[FieldAllergies] != "花粉过敏" || c.Health[FieldBloodType] != "O" {
		t.Fatalf("health group not assembled: %v", c.Health)
	}
	if c.Habits[FieldDietHabits] != "清淡" {
		t.Fatalf("habit group not assembled: %v", c.Habits)
	}
}

func TestClassify_UnknownColumnsPreserved(t *testing.T) {
	t.Parallel()

	g := gridFromRows([][]string{
		{"客户ID", "姓名", "推荐人"},
		{"C001", "张三", "王五"},
	})

	loc, _ := NewHeaderLocator().Locate(g)
	out := NewClassifier(nil).Classify(g, loc.Row, CanonicalizeHeaders(loc.Headers))

	if out.Customers[0].Extra["推荐人"] != "王五" {
		t.Fatalf("unknown column must be preserved: %v", out.Customers[0].Extra)
	}
}

func TestClassify_NoHeaderUsesDefaults(t *testing.T) {
	t.Parallel()

	// 没有可信表头时按默认表头的列位置提取，绝不中止导入
	g := gridFromRows([][]string{
		{"C001", "张三", "男"},
		{"C002", "李四", "女"},
	})

	out := NewClassifier(nil).Classify(g, -1, nil)
	if len(out.Customers) != 2 {
		t.Fatalf("want 2 customers got %d", len(out.Customers))
	}
	if out.Customers[0].CustomerID != "C001" || out.Customers[0].Name != "张三" {
		t.Fatalf("default headers not applied: %+v", out.Customers[0])
	}
}

func TestClassify_MissingIDGenerated(t *testing.T) {
	t.Parallel()

	g := gridFromRows([][]string{
		{"客户ID", "姓名"},
		{"", "张三"},
	})

	loc, _ := NewHeaderLocator().Locate(g)
	out := NewClassifier(nil).Classify(g, loc.Row, CanonicalizeHeaders(loc.Headers))

	id := out.Customers[0].CustomerID
	if !strings.HasPrefix(id, "CUST_") {
		t.Fatalf("generated id should carry CUST_ prefix: %q", id)
	}
}

func TestClassify_EmptyGrid(t *testing.T) {
	t.Parallel()

	out := NewClassifier(nil).Classify(grid.NewGrid(), -1, nil)
	if len(out.Customers) != 0 || len(out.Consumptions) != 0 {
		t.Fatalf("empty grid should classify to empty collections")
	}
}
