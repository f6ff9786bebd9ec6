package grid

import (
	"strconv"
	"strings"
)

// Value 单元格的标量值，字符串或数值二选一
type Value struct {
	Str     string  `json:"str,omitempty"`
	Num     float64 `json:"num,omitempty"`
	Numeric bool    `json:"numeric,omitempty"`
}

// StringValue 创建字符串值
func StringValue(s string) Value {
	return Value{Str: s}
}

// NumberValue 创建数值
func NumberValue(f float64) Value {
	return Value{Num: f, Numeric: true}
}

// Text 返回值的文本表示
// 保留原始文本的数值单元格优先返回原始文本，避免格式损失。
func (v Value) Text() string {
	if v.Str != "" {
		return v.Str
	}
	if v.Numeric {
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return ""
}

// IsEmpty 值是否为空
func (v Value) IsEmpty() bool {
	return !v.Numeric && strings.TrimSpace(v.Str) == ""
}

// Grid 解码后的稀疏二维网格
// 由解码器一次性构建，下游各阶段只读。
type Grid struct {
	cells map[CellAddr]Value
	ref   Range
}

// NewGrid 创建空网格，范围为退化的 1x1
func NewGrid() *Grid {
	return &Grid{cells: make(map[CellAddr]Value)}
}

// Set 写入单元格并扩展范围（仅解码阶段使用）
func (g *Grid) Set(addr CellAddr, v Value) {
	if addr.Row < 0 || addr.Col < 0 {
		return
	}
	if len(g.cells) == 0 {
		g.ref = Range{StartRow: addr.Row, StartCol: addr.Col, EndRow: addr.Row, EndCol: addr.Col}
	} else {
		if addr.Row < g.ref.StartRow {
			g.ref.StartRow = addr.Row
		}
		if addr.Row > g.ref.EndRow {
			g.ref.EndRow = addr.Row
		}
		if addr.Col < g.ref.StartCol {
			g.ref.StartCol = addr.Col
		}
		if addr.Col > g.ref.EndCol {
			g.ref.EndCol = addr.Col
		}
	}
	g.cells[addr] = v
}

// Get 读取单元格，不存在时返回空值
func (g *Grid) Get(addr CellAddr) (Value, bool) {
	v, ok := g.cells[addr]
	return v, ok
}

// Ref 返回网格的有效范围
// 空网格也携带退化的 1x1 范围，等价于 Excel 的 !ref 元数据。
func (g *Grid) Ref() Range {
	return g.ref
}

// CellCount 非空单元格数量
func (g *Grid) CellCount() int {
	return len(g.cells)
}

// RowText 提取指定行在范围内每一列的文本值
func (g *Grid) RowText(row int) []string {
	r := g.Ref()
	out := make([]string, 0, r.EndCol-r.StartCol+1)
	for c := r.StartCol; c <= r.EndCol; c++ {
		v, _ := g.Get(CellAddr{Row: row, Col: c})
		out = append(out, v.Text())
	}
	return out
}

// RowHasValue 指定行是否存在非空单元格
func (g *Grid) RowHasValue(row int) bool {
	r := g.Ref()
	for c := r.StartCol; c <= r.EndCol; c++ {
		if v, ok := g.Get(CellAddr{Row: row, Col: c}); ok && !v.IsEmpty() {
			return true
		}
	}
	return false
}
