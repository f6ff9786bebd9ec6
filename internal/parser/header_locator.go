package parser

import (
	"fmt"
	"strings"

	"beautycrm/internal/grid"
)

// HeaderLocation 表头定位结果
type HeaderLocation struct {
	Row     int      // 表头所在行（网格坐标）
	Headers []string // 提取的表头文本，空表头已补占位名
}

// 识别为"客户ID"类表头的别名
var idAliases = []string{"客户ID", "编号", "顾客编号", "客户编号"}

// 识别为"姓名"类表头的别名
var nameAliases = []string{"姓名", "客户姓名", "名字", "顾客姓名"}

// HeaderLocator 表头定位器
// 在网格前几行中用关键字启发式寻找最可能的表头行。
type HeaderLocator struct {
	maxScanRows int
}

// NewHeaderLocator 创建表头定位器
func NewHeaderLocator() *HeaderLocator {
	return &HeaderLocator{maxScanRows: 3}
}

// Locate 定位表头行
// 最多检查前三个有数据的行，首个符合条件的行即为表头；
// 找不到返回 ok=false，表示调用方应使用默认表头，而不是导入失败。
func (l *HeaderLocator) Locate(g *grid.Grid) (HeaderLocation, bool) {
	r := g.Ref()

	scanned := 0
	for row := r.StartRow; row <= r.EndRow && scanned < l.maxScanRows; row++ {
		if !g.RowHasValue(row) {
			continue
		}
		scanned++

		cells := g.RowText(row)
		if l.qualifies(cells) {
			return HeaderLocation{Row: row, Headers: FillEmptyHeaders(cells)}, true
		}
	}

	return HeaderLocation{Row: -1}, false
}

// qualifies 判断一行是否像表头：
// 含"客户+ID"组合或已知 ID 列别名，或含姓名类别名，
// 且不含二进制容器签名（防止把乱码字节当成表头）。
func (l *HeaderLocator) qualifies(cells []string) bool {
	hasID := false
	hasName := false

	for _, cell := range cells {
		c := NormalizeHeader(cell)
		if c == "" {
			continue
		}
		if strings.Contains(c, "PK\x03\x04") {
			return false
		}
		if strings.Contains(c, "客户") && strings.Contains(c, "ID") {
			hasID = true
		}
		for _, alias := range idAliases {
			if c == alias {
				hasID = true
			}
		}
		for _, alias := range nameAliases {
			if c == alias {
				hasName = true
			}
		}
	}

	return hasID || hasName
}

// FillEmptyHeaders 为空表头单元格分配行内唯一的占位名
func FillEmptyHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("__EMPTY_%d", i)
		}
		out[i] = h
	}
	return out
}

// NormalizeHeader 规范化表头文本，去除空白字符
func NormalizeHeader(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\n", "")
	name = strings.ReplaceAll(name, "\r", "")
	name = strings.ReplaceAll(name, "\t", "")
	return name
}
