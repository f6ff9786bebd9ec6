package grid

import (
	"fmt"
	"strings"
)

// CellAddr 单元格地址，内部使用 0 起始的行列坐标
type CellAddr struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Range 网格的有效数据范围（闭区间，0 起始）
type Range struct {
	StartRow int `json:"startRow"`
	StartCol int `json:"startCol"`
	EndRow   int `json:"endRow"`
	EndCol   int `json:"endCol"`
}

// EncodeCell 将行列坐标编码为 A1 形式的单元格名称
// 对所有非负坐标都有定义。
func EncodeCell(addr CellAddr) string {
	return EncodeColumn(addr.Col) + fmt.Sprintf("%d", addr.Row+1)
}

// DecodeCell 将 A1 形式的单元格名称解码为行列坐标
func DecodeCell(name string) (CellAddr, error) {
	i := 0
	for i < len(name) && name[i] >= 'A' && name[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(name) {
		return CellAddr{}, fmt.Errorf("invalid cell name: %q", name)
	}

	col, err := DecodeColumn(name[:i])
	if err != nil {
		return CellAddr{}, err
	}

	row := 0
	for _, ch := range name[i:] {
		if ch < '0' || ch > '9' {
			return CellAddr{}, fmt.Errorf("invalid cell name: %q", name)
		}
		row = row*10 + int(ch-'0')
	}
	if row < 1 {
		return CellAddr{}, fmt.Errorf("invalid cell name: %q", name)
	}

	return CellAddr{Row: row - 1, Col: col}, nil
}

// EncodeColumn 将 0 起始的列索引编码为列字母（0 -> A, 25 -> Z, 26 -> AA）
func EncodeColumn(col int) string {
	var sb strings.Builder
	n := col + 1
	for n > 0 {
		n--
		sb.WriteByte(byte('A' + n%26))
		n /= 26
	}
	// 反转
	s := []byte(sb.String())
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return string(s)
}

// DecodeColumn 将列字母解码为 0 起始的列索引
func DecodeColumn(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("empty column letters")
	}
	n := 0
	for _, ch := range letters {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column letters: %q", letters)
		}
		n = n*26 + int(ch-'A') + 1
	}
	return n - 1, nil
}

// EncodeRange 将范围编码为 A1:B2 形式（即 Excel 的 !ref 表示）
func EncodeRange(r Range) string {
	return EncodeCell(CellAddr{Row: r.StartRow, Col: r.StartCol}) + ":" +
		EncodeCell(CellAddr{Row: r.EndRow, Col: r.EndCol})
}

// DecodeRange 解析 A1:B2 形式的范围
func DecodeRange(ref string) (Range, error) {
	parts := strings.SplitN(ref, ":", 2)
	start, err := DecodeCell(parts[0])
	if err != nil {
		return Range{}, err
	}
	end := start
	if len(parts) == 2 {
		end, err = DecodeCell(parts[1])
		if err != nil {
			return Range{}, err
		}
	}
	return Range{StartRow: start.Row, StartCol: start.Col, EndRow: end.Row, EndCol: end.Col}, nil
}
