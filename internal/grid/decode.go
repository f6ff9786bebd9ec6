package grid

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Kind 输入文件的声明类型
type Kind string

const (
	KindDelimited Kind = "delimited" // 分隔文本 (csv)
	KindWorkbook  Kind = "workbook"  // 二进制电子表格 (xlsx/xls)
)

// ErrDecode 原始字节无法解释为网格
// 解码器内部会尽量恢复，管线对外不会因软性问题返回该错误。
var ErrDecode = errors.New("grid: decode failed")

// DefaultHeaders 兜底网格第 0 行使用的默认表头
var DefaultHeaders = []string{"客户ID", "姓名", "性别", "年龄", "手机号", "备注"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decoder 网格解码器
type Decoder struct {
	delimiter rune
	logger    *zap.Logger
}

// NewDecoder 创建解码器，delimiter 为 0 时使用逗号
func NewDecoder(delimiter rune, logger *zap.Logger) *Decoder {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Decoder{delimiter: delimiter, logger: logger}
}

// Decode 将原始字节解码为网格
// 分隔文本走 csv 解析；二进制电子表格先尝试 excelize 真解码，失败后
// 若内容看起来是文本则退回文本路径，否则产出固定形状的兜底网格。
// 任何一条路径都会产出带范围元数据的网格，不会让整个导入崩溃。
func (d *Decoder) Decode(data []byte, kind Kind) (*Grid, error) {
	switch kind {
	case KindDelimited:
		return d.decodeDelimited(data)
	case KindWorkbook:
		return d.decodeWorkbook(data)
	default:
		return nil, ErrDecode
	}
}

// decodeDelimited 解析分隔文本
func (d *Decoder) decodeDelimited(data []byte) (*Grid, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = d.delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	g := NewGrid()
	row := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// 单行解析失败跳过该行，不中断整体解码
			d.logger.Warn("跳过无法解析的行", zap.Int("row", row), zap.Error(err))
			row++
			continue
		}
		empty := true
		for col, field := range record {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			g.Set(CellAddr{Row: row, Col: col}, cellValue(field))
			empty = false
		}
		if !empty {
			row++
		}
	}

	d.logger.Info("分隔文本解码完成",
		zap.Int("rows", row),
		zap.String("ref", EncodeRange(g.Ref())))
	return g, nil
}

// decodeWorkbook 解析二进制电子表格
func (d *Decoder) decodeWorkbook(data []byte) (*Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err == nil {
		defer f.Close()
		if g, ok := d.gridFromWorkbook(f); ok {
			return g, nil
		}
	}

	// excelize 打不开或没有可用 sheet：若内容像分隔文本则按文本解析
	if looksDelimited(data, d.delimiter) {
		d.logger.Warn("二进制解码失败，内容疑似分隔文本，转文本路径")
		return d.decodeDelimited(data)
	}

	// 兜底：固定形状网格，下游仍能给出“没有可用数据”的结论
	d.logger.Warn("二进制解码失败，使用兜底默认网格")
	return DefaultGrid(), nil
}

// gridFromWorkbook 取第一个 sheet 转网格
func (d *Decoder) gridFromWorkbook(f *excelize.File) (*Grid, bool) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, false
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil || len(rows) == 0 {
		return nil, false
	}

	g := NewGrid()
	for r, row := range rows {
		for c, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			g.Set(CellAddr{Row: r, Col: c}, cellValue(cell))
		}
	}

	d.logger.Info("工作簿解码完成",
		zap.String("sheet", sheets[0]),
		zap.Int("rows", len(rows)),
		zap.String("ref", EncodeRange(g.Ref())))
	return g, true
}

// DefaultGrid 构造兜底网格：第 0 行是最常见的默认表头
func DefaultGrid() *Grid {
	g := NewGrid()
	for i, h := range DefaultHeaders {
		g.Set(CellAddr{Row: 0, Col: i}, StringValue(h))
	}
	return g
}

// cellValue 构造单元格值，可解析为数值的同时保留原始文本
func cellValue(s string) Value {
	plain := strings.ReplaceAll(s, ",", "")
	if f, err := strconv.ParseFloat(plain, 64); err == nil {
		return Value{Str: s, Num: f, Numeric: true}
	}
	return StringValue(s)
}

// looksDelimited 判断字节内容是否像分隔文本：
// 开头 4KiB 为合法 UTF-8、不含 NUL，且出现过换行或分隔符。
func looksDelimited(data []byte, delimiter rune) bool {
	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	if len(head) == 0 {
		return false
	}
	head = bytes.TrimPrefix(head, utf8BOM)
	if bytes.IndexByte(head, 0) >= 0 {
		return false
	}
	if !utf8.Valid(head) {
		return false
	}
	return bytes.ContainsRune(head, '\n') || bytes.ContainsRune(head, delimiter)
}
