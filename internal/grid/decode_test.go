package grid

import (
	"testing"
)

func TestDecodeDelimited_Basic(t *testing.T) {
	t.Parallel()

	d := NewDecoder(',', nil)
	g, err := d.Decode([]byte("客户ID,姓名,性别\nC001,张三,男\nC002,李四,女\n"), KindDelimited)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	ref := g.Ref()
	if ref.EndRow != 2 || ref.EndCol != 2 {
		t.Fatalf("unexpected ref: %v", ref)
	}

	v, ok := g.Get(CellAddr{Row: 1, Col: 1})
	if !ok || v.Text() != "张三" {
		t.Fatalf("unexpected cell B2: %v %v", v, ok)
	}
}

func TestDecodeDelimited_BOMAndTrailingLines(t *testing.T) {
	t.Parallel()

	d := NewDecoder(',', nil)
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("客户ID,姓名\nC001,张三\n\n\n")...)
	g, err := d.Decode(data, KindDelimited)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	v, _ := g.Get(CellAddr{Row: 0, Col: 0})
	if v.Text() != "客户ID" {
		t.Fatalf("BOM not stripped: %q", v.Text())
	}
	if g.Ref().EndRow != 1 {
		t.Fatalf("trailing empty lines should be ignored, ref=%v", g.Ref())
	}
}

func TestDecodeDelimited_QuotedDelimiter(t *testing.T) {
	t.Parallel()

	d := NewDecoder(',', nil)
	g, err := d.Decode([]byte("姓名,备注\n张三,\"爱吃辣,不吃甜\"\n"), KindDelimited)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	v, _ := g.Get(CellAddr{Row: 1, Col: 1})
	if v.Text() != "爱吃辣,不吃甜" {
		t.Fatalf("quoted delimiter not preserved: %q", v.Text())
	}
}

func TestDecodeDelimited_NumericCell(t *testing.T) {
	t.Parallel()

	d := NewDecoder(',', nil)
	g, err := d.Decode([]byte("金额\n1,298.00\n"), KindDelimited)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// "1,298.00" 带引号才是一个字段；不带引号按两列解析
	v, ok := g.Get(CellAddr{Row: 1, Col: 0})
	if !ok || !v.Numeric || v.Num != 1 {
		t.Fatalf("unexpected numeric cell: %+v", v)
	}

	g, err = d.Decode([]byte("金额\n\"1,298.00\"\n"), KindDelimited)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	v, _ = g.Get(CellAddr{Row: 1, Col: 0})
	if !v.Numeric || v.Num != 1298 {
		t.Fatalf("thousand separator not handled: %+v", v)
	}
}

func TestDecodeWorkbook_FallsBackToTextSniff(t *testing.T) {
	t.Parallel()

	// 声明为工作簿但内容其实是分隔文本
	d := NewDecoder(',', nil)
	g, err := d.Decode([]byte("客户ID,姓名\nC001,张三\n"), KindWorkbook)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	v, _ := g.Get(CellAddr{Row: 1, Col: 0})
	if v.Text() != "C001" {
		t.Fatalf("text sniff fallback failed: %q", v.Text())
	}
}

func TestDecodeWorkbook_GarbageYieldsDefaultGrid(t *testing.T) {
	t.Parallel()

	d := NewDecoder(',', nil)
	g, err := d.Decode([]byte{0x00, 0x01, 0x02, 0xFF, 0xFE}, KindWorkbook)
	if err != nil {
		t.Fatalf("garbage input must not fail decode: %v", err)
	}

	// 兜底网格第 0 行携带默认表头
	v, ok := g.Get(CellAddr{Row: 0, Col: 0})
	if !ok || v.Text() != "客户ID" {
		t.Fatalf("expected default grid, got %+v", v)
	}
	ref := g.Ref()
	if ref.StartRow != 0 || ref.EndRow != 0 {
		t.Fatalf("default grid should be a single header row: %v", ref)
	}
}

func TestDecode_EmptyInputKeepsDegenerateRange(t *testing.T) {
	t.Parallel()

	d := NewDecoder(',', nil)
	g, err := d.Decode([]byte(""), KindDelimited)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if g.CellCount() != 0 {
		t.Fatalf("empty input should produce empty grid")
	}
	if ref := g.Ref(); ref != (Range{}) {
		t.Fatalf("empty grid ref should be degenerate 1x1: %v", ref)
	}
}
