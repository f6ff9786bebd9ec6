package grid

import "testing"

func TestEncodeCell_Basic(t *testing.T) {
	t.Parallel()

	cases := map[CellAddr]string{
		{Row: 0, Col: 0}:    "A1",
		{Row: 1, Col: 0}:    "A2",
		{Row: 0, Col: 25}:   "Z1",
		{Row: 0, Col: 26}:   "AA1",
		{Row: 9, Col: 27}:   "AB10",
		{Row: 99, Col: 701}: "ZZ100",
		{Row: 0, Col: 702}:  "AAA1",
	}
	for addr, want := range cases {
		if got := EncodeCell(addr); got != want {
			t.Fatalf("EncodeCell(%v) want=%s got=%s", addr, want, got)
		}
	}
}

func TestDecodeCell_RoundTrip(t *testing.T) {
	t.Parallel()

	// 行列各取到 10000 附近的抽样点做双向往返
	samples := []int{0, 1, 2, 25, 26, 27, 51, 52, 701, 702, 703, 1378, 9999}
	for _, row := range samples {
		for _, col := range samples {
			addr := CellAddr{Row: row, Col: col}
			name := EncodeCell(addr)
			got, err := DecodeCell(name)
			if err != nil {
				t.Fatalf("DecodeCell(%s): %v", name, err)
			}
			if got != addr {
				t.Fatalf("round trip %s: want=%v got=%v", name, addr, got)
			}
		}
	}
}

func TestDecodeCell_Invalid(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "A", "1", "A0", "a1", "A1B", "1A"} {
		if _, err := DecodeCell(name); err == nil {
			t.Fatalf("DecodeCell(%q) expected error", name)
		}
	}
}

func TestDecodeRange(t *testing.T) {
	t.Parallel()

	r, err := DecodeRange("A1:C10")
	if err != nil {
		t.Fatalf("DecodeRange: %v", err)
	}
	want := Range{StartRow: 0, StartCol: 0, EndRow: 9, EndCol: 2}
	if r != want {
		t.Fatalf("unexpected range: want=%v got=%v", want, r)
	}

	// 单个单元格形式
	r, err = DecodeRange("B2")
	if err != nil {
		t.Fatalf("DecodeRange: %v", err)
	}
	if r.StartRow != 1 || r.EndRow != 1 || r.StartCol != 1 || r.EndCol != 1 {
		t.Fatalf("unexpected degenerate range: %v", r)
	}
}

func TestGrid_RefTracksBounds(t *testing.T) {
	t.Parallel()

	g := NewGrid()
	if ref := g.Ref(); ref != (Range{}) {
		t.Fatalf("empty grid should carry degenerate range, got %v", ref)
	}

	g.Set(CellAddr{Row: 2, Col: 1}, StringValue("x"))
	g.Set(CellAddr{Row: 0, Col: 3}, StringValue("y"))
	ref := g.Ref()
	if ref.StartRow != 0 || ref.EndRow != 2 || ref.StartCol != 1 || ref.EndCol != 3 {
		t.Fatalf("unexpected ref: %v", ref)
	}
	if EncodeRange(ref) != "B1:D3" {
		t.Fatalf("unexpected encoded ref: %s", EncodeRange(ref))
	}
}
