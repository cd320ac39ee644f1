package bitfield

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		word  uint32
		want  uint32
	}{
		{"low byte", Field{Top: 7, Bottom: 0}, 0xdeadbeef, 0xef},
		{"high bits", Field{Top: 31, Bottom: 19}, 0xfff80000, 0x1fff},
		{"single bit set", Field{Top: 18, Bottom: 17}, 0x00060000, 3},
		{"single bit clear", Field{Top: 18, Bottom: 17}, 0x00000000, 0},
		{"whole word", Field{Top: 31, Bottom: 0}, 0x12345678, 0x12345678},
		{"mid field", Field{Top: 15, Bottom: 14}, 0x0000c000, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.field.Extract(tt.word)
			if got != tt.want {
				t.Errorf("Extract(%#x) = %#x, want %#x", tt.word, got, tt.want)
			}
		})
	}
}

func TestWidthAndMask(t *testing.T) {
	f := Field{Top: 13, Bottom: 12}
	if f.Width() != 2 {
		t.Errorf("Width() = %d, want 2", f.Width())
	}
	if f.Mask() != 0x3 {
		t.Errorf("Mask() = %#x, want 0x3", f.Mask())
	}
}
