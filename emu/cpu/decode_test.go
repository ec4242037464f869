package cpu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint16
		want   fields
	}{
		{
			name:   "all zero",
			opcode: 0x0000,
			want:   fields{},
		},
		{
			name:   "all ones",
			opcode: 0xFFFF,
			want:   fields{x: 0xF, y: 0xF, n: 0xF, kk: 0xFF, nnn: 0xFFF},
		},
		{
			name:   "draw",
			opcode: 0xD7A5,
			want:   fields{x: 0x7, y: 0xA, n: 0x5, kk: 0xA5, nnn: 0x7A5},
		},
		{
			name:   "load immediate",
			opcode: 0x6C2A,
			want:   fields{x: 0xC, y: 0x2, n: 0xA, kk: 0x2A, nnn: 0x62A},
		},
		{
			name:   "call",
			opcode: 0x2468,
			want:   fields{x: 0x4, y: 0x6, n: 0x8, kk: 0x68, nnn: 0x468},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decode(tt.opcode)
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(fields{})); diff != "" {
				t.Errorf("decode(0x%04X): (-want, +got)\n%s", tt.opcode, diff)
			}
		})
	}
}
