package sch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBusVector(t *testing.T) {
	tests := []struct {
		label   string
		ok      bool
		prefix  string
		members []string
	}{
		{"BUS[0..3]", true, "BUS", []string{"BUS0", "BUS1", "BUS2", "BUS3"}},
		{"D[3..1]", true, "D", []string{"D1", "D2", "D3"}},
		{"~{D[0..1]}", true, "~{D", []string{"~{D0}", "~{D1}"}},
		{"A_B[1..2]", true, "A_B", []string{"A_B1", "A_B2"}},
		{"BUS[2..2]", false, "", nil},
		{"BUS[0..3]X", false, "", nil},
		{"BUS[a..3]", false, "", nil},
		{"BUS [0..3]", false, "", nil},
		{"BUS[0..3", false, "", nil},
		{"[0..3]", false, "", nil},
		{"PLAIN", false, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			prefix, members, ok := ParseBusVector(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.prefix, prefix)
			assert.Equal(t, tt.members, members)
		})
	}
}

func TestParseBusGroup(t *testing.T) {
	tests := []struct {
		label   string
		ok      bool
		prefix  string
		members []string
	}{
		{"{A,B,C}", true, "", []string{"A", "B", "C"}},
		{"{A B  C}", true, "", []string{"A", "B", "C"}},
		{"CTRL{RD, WR}", true, "CTRL", []string{"RD", "WR"}},
		{"MEM{ADDR[0..7] ~{CS}}", true, "MEM", []string{"ADDR[0..7]", "~{CS}"}},
		{"{}", true, "", nil},
		{"~{RESET}", false, "", nil},
		{"A B{C}", false, "", nil},
		{"{A{B}}", false, "", nil},
		{"{A B", false, "", nil},
		{"PLAIN", false, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			prefix, members, ok := ParseBusGroup(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.prefix, prefix)
			assert.Equal(t, tt.members, members)
		})
	}
}

func TestIsBusLabel(t *testing.T) {
	assert.True(t, IsBusLabel("D[0..7]"))
	assert.True(t, IsBusLabel("{SDA SCL}"))
	assert.False(t, IsBusLabel("~{RESET}"))
	assert.False(t, IsBusLabel("VCC"))
	assert.True(t, MightBeBusLabel("~{RESET}"))
	assert.False(t, MightBeBusLabel("VCC"))
}

func TestUnescapeString(t *testing.T) {
	assert.Equal(t, "A/B", UnescapeString("A{slash}B"))
	assert.Equal(t, "A{x}B", UnescapeString("A{x}B"))
	assert.Equal(t, "A{slash}B", EscapeNetName("A/B"))
}

func TestBusLabelTextPerLexerState(t *testing.T) {
	symbols := busLabelLexer.Symbols()
	for _, name := range []string{"Text", "MarkupText", "GroupText"} {
		assert.Contains(t, symbols, name)
	}

	_, members, ok := ParseBusVector("~{D[0..2]}")
	assert.True(t, ok)
	assert.Equal(t, []string{"~{D0}", "~{D1}", "~{D2}"}, members)

	_, members, ok = ParseBusGroup("{A,B,C}")
	assert.True(t, ok)
	assert.Equal(t, []string{"A", "B", "C"}, members)

	_, members, ok = ParseBusGroup("{~{WR} RD}")
	assert.True(t, ok)
	assert.Equal(t, []string{"~{WR}", "RD"}, members)

	_, _, ok = ParseBusVector("A[3..3]")
	assert.False(t, ok)
}
