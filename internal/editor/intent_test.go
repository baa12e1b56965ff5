package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboco-io/mdgrid/internal/table"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		in   string
		want []Intent
	}{
		{"add-row", []Intent{{Kind: IntentAddRow}}},
		{" add-col ", []Intent{{Kind: IntentAddColumn}}},
		{"del-row", []Intent{{Kind: IntentDeleteRow}}},
		{"del-col", []Intent{{Kind: IntentDeleteColumn}}},
		{"click-out", []Intent{{Kind: IntentClickOutside}}},
		{"toggle-mode", []Intent{{Kind: IntentToggleMode}}},
		{"new", []Intent{{Kind: IntentNewTable}}},
		{"click-row:2", []Intent{{Kind: IntentClickCell, Index: 2}}},
		{"click-col:0", []Intent{{Kind: IntentClickHeader, Index: 0}}},
		{"drop:1", []Intent{{Kind: IntentDrop, Index: 1}}},
		{"drag:0:2", []Intent{
			{Kind: IntentDragStart, Index: 0},
			{Kind: IntentDragOver, Index: 2},
			{Kind: IntentDrop, Index: 2},
			{Kind: IntentDragEnd},
		}},
		{"set:h:1:Name", []Intent{{Kind: IntentEditCell, Loc: table.Loc{Row: table.HeaderRow, Col: 1}, Text: "Name"}}},
		{"set:0:0:a:b", []Intent{{Kind: IntentEditCell, Loc: table.Loc{Row: 0, Col: 0}, Text: "a:b"}}},
		{"set:1:2:", []Intent{{Kind: IntentEditCell, Loc: table.Loc{Row: 1, Col: 2}, Text: ""}}},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseIntent(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseIntent_Errors(t *testing.T) {
	for _, in := range []string{
		"",
		"fly",
		"add-row:1",
		"click-row",
		"click-row:x",
		"click-col:-1",
		"drag:1",
		"drag:a:1",
		"drag:1:b",
		"set:0:1",
		"set:x:1:t",
		"set:0:y:t",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseIntent(in)
			assert.Error(t, err)
		})
	}

	_, err := ParseIntent("fly")
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

func TestDispatch_Script(t *testing.T) {
	s := NewSession()
	script := []string{
		"new",
		"set:h:0:Name",
		"add-col",
		"click-col:1",
		"del-col",
		"toggle-mode",
		"drag:0:2",
		"toggle-mode",
		"click-row:0",
		"del-row",
	}
	for _, line := range script {
		intents, err := ParseIntent(line)
		require.NoError(t, err, line)
		for _, in := range intents {
			require.NoError(t, s.Dispatch(in), line)
		}
	}

	assert.Equal(t, "| Header 4 | Header 3 | Name |\n| --- | --- | --- |\n|  | Cell 6 | Cell 4 |\n", s.Text())
}

func TestDispatch_AllKinds(t *testing.T) {
	s := NewSession()
	for kind := range intentNames {
		assert.NotPanics(t, func() { _ = s.Dispatch(Intent{Kind: kind}) }, kind.String())
	}

	err := s.Dispatch(Intent{Kind: IntentKind(100)})
	assert.ErrorIs(t, err, ErrUnknownIntent)
	assert.Equal(t, "unknown", IntentKind(100).String())
}

func TestDispatch_SetText(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Dispatch(Intent{Kind: IntentSetText, Text: "| A |\n| --- |\n| 1 |"}))
	assert.Equal(t, []string{"A"}, s.Table().Header)

	err := s.Dispatch(Intent{Kind: IntentSetText, Text: "garbage"})
	assert.ErrorIs(t, err, table.ErrNoTable)
	assert.Equal(t, []string{"A"}, s.Table().Header)
}
