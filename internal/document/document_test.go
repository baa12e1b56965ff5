package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const readme = `# Title

Intro text.

| A | B |
| --- | --- |
| 1 | 2 |

Between tables.
| X |
|---|
| y |
`

func TestSplit_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"plain",
		"plain\n",
		"a\n\n\nb",
		"| A |\n| --- |",
		readme,
		readme + "\n\n",
	}
	for _, in := range inputs {
		assert.Equal(t, in, Split(in).String(), "input %q", in)
	}
}

func TestSplit_Blocks(t *testing.T) {
	d := Split(readme)

	tables := d.Tables()
	require.Len(t, tables, 2)

	first, ok := d.Table(0)
	require.True(t, ok)
	assert.Equal(t, "| A | B |\n| --- | --- |\n| 1 | 2 |", first)
	assert.Equal(t, 4, d.Blocks[tables[0]].Start)

	second, ok := d.Table(1)
	require.True(t, ok)
	assert.Equal(t, "| X |\n|---|\n| y |", second)

	_, ok = d.Table(2)
	assert.False(t, ok)
	_, ok = d.Table(-1)
	assert.False(t, ok)
}

func TestSplit_FencedCodeIsText(t *testing.T) {
	in := "# Notes\n\n```sh\ncat log | grep err\n```\n\n| A |\n| --- |\n\n~~~~\n| not | a table |\n~~~\nstill | code\n~~~~\nafter | table\n"
	d := Split(in)
	assert.Equal(t, in, d.String())

	tables := d.Tables()
	require.Len(t, tables, 2)
	first, _ := d.Table(0)
	assert.Equal(t, "| A |\n| --- |", first)
	second, _ := d.Table(1)
	assert.Equal(t, "after | table", second)
}

func TestSplit_UnclosedFence(t *testing.T) {
	d := Split("```\na | b\n\n| A |\n| --- |\n")
	assert.Empty(t, d.Tables())
}

func TestSplit_IndentedFenceMarker(t *testing.T) {
	// Four spaces of indent is not a fence, so the pipe line stays a table.
	d := Split("    ```\n| A |\n| --- |\n")
	assert.Len(t, d.Tables(), 1)
}

func TestReplaceTable(t *testing.T) {
	d := Split(readme)

	require.True(t, d.ReplaceTable(1, "| X | Y |\n| --- | --- |\n| y |  |\n"))
	want := `# Title

Intro text.

| A | B |
| --- | --- |
| 1 | 2 |

Between tables.
| X | Y |
| --- | --- |
| y |  |
`
	assert.Equal(t, want, d.String())

	assert.False(t, d.ReplaceTable(5, "| Z |"))
}

func TestReplaceTable_Remove(t *testing.T) {
	d := Split("before\n| A |\n| --- |\nafter\n")
	require.True(t, d.ReplaceTable(0, ""))
	assert.Equal(t, "before\nafter\n", d.String())
	assert.Empty(t, d.Tables())
}

func TestAppendTable(t *testing.T) {
	d := Split("# Notes")
	d.AppendTable("| A |\n| --- |\n")
	assert.Equal(t, "# Notes\n\n| A |\n| --- |\n", d.String())

	empty := New()
	empty.AppendTable("| A |\n| --- |\n")
	assert.Equal(t, "| A |\n| --- |\n", empty.String())

	empty.AppendTable("")
	assert.Len(t, empty.Tables(), 1)
}
