package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFields(t *testing.T) {
	tests := []struct {
		input string
		want  []Field
	}{
		{"", nil},
		{"name", []Field{FieldName}},
		{"name,channel", []Field{FieldName, FieldChannel}},
		{" Logo , TVGID ", []Field{FieldLogo, FieldTvgID}},
		{"tvg_logo,tvg_id", []Field{FieldLogo, FieldTvgID}},
		{"name,,bogus,name", []Field{FieldName}},
	}

	for _, tc := range tests {
		got := ParseFields(tc.input)
		assert.Len(t, got, len(tc.want), "input %q", tc.input)
		for _, f := range tc.want {
			assert.True(t, got.Has(f), "input %q missing %s", tc.input, f)
		}
	}
}

func TestFieldColumn(t *testing.T) {
	assert.Equal(t, "name", FieldName.Column())
	assert.Equal(t, "channel", FieldChannel.Column())
	assert.Equal(t, "tvg_logo", FieldLogo.Column())
	assert.Equal(t, "tvg_id", FieldTvgID.Column())
}

func TestCustomName(t *testing.T) {
	tests := []struct {
		name     string
		origName string
		want     bool
	}{
		{"CNN HD", "cnn", true},
		{"cnn", "cnn", false},
		{"", "cnn", false},
		{"   ", "cnn", false},
		{" cnn ", "cnn", false},
		{"CNN", "cnn", true},
	}

	for _, tc := range tests {
		r := Row{Name: tc.name, OrigName: tc.origName}
		assert.Equal(t, tc.want, customName(r), "name=%q orig=%q", tc.name, tc.origName)
	}
}

func TestCustomChannel(t *testing.T) {
	assert.True(t, customChannel(Row{Channel: "12"}))
	assert.False(t, customChannel(Row{Channel: "0"}))
	assert.False(t, customChannel(Row{Channel: ""}))
}

func TestNameKey(t *testing.T) {
	assert.Equal(t, nameKey("CNN", 0), nameKey("  cnn ", 0))
	assert.NotEqual(t, nameKey("cnn", 0), nameKey("cnn", 1))
}

func TestBestByKey_FirstQualifyingWins(t *testing.T) {
	rows := []Row{
		{ID: 3, Name: "newest", OrigName: "x"},
		{ID: 2, Name: "older", OrigName: "x"},
		{ID: 1, Name: "", OrigName: "x"},
	}

	best := bestByKey(rows,
		func(r Row) string { return metaKey(r.OrigName) },
		func(r Row) bool { return r.Name != "" },
		func(r Row) string { return r.Name },
	)

	assert.Equal(t, map[string]string{"x": "newest"}, best)
}
