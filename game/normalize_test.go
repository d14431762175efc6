package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		desc  string
		title string
		want  string
	}{
		{desc: "empty", title: "", want: ""},
		{desc: "lower cases ascii", title: "IOTV", want: "iotv"},
		{desc: "folds full width", title: "ＩＯＴＶ", want: "iotv"},
		{desc: "folds half width katakana", title: "ｻｯｶｰ", want: "サッカー"},
		{desc: "drops underscores and spaces", title: "New_York City", want: "newyorkcity"},
		{desc: "drops ideographic space", title: "東京　タワー", want: "東京タワー"},
		{desc: "drops parenthetical", title: "サッカー (競技)", want: "サッカー"},
		{desc: "drops full width parenthetical", title: "マーキュリー（惑星）", want: "マーキュリー"},
		{desc: "drops nested parenthetical", title: "A (b (c) d) E", want: "ae"},
		{desc: "drops stray parenthesis", title: "Foo)Bar(", want: "foobar"},
		{desc: "drops punctuation", title: "Spider-Man: Homecoming!", want: "spidermanhomecoming"},
		{desc: "drops middle dot", title: "トム・ハンクス", want: "トムハンクス"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			require.Equal(t, tc.want, Normalize(tc.title))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	titles := []string{
		"ＩＯＴＶ",
		"サッカー (競技)",
		"Ⅸ（９）Ｌｉｆｅ",
		"ﾊﾟﾘ_ｺﾐｭｰﾝ",
		"  Already normal  ",
		"ﬁnal ﬂag",
		"(((",
	}

	for _, title := range titles {
		once := Normalize(title)
		assert.Equal(t, once, Normalize(once), "title %q", title)
	}
}

func TestNormalizeWidthAndCaseInsensitive(t *testing.T) {
	require.Equal(t, Normalize("iotv"), Normalize("ＩＯＴＶ"))
	require.Equal(t, Normalize("Iotv"), Normalize("iOTV"))
}
