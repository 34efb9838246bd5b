package contraction_test

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-contraction/pkg/contraction"
)

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func TestExpand_Samples(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "sample 1",
			input: "I can't believe you're here! Won't you stay for dinner?",
			want:  "I cannot believe you are here! Will not you stay for dinner?",
		},
		{
			name:  "sample 2",
			input: "We've been waiting for you. It's time to go.",
			want:  "We have been waiting for you. It is time to go.",
		},
		{
			name:  "sample 3",
			input: "Don't worry, we'll handle everything. You shouldn't stress about it.",
			want:  "Do not worry, we will handle everything. You should not stress about it.",
		},
		{
			name:  "no contractions",
			input: "no contractions here",
			want:  "no contractions here",
		},
		{
			name:  "stored capital is kept",
			input: "I'd",
			want:  "I would",
		},
		{
			name:  "lowercase i is still capital",
			input: "i'd say so",
			want:  "I would say so",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "only the first letter decides case",
			input: "DON'T dON'T",
			want:  "Do not do not",
		},
		{
			name:  "adjacent matches",
			input: "can't can't,won't",
			want:  "cannot cannot,will not",
		},
		{
			name:  "whitespace and punctuation preserved",
			input: "\t(it's)\n\"they're\"  ",
			want:  "\t(it is)\n\"they are\"  ",
		},
		{
			name:  "leading apostrophe key",
			input: "'cause it's late, wait 'til noon",
			want:  "because it is late, wait until noon",
		},
		{
			name:  "leading apostrophe key keeps stored case",
			input: "'Cause",
			want:  "because",
		},
		{
			name:  "multi word expansion",
			input: "It's five o'clock, ma'am. Y'all ready?",
			want:  "It is five of the clock, madam. You all ready?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contraction.Expand(tt.input))
		})
	}
}

func TestExpand_WholeWordOnly(t *testing.T) {
	inputs := []string{
		"xcan't",
		"can'tx",
		"cantaloupe",
		"don't_",
		"_don't",
		"isn't2",
		"o'clocks",
		"x'cause",
		"'causes",
		"shan'ts",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, input, contraction.Expand(input))
		})
	}
}

func TestExpand_LongestKeyWins(t *testing.T) {
	assert.Equal(t, "will not have", contraction.Expand("won't've"))
	assert.Equal(t, "Could not have", contraction.Expand("Couldn't've"))
	assert.Equal(t, "I would not have gone", contraction.Expand("I wouldn't've gone"))
}

func TestExpand_EveryEntry(t *testing.T) {
	for _, entry := range contraction.DefaultTable().Entries() {
		t.Run(entry.Contraction, func(t *testing.T) {
			assert.Equal(t, entry.Expansion, contraction.Expand(entry.Contraction))

			first, _ := utf8.DecodeRuneInString(entry.Contraction)
			if !unicode.IsLetter(first) {
				return
			}
			assert.Equal(t, capitalize(entry.Expansion), contraction.Expand(capitalize(entry.Contraction)))
		})
	}
}

func TestExpand_Idempotent(t *testing.T) {
	samples := []string{
		"I can't believe you're here! Won't you stay for dinner?",
		"We've been waiting for you. It's time to go.",
		"Don't worry, we'll handle everything. You shouldn't stress about it.",
		"'cause y'all won't've",
	}

	for _, s := range samples {
		once := contraction.Expand(s)
		assert.Equal(t, once, contraction.Expand(once))
	}
}

func TestExpander_ExpandN(t *testing.T) {
	e := contraction.New(contraction.DefaultTable())

	out, n := e.ExpandN("I can't believe you're here! Won't you stay?")
	assert.Equal(t, "I cannot believe you are here! Will not you stay?", out)
	assert.Equal(t, 3, n)

	out, n = e.ExpandN("nothing to do")
	assert.Equal(t, "nothing to do", out)
	assert.Zero(t, n)
}

func TestExpander_TypographicApostrophes(t *testing.T) {
	input := "I can’t go, ’cause it’s raining"

	assert.Equal(t, input, contraction.Expand(input), "default expander only matches ASCII apostrophes")

	e := contraction.New(contraction.DefaultTable(), contraction.WithTypographicApostrophes())
	out, n := e.ExpandN(input)
	assert.Equal(t, "I cannot go, because it is raining", out)
	assert.Equal(t, 3, n)
	assert.Equal(t, "Do not", e.Expand("Don't"))
}

func TestExpander_CustomTable(t *testing.T) {
	table, err := contraction.DefaultTable().Merge(map[string]string{
		"gonna": "going to",
		"can't": "can not",
	})
	require.NoError(t, err)

	e := contraction.New(table)
	assert.Equal(t, "Going to go, I can not stay", e.Expand("Gonna go, I can't stay"))
	assert.Equal(t, table.Len(), e.Table().Len())

	// 默认表不受影响
	assert.Equal(t, "cannot", contraction.Expand("can't"))
}

func TestExpander_EmptyTable(t *testing.T) {
	e := contraction.New(contraction.Table{})
	out, n := e.ExpandN("can't stop")

	assert.Equal(t, "can't stop", out)
	assert.Zero(t, n)
}

func TestExpander_LongInput(t *testing.T) {
	input := strings.Repeat("we're here. ", 1000)
	want := strings.Repeat("we are here. ", 1000)

	out, n := contraction.New(contraction.DefaultTable()).ExpandN(input)
	assert.Equal(t, want, out)
	assert.Equal(t, 1000, n)
}
