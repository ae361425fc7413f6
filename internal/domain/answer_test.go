package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswer_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want Answer
	}{
		{`"B"`, TextAnswer("B")},
		{`3`, NumberAnswer(3)},
		{`2.5`, NumberAnswer(2.5)},
		{`true`, BoolAnswer(true)},
		{`false`, BoolAnswer(false)},
		{`["a","b"]`, ListAnswer("a", "b")},
		{`null`, Answer{}},
	}
	for _, tt := range tests {
		var got Answer
		require.NoError(t, json.Unmarshal([]byte(tt.raw), &got), tt.raw)
		assert.True(t, tt.want.Equal(got) || (tt.want.IsZero() && got.IsZero()), "raw %s decoded to %+v", tt.raw, got)
	}
}

func TestAnswer_UnmarshalJSON_Rejects(t *testing.T) {
	for _, raw := range []string{`{"a":1}`, `[1,2]`} {
		var got Answer
		assert.Error(t, json.Unmarshal([]byte(raw), &got), raw)
	}
}

func TestResponse_JSONShape(t *testing.T) {
	r := Response{QuestionID: "q1", Answer: ListAnswer("x", "y"), TimeSpent: 4}
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"answer":["x","y"]`)

	var back Response
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Answer.Equal(r.Answer))
}

func TestAnswer_EqualIsStrict(t *testing.T) {
	assert.False(t, TextAnswer("1").Equal(NumberAnswer(1)))
	assert.False(t, BoolAnswer(true).Equal(TextAnswer("true")))
	assert.False(t, ListAnswer("a").Equal(ListAnswer("a", "b")))
	assert.True(t, ListAnswer().Equal(ListAnswer()))
}
