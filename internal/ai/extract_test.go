package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/a1zero/internal/ai"
)

func TestExtractReply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "result field", body: `{"result":"hi there"}`, want: "hi there"},
		{name: "response field", body: `{"response":"from response"}`, want: "from response"},
		{name: "text field", body: `{"text":"from text"}`, want: "from text"},
		{name: "result wins over others", body: `{"text":"t","response":"r","result":"x"}`, want: "x"},
		{name: "response wins over text", body: `{"text":"t","response":"r"}`, want: "r"},
		{name: "empty result skipped", body: `{"result":"","response":"r"}`, want: "r"},
		{name: "zero result skipped", body: `{"result":0,"text":"t"}`, want: "t"},
		{name: "false result skipped", body: `{"result":false,"response":"r"}`, want: "r"},
		{name: "null result skipped", body: `{"result":null,"text":"t"}`, want: "t"},
		{name: "fallback serializes object", body: `{"answer": "42", "ok": true}`, want: `{"answer":"42","ok":true}`},
		{name: "fallback keeps numbers exact", body: `{"n": 12345678901234567890}`, want: `{"n":12345678901234567890}`},
		{name: "fallback does not escape html", body: `{"a":"<b>&</b>"}`, want: `{"a":"<b>&</b>"}`},
		{name: "array body", body: `[1, "two"]`, want: `[1,"two"]`},
		{name: "string body", body: `"plain"`, want: `"plain"`},
		{name: "null body", body: `null`, want: `null`},
		{name: "all fields empty", body: `{"result":"","response":"","text":""}`, want: `{"result":"","response":"","text":""}`},
		{name: "fallback keeps key order", body: `{"zeta": 1, "alpha": 2}`, want: `{"zeta":1,"alpha":2}`},
		{name: "fallback for zero number field", body: `{"result": 0}`, want: `{"result":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ai.ExtractReply([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractReplyNonTextField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "number result", body: `{"result":42}`},
		{name: "object result", body: `{"result":{"nested":true},"text":"t"}`},
		{name: "array response", body: `{"response":["a"],"text":"t"}`},
		{name: "true text", body: `{"text":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ai.ExtractReply([]byte(tt.body))
			require.ErrorIs(t, err, ai.ErrMalformedBody)
			assert.Empty(t, got)
		})
	}
}

func TestExtractReplyMalformed(t *testing.T) {
	t.Parallel()

	for _, body := range []string{"", "not json", "<html>502</html>", `{"result":`, `{"a":1} trailing`} {
		_, err := ai.ExtractReply([]byte(body))
		require.ErrorIs(t, err, ai.ErrMalformedBody, "body %q", body)
	}
}
