package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/igoryan-dao/ricochet-tutor/internal/modes"
	"github.com/igoryan-dao/ricochet-tutor/internal/tutor"
	"github.com/stretchr/testify/assert"
)

func TestMetadata(t *testing.T) {
	out := Metadata(tutor.Metadata{
		Mode:             modes.Explain,
		PromptTokens:     120,
		CompletionTokens: 80,
		TotalTokens:      200,
		EstimatedCost:    0.0005,
	})

	assert.Contains(t, out, "Mode: explain\n")
	assert.Contains(t, out, "Prompt Tokens: 120\n")
	assert.Contains(t, out, "Completion Tokens: 80\n")
	assert.Contains(t, out, "Total Tokens: 200\n")
	assert.Contains(t, out, "Estimated Cost: $0.000500\n")
}

func TestMetadata_Empty(t *testing.T) {
	out := Metadata(tutor.Metadata{})
	assert.NotContains(t, out, "Mode:")
	assert.True(t, strings.HasPrefix(out, "--- Meta Information ---"))
}

func TestRenderer_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)

	r.PrintReply("Concept Explanation:\nLoops repeat.", tutor.Metadata{Mode: modes.Explain, TotalTokens: 3})
	r.PrintHint("check your key")

	out := buf.String()
	assert.Contains(t, out, "Tutor:\nConcept Explanation:\nLoops repeat.\n")
	assert.Contains(t, out, "Mode: explain")
	assert.Contains(t, out, "check your key\n")
	assert.Equal(t, "You: ", r.Prompt())
}

func TestToHTML(t *testing.T) {
	reply := "Concept Explanation:\nUse `x < 5` to compare.\n\nCode Example:\n```python\nwhile x < 5:\n    print(x)\n```\n**Great** work <script>"
	out := ToHTML(reply)

	assert.Contains(t, out, `<strong class="section">Concept Explanation:</strong>`)
	assert.Contains(t, out, `<strong class="section">Code Example:</strong>`)
	assert.Contains(t, out, "<code>x &lt; 5</code>")
	assert.Contains(t, out, "<pre><code class=\"language-python\">while x &lt; 5:\n    print(x)\n</code></pre>")
	assert.Contains(t, out, "<b>Great</b>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>")
	assert.Equal(t, "", ToHTML(""))
}

func TestToHTML_ErrorReplyIsEscaped(t *testing.T) {
	out := ToHTML(`[Tutor Error: API error 401: {"error": "bad key"}]`)
	assert.Equal(t, "[Tutor Error: API error 401: {&#34;error&#34;: &#34;bad key&#34;}]", out)
}
