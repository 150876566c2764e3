package web

import (
	"fmt"
	"html/template"
)

func formatCost(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"cost": formatCost,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>AI Python Tutor</title>
<style>
body { font-family: sans-serif; max-width: 760px; margin: 2rem auto; padding: 0 1rem; }
textarea { width: 100%; height: 180px; font-family: monospace; }
.reply { white-space: pre-wrap; background: #f6f6f6; padding: 1rem; border-radius: 6px; }
.section { color: #DA702C; }
.notice { color: #2E8B57; }
.warning { color: #b8860b; }
.meta { color: #555; }
</style>
</head>
<body>
<h1>AI Python Tutor</h1>
<p>Ask any beginner Python question, request exercises, or paste code for feedback.</p>

<form method="post" action="/reset"><button type="submit">Reset Tutor Conversation</button></form>
{{if .Notice}}<p class="notice">{{.Notice}}</p>{{end}}

<form method="post" action="/ask">
<label for="query">Enter your question or code:</label>
<textarea id="query" name="query" placeholder="Example: 'Explain Python loops' or 'Why is my code giving an error?'">{{.Query}}</textarea>
<button type="submit">Send</button>
</form>
{{if .Warning}}<p class="warning">{{.Warning}}</p>{{end}}

{{if .Reply}}
<h2>Tutor Response</h2>
<div class="reply">{{.Reply}}</div>
{{if .Hint}}<p class="warning">{{.Hint}}</p>{{end}}
{{end}}

{{if .HasMeta}}
<h2>Token &amp; Cost Information</h2>
<ul class="meta">
<li><b>Mode:</b> {{.Meta.Mode}}</li>
<li><b>Prompt Tokens:</b> {{.Meta.PromptTokens}}</li>
<li><b>Completion Tokens:</b> {{.Meta.CompletionTokens}}</li>
<li><b>Total Tokens:</b> {{.Meta.TotalTokens}}</li>
<li><b>Estimated Cost:</b> ${{cost .Meta.EstimatedCost}}</li>
</ul>
{{end}}
</body>
</html>
`))
