package api

import (
	"bytes"
	"html/template"

	"github.com/example/task-reminder-bot/modules/tracker"
)

// pageData feeds the per-user task page template.
type pageData struct {
	Phone    string
	PagePath string
	Timezone string
	Tasks    []tracker.TaskView
	HasDone  bool
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Tasks for {{.Phone}}</title>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; padding: 0 1rem; }
li { margin: 0.4rem 0; }
.done { text-decoration: line-through; color: #888; }
form.inline { display: inline; }
.due { color: #555; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Your tasks</h1>
<p>Time zone: {{.Timezone}}</p>
{{if .Tasks}}
<ol>
{{range .Tasks}}
<li{{if .Done}} class="done"{{end}}>
{{.Name}}{{if .Deadline}} <span class="due">(due {{.Deadline}})</span>{{end}}
{{if not .Done}}
<form class="inline" method="post" action="{{$.PagePath}}/tasks/{{.Index}}/done">
<button type="submit">done</button>
</form>
{{end}}
</li>
{{end}}
</ol>
{{else}}
<p>No tasks yet.</p>
{{end}}
<h2>Add a task</h2>
<form method="post" action="{{.PagePath}}/tasks">
<input name="task" placeholder="Task name" required>
<input name="due" placeholder="today 14:00 (optional)">
<button type="submit">Add</button>
</form>
{{if .HasDone}}
<form method="post" action="{{.PagePath}}/purge">
<button type="submit">Remove completed tasks</button>
</form>
{{end}}
</body>
</html>
`))

// renderPage renders the per-user task page.
func renderPage(data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
