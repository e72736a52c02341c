package web

import (
	"html/template"

	"github.com/saulo-duarte/quiz-categorias/internal/quiz"
)

type optionView struct {
	Label    string
	Text     string
	Selected bool
}

type reviewRow struct {
	Number   int
	Prompt   string
	Selected string
	Correct  string
	OK       bool
}

type pageView struct {
	quiz.Snapshot
	Categories []quiz.Category
	Question   *quiz.Question
	Options    []optionView
	Number     int
	Review     []reviewRow
	Result     quiz.Summary
	Score      string
}

func newPageView(s quiz.Snapshot) pageView {
	v := pageView{
		Snapshot:   s,
		Categories: quiz.Categories(),
		Result:     s.Summary(),
	}

	if q, ok := s.CurrentQuestion(); ok {
		v.Question = &q
		v.Number = s.CurrentIndex + 1
		for i, text := range q.Options {
			label := quiz.OptionLabel(i)
			v.Options = append(v.Options, optionView{
				Label:    label,
				Text:     text,
				Selected: label == s.SelectedOption,
			})
		}
	}

	if s.TotalScore != nil {
		v.Score = quiz.FormatScore(*s.TotalScore)
		for i, r := range s.AnswerHistory {
			v.Review = append(v.Review, reviewRow{
				Number:   i + 1,
				Prompt:   r.Question.Prompt,
				Selected: r.SelectedOption,
				Correct:  r.CorrectOption,
				OK:       r.IsCorrect,
			})
		}
	}
	return v
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `<!doctype html>
<html lang="es">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Quiz de Categorías</title>
  <style>
    body { max-width: 600px; margin: 0 auto; padding: 24px; font-family: sans-serif; color: #1f2933; }
    .error { padding: 10px 15px; background: #ffebee; color: #c62828; border-radius: 4px; margin-bottom: 20px; }
    .categories { display: flex; flex-wrap: wrap; gap: 10px; }
    button { padding: 12px 20px; font-size: 16px; border: none; border-radius: 4px; cursor: pointer; }
    button:disabled { opacity: 0.5; cursor: default; }
    .primary { background: #2196f3; color: white; }
    .option { display: block; width: 100%; text-align: left; margin: 8px 0; background: #f5f5f5; }
    .option.selected { background: #bbdefb; }
    .submit { background: #4caf50; color: white; margin-top: 12px; }
    .reset { background: #9e9e9e; color: white; margin-top: 16px; }
    input { padding: 8px; border-radius: 4px; border: 1px solid #ddd; }
    table { width: 100%; border-collapse: collapse; margin-top: 12px; }
    td, th { padding: 6px; border-bottom: 1px solid #eee; text-align: left; }
    .ok { color: #2e7d32; }
    .bad { color: #c62828; }
  </style>
</head>
<body>
  <h1>Quiz de Categorías</h1>

  {{if .LastError}}
  <div class="error"><strong>Error:</strong> {{.LastError}}</div>
  {{end}}

  <form id="user-form" style="margin-bottom: 16px">
    <label for="user">Usuario: </label>
    <input id="user" name="user" value="{{.UserName}}" placeholder="Tu nombre" {{if .Loading}}disabled{{end}}>
  </form>

  {{if eq .Phase "idle"}}
  <h2>Elige una categoría:</h2>
  <div class="categories">
    {{range .Categories}}
    <button class="primary" data-category="{{.Key}}" {{if $.Loading}}disabled{{end}}>{{.Label}}</button>
    {{end}}
  </div>
  {{end}}

  {{if .Loading}}
  <p style="text-align: center">Cargando...</p>
  {{end}}

  {{with .Question}}
  <h2>Categoría: {{$.Category}}</h2>
  <p>Pregunta {{$.Number}} de {{len $.Questions}}</p>
  <h3>{{.Prompt}}</h3>
  {{range $.Options}}
  <button class="option{{if .Selected}} selected{{end}}" data-option="{{.Label}}" {{if $.Loading}}disabled{{end}}>{{.Label}}. {{.Text}}</button>
  {{end}}
  <button class="submit" id="submit" {{if or $.Loading (not $.SelectedOption)}}disabled{{end}}>
    {{if $.IsLastQuestion}}Finalizar quiz{{else}}Siguiente pregunta{{end}}
  </button>
  {{end}}

  {{if .Score}}
  <h2>Resultados</h2>
  <p>Puntaje: {{.Score}} de {{.Result.Total}} ({{.Result.Correct}} correctas)</p>
  {{if .Persisted}}<p class="ok">Sesión guardada correctamente.</p>{{end}}
  <table>
    <tr><th>#</th><th>Pregunta</th><th>Tu respuesta</th><th>Correcta</th></tr>
    {{range .Review}}
    <tr>
      <td>{{.Number}}</td>
      <td>{{.Prompt}}</td>
      <td class="{{if .OK}}ok{{else}}bad{{end}}">{{.Selected}}</td>
      <td>{{.Correct}}</td>
    </tr>
    {{end}}
  </table>
  {{end}}

  {{if ne .Phase "idle"}}
  <button class="reset" id="reset" {{if .Loading}}disabled{{end}}>Elegir otra categoría</button>
  {{end}}

  <script>
    async function post(path, body) {
      const opts = { method: "POST", headers: { "Content-Type": "application/json" } };
      if (body) opts.body = JSON.stringify(body);
      document.querySelectorAll("button").forEach(b => b.disabled = true);
      await fetch(path, opts);
      window.location.reload();
    }
    document.querySelectorAll("[data-category]").forEach(b =>
      b.addEventListener("click", () => post("/api/categories/" + b.dataset.category)));
    document.querySelectorAll("[data-option]").forEach(b =>
      b.addEventListener("click", () => post("/api/options/" + b.dataset.option)));
    const submit = document.getElementById("submit");
    if (submit) submit.addEventListener("click", () => post("/api/answer"));
    const reset = document.getElementById("reset");
    if (reset) reset.addEventListener("click", () => post("/api/reset"));
    const user = document.getElementById("user");
    user.addEventListener("change", () => post("/api/user", { name: user.value }));
    document.getElementById("user-form").addEventListener("submit", e => {
      e.preventDefault();
      post("/api/user", { name: user.value });
    });
  </script>
</body>
</html>
`
