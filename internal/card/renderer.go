package card

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/nurpe/quotation-service/internal/model"
)

const cardTemplate = `<article class="p-4 bg-white rounded-2xl shadow-md max-w-sm">
  <div class="mb-4">
    {{- with .Image}}{{if .Src}}
    <img src="{{.Src}}" alt="{{.Alt}}"{{with .Width}} width="{{.}}"{{end}}{{with .Height}} height="{{.}}"{{end}} class="rounded-xl">
    {{- end}}{{end}}
  </div>
  <h2 class="text-xl font-bold mb-2 text-gray-800">{{.Title}}</h2>
  <div class="text-gray-600 text-sm">{{.Description}}</div>
</article>
`

type cardData struct {
	Image       model.ImageField
	Title       string
	Description template.HTML
}

// Renderer turns CMS card fields into markup. Missing fields render empty.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{tmpl: template.Must(template.New("card").Parse(cardTemplate))}
}

func (r *Renderer) Render(w io.Writer, fields model.CardFields) error {
	data := cardData{
		Image:       fields.Image,
		Title:       fields.Title.Value,
		Description: template.HTML(fields.Description.Value),
	}
	if err := r.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render card: %w", err)
	}
	return nil
}

func (r *Renderer) RenderString(fields model.CardFields) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, fields); err != nil {
		return "", err
	}
	return buf.String(), nil
}
