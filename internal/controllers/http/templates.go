package http

import (
	"html/template"
	"time"

	"github.com/Ricky06202/tshirt-stryd/internal/domain"

	"github.com/shopspring/decimal"
)

var templateFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"datetimeLocal": func(t time.Time) string {
		return t.UTC().Format("2006-01-02T15:04")
	},
	"hasStyle": func(o domain.Order, id uint64) bool {
		for _, it := range o.Items {
			if it.EstiloID == id {
				return true
			}
		}
		return false
	},
	"thumb": func(key string) string { return "/api/images/" + key + "?size=thumb" },
}

var pageTemplates = template.Must(template.New("pages").Funcs(templateFuncs).Parse(pedidoTemplate + adminOrdersTemplate))

const pedidoTemplate = `{{define "pedido.html"}}<!doctype html>
<html lang="es">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Haz tu pedido</title>
{{if .SiteKey}}<script src="https://challenges.cloudflare.com/turnstile/v0/api.js" async defer></script>{{end}}
</head>
<body>
<main>
<h1>Haz tu pedido</h1>
{{if .S.Submitted}}
<section id="confirmacion">
<h2>¡Pedido realizado!</h2>
<p>Tu número de pedido es <strong>#{{.S.PedidoID}}</strong>. Total: <strong>${{money .Total}}</strong></p>
{{if .WhatsAppURL}}<p><a href="{{.WhatsAppURL}}" rel="noopener">Coordinar el abono por WhatsApp</a></p>{{end}}
<p><a href="/pedido">Hacer otro pedido</a></p>
</section>
{{else}}
<form method="post" action="/pedido">
<input type="hidden" name="step" value="{{printf "%d" .S.Step}}">
<input type="hidden" name="talla" value="{{if .S.TallaID}}{{.S.TallaID}}{{end}}">
{{range .S.EstiloIDs}}<input type="hidden" name="estilos" value="{{.}}">
{{end}}
<section id="paso-1">
<h2>1. ¿Cómo te llamas?</h2>
{{if .Current 1}}
<input type="text" name="persona" value="{{.S.Persona}}" autofocus>
<button type="submit" name="action" value="persona">Continuar</button>
{{else}}
<input type="hidden" name="persona" value="{{.S.Persona}}">
<p>{{.S.Persona}} {{if .Editable 1}}<button type="submit" name="action" value="editar:1">Editar</button>{{end}}</p>
{{end}}
</section>
{{if .Visible 2}}
<section id="paso-2">
<h2>2. Nombre en la camisa</h2>
{{if .Current 2}}
<input type="text" name="nombre" value="{{.S.NombreCamisa}}" placeholder="Opcional">
<button type="submit" name="action" value="camisa">Continuar</button>
{{else}}
<input type="hidden" name="nombre" value="{{.S.NombreCamisa}}">
<p>{{if .S.NombreCamisa}}{{.S.NombreCamisa}}{{else}}Sin nombre{{end}} {{if .Editable 2}}<button type="submit" name="action" value="editar:2">Editar</button>{{end}}</p>
{{end}}
</section>
{{else}}<input type="hidden" name="nombre" value="{{.S.NombreCamisa}}">
{{end}}
{{if .Visible 3}}
<section id="paso-3">
<h2>3. Talla</h2>
{{range .Catalog.Tallas}}<button type="submit" name="action" value="talla:{{.ID}}"{{if eq .ID $.S.TallaID}} aria-pressed="true"{{end}}>{{.Talla}} &middot; {{.Nombre}}</button>
{{end}}
</section>
{{end}}
{{if .Visible 4}}
<section id="paso-4">
<h2>4. Estilos</h2>
{{range .Catalog.Colecciones}}<fieldset>
<legend>Colección {{.Estilo}}</legend>
{{range .Estilos}}<button type="submit" name="action" value="estilo:{{.ID}}"{{if $.Selected .ID}} aria-pressed="true"{{end}}>
{{if .Imagen}}<img src="{{thumb .Imagen}}" alt="{{.Nombre}}" width="150">{{end}}
<span>{{.Nombre}} &middot; ${{money .Precio}}</span>
</button>
{{end}}</fieldset>
{{end}}
</section>
{{end}}
{{if .CanSubmit}}
<section id="resumen">
<h2>Resumen</h2>
<ul>
<li>Cliente: {{.S.Persona}}</li>
<li>Nombre en camisa: {{if .S.NombreCamisa}}{{.S.NombreCamisa}}{{else}}N/A{{end}}</li>
<li>Talla: {{.Talla}}</li>
<li>Estilos: {{range $i, $n := .StyleNames}}{{if $i}}, {{end}}{{$n}}{{end}}</li>
<li>Total: ${{money .Total}}</li>
</ul>
{{if .SiteKey}}<div class="cf-turnstile" data-sitekey="{{.SiteKey}}"></div>{{end}}
<button type="submit" name="action" value="enviar">Enviar pedido</button>
</section>
{{end}}
{{if .S.Error}}<p class="error" role="alert">{{.S.Error}}</p>{{end}}
</form>
{{end}}
</main>
</body>
</html>
{{end}}`

const adminOrdersTemplate = `{{define "admin_pedidos.html"}}<!doctype html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Pedidos</title>
</head>
<body>
<header><p>{{.User.Name}} &lt;{{.User.Email}}&gt;</p></header>
<main>
<h1>Pedidos</h1>
{{if not .Orders}}<p>No hay pedidos todavía.</p>{{end}}
{{range $o := .Orders}}
<article id="pedido-{{$o.ID}}">
<h2>#{{$o.ID}} {{$o.Persona}}</h2>
<p>Nombre en camisa: {{$o.Nombre}} &middot; Talla: {{if $o.Talla}}{{$o.Talla.Talla}}{{else}}N/A{{end}}</p>
<p>Total: ${{money $o.Total}} &middot; Abonado: ${{money $o.Abonado}} &middot; Pendiente: ${{money $o.Balance}} &middot; {{if $o.IsPaid}}Pagado{{else}}Pendiente de pago{{end}}</p>
<ul>{{range $o.Items}}<li>{{if .Estilo}}{{.Estilo.Nombre}}{{else}}Estilo #{{.EstiloID}}{{end}}</li>{{end}}</ul>

<form method="post" action="/api/pedidos/toggle">
<input type="hidden" name="id" value="{{$o.ID}}">
<button type="submit">{{if $o.IsPaid}}Marcar no pagado{{else}}Marcar pagado{{end}}</button>
</form>

<form method="post" action="/api/pedidos/abono">
<input type="hidden" name="id" value="{{$o.ID}}">
<input type="number" step="0.01" name="monto" value="{{money $o.Abonado}}">
<button type="submit">Guardar abono</button>
</form>

<form method="post" action="/api/pedidos/update-date">
<input type="hidden" name="id" value="{{$o.ID}}">
<input type="datetime-local" name="date" value="{{datetimeLocal $o.CreatedAt}}">
<button type="submit">Cambiar fecha</button>
</form>

<form method="post" action="/api/pedidos/update-styles">
<input type="hidden" name="id" value="{{$o.ID}}">
{{range $.Styles}}<label><input type="checkbox" name="estilos" value="{{.ID}}"{{if hasStyle $o .ID}} checked{{end}}> {{.Nombre}}</label>
{{end}}<button type="submit">Guardar estilos</button>
</form>

<form method="post" action="/api/pedidos/delete">
<input type="hidden" name="id" value="{{$o.ID}}">
<button type="submit">Eliminar</button>
</form>
</article>
{{end}}
</main>
</body>
</html>
{{end}}`
