package output

import (
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/rodmarques/counterscan/internal/domain"
)

// ReportData feeds the HTML report template.
type ReportData struct {
	RunID       string
	Query       string
	GeneratedAt time.Time
	Products    []domain.AnalyzedProduct
	ByLevel     map[domain.RiskLevel]int
	ByCategory  map[domain.Category]int
}

// BuildReportData assembles report data from an analysis run.
func BuildReportData(runID, query string, products []domain.AnalyzedProduct) *ReportData {
	data := &ReportData{
		RunID:       runID,
		Query:       query,
		GeneratedAt: time.Now(),
		Products:    products,
		ByLevel:     make(map[domain.RiskLevel]int),
		ByCategory:  make(map[domain.Category]int),
	}
	for i := range products {
		data.ByLevel[products[i].RiskLevel]++
		data.ByCategory[products[i].Category]++
	}
	return data
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"price": func(p domain.AnalyzedProduct) string {
		if ep := p.EffectivePrice(); ep != nil {
			return "R$ " + ep.StringFixed(2)
		}
		return "-"
	},
	"percent": func(v float64) string {
		return fmt.Sprintf("%.1f%%", v*100)
	},
	"level": func(s string) domain.RiskLevel {
		return domain.RiskLevel(s)
	},
}).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Relatório de Análise {{.RunID}}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #f0f0f0; }
.risk-ALTO { background: #fdd; }
.risk-MÉDIO { background: #ffe9c7; }
summary { font-weight: bold; }
</style>
</head>
<body>
<h1>Relatório de Análise</h1>
<p>Execução {{.RunID}} — consulta "{{.Query}}" — gerado em {{.GeneratedAt.Format "02/01/2006 15:04"}}</p>
<h2>Resumo</h2>
<ul>
<li>Produtos analisados: {{len .Products}}</li>
<li>Risco ALTO: {{index .ByLevel (level "ALTO")}}</li>
<li>Risco MÉDIO: {{index .ByLevel (level "MÉDIO")}}</li>
<li>Risco BAIXO: {{index .ByLevel (level "BAIXO")}}</li>
</ul>
<h2>Produtos</h2>
<table>
<tr>
<th>ASIN</th><th>Título</th><th>Preço</th><th>Vendedor</th>
<th>Categoria</th><th>Confiança</th><th>Risco</th><th>Alerta de preço</th>
</tr>
{{range .Products}}
<tr class="risk-{{.RiskLevel}}">
<td><a href="{{.URL}}">{{.ASIN}}</a></td>
<td>{{.Title}}</td>
<td>{{price .}}</td>
<td>{{.EffectiveSeller}}</td>
<td>{{.Category}}</td>
<td>{{percent .Confidence}}</td>
<td>{{.RiskLevel}} ({{.RiskScore}})</td>
<td>{{.PriceAnomaly}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`))

// WriteHTMLReport renders the report to path.
func WriteHTMLReport(path string, data *ReportData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: creating report file: %w", err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("output: rendering report: %w", err)
	}
	return nil
}
