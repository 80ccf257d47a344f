/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package handlers

import (
	"context"
	"net/http"

	"github.com/google/safehtml/template"

	geochart "github.com/ilhamster/geoviz/geo_chart"
	"github.com/ilhamster/geoviz/legend"
	pushpincolor "github.com/ilhamster/geoviz/pushpin_color"
)

const legendMethod = "/legend"

// ChartSource provides up-to-date charts by collection name.
type ChartSource interface {
	Chart(ctx context.Context, collectionName string) (*geochart.Chart, error)
}

const legendPreview = `<!DOCTYPE html>
<html>
<head><title>geoviz legends</title></head>
<body>
<h1>{{.Collection}}</h1>
<p>Colored {{.Strategy}}, {{.Pushpins}} pushpins shown.</p>
{{if .ColorLegend}}<h2>Color legend</h2>
<table>
<tr><th>Color</th><th>From</th><th>To</th></tr>
{{range .ColorLegend}}<tr><td>{{.Color}}</td><td>{{printf "%.2f" .Range.From}}</td><td>{{printf "%.2f" .Range.To}}</td></tr>
{{end}}</table>
{{end}}{{if .CategoryLegend}}<h2>Categories</h2>
<ol start="0">
{{range .CategoryLegend}}<li>{{.Name}}: {{.Color}}{{if not .Visible}} (hidden){{end}}</li>
{{end}}</ol>
{{end}}</body>
</html>
`

var legendPreviewTemplate = template.Must(template.New("legend").Parse(legendPreview))

type legendPreviewData struct {
	Collection     string
	Strategy       string
	Pushpins       int
	ColorLegend    []pushpincolor.LegendColorItem
	CategoryLegend []legend.Item
}

// legendHandler serves an HTML preview of a collection's legends.
type legendHandler struct {
	charts ChartSource
}

// NewLegendHandler returns a Handler previewing the legends of the charts
// provided by charts.
func NewLegendHandler(charts ChartSource) Handler {
	return &legendHandler{
		charts: charts,
	}
}

// HandlersByPath returns a mapping of HTTP request path to HTTP handler for
// this Handler.
func (lh *legendHandler) HandlersByPath() map[string]func(http.ResponseWriter, *http.Request) {
	return map[string]func(http.ResponseWriter, *http.Request){
		legendMethod: lh.getLegendHandler,
	}
}

// getLegendHandler previews the legends of the collection named by the
// `collection` query parameter.
func (lh *legendHandler) getLegendHandler(w http.ResponseWriter, req *http.Request) {
	collectionName := req.URL.Query().Get("collection")
	if collectionName == "" {
		http.Error(w, "Missing collection", http.StatusBadRequest)
		return
	}
	data, err := lh.previewData(req.Context(), collectionName)
	if err != nil {
		http.Error(w, "Legend preview failed: "+err.Error(), statusOf(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := legendPreviewTemplate.Execute(w, data); err != nil {
		http.Error(w, "Failed to render legend preview: "+err.Error(), http.StatusInternalServerError)
	}
}

func (lh *legendHandler) previewData(ctx context.Context, collectionName string) (*legendPreviewData, error) {
	c, err := lh.charts.Chart(ctx, collectionName)
	if err != nil {
		return nil, err
	}
	snap, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	return &legendPreviewData{
		Collection:     collectionName,
		Strategy:       snap.Strategy.Kind().String(),
		Pushpins:       len(snap.Pushpins()),
		ColorLegend:    snap.ColorLegend(),
		CategoryLegend: snap.CategoryLegend(),
	}, nil
}
