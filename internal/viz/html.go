package viz

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/matsen/coauthnet/internal/graph"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
}

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Layout string // "force", "circle", or "grid"
	Title  string // Page title; defaults to "Co-authorship Network"
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Layout: "force",
		Title:  "Co-authorship Network",
	}
}

// ValidLayouts lists the supported layout algorithm names.
var ValidLayouts = []string{"force", "circle", "grid"}

// GenerateHTML generates a self-contained HTML page rendering the graph
// with Cytoscape.js: nodes colored by top-N country, sized by degree,
// edges weighted by shared publications.
func GenerateHTML(g *graph.Graph, opts HTMLOptions) (string, error) {
	if g == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}

	if err := validateLayout(opts.Layout); err != nil {
		return "", err
	}

	if g.IsEmpty() {
		return generateEmptyHTML(), nil
	}

	graphJSON, err := ToCytoscapeJSON(g)
	if err != nil {
		return "", err
	}

	title := opts.Title
	if title == "" {
		title = "Co-authorship Network"
	}

	data := templateData{
		Title:     title,
		GraphJSON: template.JS(graphJSON),
		Layout:    layoutToCytoscape(opts.Layout),
		Legend:    Legend(g.Top10Countries),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// validateLayout checks if the layout option is valid.
func validateLayout(layout string) error {
	switch layout {
	case "", "force", "circle", "grid":
		return nil
	default:
		return fmt.Errorf("invalid layout %q: must be force, circle, or grid", layout)
	}
}

// templateData holds data for the HTML template.
type templateData struct {
	Title     string
	GraphJSON template.JS
	Layout    string
	Legend    []LegendEntry
}

// layoutToCytoscape converts user-friendly layout names to Cytoscape.js
// layout algorithm names.
func layoutToCytoscape(layout string) string {
	switch layout {
	case "circle":
		return "circle"
	case "grid":
		return "grid"
	default:
		return "cose"
	}
}

// generateEmptyHTML returns HTML for an empty graph state.
func generateEmptyHTML() string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Co-authorship Network - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state {
      text-align: center;
      color: #666;
    }
    .empty-state h2 {
      margin-bottom: 0.5em;
      color: #333;
    }
    .empty-state code {
      background: #e0e0e0;
      padding: 2px 6px;
      border-radius: 3px;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No graph data</h2>
    <p>This dataset has no built graph yet.</p>
    <p>Run <code>conet build export.csv</code> first.</p>
  </div>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="https://unpkg.com/cytoscape@3/dist/cytoscape.min.js"></script>
  <style>
    * {
      box-sizing: border-box;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 0;
      background: #f5f5f5;
    }
    #cy {
      width: 100%;
      height: 100vh;
      background: white;
    }
    #legend {
      position: absolute;
      top: 12px;
      right: 12px;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 10px 14px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      font-size: 13px;
      z-index: 1000;
    }
    #legend .entry {
      display: flex;
      align-items: center;
      margin: 3px 0;
    }
    #legend .swatch {
      width: 12px;
      height: 12px;
      border-radius: 50%;
      margin-right: 8px;
    }
    #tooltip {
      position: absolute;
      display: none;
      background: white;
      border: 1px solid #ccc;
      border-radius: 4px;
      padding: 8px 12px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
      max-width: 300px;
      font-size: 13px;
      z-index: 1000;
      pointer-events: none;
    }
    #tooltip .label {
      font-weight: bold;
      margin-bottom: 4px;
    }
    #tooltip .detail {
      color: #555;
      margin: 2px 0;
    }
  </style>
</head>
<body>
  <div id="cy"></div>
  <div id="legend">
    {{range .Legend}}<div class="entry"><span class="swatch" style="background:{{.Color}}"></span>{{.Label}}</div>
    {{end}}
  </div>
  <div id="tooltip"></div>
  <script>
    (function() {
      const graphData = {{.GraphJSON}};
      const layout = "{{.Layout}}";

      const cy = cytoscape({
        container: document.getElementById('cy'),
        elements: graphData,
        style: [
          {
            selector: 'node',
            style: {
              'background-color': 'data(color)',
              'label': 'data(id)',
              'color': '#333',
              'font-size': '9px',
              'text-valign': 'bottom',
              'text-margin-y': '4px',
              'width': 'mapData(degree, 0, 30, 12, 45)',
              'height': 'mapData(degree, 0, 30, 12, 45)'
            }
          },
          {
            selector: 'edge',
            style: {
              'line-color': '#BDC3C7',
              'curve-style': 'haystack',
              'width': 'mapData(sharedPublications, 1, 10, 1, 6)'
            }
          },
          {
            selector: 'node.highlighted',
            style: {
              'border-width': 3,
              'border-color': '#ff6b6b'
            }
          },
          {
            selector: 'node.dimmed',
            style: {
              'opacity': 0.3
            }
          },
          {
            selector: 'edge.dimmed',
            style: {
              'opacity': 0.2
            }
          }
        ],
        layout: {
          name: layout,
          animate: false,
          nodeRepulsion: 8000,
          idealEdgeLength: 80,
          edgeElasticity: 100
        }
      });

      const tooltip = document.getElementById('tooltip');

      function showTooltip(evt, content) {
        tooltip.innerHTML = content;
        tooltip.style.display = 'block';
        const pos = evt.renderedPosition || evt.position;
        tooltip.style.left = (pos.x + 15) + 'px';
        tooltip.style.top = (pos.y + 15) + 'px';
      }

      function hideTooltip() {
        tooltip.style.display = 'none';
      }

      function escapeHtml(str) {
        if (!str) return '';
        return str.replace(/&/g, '&amp;')
                  .replace(/</g, '&lt;')
                  .replace(/>/g, '&gt;')
                  .replace(/"/g, '&quot;');
      }

      cy.on('mouseover', 'node', function(evt) {
        const data = evt.target.data();
        let html = '<div class="label">' + escapeHtml(data.id) + '</div>';
        html += '<div class="detail">Country: ' + escapeHtml(data.country) + '</div>';
        html += '<div class="detail">Co-authors: ' + data.degree + '</div>';
        showTooltip(evt, html);
      });

      cy.on('mouseout', 'node', hideTooltip);

      cy.on('mouseover', 'edge', function(evt) {
        const data = evt.target.data();
        let html = '<div class="label">' + escapeHtml(data.source) + ' — ' + escapeHtml(data.target) + '</div>';
        html += '<div class="detail">Shared publications: ' + data.sharedPublications + '</div>';
        showTooltip(evt, html);
      });

      cy.on('mouseout', 'edge', hideTooltip);

      cy.on('tap', 'node', function(evt) {
        const node = evt.target;
        cy.elements().removeClass('highlighted dimmed');
        const neighborhood = node.neighborhood().add(node);
        neighborhood.addClass('highlighted');
        cy.elements().not(neighborhood).addClass('dimmed');
      });

      cy.on('tap', function(evt) {
        if (evt.target === cy) {
          cy.elements().removeClass('highlighted dimmed');
        }
      });
    })();
  </script>
</body>
</html>`
