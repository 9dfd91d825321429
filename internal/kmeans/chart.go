package kmeans

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/drakos74/free-cluster/internal/cluster"
)

// render draws the snapshot as a scatter plot, one series per cluster in its own color.
func render(w io.Writer, title string, snapshot cluster.Snapshot) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("inertia %.4f", snapshot.Inertia),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: true,
			Top:  "5%",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      true,
			Formatter: "{a}: {c}",
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Type:  "png",
					Title: "k-means",
				},
			},
		}),
	)

	for i, c := range snapshot.Clusters {
		points := make([]opts.ScatterData, len(c.Points))
		for j, p := range c.Points {
			points[j] = opts.ScatterData{Value: []float64{p.X(), p.Y()}}
		}
		scatter.AddSeries(fmt.Sprintf("Cluster %d", i), points,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: c.Color.String()}))
	}

	centroids := make([]opts.ScatterData, len(snapshot.Centroids))
	for i, c := range snapshot.Centroids {
		centroids[i] = opts.ScatterData{Value: []float64{c.X(), c.Y()}}
	}
	scatter.AddSeries("Centroids", centroids,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "black"}))

	return scatter.Render(w)
}
