package cluster

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_JSON(t *testing.T) {
	snapshot := Snapshot{
		Centroids: []Point{{0, 0.5}, {10, 0.5}},
		Clusters: []Cluster{
			{
				Points: []Point{{0, 0}, {0, 1}},
				Color:  Color{R: 50, G: 100, B: 255},
			},
			{
				Points: []Point{},
				Color:  Color{R: 60, G: 70, B: 80},
			},
		},
		Inertia: 0.5,
	}

	b, err := json.Marshal(snapshot)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"centroids": [[0, 0.5], [10, 0.5]],
		"clusters": {
			"0": {"points": [[0, 0], [0, 1]], "color": "rgb(50,100,255)"},
			"1": {"points": [], "color": "rgb(60,70,80)"}
		},
		"inertia": 0.5
	}`, string(b))

	var decoded Snapshot
	err = json.Unmarshal(b, &decoded)
	require.NoError(t, err)
	assert.Equal(t, snapshot, decoded)
}

func TestSnapshot_JSONInvalid(t *testing.T) {
	for name, payload := range map[string]string{
		"sparse-index": `{"centroids": [[0, 0]], "clusters": {"1": {"points": [], "color": "rgb(50,50,50)"}}}`,
		"text-index":   `{"centroids": [[0, 0]], "clusters": {"a": {"points": [], "color": "rgb(50,50,50)"}}}`,
		"color":        `{"centroids": [[0, 0]], "clusters": {"0": {"points": [], "color": "blue"}}}`,
		"component":    `{"centroids": [[0, 0]], "clusters": {"0": {"points": [], "color": "rgb(50,50,500)"}}}`,
	} {
		t.Run(name, func(t *testing.T) {
			var snapshot Snapshot
			assert.Error(t, json.Unmarshal([]byte(payload), &snapshot))
		})
	}
}

func TestTrace_Final(t *testing.T) {
	_, ok := Trace{}.Final()
	assert.False(t, ok)

	trace := Trace{{Inertia: 2}, {Inertia: 1}}
	final, ok := trace.Final()
	assert.True(t, ok)
	assert.Equal(t, 1.0, final.Inertia)
}

func TestPoint(t *testing.T) {
	p := Point{3, 4}
	assert.Equal(t, 3.0, p.X())
	assert.Equal(t, 4.0, p.Y())
	assert.Equal(t, 5.0, p.Distance(Point{0, 0}))
	assert.Equal(t, "[3.00, 4.00]", p.String())
}

func TestPalette(t *testing.T) {
	colors := Palette(50, rand.New(rand.NewSource(PaletteSeed)))
	assert.Equal(t, 50, len(colors))

	seen := make(map[Color]struct{})
	for _, c := range colors {
		for _, v := range []uint8{c.R, c.G, c.B} {
			assert.GreaterOrEqual(t, v, uint8(minShade))
		}
		seen[c] = struct{}{}
	}
	assert.Equal(t, len(colors), len(seen), "colors must be distinct")

	// the color of a cluster does not depend on the number of clusters
	assert.Equal(t, colors[:3], Palette(3, rand.New(rand.NewSource(PaletteSeed))))
}

func TestColor_Text(t *testing.T) {
	c := Color{R: 50, G: 128, B: 255}
	assert.Equal(t, "rgb(50,128,255)", c.String())

	var decoded Color
	require.NoError(t, decoded.UnmarshalText([]byte("rgb(50,128,255)")))
	assert.Equal(t, c, decoded)
}

func TestParseMethod(t *testing.T) {

	type test struct {
		method Method
		err    error
	}

	tests := map[string]test{
		"random":         {method: Random},
		"farthest_first": {method: FarthestFirst},
		"kmeans++":       {method: KMeansPlusPlus},
		"manual":         {method: Manual},
		"kmeans":         {err: ErrConfiguration},
		"":               {err: ErrConfiguration},
		"Random":         {err: ErrConfiguration},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			method, err := ParseMethod(name)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				assert.False(t, method.Valid())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.method, method)
			assert.Equal(t, name, method.String())
		})
	}
}

func TestMethod_JSON(t *testing.T) {
	var request struct {
		Method Method `json:"init_method"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"init_method": "kmeans++"}`), &request))
	assert.Equal(t, KMeansPlusPlus, request.Method)

	err := json.Unmarshal([]byte(`{"init_method": "other"}`), &request)
	assert.True(t, errors.Is(err, ErrConfiguration))

	b, err := json.Marshal(request)
	require.NoError(t, err)
	assert.JSONEq(t, `{"init_method": "kmeans++"}`, string(b))

	_, err = json.Marshal(struct{ M Method }{})
	assert.Error(t, err)
}

func TestPoint_JSON(t *testing.T) {
	var points []Point
	require.NoError(t, json.Unmarshal([]byte(`[[0, 1], [-2.5, 3]]`), &points))
	assert.Equal(t, []Point{{0, 1}, {-2.5, 3}}, points)

	for name, payload := range map[string]string{
		"one":   `[[0]]`,
		"three": `[[0, 1, 2]]`,
		"text":  `[["a", "b"]]`,
		"flat":  `[0, 1]`,
	} {
		t.Run(name, func(t *testing.T) {
			var points []Point
			err := json.Unmarshal([]byte(payload), &points)
			assert.True(t, errors.Is(err, ErrInvalidInput), "unexpected error %v", err)
		})
	}
}
