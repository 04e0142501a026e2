// Package render draws a sampled curve and packages it for the client.
package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"integramente-backend/internal/types"
)

// PNGBase64 renders the curve with a shaded area under it and returns the
// PNG as a base64 string. Dimensions are in inches.
func PNGBase64(pontos []types.Ponto, label string, widthIn, heightIn float64) (string, error) {
	if len(pontos) < 2 {
		return "", errors.New("not enough finite points to plot")
	}

	xys := make(plotter.XYs, len(pontos))
	for i, pt := range pontos {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}

	p := plot.New()
	p.Title.Text = "Gráfico da função " + label
	p.X.Label.Text = "x"
	p.Y.Label.Text = "f(x)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys)
	if err != nil {
		return "", err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{B: 0xff, A: 0xff}
	line.FillColor = color.RGBA{R: 0xad, G: 0xd8, B: 0xe6, A: 0x80}
	p.Add(line)
	p.Legend.Add(label, line)
	p.Legend.Top = true

	wt, err := p.WriterTo(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, "png")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
