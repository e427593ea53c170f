// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/afero"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// figure size
var (
	FigWidth  = 8 * vg.Inch
	FigHeight = 5 * vg.Inch
)

// PlotHistory plots inflow and outflow temperatures of all boundary nodes, and their flow rates
//
//	Two files are saved: fnkey_temp.png and fnkey_flow.png
func PlotHistory(fs afero.Fs, h *History, dirout, fnkey string) (err error) {
	if err = fs.MkdirAll(dirout, 0777); err != nil {
		return chk.Err("cannot create output directory %q:\n%v", dirout, err)
	}
	pt := newPlot("BHE temperatures", "t [s]", "T [°C]")
	pq := newPlot("BHE flow rates", "t [s]", "q [m³/s]")
	for _, id := range h.NodeIds() {
		t, tin, tout, q := h.Series(id)
		if len(t) == 0 {
			continue
		}
		err = plotutil.AddLinePoints(pt,
			io.Sf("T_in @ %d", id), xys(t, tin),
			io.Sf("T_out @ %d", id), xys(t, tout))
		if err != nil {
			return chk.Err("cannot plot temperatures of node %d:\n%v", id, err)
		}
		if err = plotutil.AddLines(pq, io.Sf("q @ %d", id), xys(t, q)); err != nil {
			return chk.Err("cannot plot flow rate of node %d:\n%v", id, err)
		}
	}
	if err = savefig(fs, pt, dirout, fnkey+"_temp.png"); err != nil {
		return
	}
	return savefig(fs, pq, dirout, fnkey+"_flow.png")
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

func newPlot(title, xlbl, ylbl string) (p *plot.Plot) {
	p = plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlbl
	p.Y.Label.Text = ylbl
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X, pts[i].Y = x[i], y[i]
	}
	return pts
}

func savefig(fs afero.Fs, p *plot.Plot, dirout, fn string) (err error) {
	w, err := p.WriterTo(FigWidth, FigHeight, filepath.Ext(fn)[1:])
	if err != nil {
		return chk.Err("cannot render figure %q:\n%v", fn, err)
	}
	path := filepath.Join(dirout, fn)
	f, err := fs.Create(path)
	if err != nil {
		return chk.Err("cannot create figure file %q:\n%v", path, err)
	}
	defer f.Close()
	if _, err = w.WriteTo(f); err != nil {
		return chk.Err("cannot save figure %q:\n%v", path, err)
	}
	return
}
