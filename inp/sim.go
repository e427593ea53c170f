// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/spf13/afero"
)

// Data holds global data for simulations
type Data struct {
	Desc    string  `json:"desc"`    // description of simulation
	DirOut  string  `json:"dirout"`  // directory for output; e.g. /tmp/ogs
	ListBcs bool    `json:"listbcs"` // list boundary conditions
	Tsoil   float64 `json:"tsoil"`   // undisturbed soil temperature [°C]
	Asm     string  `json:"asm"`     // assembler type; e.g. "lumped", "dirichlet"
}

// ControlData holds data for the time loop
type ControlData struct {
	Tf    float64 `json:"tf"`    // final time
	Dt    float64 `json:"dt"`    // time step
	DtOut float64 `json:"dtout"` // time step for output
}

// NetworkData holds the parameters of the built-in pipe network
type NetworkData struct {
	Power     float64   `json:"power"`     // total heat extracted by the heat pump [W]; negative means injection
	LoadFcn   string    `json:"loadfcn"`   // name of function giving the power at time t; overrides Power
	TotalFlow float64   `json:"totalflow"` // total flow rate split evenly among BHEs [m³/s]
	FlowRates []float64 `json:"flowrates"` // flow rate per BHE [m³/s]; overrides TotalFlow
}

// PartitionData holds the global indices of the BHE ports on one partition
//
//	Dofs[i] = {inlet, outlet} of BHE i; negative when the port is not on this partition
type PartitionData struct {
	Rank int      `json:"rank"`
	Dofs [][2]int `json:"dofs"`
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data       Data             `json:"data"`       // stores global simulation data
	ProcVars   []string         `json:"procvars"`   // process variables; e.g. temperature_soil, temperature_BHE_1
	Functions  FuncsData        `json:"functions"`  // time functions
	Materials  MaterialData     `json:"materials"`  // soil materials
	Bhes       []*BheData       `json:"bhes"`       // borehole heat exchangers, in device order
	Network    NetworkData      `json:"network"`    // built-in network
	Partitions []*PartitionData `json:"partitions"` // dof tables; one per processor
	Control    ControlData      `json:"control"`    // time loop

	// derived
	Key    string // simulation key; e.g. mysim01.sim => mysim01
	DirOut string // directory to save results
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(fs afero.Fs, simfilepath, alias string) (o *Simulation, err error) {

	// read file
	b, err := afero.ReadFile(fs, simfilepath)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// decode
	o = new(Simulation)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// filename key
	fn := filepath.Base(simfilepath)
	o.Key = strings.TrimSuffix(fn, filepath.Ext(fn))
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	o.DirOut = os.ExpandEnv(o.Data.DirOut)
	if o.DirOut == "" {
		o.DirOut = "/tmp/ogs/" + o.Key
	}

	// defaults and checks
	if o.Data.Asm == "" {
		o.Data.Asm = "lumped"
	}
	o.Control.SetDefault()
	err = o.Check()
	return
}

// SetDefault sets default values of time control
func (o *ControlData) SetDefault() {
	if o.Tf < 1e-14 {
		o.Tf = 1
	}
	if o.Dt < 1e-14 {
		o.Dt = 1
	}
	if o.DtOut < o.Dt {
		o.DtOut = o.Dt
	}
}

// Check checks process variables, materials and BHE data
func (o *Simulation) Check() (err error) {
	if len(o.Bhes) == 0 {
		return chk.Err("at least one borehole heat exchanger must be given")
	}
	err = o.CheckProcVars()
	if err != nil {
		return
	}
	err = o.Materials.Check()
	if err != nil {
		return
	}
	if _, err = o.LoadFunc(); err != nil {
		return
	}
	for i, b := range o.Bhes {
		if err = b.Check(); err != nil {
			return chk.Err("BHE %d: %v", i, err)
		}
	}
	for _, p := range o.Partitions {
		if len(p.Dofs) != len(o.Bhes) {
			return chk.Err("partition %d has %d dof pairs but there are %d BHEs", p.Rank, len(p.Dofs), len(o.Bhes))
		}
	}
	return
}

// CheckProcVars checks the names of process variables
//
//	Names must be "temperature_soil" or "temperature_BHE_X". There must be exactly one soil
//	variable and one BHE variable per borehole heat exchanger.
func (o *Simulation) CheckProcVars() error {
	var nsoil, nbhe int
	for _, name := range o.ProcVars {
		switch {
		case name == "temperature_soil":
			nsoil++
		case strings.Contains(name, "temperature_BHE"):
			nbhe++
		default:
			return chk.Err("found a process variable name %q. It should be 'temperature_soil' or 'temperature_BHE_X'", name)
		}
	}
	if nsoil != 1 {
		return chk.Err("there must be one 'temperature_soil' process variable; found %d", nsoil)
	}
	if nbhe != len(o.Bhes) {
		return chk.Err("the number of BHE process variables (%d) differs from the number of BHEs (%d)", nbhe, len(o.Bhes))
	}
	return nil
}

// PartitionDofs returns the dof table of the partition with given rank
//
//	Serial runs without partition data get the sequential numbering {2i, 2i+1}
func (o *Simulation) PartitionDofs(rank int) ([][2]int, error) {
	if len(o.Partitions) == 0 {
		if rank != 0 {
			return nil, chk.Err("no partition data available for processor %d", rank)
		}
		dofs := make([][2]int, len(o.Bhes))
		for i := range dofs {
			dofs[i] = [2]int{2 * i, 2*i + 1}
		}
		return dofs, nil
	}
	for _, p := range o.Partitions {
		if p.Rank == rank {
			return p.Dofs, nil
		}
	}
	return nil, chk.Err("cannot find partition data for processor %d", rank)
}

// LoadFunc returns the function giving the power extracted by the built-in network
//
//	nil means the constant Network.Power is used
func (o *Simulation) LoadFunc() (dbf.T, error) {
	if o.Network.LoadFcn == "" {
		return nil, nil
	}
	return o.Functions.Get(o.Network.LoadFcn)
}

// UsesNetwork tells whether any BHE takes its inflow from the pipe network
func (o *Simulation) UsesNetwork() bool {
	for _, b := range o.Bhes {
		if b.UseNetwork {
			return true
		}
	}
	return false
}

// String returns a summary of the simulation data
func (o *Simulation) String() (l string) {
	l = io.Sf("simulation %q: %s\n", o.Key, o.Data.Desc)
	for i, b := range o.Bhes {
		l += io.Sf("  BHE %2d: type=%-3s L=%g D=%g network=%v\n", i, b.Type, b.Length, b.Diam, b.UseNetwork)
	}
	return
}
