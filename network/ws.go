// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"github.com/cpmech/gosl/chk"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-multierror"
)

// Ws is a network partner running in another process, reached over a websocket
type Ws struct {
	Address string // e.g. ws://localhost:8080/ws
	conn    *websocket.Conn
}

// DialWs connects to a remote network partner
func DialWs(address string) (o *Ws, err error) {
	conn, _, err := websocket.DefaultDialer.Dial(address, nil)
	if err != nil {
		return nil, chk.Err("cannot connect to network partner at %q:\n%v", address, err)
	}
	return &Ws{Address: address, conn: conn}, nil
}

// Close sends a close frame and closes the connection
func (o *Ws) Close() (err error) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if e := o.conn.WriteMessage(websocket.CloseMessage, msg); e != nil {
		err = multierror.Append(err, chk.Err("cannot send close frame to %q:\n%v", o.Address, e))
	}
	if e := o.conn.Close(); e != nil {
		err = multierror.Append(err, chk.Err("cannot close connection to %q:\n%v", o.Address, e))
	}
	return
}

// Solve requests the flow rates of all BHEs
func (o *Ws) Solve() (flowRates []float64, err error) {
	reply, err := o.request(Msg{Type: MsgSolve})
	if err != nil {
		return
	}
	err = reply.decode(MsgFlowRates, &flowRates)
	return
}

// Update sends the outflow temperatures and copies the returned rows into rec. Rows the
// partner did not write are not returned and keep their values
func (o *Ws) Update(t float64, rec *Record, outlets []Outlet) (err error) {
	msg, err := newMsg(MsgUpdate, &UpdateRequest{T: t, Outlets: outlets})
	if err != nil {
		return
	}
	reply, err := o.request(msg)
	if err != nil {
		return
	}
	var res Record
	if err = reply.decode(MsgRecord, &res); err != nil {
		return
	}
	for i := 0; i < res.Len(); i++ {
		row, found := rec.LookupRow(res.NodeId(i))
		if !found {
			return chk.Err("network partner returned unknown boundary node %d", res.NodeId(i))
		}
		rec.SetRow(row, res.Tin(i), res.Tout(i), res.FlowRate(i))
	}
	return
}

// request sends a message and waits for the reply
func (o *Ws) request(msg Msg) (reply Msg, err error) {
	if err = o.conn.WriteJSON(&msg); err != nil {
		return reply, chk.Err("cannot send %q message to %q:\n%v", msg.Type, o.Address, err)
	}
	if err = o.conn.ReadJSON(&reply); err != nil {
		return reply, chk.Err("cannot receive reply to %q message from %q:\n%v", msg.Type, o.Address, err)
	}
	return
}
