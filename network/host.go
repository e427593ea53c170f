// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Host serves a partner to remote simulations over websockets
type Host struct {
	Partner  Partner
	upgrader websocket.Upgrader
}

// NewHost returns a new host
func NewHost(partner Partner) *Host {
	return &Host{
		Partner: partner,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ServeHTTP handles one simulation until it closes the connection
func (o *Host) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := o.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("cannot upgrade connection")
		return
	}
	defer conn.Close()
	logger := log.WithField("remote", conn.RemoteAddr().String())
	logger.Info("simulation connected")
	for {
		var msg Msg
		if err = conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Info("simulation disconnected")
			} else {
				logger.WithError(err).Warn("connection lost")
			}
			return
		}
		reply := o.handle(msg)
		if reply.Type == MsgError {
			logger.WithField("request", msg.Type).Error(reply.Content)
		}
		if err = conn.WriteJSON(&reply); err != nil {
			logger.WithError(err).Warn("cannot send reply")
			return
		}
	}
}

// handle runs one request
func (o *Host) handle(msg Msg) (reply Msg) {
	var err error
	switch msg.Type {
	case MsgSolve:
		var flowRates []float64
		if flowRates, err = o.Partner.Solve(); err == nil {
			reply, err = newMsg(MsgFlowRates, flowRates)
		}
	case MsgUpdate:
		var req UpdateRequest
		if err = msg.decode(MsgUpdate, &req); err == nil {
			reply, err = o.update(&req)
		}
	default:
		return Msg{Type: MsgError, Content: "unknown message type " + msg.Type}
	}
	if err != nil {
		return Msg{Type: MsgError, Content: err.Error()}
	}
	return
}

// update runs a coupling cycle on a record holding the requested boundary nodes only
func (o *Host) update(req *UpdateRequest) (reply Msg, err error) {
	rec := NewRecord()
	for _, out := range req.Outlets {
		if _, err = rec.AppendBoundaryNode(out.Node); err != nil {
			return
		}
	}
	rec.Seal()
	rec.WriteTime(req.T)
	if err = o.Partner.Update(req.T, rec, req.Outlets); err != nil {
		return
	}
	log.WithField("t", req.T).Debugf("updated %d boundary nodes", rec.Len())
	return newMsg(MsgRecord, rec)
}
