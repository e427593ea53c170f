// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
)

// message types
const (
	MsgSolve     = "solve"     // request flow rates
	MsgFlowRates = "flowrates" // reply to solve; content is a JSON array
	MsgUpdate    = "update"    // request a coupling cycle; content is an UpdateRequest
	MsgRecord    = "record"    // reply to update; content is a Record with the updated rows
	MsgError     = "error"     // reply to any request that failed; content is the error message
)

// Msg is the envelope of all messages exchanged with a remote network partner
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// UpdateRequest holds the content of an update message
type UpdateRequest struct {
	T       float64  `json:"t"`
	Outlets []Outlet `json:"outlets"`
}

// newMsg encodes v as the content of a message
func newMsg(typ string, v interface{}) (msg Msg, err error) {
	b, err := json.Marshal(v)
	if err != nil {
		return msg, chk.Err("cannot encode %q message:\n%v", typ, err)
	}
	return Msg{Type: typ, Content: string(b)}, nil
}

// decode decodes the content of a message with the expected type
func (o Msg) decode(typ string, v interface{}) error {
	if o.Type == MsgError {
		return chk.Err("network partner failed:\n%s", o.Content)
	}
	if o.Type != typ {
		return chk.Err("network partner replied with %q message; %q was expected", o.Type, typ)
	}
	if err := json.Unmarshal([]byte(o.Content), v); err != nil {
		return chk.Err("cannot decode %q message:\n%v", typ, err)
	}
	return nil
}
