/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package hdlrest

import (
	"encoding/json"
)

// Handle.net REST responseCode values.
const (
	ResponseSuccess              = 1
	ResponseError                = 2
	ResponseHandleNotFound       = 100
	ResponseHandleAlreadyExists  = 101
	ResponseInvalidHandle        = 102
	ResponseValuesNotFound       = 200
	ResponseAuthenticationNeeded = 402
)

// URLType is the handle value type holding the target URL.
const URLType = "URL"

// urlIndex is the index new URL values are stored at.
const urlIndex = 1

// ValueData is the data part of a handle value. Value is kept raw because
// only "string" formatted values are plain JSON strings.
type ValueData struct {
	Format string          `json:"format"`
	Value  json.RawMessage `json:"value"`
}

// Value is a single indexed handle value.
type Value struct {
	Index     int       `json:"index"`
	Type      string    `json:"type"`
	Data      ValueData `json:"data"`
	TTL       int       `json:"ttl,omitempty"`
	Timestamp string    `json:"timestamp,omitempty"`
}

// Response is the JSON body the handle server answers with.
type Response struct {
	ResponseCode int     `json:"responseCode"`
	Handle       string  `json:"handle,omitempty"`
	Message      string  `json:"message,omitempty"`
	Values       []Value `json:"values,omitempty"`
}

// Request is the JSON body sent on PUT.
type Request struct {
	Values []Value `json:"values"`
}

// NewURLValue builds a string-formatted URL value at index.
func NewURLValue(index int, target string) Value {
	raw, _ := json.Marshal(target)
	return Value{
		Index: index,
		Type:  URLType,
		Data:  ValueData{Format: "string", Value: raw},
	}
}

// StringValue decodes a string-formatted value.
func (v Value) StringValue() (string, bool) {
	if v.Data.Format != "" && v.Data.Format != "string" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v.Data.Value, &s); err != nil {
		return "", false
	}
	return s, true
}

// URLValue returns the first URL value of the response.
func (r *Response) URLValue() (Value, bool) {
	for _, v := range r.Values {
		if v.Type == URLType {
			return v, true
		}
	}
	return Value{}, false
}
