package calameo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// StatusOK is the envelope status of a successful action.
const StatusOK = "ok"

// envelope is the outer {"response": {...}} wrapper of every action.
type envelope struct {
	Response *struct {
		Status  *string         `json:"status"`
		Content json.RawMessage `json:"content"`
		Error   *struct {
			Code    json.RawMessage `json:"code"`
			Message string          `json:"message"`
		} `json:"error"`
	} `json:"response"`
}

// call executes an action and returns the envelope content of a successful
// response.
func (c *Client) call(ctx context.Context, action string, fields Fields) (json.RawMessage, error) {
	body, err := c.Execute(ctx, action, fields)
	if err != nil {
		return nil, err
	}
	return parseEnvelope(action, body)
}

func parseEnvelope(action string, body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &DecodeError{Action: action, Reason: "body is not a JSON envelope", Err: err}
	}
	if env.Response == nil || env.Response.Status == nil {
		return nil, &DecodeError{Action: action, Reason: "envelope has no response status"}
	}

	status := *env.Response.Status
	if status != StatusOK {
		remote := &RemoteError{Action: action, Status: status}
		if env.Response.Error != nil {
			remote.Code = scalarString(env.Response.Error.Code)
			remote.Message = env.Response.Error.Message
		}
		return nil, remote
	}

	return env.Response.Content, nil
}

// decodeItem decodes content holding a single object.
func decodeItem[T any](action string, content json.RawMessage) (*T, error) {
	if !isJSONObject(content) {
		return nil, &DecodeError{Action: action, Reason: "content is not an object"}
	}
	var item T
	if err := json.Unmarshal(content, &item); err != nil {
		return nil, &DecodeError{Action: action, Reason: "invalid item", Err: err}
	}
	return &item, nil
}

// decodeList decodes content holding a page: {items, total, start, step}.
func decodeList[T any](action string, content json.RawMessage) (*List[T], error) {
	if !isJSONObject(content) {
		return nil, &DecodeError{Action: action, Reason: "content is not a list object"}
	}

	var raw struct {
		Items json.RawMessage `json:"items"`
		Total *Int            `json:"total"`
		Start Int             `json:"start"`
		Step  Int             `json:"step"`
	}
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, &DecodeError{Action: action, Reason: "invalid list", Err: err}
	}
	if raw.Total == nil {
		return nil, &DecodeError{Action: action, Reason: "list has no total"}
	}

	items, err := decodeItems[T](action, raw.Items)
	if err != nil {
		return nil, err
	}

	return &List[T]{
		Items: items,
		Total: *raw.Total,
		Start: raw.Start,
		Step:  raw.Step,
	}, nil
}

// decodeItems decodes an array of items. An empty string stands for an
// empty list in bodies converted from XML; a single object is a one-item list.
func decodeItems[T any](action string, raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0:
		return nil, &DecodeError{Action: action, Reason: "list has no items"}
	case bytes.Equal(trimmed, []byte(`""`)), bytes.Equal(trimmed, []byte("null")):
		return []T{}, nil
	case trimmed[0] == '{':
		item, err := decodeItem[T](action, trimmed)
		if err != nil {
			return nil, err
		}
		return []T{*item}, nil
	case trimmed[0] != '[':
		return nil, &DecodeError{Action: action, Reason: "items is not an array"}
	}

	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &DecodeError{Action: action, Reason: "invalid items", Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// decodeSequence decodes content that is either a bare array or a list object.
func decodeSequence[T any](action string, content json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return decodeItems[T](action, trimmed)
	}
	if isJSONObject(trimmed) {
		var raw struct {
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, &DecodeError{Action: action, Reason: "invalid list", Err: err}
		}
		return decodeItems[T](action, raw.Items)
	}
	return nil, &DecodeError{Action: action, Reason: "content is not a sequence"}
}

// decodeStatus accepts the plain acknowledgement of state-changing actions.
func decodeStatus(action string, content json.RawMessage) error {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	switch trimmed[0] {
	case '{', '[':
		return &DecodeError{Action: action, Reason: "unexpected structured content in acknowledgement"}
	}
	return nil
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return strings.Trim(string(raw), `"`)
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
