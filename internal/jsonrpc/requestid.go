package jsonrpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// RequestID is a string or numeric message id. Numbers keep their original
// textual form so they are echoed back exactly as received.
type RequestID struct {
	str    string
	num    json.Number
	isNum  bool
	isNull bool
}

// NewRequestID builds an id from a string or any integer type. Other values
// yield a null id.
func NewRequestID(v any) *RequestID {
	switch v := v.(type) {
	case string:
		return &RequestID{str: v}
	case int:
		return &RequestID{num: json.Number(strconv.Itoa(v)), isNum: true}
	case int32:
		return &RequestID{num: json.Number(strconv.FormatInt(int64(v), 10)), isNum: true}
	case int64:
		return &RequestID{num: json.Number(strconv.FormatInt(v, 10)), isNum: true}
	case uint64:
		return &RequestID{num: json.Number(strconv.FormatUint(v, 10)), isNum: true}
	}
	return &RequestID{isNull: true}
}

func (id *RequestID) String() string {
	switch {
	case id.IsNil():
		return ""
	case id.isNum:
		return id.num.String()
	default:
		return id.str
	}
}

// IsNil reports whether id is absent or null.
func (id *RequestID) IsNil() bool { return id == nil || id.isNull }

func (id *RequestID) MarshalJSON() ([]byte, error) {
	switch {
	case id.IsNil():
		return []byte("null"), nil
	case id.isNum:
		return []byte(id.num), nil
	default:
		return json.Marshal(id.str)
	}
}

func (id *RequestID) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch v := v.(type) {
	case nil:
		*id = RequestID{isNull: true}
	case string:
		*id = RequestID{str: v}
	case json.Number:
		*id = RequestID{num: v, isNum: true}
	default:
		return fmt.Errorf("%w: id must be a string or number, got %s", ErrShape, data)
	}
	return nil
}
