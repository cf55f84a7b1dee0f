package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/fundwit/go-commons/types"
)

// StringList is persisted as a JSON array in a TEXT column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	jsonBytes, err := json.Marshal(&l)
	if err != nil {
		return nil, err
	}
	return string(jsonBytes), nil
}

func (l *StringList) Scan(v interface{}) error {
	jsonString, ok := v.(string)
	if !ok {
		jsonByte, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("type is neither string nor []byte: %T %v", v, v)
		}
		jsonString = string(jsonByte)
	}
	return json.Unmarshal([]byte(jsonString), l)
}

// IDList is persisted as a JSON array in a TEXT column, with set semantics.
type IDList []types.ID

func (l IDList) Value() (driver.Value, error) {
	jsonBytes, err := json.Marshal(&l)
	if err != nil {
		return nil, err
	}
	return string(jsonBytes), nil
}

func (l *IDList) Scan(v interface{}) error {
	jsonString, ok := v.(string)
	if !ok {
		jsonByte, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("type is neither string nor []byte: %T %v", v, v)
		}
		jsonString = string(jsonByte)
	}
	return json.Unmarshal([]byte(jsonString), l)
}

func (l IDList) Contains(id types.ID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Append returns the list with id added, ignoring ids already present.
func (l IDList) Append(id types.ID) IDList {
	if l.Contains(id) {
		return l
	}
	return append(l, id)
}

func (l IDList) Remove(id types.ID) IDList {
	r := IDList{}
	for _, v := range l {
		if v != id {
			r = append(r, v)
		}
	}
	return r
}
