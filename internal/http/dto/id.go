package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a snowflake identifier that clients may send either as a JSON string
// or as a number. It always marshals as a string.
type ID int64

func (i ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(i), 10))
}

func (i *ID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", data)
	}
	*i = ID(v)
	return nil
}
