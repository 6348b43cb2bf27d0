package request_models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Coordinate keeps a latitude or longitude exactly as the client sent it.
// JSON bodies may carry a number or a string; form posts always carry text.
// Parsing and range checks happen in the service layer.
type Coordinate string

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Coordinate(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = Coordinate(n.String())
	return nil
}

func (c Coordinate) String() string { return string(c) }
