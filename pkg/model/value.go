package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Stringify renders a decoded JSON value as the text a form input would hold.
// Numbers keep their plain decimal form, null becomes empty and objects and
// arrays are re-encoded as JSON.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}
