package utils

import (
	"encoding/json"

	"github.com/hokaccha/go-prettyjson"
)

func ToJsonStr(obj interface{}) (string, error) {
	jsonBytes, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}

// ToPrettyJson renders obj indented, coloured when colour is set.
func ToPrettyJson(obj interface{}, colour bool) (string, error) {
	f := prettyjson.NewFormatter()
	f.DisabledColor = !colour
	f.Indent = 2
	out, err := f.Marshal(obj)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
