package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// ErrorBody is the body of every error response.
type ErrorBody struct {
	Detail string `json:"detail"`
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var ErrTrailingData = errors.New("unexpected data after JSON body")

// Read decodes the request body into dst. An empty body leaves dst untouched;
// anything but whitespace after the first JSON value is an error.
func Read(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}

func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, ErrorBody{Detail: msg})
}
