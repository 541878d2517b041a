package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	nethttp "net/http"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
)

type listResponse struct {
	Players []players.Player `json:"players"`
	Count   int              `json:"count"`
}

type playerRequest struct {
	Number   formValue `json:"number"`
	Name     string    `json:"name"`
	Position string    `json:"position"`
}

// formValue accepts either a JSON string or a bare JSON number and keeps
// the raw text so the roster applies its own parsing.
type formValue string

func (v *formValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = formValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("number must be a string or a number")
	}
	*v = formValue(n.String())
	return nil
}

func decodePlayerRequest(w nethttp.ResponseWriter, r *nethttp.Request) (playerRequest, error) {
	var req playerRequest
	if r.Body == nil {
		return req, errors.New("empty body")
	}
	dec := json.NewDecoder(nethttp.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return playerRequest{}, err
	}
	return req, nil
}
