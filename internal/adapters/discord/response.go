package discord

import (
	"encoding/json"
	"net/http"
)

// Response es la respuesta neutral al host: la escribe ServeHTTP o se
// convierte a APIGatewayV2HTTPResponse en Lambda.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

func textResponse(status int, body string) *Response {
	h := http.Header{}
	h.Set("Content-Type", "text/plain; charset=utf-8")
	return &Response{Status: status, Header: h, Body: []byte(body)}
}

func jsonResponse(status int, v any) (*Response, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	return &Response{Status: status, Header: h, Body: b}, nil
}

func (r *Response) Write(w http.ResponseWriter) {
	for k, vs := range r.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(r.Status)
	_, _ = w.Write(r.Body)
}
