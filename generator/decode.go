package generator

import (
	"bytes"
	"errors"

	"github.com/tidwall/gjson"
)

var errMalformedJSON = errors.New("malformed JSON response")

// ResponseDecoder 把某个提供商的响应体规整成纯文本。
type ResponseDecoder interface {
	Decode(body []byte) (string, error)
}

// responseShape is one known location of generated text.
type responseShape struct {
	path string
	// raw allows non-string values, returned as their JSON text.
	raw bool
}

type shapeDecoder struct {
	shapes []responseShape
}

// Decode returns the first matching shape in priority order. Unknown shapes fall back to the
// whole response body; only invalid JSON is an error.
func (d shapeDecoder) Decode(body []byte) (string, error) {
	body = bytes.TrimSpace(body)
	if !gjson.ValidBytes(body) {
		return "", errMalformedJSON
	}
	for _, s := range d.shapes {
		r := gjson.GetBytes(body, s.path)
		switch {
		case r.Type == gjson.String && r.Str != "":
			return r.Str, nil
		case s.raw && (r.IsObject() || r.IsArray()):
			return r.Raw, nil
		}
	}
	return string(body), nil
}

// GeminiDecoder covers generateContent, the legacy generateText output and results arrays.
var GeminiDecoder ResponseDecoder = shapeDecoder{shapes: []responseShape{
	{path: "candidates.0.content.parts.0.text"},
	{path: "candidates.0.output"},
	{path: "results.0.content"},
	{path: "output", raw: true},
}}

// OpenAIDecoder covers chat completions and legacy text completions.
var OpenAIDecoder ResponseDecoder = shapeDecoder{shapes: []responseShape{
	{path: "choices.0.message.content"},
	{path: "choices.0.text"},
}}
