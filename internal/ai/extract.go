package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// replyFields are probed in order. The first field holding a truthy value
// decides the reply.
var replyFields = []string{"result", "response", "text"}

// extractor turns a response into reply text. ok is false when the
// extractor does not apply and the next one should be tried.
type extractor func(doc any, body []byte) (reply string, ok bool, err error)

var extractors = func() []extractor {
	list := make([]extractor, 0, len(replyFields)+1)
	for _, field := range replyFields {
		list = append(list, stringField(field))
	}
	return append(list, compacted)
}()

// ExtractReply pulls the reply text out of an endpoint response body. It
// probes the result, response and text fields in that order and falls back
// to the compact form of the whole body, keeping its key order. Empty, zero,
// false and null fields are skipped. A field that is set but is not a string
// fails, as do bodies that are not valid JSON, both with ErrMalformedBody.
func ExtractReply(body []byte) (string, error) {
	if !json.Valid(body) {
		return "", ErrMalformedBody
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	for _, extract := range extractors {
		reply, ok, err := extract(doc, body)
		if err != nil {
			return "", err
		}
		if ok {
			return reply, nil
		}
	}
	return "", ErrMalformedBody
}

func stringField(name string) extractor {
	return func(doc any, _ []byte) (string, bool, error) {
		obj, ok := doc.(map[string]any)
		if !ok {
			return "", false, nil
		}
		v := obj[name]
		if !truthy(v) {
			return "", false, nil
		}
		s, ok := v.(string)
		if !ok {
			return "", false, fmt.Errorf("%w: field %q holds %T, not text", ErrMalformedBody, name, v)
		}
		return s, true, nil
	}
}

// truthy reports whether a decoded JSON value counts as set: not null,
// false, zero or the empty string. Objects and arrays are always set.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := strconv.ParseFloat(x.String(), 64)
		return err != nil || f != 0
	default:
		return true
	}
}

func compacted(_ any, body []byte) (string, bool, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	return buf.String(), true, nil
}
