package articut

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client, replacing the lazily
// created default.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets a request timeout. The default client imposes none
// and leaves deadlines to the transport and the caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

// WithEndpoint overrides the production endpoint. Used for on-premise
// deployments and tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// RequestOptions carries the per-request knobs the service recognizes.
// The zero value is usable: empty fields are replaced with the
// documented defaults when the request is built.
type RequestOptions struct {
	// Version pins the service version, e.g. "v291". Defaults to "latest".
	Version string `json:"version"`

	// Level selects the annotation depth. Defaults to LevelLv2.
	Level Level `json:"level"`

	// UserDict holds custom dictionary entries so domain vocabulary
	// survives segmentation. Always serialized, as an empty object when
	// no entries are set.
	UserDict map[string]string `json:"user_defined_dict_file"`

	// OpendataPlace enables Taiwan open data place name lookup.
	OpendataPlace bool `json:"opendata_place"`

	// Wikidata enables Wikidata entity lookup.
	Wikidata bool `json:"wikidata"`

	// Chemical enables chemical term detection.
	Chemical bool `json:"chemical"`

	// Emoji enables emoji handling.
	Emoji bool `json:"emoji"`

	// TimeRef anchors relative time expressions, e.g. "2026-08-25".
	TimeRef string `json:"time_ref"`

	// Pinyin selects the romanization scheme. Defaults to PinyinBopomofo.
	Pinyin Pinyin `json:"pinyin"`
}

// DefaultOptions returns the documented service defaults: version
// "latest", level lv2, an empty dictionary, every feature toggle off,
// no time reference and Bopomofo readings.
func DefaultOptions() RequestOptions {
	return RequestOptions{
		Version:  "latest",
		Level:    LevelLv2,
		UserDict: map[string]string{},
		Pinyin:   PinyinBopomofo,
	}
}

// withDefaults fills zero-valued fields with the documented defaults.
// A nil UserDict becomes an empty map so it serializes as {} rather
// than null.
func (o RequestOptions) withDefaults() RequestOptions {
	if o.Version == "" {
		o.Version = "latest"
	}
	if o.Level == "" {
		o.Level = LevelLv2
	}
	if o.UserDict == nil {
		o.UserDict = map[string]string{}
	}
	if o.Pinyin == "" {
		o.Pinyin = PinyinBopomofo
	}
	return o
}

// LoadUserDict reads a user-defined dictionary from a JSON file of
// string-to-string entries, the format the service accepts inline.
func LoadUserDict(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read user dictionary: %w", err)
	}

	dict := make(map[string]string)
	if err := json.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("parse user dictionary %s: %w", path, err)
	}

	return dict, nil
}
