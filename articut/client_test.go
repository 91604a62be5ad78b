package articut

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name     string
		username string
		apiKey   string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "valid config",
			username: "user@example.com",
			apiKey:   "test-key",
			wantErr:  false,
		},
		{
			name:     "missing username",
			username: "",
			apiKey:   "test-key",
			wantErr:  true,
			errMsg:   "username is required",
		},
		{
			name:     "missing API key",
			username: "user@example.com",
			apiKey:   "",
			wantErr:  true,
			errMsg:   "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.username, tt.apiKey, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, client)
			assert.Equal(t, tt.username, client.username)
			assert.Equal(t, tt.apiKey, client.apiKey)
			assert.Equal(t, Endpoint, client.endpoint)
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("user@example.com", "test-key", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("user@example.com", "test-key", logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("with endpoint", func(t *testing.T) {
		client, err := NewClient("user@example.com", "test-key", logger, WithEndpoint("http://localhost:8964/Articut/API/"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8964/Articut/API/", client.endpoint)
	})

	t.Run("default client is lazy", func(t *testing.T) {
		client, err := NewClient("user@example.com", "test-key", logger)
		require.NoError(t, err)
		assert.Nil(t, client.httpClient)
	})
}

func TestParse(t *testing.T) {
	logger := zerolog.Nop()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		// Credentials and input ride in the body.
		assert.Equal(t, "user@example.com", payload["username"])
		assert.Equal(t, "test-key", payload["api_key"])
		assert.Equal(t, "我想過過過兒過過的日子。", payload["input_str"])

		// Documented defaults fill the unset options.
		assert.Equal(t, "latest", payload["version"])
		assert.Equal(t, "lv2", payload["level"])
		assert.Equal(t, map[string]interface{}{}, payload["user_defined_dict_file"])
		assert.Equal(t, false, payload["opendata_place"])
		assert.Equal(t, false, payload["wikidata"])
		assert.Equal(t, false, payload["chemical"])
		assert.Equal(t, false, payload["emoji"])
		assert.Equal(t, "", payload["time_ref"])
		assert.Equal(t, "BOPOMOFO", payload["pinyin"])

		resp := map[string]interface{}{
			"version":   "v291",
			"level":     "lv2",
			"msg":       "Success!",
			"exec_time": 0.042,
			"result_pos": []string{
				"<ENTITY_pronoun>我</ENTITY_pronoun><ACTION_verb>想</ACTION_verb><ACTION_verb>過</ACTION_verb><ENTITY_person>過兒</ENTITY_person><ACTION_verb>過過</ACTION_verb><FUNC_inner>的</FUNC_inner><ENTITY_nouny>日子</ENTITY_nouny>",
			},
			"result_obj": [][]map[string]string{
				{
					{"pos": "ENTITY_pronoun", "text": "我"},
					{"pos": "ACTION_verb", "text": "想"},
					{"pos": "ACTION_verb", "text": "過"},
					{"pos": "ENTITY_person", "text": "過兒"},
					{"pos": "ACTION_verb", "text": "過過"},
					{"pos": "FUNC_inner", "text": "的"},
					{"pos": "ENTITY_nouny", "text": "日子"},
				},
			},
			"result_segmentation": "我/想/過/過兒/過過/的/日子/",
			"word_count_balance":  1988,
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client, err := NewClient("user@example.com", "test-key", logger, WithEndpoint(server.URL))
	require.NoError(t, err)

	resp, err := client.Parse(context.Background(), "我想過過過兒過過的日子。")
	require.NoError(t, err)

	assert.Equal(t, "v291", resp.Version)
	assert.Equal(t, LevelLv2, resp.Level)
	assert.InDelta(t, 0.042, resp.ExecTime, 1e-9)
	assert.Len(t, resp.ResultPos, 1)
	assert.Len(t, resp.ResultObj, 1)
	assert.Equal(t, "我/想/過/過兒/過過/的/日子/", resp.ResultSegmentation)
	assert.Equal(t, 1988, resp.WordCountBalance)
}

func TestParseWithOptions(t *testing.T) {
	logger := zerolog.Nop()

	var payload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(map[string]interface{}{"msg": "Success!"})
	}))
	defer server.Close()

	client, err := NewClient("user@example.com", "test-key", logger, WithEndpoint(server.URL))
	require.NoError(t, err)

	opts := RequestOptions{
		Version:       "v278",
		Level:         LevelLv3,
		UserDict:      map[string]string{"過兒": "楊過"},
		OpendataPlace: true,
		Wikidata:      true,
		TimeRef:       "2026-08-25",
		Pinyin:        PinyinHanyu,
	}

	_, err = client.ParseWithOptions(context.Background(), "測試", opts)
	require.NoError(t, err)

	assert.Equal(t, "v278", payload["version"])
	assert.Equal(t, "lv3", payload["level"])
	assert.Equal(t, map[string]interface{}{"過兒": "楊過"}, payload["user_defined_dict_file"])
	assert.Equal(t, true, payload["opendata_place"])
	assert.Equal(t, true, payload["wikidata"])
	assert.Equal(t, false, payload["chemical"])
	assert.Equal(t, "2026-08-25", payload["time_ref"])
	assert.Equal(t, "HANYU", payload["pinyin"])
}

func TestParseLevelWireCodes(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		level Level
		want  string
	}{
		{LevelLv1, "lv1"},
		{LevelLv2, "lv2"},
		{LevelLv3, "lv3"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var got string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var payload map[string]interface{}
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				got, _ = payload["level"].(string)
				json.NewEncoder(w).Encode(map[string]interface{}{"msg": "Success!"})
			}))
			defer server.Close()

			client, err := NewClient("user@example.com", "test-key", logger, WithEndpoint(server.URL))
			require.NoError(t, err)

			_, err = client.ParseWithOptions(context.Background(), "測試", RequestOptions{Level: tt.level})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseServiceErrors(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		msg     string
		wantErr error
	}{
		{"invalid version", "Specified version does not exist.", ErrInvalidVersion},
		{"invalid level", "Specified level does not exist.", ErrInvalidLevel},
		{"auth failed", "Authtication failed.", ErrAuthFailed},
		{"invalid key", "Invalid Articut key! Please log in to api.droidtown.co", ErrInvalidAPIKey},
		{"input too long", "Your input_str is too long. (over 2000 characters)", ErrInputTooLong},
		{"quota exhausted", "Insufficient word count balance!", ErrQuotaExhausted},
		{"internal error", "Internal server error.", ErrInternalServer},
		{"invalid content type", "Invalid content_type.", ErrInvalidContentType},
		{"invalid arguments", "Invalid arguments.", ErrInvalidArguments},
		{"dict parse failed", "UserDefinedDICT Parsing ERROR. Please check your dictionary file.", ErrDictParseFailed},
		{"dict too large", "Maximum UserDefinedDICT file size is 10 MB.", ErrDictTooLarge},
		{"rate limited", "Requests per minute exceeded. Please try again later.", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"status": false,
					"msg":    tt.msg,
				})
			}))
			defer server.Close()

			client, err := NewClient("user@example.com", "test-key", logger, WithEndpoint(server.URL))
			require.NoError(t, err)

			resp, err := client.Parse(context.Background(), "測試")
			assert.Nil(t, resp)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, IsNetworkError(err))
		})
	}
}

func TestParseUnknownMessageIsSuccess(t *testing.T) {
	logger := zerolog.Nop()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"msg":                 "Scheduled maintenance at 03:00 UTC.",
			"result_segmentation": "測試/",
			"word_count_balance":  -5,
		})
	}))
	defer server.Close()

	client, err := NewClient("user@example.com", "test-key", logger, WithEndpoint(server.URL))
	require.NoError(t, err)

	resp, err := client.Parse(context.Background(), "測試")
	require.NoError(t, err)
	assert.Equal(t, []string{"測試"}, resp.Segments())

	// Negative balances pass through untouched.
	assert.Equal(t, -5, resp.WordCountBalance)
}

func TestParseIgnoresHTTPStatus(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("error body on 500", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]interface{}{"msg": "Internal server error."})
		}))
		defer server.Close()

		client, err := NewClient("user@example.com", "test-key", logger, WithEndpoint(server.URL))
		require.NoError(t, err)

		_, err = client.Parse(context.Background(), "測試")
		assert.ErrorIs(t, err, ErrInternalServer)
	})

	t.Run("success body on 500", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"msg":                 "Success!",
				"result_segmentation": "測試/",
			})
		}))
		defer server.Close()

		client, err := NewClient("user@example.com", "test-key", logger, WithEndpoint(server.URL))
		require.NoError(t, err)

		resp, err := client.Parse(context.Background(), "測試")
		require.NoError(t, err)
		assert.Equal(t, []string{"測試"}, resp.Segments())
	})
}

func TestParseNetworkErrors(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client, err := NewClient("user@example.com", "test-key", logger, WithEndpoint(server.URL))
		require.NoError(t, err)

		resp, err := client.Parse(context.Background(), "測試")
		assert.Nil(t, resp)
		require.Error(t, err)
		assert.True(t, IsNetworkError(err))

		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Error(t, netErr.Unwrap())
	})

	t.Run("non-JSON body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html>502 Bad Gateway</html>"))
		}))
		defer server.Close()

		client, err := NewClient("user@example.com", "test-key", logger, WithEndpoint(server.URL))
		require.NoError(t, err)

		_, err = client.Parse(context.Background(), "測試")
		require.Error(t, err)
		assert.True(t, IsNetworkError(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"msg": "Success!"})
		}))
		defer server.Close()

		client, err := NewClient("user@example.com", "test-key", logger, WithEndpoint(server.URL))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = client.Parse(ctx, "測試")
		require.Error(t, err)
		assert.True(t, IsNetworkError(err))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestHTTPClientReuse(t *testing.T) {
	logger := zerolog.Nop()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"msg": "Success!"})
	}))
	defer server.Close()

	client, err := NewClient("user@example.com", "test-key", logger, WithEndpoint(server.URL))
	require.NoError(t, err)
	require.Nil(t, client.httpClient)

	_, err = client.Parse(context.Background(), "一")
	require.NoError(t, err)

	first := client.httpClient
	require.NotNil(t, first)

	_, err = client.Parse(context.Background(), "二")
	require.NoError(t, err)
	assert.Same(t, first, client.httpClient)
}
