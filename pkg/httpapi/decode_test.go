package httpapi_test

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openradius/raddecode/pkg/httpapi"
	"github.com/openradius/raddecode/pkg/radius/dictionary/builtin"
)

func decodeRequestBody(t *testing.T, payloadHex string, extra map[string]any) *bytes.Buffer {
	t.Helper()
	body := map[string]any{
		"payload": payloadHex,
		"secret":  "testing123",
		"vector":  "000102030405060708090a0b0c0d0e0f",
	}
	for k, v := range extra {
		body[k] = v
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return bytes.NewBuffer(raw)
}

func TestDecodeHandler_UserName(t *testing.T) {
	dict := builtin.New()
	r := httptest.NewRequest(http.MethodPost, "/decode", decodeRequestBody(t, hex.EncodeToString([]byte{0x01, 0x07, 'b', 'o', 'b', 'b', 'y'}), nil))
	w := httptest.NewRecorder()

	httpapi.NewDecodeHandler(dict).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Attributes []struct {
			Name        string `json:"name"`
			Value       any    `json:"value"`
			RawFallback bool   `json:"raw_fallback"`
		} `json:"attributes"`
		RawFallbacks int `json:"raw_fallback_count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	require.Len(t, resp.Attributes, 1)
	assert.Equal(t, "User-Name", resp.Attributes[0].Name)
	assert.Equal(t, "bobby", resp.Attributes[0].Value)
	assert.False(t, resp.Attributes[0].RawFallback)
	assert.Zero(t, resp.RawFallbacks)
}

func TestDecodeHandler_UserPasswordObfuscated(t *testing.T) {
	dict := builtin.New()
	// ciphertext of "hello" (zero-padded to 16 bytes) under secret
	// "testing123" and the fixed vector, type 2.
	payload := "0212fe8b65a61bfd7a1a104607240014828b"
	r := httptest.NewRequest(http.MethodPost, "/decode", decodeRequestBody(t, payload, nil))
	w := httptest.NewRecorder()

	httpapi.NewDecodeHandler(dict).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Attributes []struct {
			Name  string `json:"name"`
			Value any    `json:"value"`
		} `json:"attributes"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	require.Len(t, resp.Attributes, 1)
	assert.Equal(t, "User-Password", resp.Attributes[0].Name)
	assert.Equal(t, "hello", resp.Attributes[0].Value)
}

func TestDecodeHandler_InvalidHexPayload(t *testing.T) {
	dict := builtin.New()
	r := httptest.NewRequest(http.MethodPost, "/decode", decodeRequestBody(t, "not-hex", nil))
	w := httptest.NewRecorder()

	httpapi.NewDecodeHandler(dict).ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDecodeHandler_InvalidVectorLength(t *testing.T) {
	dict := builtin.New()
	r := httptest.NewRequest(http.MethodPost, "/decode", decodeRequestBody(t, "0107626f626279", map[string]any{"vector": "aabb"}))
	w := httptest.NewRecorder()

	httpapi.NewDecodeHandler(dict).ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDecodeHandler_UnknownAttributeFallsBackRaw(t *testing.T) {
	dict := builtin.New()
	// attribute 250 isn't in the builtin dictionary.
	r := httptest.NewRequest(http.MethodPost, "/decode", decodeRequestBody(t, "fa04cafe", nil))
	w := httptest.NewRecorder()

	httpapi.NewDecodeHandler(dict).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Attributes []struct {
			RawFallback bool `json:"raw_fallback"`
		} `json:"attributes"`
		RawFallbacks int `json:"raw_fallback_count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Attributes, 1)
	assert.True(t, resp.Attributes[0].RawFallback)
	assert.Equal(t, 1, resp.RawFallbacks)
}

func TestNewRouter_Health(t *testing.T) {
	dict := builtin.New()
	router := httpapi.NewRouter(dict)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewRouter_Decode(t *testing.T) {
	dict := builtin.New()
	router := httpapi.NewRouter(dict)

	r := httptest.NewRequest(http.MethodPost, "/decode", decodeRequestBody(t, "0107626f626279", nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}
