package project

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDocument_KeepsPayloadVerbatim(t *testing.T) {
	payload := `{"region":"Causses","gardiens":[{"nom":"Jeanne","fonction":"bergère"}],"episode_data":{"fete":"Transhumance"}}`

	doc, err := ParseDocument([]byte("  " + payload + "\n"))
	require.NoError(t, err)
	require.Equal(t, payload, string(doc.Raw()))
	require.Equal(t, "Causses", doc.String("region"))
	require.Empty(t, doc.String("gardiens"))

	gardiens, ok := doc.Fields()["gardiens"].([]any)
	require.True(t, ok)
	require.Len(t, gardiens, 1)
}

func TestDocument_ZeroValue(t *testing.T) {
	var doc Document
	require.True(t, doc.IsZero())
	require.Equal(t, "{}", string(doc.Raw()))
	require.NotNil(t, doc.Fields())

	data, err := json.Marshal(struct {
		FormData Document `json:"form_data"`
	}{})
	require.NoError(t, err)
	require.JSONEq(t, `{"form_data":{}}`, string(data))
}

func TestDocument_ScanAndValue(t *testing.T) {
	var doc Document
	require.NoError(t, doc.Scan(`{"pays":"France"}`))
	require.Equal(t, "France", doc.String("pays"))

	value, err := doc.Value()
	require.NoError(t, err)
	require.Equal(t, `{"pays":"France"}`, value)

	require.NoError(t, doc.Scan([]byte(`{"pays":"Maroc"}`)))
	require.Equal(t, "Maroc", doc.String("pays"))

	require.Error(t, doc.Scan(42))
	require.Error(t, doc.Scan("[]"))
}

func TestDocument_JSONRoundTrip(t *testing.T) {
	var wrapper struct {
		FormData Document `json:"form_data"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"form_data":{"region":"Jura","n":3}}`), &wrapper))
	require.Equal(t, "Jura", wrapper.FormData.String("region"))

	out, err := json.Marshal(wrapper)
	require.NoError(t, err)
	require.JSONEq(t, `{"form_data":{"region":"Jura","n":3}}`, string(out))
}
