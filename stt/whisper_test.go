package stt

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsingh-rishi/reflect-relay/llm"
	"github.com/mrsingh-rishi/reflect-relay/types"
)

const verboseResponse = `{
	"task": "transcribe",
	"language": "hebrew",
	"duration": 12.5,
	"text": "shalom, ma shlomcha?",
	"segments": [
		{"id": 0, "seek": 0, "start": 0.0, "end": 4.2, "text": "shalom,"},
		{"id": 1, "seek": 0, "start": 4.2, "end": 12.5, "text": " ma shlomcha?"}
	]
}`

type capturedForm struct {
	fields   map[string]string
	filename string
	audio    string
}

func newWhisperServer(t *testing.T, status int, body string) (*WhisperClient, *capturedForm) {
	t.Helper()
	form := &capturedForm{fields: map[string]string{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for k, v := range r.MultipartForm.Value {
			form.fields[k] = v[0]
		}
		if files := r.MultipartForm.File["file"]; len(files) > 0 {
			form.filename = files[0].Filename
			if f, err := files[0].Open(); assert.NoError(t, err) {
				data, _ := io.ReadAll(f)
				f.Close()
				form.audio = string(data)
			}
		}
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return NewWhisperClient(llm.NewAPIClient("test-key", srv.URL+"/v1", 0), ""), form
}

func TestTranscribeAudio(t *testing.T) {
	client, form := newWhisperServer(t, http.StatusOK, verboseResponse)

	tr, err := client.TranscribeAudio(t.Context(), strings.NewReader("RIFF...."), types.TranscribeOptions{
		Filename: "meeting.m4a",
		Language: "he",
	})
	require.NoError(t, err)

	assert.Equal(t, "shalom, ma shlomcha?", tr.Text)
	assert.Equal(t, "hebrew", tr.Language)
	assert.InDelta(t, 12.5, tr.Duration, 0.0001)
	require.Len(t, tr.Segments, 2)
	assert.Equal(t, " ma shlomcha?", tr.Segments[1].Text)

	assert.Equal(t, "whisper-1", form.fields["model"])
	assert.Equal(t, "verbose_json", form.fields["response_format"])
	assert.Equal(t, "he", form.fields["language"])
	assert.Equal(t, "meeting.m4a", form.filename)
	assert.Equal(t, "RIFF....", form.audio)
}

func TestTranscribeAudioAutoLanguage(t *testing.T) {
	client, form := newWhisperServer(t, http.StatusOK, verboseResponse)

	_, err := client.TranscribeAudio(t.Context(), strings.NewReader("data"), types.TranscribeOptions{Language: "auto"})
	require.NoError(t, err)

	_, ok := form.fields["language"]
	assert.False(t, ok, "language must not be sent for auto detection")
	assert.Equal(t, DefaultFilename, form.filename)
}

func TestTranscribeAudioProviderError(t *testing.T) {
	client, _ := newWhisperServer(t, http.StatusBadRequest, `{"error":{"message":"Invalid file format.","type":"invalid_request_error"}}`)

	_, err := client.TranscribeAudio(t.Context(), strings.NewReader("data"), types.TranscribeOptions{})

	var pe *llm.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusBadRequest, pe.Status)
	assert.Equal(t, "Invalid file format.", pe.Message)
}
