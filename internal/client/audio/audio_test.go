package audio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrijs2005/fieldkeeper/internal/client/client"
	"github.com/dmitrijs2005/fieldkeeper/internal/common"
)

type recordingDevice struct {
	got []byte
	err error
}

func (d *recordingDevice) Open(data []byte) (Handle, error) {
	d.got = data
	if d.err != nil {
		return nil, d.err
	}
	return newNullHandle(time.Millisecond), nil
}

func audioServer(t *testing.T, status int, contentType, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPLoader_LoadsAudio(t *testing.T) {
	srv := audioServer(t, http.StatusOK, "audio/mpeg", "ID3fake")
	dev := &recordingDevice{}

	h, err := NewHTTPLoader(dev, time.Second).Load(context.Background(), srv.URL+"/api/tts?text=hi&language=en")
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, []byte("ID3fake"), dev.got)
	h.Release()
}

func TestHTTPLoader_Failures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		check       func(t *testing.T, err error)
	}{
		{
			name:        "client error",
			status:      http.StatusBadRequest,
			contentType: "application/json",
			body:        `{"error":"Text and language are required"}`,
			check: func(t *testing.T, err error) {
				var se *client.StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, http.StatusBadRequest, se.Code)
			},
		},
		{
			name:        "server error",
			status:      http.StatusInternalServerError,
			contentType: "application/json",
			body:        `{"error":"TTS failed"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, client.IsStatus(err, http.StatusInternalServerError))
			},
		},
		{
			name:        "json body with 200",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, common.ErrNotAudio)
			},
		},
		{
			name:   "missing content type",
			status: http.StatusOK,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, common.ErrNotAudio)
			},
		},
		{
			name:        "empty audio",
			status:      http.StatusOK,
			contentType: "audio/mpeg",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, common.ErrNotAudio)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := audioServer(t, tt.status, tt.contentType, tt.body)
			dev := &recordingDevice{}

			h, err := NewHTTPLoader(dev, time.Second).Load(context.Background(), srv.URL)
			require.Error(t, err)
			assert.Nil(t, h)
			assert.Nil(t, dev.got, "device must not see a failed response")
			tt.check(t, err)
		})
	}
}

func TestHTTPLoader_DecodeError(t *testing.T) {
	srv := audioServer(t, http.StatusOK, "audio/mpeg", "garbage")
	boom := errors.New("bad frame")

	_, err := NewHTTPLoader(&recordingDevice{err: boom}, time.Second).Load(context.Background(), srv.URL)
	require.ErrorIs(t, err, boom)
}

func TestHTTPLoader_TooLarge(t *testing.T) {
	srv := audioServer(t, http.StatusOK, "audio/mpeg", "0123456789")
	l := NewHTTPLoader(&recordingDevice{}, time.Second)
	l.maxBytes = 4

	_, err := l.Load(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "larger than 4 bytes")
}

func TestHTTPLoader_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPLoader(&recordingDevice{}, time.Second).Load(context.Background(), url)
	require.Error(t, err)
}

func TestNullHandle_CompletesNaturally(t *testing.T) {
	defer goleak.VerifyNone(t)

	h, err := NullDevice{Duration: 10 * time.Millisecond}.Open(nil)
	require.NoError(t, err)

	select {
	case <-h.Done():
		t.Fatal("done before play")
	default:
	}

	require.NoError(t, h.Play())
	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("playback never finished")
	}
	h.Release()
}

func TestNullHandle_StopIsImmediateAndIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	h, err := NullDevice{Duration: time.Hour}.Open(nil)
	require.NoError(t, err)
	require.NoError(t, h.Play())

	h.Stop()
	select {
	case <-h.Done():
	default:
		t.Fatal("Stop did not close Done")
	}
	h.Stop()
	h.Release()
	h.Release()
}

func TestNullHandle_StopBeforePlay(t *testing.T) {
	h := newNullHandle(time.Hour)
	h.Release()
	require.NoError(t, h.Play())
	<-h.Done()
	assert.Nil(t, h.timer, "released handle never arms its timer")
}
