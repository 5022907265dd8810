package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openairt "github.com/WqyJh/go-openai-realtime"
	"github.com/dooshek/celebcast/internal/types"
	"github.com/gorilla/websocket"
)

// newRealtimeServer answers the three client events of one GetAudio call with
// the given server events, then drains the connection until it closes.
func newRealtimeServer(t *testing.T, events ...string) (*RealtimeTTSProvider, <-chan string) {
	t.Helper()

	received := make(chan string, 3)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		for i := 0; i < 3; i++ {
			_, data, err := conn.ReadMessage()
			if err != nil {
				t.Errorf("read client event: %v", err)
				return
			}
			var ev struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(data, &ev); err != nil {
				t.Errorf("decode client event: %v", err)
				return
			}
			received <- ev.Type
		}

		for _, ev := range events {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(ev)); err != nil {
				t.Errorf("write server event: %v", err)
				return
			}
		}

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	cfg := openairt.DefaultConfig("test-key")
	cfg.BaseURL = "ws" + strings.TrimPrefix(srv.URL, "http")
	return NewRealtimeTTSProviderWithConfig(cfg, RealtimeConfig{}), received
}

func audioDelta(id string, pcm []byte) string {
	return `{"type":"response.audio.delta","event_id":"` + id + `","response_id":"r1","item_id":"i1","output_index":0,"content_index":0,"delta":"` +
		base64.StdEncoding.EncodeToString(pcm) + `"}`
}

const responseDone = `{"type":"response.done","event_id":"done","response":{"id":"r1","object":"realtime.response","status":"completed"}}`

func TestRealtimeProviderCollectsAudioDeltas(t *testing.T) {
	p, received := newRealtimeServer(t,
		`{"type":"response.created","event_id":"e0","response":{"id":"r1","object":"realtime.response","status":"in_progress"}}`,
		audioDelta("e1", []byte{0x00, 0x80}),
		audioDelta("e2", []byte{0xff, 0x7f}),
		responseDone,
	)

	audio, err := p.GetAudio(context.Background(), SpeechRequest{Text: "Breaking news", VoiceName: "Puck", StyleHint: "Celebrity Gossip"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, _ := base64.StdEncoding.DecodeString(audio)
	if string(raw) != "\x00\x80\xff\x7f" {
		t.Fatalf("unexpected pcm %v", raw)
	}

	for _, want := range []string{"session.update", "conversation.item.create", "response.create"} {
		if got := <-received; got != want {
			t.Fatalf("expected client event %s, got %s", want, got)
		}
	}
}

func TestRealtimeProviderDoneWithoutAudioIsError(t *testing.T) {
	p, _ := newRealtimeServer(t, responseDone)

	audio, err := p.GetAudio(context.Background(), SpeechRequest{Text: "Hello", VoiceName: "Kore"})
	var rerr *types.RemoteRequestError
	if !errors.As(err, &rerr) || rerr.Service != "speech" {
		t.Fatalf("expected speech RemoteRequestError, got %v", err)
	}
	if audio != "" {
		t.Fatalf("expected no audio, got %q", audio)
	}
}

func TestRealtimeProviderErrorEvent(t *testing.T) {
	p, _ := newRealtimeServer(t,
		`{"type":"error","event_id":"e3","error":{"type":"invalid_request_error","message":"bad voice"}}`,
	)

	_, err := p.GetAudio(context.Background(), SpeechRequest{Text: "Hello", VoiceName: "Kore"})
	var rerr *types.RemoteRequestError
	if !errors.As(err, &rerr) || rerr.Service != "speech" {
		t.Fatalf("expected speech RemoteRequestError, got %v", err)
	}
	if !strings.Contains(err.Error(), "bad voice") {
		t.Fatalf("expected remote message in error, got %v", err)
	}
}
