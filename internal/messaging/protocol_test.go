package messaging

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
)

func TestReadMessage(t *testing.T) {
	tests := []struct {
		name    string
		input   func() io.Reader
		want    *Message
		wantErr bool
		errMsg  string
	}{
		{
			name: "getFile with single name",
			input: func() io.Reader {
				return createRawReader(t, `{"action":"getFile","callbackId":"T1","arguments":["pdf"]}`)
			},
			want: &Message{Action: "getFile", CallbackID: "T1", Arguments: []any{"pdf"}},
		},
		{
			name: "getFile with name list",
			input: func() io.Reader {
				return createRawReader(t, `{"action":"getFile","callbackId":"T2","arguments":[["pdf","image"],"video"]}`)
			},
			want: &Message{
				Action:     "getFile",
				CallbackID: "T2",
				Arguments:  []any{[]any{"pdf", "image"}, "video"},
			},
		},
		{
			name: "ping",
			input: func() io.Reader {
				return createMessageReader(t, Message{Action: "ping"})
			},
			want: &Message{Action: "ping"},
		},
		{
			name: "empty reader (EOF)",
			input: func() io.Reader {
				return bytes.NewReader(nil)
			},
			wantErr: true,
		},
		{
			name: "zero length",
			input: func() io.Reader {
				buf := make([]byte, 4)
				binary.LittleEndian.PutUint32(buf, 0)
				return bytes.NewReader(buf)
			},
			wantErr: true,
			errMsg:  "invalid message length: 0",
		},
		{
			name: "message too large",
			input: func() io.Reader {
				buf := make([]byte, 4)
				binary.LittleEndian.PutUint32(buf, MaxMessageSize+1)
				return bytes.NewReader(buf)
			},
			wantErr: true,
			errMsg:  "message too large",
		},
		{
			name: "truncated body",
			input: func() io.Reader {
				buf := make([]byte, 4)
				binary.LittleEndian.PutUint32(buf, 100) // says 100 bytes
				buf = append(buf, []byte("short")...)   // only 5 bytes
				return bytes.NewReader(buf)
			},
			wantErr: true,
			errMsg:  "failed to read message body",
		},
		{
			name: "invalid JSON",
			input: func() io.Reader {
				return createRawReader(t, "not valid json")
			},
			wantErr: true,
			errMsg:  "failed to unmarshal message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadMessage(tt.input())
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ReadMessage() expected error, got nil")
				}
				if tt.errMsg != "" && !bytes.Contains([]byte(err.Error()), []byte(tt.errMsg)) {
					t.Errorf("ReadMessage() error = %v, want error containing %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadMessage() unexpected error: %v", err)
			}
			if got.Action != tt.want.Action || got.CallbackID != tt.want.CallbackID {
				t.Errorf("ReadMessage() = %+v, want %+v", got, tt.want)
			}
			if len(got.Arguments) != len(tt.want.Arguments) {
				t.Fatalf("ReadMessage() arguments = %v, want %v", got.Arguments, tt.want.Arguments)
			}
		})
	}
}

func TestReadMessage_EOFIsUnwrapped(t *testing.T) {
	_, err := ReadMessage(bytes.NewReader(nil))
	if err != io.EOF {
		t.Errorf("ReadMessage() on empty input = %v, want io.EOF", err)
	}
}

func TestReadMessageLimit(t *testing.T) {
	body := `{"action":"ping"}`
	if _, err := ReadMessageLimit(createRawReader(t, body), uint32(len(body))-1); err == nil {
		t.Error("ReadMessageLimit() expected size error, got nil")
	}
	if _, err := ReadMessageLimit(createRawReader(t, body), uint32(len(body))); err != nil {
		t.Errorf("ReadMessageLimit() unexpected error at exact limit: %v", err)
	}
}

func TestWriteMessage(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want map[string]any
	}{
		{
			name: "success response",
			resp: OK("T1", "file:///a.pdf"),
			want: map[string]any{"callbackId": "T1", "status": "OK", "payload": "file:///a.pdf"},
		},
		{
			name: "error response",
			resp: Error("T2", errors.New("User canceled.")),
			want: map[string]any{"callbackId": "T2", "status": "ERROR", "payload": "User canceled."},
		},
		{
			name: "no callback id",
			resp: Response{Status: StatusOK, Payload: "pong"},
			want: map[string]any{"status": "OK", "payload": "pong"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteMessage(&buf, tt.resp); err != nil {
				t.Fatalf("WriteMessage() unexpected error: %v", err)
			}

			data := buf.Bytes()
			if len(data) < 4 {
				t.Fatalf("WriteMessage() output too short: %d bytes", len(data))
			}

			length := binary.LittleEndian.Uint32(data[:4])
			if int(length) != len(data)-4 {
				t.Errorf("WriteMessage() length mismatch: header says %d, actual body is %d", length, len(data)-4)
			}

			var parsed map[string]any
			if err := sonic.Unmarshal(data[4:], &parsed); err != nil {
				t.Fatalf("WriteMessage() produced invalid JSON: %v", err)
			}
			if len(parsed) != len(tt.want) {
				t.Errorf("WriteMessage() fields = %v, want %v", parsed, tt.want)
			}
			for k, v := range tt.want {
				if parsed[k] != v {
					t.Errorf("WriteMessage() %s = %v, want %v", k, parsed[k], v)
				}
			}
		})
	}
}

func TestLittleEndianEncoding(t *testing.T) {
	// Chrome requires little-endian length prefixes
	var buf bytes.Buffer
	if err := WriteMessage(&buf, OK("", "")); err != nil {
		t.Fatalf("WriteMessage() error: %v", err)
	}

	data := buf.Bytes()
	length := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24

	expected := binary.LittleEndian.Uint32(data[:4])
	if length != expected {
		t.Errorf("Not little-endian: manual=%d, binary.LittleEndian=%d", length, expected)
	}
}

func TestChannel_ConcurrentSends(t *testing.T) {
	var buf bytes.Buffer
	ch := NewChannel(&buf)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ch.Send(OK("T", "file:///some/long/path/to/a/document.pdf")); err != nil {
				t.Errorf("Send() error: %v", err)
			}
		}()
	}
	wg.Wait()

	// Every frame must decode cleanly if writes did not interleave
	r := bytes.NewReader(buf.Bytes())
	for i := 0; i < n; i++ {
		var length uint32
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			t.Fatalf("frame %d: read length: %v", i, err)
		}
		body := make([]byte, length)
		if _, err := io.ReadFull(r, body); err != nil {
			t.Fatalf("frame %d: read body: %v", i, err)
		}
		var resp Response
		if err := sonic.Unmarshal(body, &resp); err != nil {
			t.Fatalf("frame %d: decode: %v", i, err)
		}
		if resp.Status != StatusOK {
			t.Errorf("frame %d: status = %s", i, resp.Status)
		}
	}
	if r.Len() != 0 {
		t.Errorf("%d trailing bytes after %d frames", r.Len(), n)
	}
}

// Helper to create a properly formatted message reader
func createMessageReader(t *testing.T, msg Message) io.Reader {
	t.Helper()
	data, err := sonic.Marshal(msg)
	if err != nil {
		t.Fatalf("Failed to marshal test message: %v", err)
	}
	return createRawReader(t, string(data))
}

func createRawReader(t *testing.T, body string) io.Reader {
	t.Helper()
	buf := make([]byte, 4+len(body))
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(body)))
	copy(buf[4:], body)
	return bytes.NewReader(buf)
}
