package ws

import (
	"bytes"
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/playmatatu/billiards/internal/session"
	"github.com/vmihailenco/msgpack/v5"
)

// Wire formats a client can ask for with ?format=.
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// Message types
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type AimData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ShootData struct {
	Angle float64 `json:"angle"`
	Power float64 `json:"power"`
}

type frameMessage struct {
	Type  string        `json:"type"`
	Frame session.Frame `json:"frame"`
}

type shotMessage struct {
	Type string              `json:"type"`
	Shot session.ShotSummary `json:"shot"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newFrameMessage(f session.Frame) frameMessage {
	return frameMessage{Type: "frame", Frame: f}
}

func newShotMessage(s session.ShotSummary) shotMessage {
	return shotMessage{Type: "shot_settled", Shot: s}
}

func parseFormat(raw string) string {
	if raw == FormatMsgpack {
		return FormatMsgpack
	}
	return FormatJSON
}

// encode serialises v for the given wire format. msgpack reuses the json
// struct tags so both formats carry the same field names.
func encode(format string, v interface{}) ([]byte, error) {
	if format != FormatMsgpack {
		return json.Marshal(v)
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func messageType(format string) int {
	if format == FormatMsgpack {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}
