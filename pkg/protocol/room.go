package protocol

type RoomID = string

// ConnID identifies a single websocket connection. It is assigned by the
// server on upgrade and never reused.
type ConnID = string

type SkipDirection string

const (
	SkipForward  SkipDirection = "forward"
	SkipBackward SkipDirection = "backward"
)

func (d SkipDirection) Valid() bool {
	return d == SkipForward || d == SkipBackward
}

type RoomCreateOption struct {
	// RoomID may be nil or empty, in which case the server generates one.
	RoomID   *string
	VideoID  string
	Password string
}

// RoomInfo is the privacy-limited directory projection of a room. It never
// carries the password or per-participant data.
type RoomInfo struct {
	RoomID      RoomID `json:"roomId"`
	DisplayName string `json:"displayName"`
	IsLocked    bool   `json:"isLocked"`
}

type RoomPage struct {
	Rooms       []RoomInfo `json:"rooms"`
	HasNextPage bool       `json:"hasNextPage"`
}
