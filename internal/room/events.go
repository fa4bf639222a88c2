package room

import "github.com/syncroom/sync-server/pkg/protocol"

// Inbound event names.
const (
	EvCreateRoom        = "create_room"
	EvJoinRoom          = "join_room"
	EvLeaveRoom         = "leave_room"
	EvGetRoomInfo       = "get_room_info"
	EvGetRoomList       = "get_room_list"
	EvHostTimeUpdate    = "host_current_time_update"
	EvChangeVideo       = "change_video"
	EvAddRecommendVideo = "add_recommend_video"
	EvVideoEnded        = "video_ended"
	EvBoreVote          = "bore_vote"
	EvSkipRequest       = "skip_request"
)

// Outbound event names. Play, pause and seek share the same name in both
// directions, chat_message as well.
const (
	EvVideoPlay             = "video_play"
	EvVideoPause            = "video_pause"
	EvVideoSeek             = "video_seek"
	EvChatMessage           = "chat_message"
	EvRoomCreated           = "room_created"
	EvRoomData              = "room_data"
	EvError                 = "error"
	EvRoomInfo              = "room_info"
	EvRoomList              = "room_list"
	EvUserListUpdate        = "user_list_update"
	EvVideoChanged          = "video_changed"
	EvRecommendQueueUpdated = "recommend_queue_updated"
	EvBoreVoteUpdate        = "bore_vote_update"
	EvSkipCountsUpdate      = "skip_counts_update"
	EvRoomClosed            = "room_closed"
	EvUpdateRooms           = "update-rooms"
)

type createRoomRequest struct {
	RoomID   string `json:"roomId"`
	VideoID  string `json:"videoId"`
	Password string `json:"password,omitempty"`
}

type joinRoomRequest struct {
	RoomID   string `json:"roomId"`
	Nickname string `json:"nickname"`
	Password string `json:"password,omitempty"`
}

type roomIDRequest struct {
	RoomID string `json:"roomId"`
}

type roomListRequest struct {
	Page int `json:"page,omitempty"`
}

type hostTimeUpdateRequest struct {
	RoomID      string  `json:"roomId"`
	CurrentTime float64 `json:"currentTime"`
}

type seekRequest struct {
	RoomID string  `json:"roomId"`
	Time   float64 `json:"time"`
}

type changeVideoRequest struct {
	RoomID     string `json:"roomId"`
	NewVideoID string `json:"newVideoId"`
}

type addRecommendVideoRequest struct {
	RoomID  string `json:"roomId"`
	VideoID string `json:"videoId"`
}

type skipVoteRequest struct {
	RoomID    string                 `json:"roomId"`
	Direction protocol.SkipDirection `json:"direction"`
}

type chatMessageRequest struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

type roomCreatedEvent struct {
	RoomID protocol.RoomID `json:"roomId"`
}

type errorEvent struct {
	Message string `json:"message"`
}

type roomInfoEvent struct {
	IsLocked bool `json:"isLocked"`
}

type seekEvent struct {
	Time float64 `json:"time"`
}

type skipCounts struct {
	Forward  int `json:"forward"`
	Backward int `json:"backward"`
}

type videoChangedEvent struct {
	VideoID     string     `json:"videoId"`
	CurrentTime float64    `json:"currentTime"`
	IsPlaying   bool       `json:"isPlaying"`
	SkipCounts  skipCounts `json:"skipCounts"`
}

type chatMessageEvent struct {
	Nickname string `json:"nickname"`
	Message  string `json:"message"`
}

// roomDataEvent is the full state handed to a participant right after join.
type roomDataEvent struct {
	RoomID      protocol.RoomID `json:"roomId"`
	VideoID     string          `json:"videoId"`
	CurrentTime float64         `json:"currentTime"`
	IsPlaying   bool            `json:"isPlaying"`
	IsLocked    bool            `json:"isLocked"`
	Users       []string        `json:"users"`
	SkipCounts  skipCounts      `json:"skipCounts"`
	BoreCount   int             `json:"boreCount"`
	Queue       []string        `json:"queue"`
}
