package domain

import (
	"encoding/json"
	"time"
)

// Event names sent to clients. Negotiation payloads (offer, answer,
// candidate) are opaque blobs the coordinator forwards verbatim.
const (
	EventRoster               = "roster"
	EventMeetingJoined        = "meetingJoined"
	EventExistingParticipants = "existingParticipants"
	EventParticipantJoined    = "participantJoined"
	EventParticipantLeft      = "participantLeft"
	EventIncomingCall         = "incomingCall"
	EventCallAnswered         = "callAnswered"
	EventIceCandidate         = "iceCandidate"
	EventCallRejected         = "callRejected"
	EventCallEnded            = "callEnded"
	EventRoomError            = "roomError"
	EventPeerDisconnected     = "peerDisconnected"
	EventChatMessage          = "chatMessage"
	EventChatHistory          = "chatHistory"
)

// Event is one server-to-client message: a name plus a JSON-encodable
// payload. Delivery is fire and forget.
type Event struct {
	Name string
	Data any
}

type RosterEntry struct {
	ConnectionID string `json:"connectionId"`
	DisplayName  string `json:"displayName"`
}

type ParticipantInfo struct {
	ConnectionID string    `json:"connectionId"`
	DisplayName  string    `json:"displayName"`
	JoinedAt     time.Time `json:"joinedAt"`
}

type MeetingJoinedData struct {
	RoomID       string            `json:"roomId"`
	Participants []ParticipantInfo `json:"participants"`
}

type ExistingParticipantsData struct {
	Participants []ParticipantInfo `json:"participants"`
}

type ParticipantJoinedData struct {
	Participant       ParticipantInfo `json:"participant"`
	TotalParticipants int             `json:"totalParticipants"`
}

type ParticipantLeftData struct {
	ConnectionID      string `json:"connectionId"`
	DisplayName       string `json:"displayName"`
	TotalParticipants int    `json:"totalParticipants"`
}

type IncomingCallData struct {
	From            string          `json:"from"`
	FromDisplayName string          `json:"fromDisplayName"`
	Offer           json.RawMessage `json:"offer"`
	RoomID          string          `json:"roomId,omitempty"`
}

type CallAnsweredData struct {
	From   string          `json:"from"`
	Answer json.RawMessage `json:"answer"`
}

type IceCandidateData struct {
	From      string          `json:"from"`
	Candidate json.RawMessage `json:"candidate"`
}

type CallPeerData struct {
	From string `json:"from"`
}

type RoomErrorData struct {
	Message string `json:"message"`
}

type PeerDisconnectedData struct {
	ConnectionID string `json:"connectionId"`
}

type ChatMessageData struct {
	From            string    `json:"from"`
	FromDisplayName string    `json:"fromDisplayName"`
	Text            string    `json:"text"`
	SentAt          time.Time `json:"sentAt"`
}

type ChatHistoryData struct {
	Messages []ChatMessageData `json:"messages"`
}

func ParticipantInfoOf(p Participant) ParticipantInfo {
	return ParticipantInfo{
		ConnectionID: p.ConnectionID.String(),
		DisplayName:  p.DisplayName,
		JoinedAt:     p.JoinedAt,
	}
}

func ParticipantInfosOf(ps []Participant) []ParticipantInfo {
	out := make([]ParticipantInfo, 0, len(ps))
	for _, p := range ps {
		out = append(out, ParticipantInfoOf(p))
	}
	return out
}
