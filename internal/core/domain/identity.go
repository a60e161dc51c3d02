package domain

// Identity is the record the coordinator keeps for one live connection.
// DisplayName is user supplied and not unique. RoomID is zero until the
// connection joins a room.
type Identity struct {
	ConnectionID ConnectionID
	DisplayName  string
	RoomID       RoomID
}

func (i Identity) InRoom() bool {
	return !i.RoomID.IsZero()
}
