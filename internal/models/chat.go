package models

import (
	"strings"
	"time"
)

// ChatRoom is a conversation between one student and one landlord,
// optionally about a specific hostel.
type ChatRoom struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	LandlordID string    `json:"landlord_id"`
	HostelID   *string   `json:"hostel_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// HasParticipant reports whether userID is one side of the room.
func (r *ChatRoom) HasParticipant(userID string) bool {
	return r.StudentID == userID || r.LandlordID == userID
}

func (r *ChatRoom) Validate() error {
	errs := ValidationErrors{}
	checkNotBlank(errs, "student_id", &r.StudentID)
	checkNotBlank(errs, "landlord_id", &r.LandlordID)
	if r.StudentID != "" && r.StudentID == r.LandlordID {
		errs.Add("landlord_id", "must differ from student_id")
	}
	return errs.OrNil()
}

type ChatRoomInsert struct {
	StudentID  string  `json:"student_id" validate:"notblank"`
	LandlordID string  `json:"landlord_id" validate:"notblank"`
	HostelID   *string `json:"hostel_id,omitempty"`
}

func (in *ChatRoomInsert) Validate() error {
	errs := ValidateStruct(in)
	if in.StudentID != "" && in.StudentID == in.LandlordID {
		errs.Add("landlord_id", "must differ from student_id")
	}
	return errs.OrNil()
}

func (in *ChatRoomInsert) Row(id string, now time.Time) *ChatRoom {
	return &ChatRoom{
		ID:         id,
		StudentID:  in.StudentID,
		LandlordID: in.LandlordID,
		HostelID:   cloneString(in.HostelID),
		CreatedAt:  now,
	}
}

type ChatRoomUpdate struct {
	StudentID  *string `json:"student_id,omitempty"`
	LandlordID *string `json:"landlord_id,omitempty"`
	HostelID   *string `json:"hostel_id,omitempty"`
}

func (u *ChatRoomUpdate) Validate() error {
	errs := ValidationErrors{}
	checkNotBlank(errs, "student_id", u.StudentID)
	checkNotBlank(errs, "landlord_id", u.LandlordID)
	return errs.OrNil()
}

func (u *ChatRoomUpdate) IsEmpty() bool {
	return *u == ChatRoomUpdate{}
}

func (u *ChatRoomUpdate) Apply(r *ChatRoom) {
	setIf(&r.StudentID, u.StudentID)
	setIf(&r.LandlordID, u.LandlordID)
	setPtrIf(&r.HostelID, u.HostelID)
}

// Message is a persisted chat message. Delivery is not real-time; clients
// poll the room's message list.
type Message struct {
	ID          string    `json:"id"` // ULID
	RoomID      string    `json:"room_id"`
	SenderID    string    `json:"sender_id"`
	Content     string    `json:"content"`
	MessageType string    `json:"message_type"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m *Message) Validate() error {
	errs := ValidationErrors{}
	checkNotBlank(errs, "room_id", &m.RoomID)
	checkNotBlank(errs, "sender_id", &m.SenderID)
	checkNotBlank(errs, "content", &m.Content)
	return errs.OrNil()
}

type MessageInsert struct {
	RoomID      string  `json:"room_id" validate:"notblank"`
	SenderID    string  `json:"sender_id" validate:"notblank"`
	Content     string  `json:"content" validate:"notblank,max=4000"`
	MessageType *string `json:"message_type,omitempty" validate:"omitempty,max=32"`
}

func (in *MessageInsert) Validate() error {
	return ValidateStruct(in).OrNil()
}

// Row applies the insert defaults. Content is trimmed and message_type
// defaults to text.
func (in *MessageInsert) Row(id string, now time.Time) *Message {
	m := &Message{
		ID:          id,
		RoomID:      in.RoomID,
		SenderID:    in.SenderID,
		Content:     strings.TrimSpace(in.Content),
		MessageType: MessageTypeText,
		CreatedAt:   now,
	}
	if in.MessageType != nil && strings.TrimSpace(*in.MessageType) != "" {
		m.MessageType = *in.MessageType
	}
	return m
}

type MessageUpdate struct {
	Content     *string `json:"content,omitempty" validate:"omitempty,max=4000"`
	MessageType *string `json:"message_type,omitempty" validate:"omitempty,max=32"`
}

func (u *MessageUpdate) Validate() error {
	errs := ValidateStruct(u)
	checkNotBlank(errs, "content", u.Content)
	return errs.OrNil()
}

func (u *MessageUpdate) IsEmpty() bool {
	return *u == MessageUpdate{}
}

func (u *MessageUpdate) Apply(m *Message) {
	if u.Content != nil {
		m.Content = strings.TrimSpace(*u.Content)
	}
	setIf(&m.MessageType, u.MessageType)
}
