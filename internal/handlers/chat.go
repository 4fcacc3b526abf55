package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meshackowase-commits/HOSTESserch/internal/api/middleware"
	"github.com/meshackowase-commits/HOSTESserch/internal/booking"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

// ChatRoomListResponse represents the chat rooms list response.
type ChatRoomListResponse struct {
	Rooms []models.ChatRoom `json:"rooms"`
	Total int               `json:"total"`
}

// MessagesResponse represents a page of messages, newest first.
type MessagesResponse struct {
	Room     models.ChatRoom  `json:"room"`
	Messages []models.Message `json:"messages"`
	HasMore  bool             `json:"has_more"`
}

// PostMessageRequest represents the post message request.
type PostMessageRequest struct {
	Content     string  `json:"content"`
	MessageType *string `json:"message_type,omitempty"`
}

// ListChatRooms lists the rooms the caller takes part in.
func (h *Handler) ListChatRooms(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfileFromContext(r.Context())
	rooms, err := h.store.ListChatRooms(r.Context(), actor.UserID)
	if err != nil {
		h.Fail(w, storeErr("list chat rooms", err))
		return
	}
	h.JSON(w, http.StatusOK, ChatRoomListResponse{Rooms: rooms, Total: len(rooms)})
}

// CreateChatRoom opens a room between a student and a landlord. The caller
// must be one of them unless they are an admin.
func (h *Handler) CreateChatRoom(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfileFromContext(r.Context())

	var in models.ChatRoomInsert
	if !h.decode(w, r, &in) {
		return
	}
	if actor.Role != models.RoleAdmin && in.StudentID != actor.UserID && in.LandlordID != actor.UserID {
		h.Fail(w, booking.ErrForbidden)
		return
	}

	room, err := h.store.InsertChatRoom(r.Context(), in)
	if err != nil {
		h.Fail(w, storeErr("create chat room", err))
		return
	}
	h.JSON(w, http.StatusCreated, room)
}

// ListMessages returns a page of a room's messages. Pass the id of the
// oldest message seen as before to page back.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	room, ok := h.participantRoom(w, r)
	if !ok {
		return
	}

	limit := queryInt(r, "limit", 50, 200)
	before := r.URL.Query().Get("before")

	// Fetch one extra to check if there are more
	messages, err := h.store.ListMessages(r.Context(), room.ID, limit+1, before)
	if err != nil {
		h.Fail(w, storeErr("list messages", err))
		return
	}
	hasMore := len(messages) > limit
	if hasMore {
		messages = messages[:limit]
	}
	h.JSON(w, http.StatusOK, MessagesResponse{Room: *room, Messages: messages, HasMore: hasMore})
}

// PostMessage adds a message to a room as the caller.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	room, ok := h.participantRoom(w, r)
	if !ok {
		return
	}

	var req PostMessageRequest
	if !h.decode(w, r, &req) {
		return
	}
	msg, err := h.store.InsertMessage(r.Context(), models.MessageInsert{
		RoomID:      room.ID,
		SenderID:    middleware.GetProfileFromContext(r.Context()).UserID,
		Content:     req.Content,
		MessageType: req.MessageType,
	})
	if err != nil {
		h.Fail(w, storeErr("post message", err))
		return
	}
	h.JSON(w, http.StatusCreated, msg)
}

// participantRoom loads the room in the URL and checks the caller is in it.
func (h *Handler) participantRoom(w http.ResponseWriter, r *http.Request) (*models.ChatRoom, bool) {
	actor := middleware.GetProfileFromContext(r.Context())
	room, err := h.store.GetChatRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Fail(w, storeErr("load chat room", err))
		return nil, false
	}
	if room == nil {
		h.Fail(w, errNotFound)
		return nil, false
	}
	if !room.HasParticipant(actor.UserID) {
		h.Fail(w, booking.ErrForbidden)
		return nil, false
	}
	return room, true
}
