package service

import (
	"context"
	"fmt"
	"math"

	"github.com/hilthontt/chatrelay/internal/domain"
)

const (
	DefaultPageSize = 50
	minPageSize     = 1
	maxPageSize     = 100

	// maxPageNo keeps pageNo*pageSize inside int range for any legal pageSize.
	maxPageNo = math.MaxInt / maxPageSize
)

// Page is one bounded, newest-first slice of a room's history plus the
// metadata clients need to fetch adjacent slices.
type Page struct {
	Content       []domain.Message `json:"content"`
	PageNo        int              `json:"pageNo"`
	PageSize      int              `json:"pageSize"`
	TotalElements int64            `json:"totalElements"`
	TotalPages    int              `json:"totalPages"`
	Last          bool             `json:"last"`
}

type HistoryService struct {
	messages domain.MessageRepository
}

func NewHistoryService(messages domain.MessageRepository) *HistoryService {
	return &HistoryService{
		messages: messages,
	}
}

// GetMessagesOfRoom returns one page of the room's messages, timestamp
// descending. Page inputs are clamped silently: pageNo held to [0, maxPageNo]
// so the skip product cannot overflow, pageSize held to [1,100]. A room with
// no messages (or an unknown room id) yields an empty page, not an error.
func (s *HistoryService) GetMessagesOfRoom(ctx context.Context, roomID string, pageNo, pageSize int) (*Page, error) {
	if pageNo < 0 {
		pageNo = 0
	}
	if pageNo > maxPageNo {
		pageNo = maxPageNo
	}
	if pageSize < minPageSize {
		pageSize = minPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	messages, err := s.messages.FindByRoomID(ctx, roomID, pageNo, pageSize)
	if err != nil {
		return nil, fmt.Errorf("querying messages of room %s: %w", roomID, err)
	}

	total, err := s.messages.CountByRoomID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("counting messages of room %s: %w", roomID, err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &Page{
		Content:       messages,
		PageNo:        pageNo,
		PageSize:      pageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          pageNo+1 >= totalPages,
	}, nil
}
