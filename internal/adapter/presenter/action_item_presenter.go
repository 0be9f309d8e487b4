package presenter

import (
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/actionitem"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// ToActionItemResponse converts an ActionItem entity to its DTO
func ToActionItemResponse(i *entities.ActionItem) *actionitem.ActionItemResponse {
	if i == nil {
		return nil
	}
	return &actionitem.ActionItemResponse{
		ID:        i.ID.String(),
		MeetingID: i.MeetingID.String(),
		Text:      i.Text,
		Priority:  string(i.Priority),
		Status:    string(i.Status),
		DueDate:   i.DueDate,
		Assignee:  i.Assignee,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// ToActionItemListResponse converts a slice of action items
func ToActionItemListResponse(items []*entities.ActionItem) []*actionitem.ActionItemResponse {
	out := make([]*actionitem.ActionItemResponse, len(items))
	for i, item := range items {
		out[i] = ToActionItemResponse(item)
	}
	return out
}
