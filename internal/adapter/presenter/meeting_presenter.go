package presenter

import (
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	meetingUsecase "github.com/johnquangdev/meeting-notes/internal/usecase/meeting"
)

// ToMeetingResponse converts a Transcript entity to MeetingResponse DTO
func ToMeetingResponse(t *entities.Transcript) *meeting.MeetingResponse {
	if t == nil {
		return nil
	}

	ids := make([]string, len(t.ActionItemIDs))
	for i, id := range t.ActionItemIDs {
		ids[i] = id.String()
	}
	participants := []string(t.Participants)
	if participants == nil {
		participants = []string{}
	}

	return &meeting.MeetingResponse{
		ID:             t.ID.String(),
		SessionID:      t.SessionID,
		Title:          t.DisplayTitle(),
		Summary:        t.SummaryText,
		SummaryText:    t.SummaryText,
		TranscriptText: t.TranscriptText,
		TranscriptURL:  t.TranscriptURL,
		Status:         string(t.Status),
		Participants:   participants,
		Duration:       t.Duration,
		Date:           t.CreatedAt,
		ActionItems:    ids,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// ToMeetingDetailResponse includes the action items owned by the meeting
func ToMeetingDetailResponse(m *meetingUsecase.Meeting) *meeting.MeetingResponse {
	if m == nil {
		return nil
	}
	response := ToMeetingResponse(m.Transcript)
	response.Items = ToActionItemListResponse(m.ActionItems)
	return response
}

// ToMeetingListResponse converts a slice of transcripts
func ToMeetingListResponse(ts []*entities.Transcript) []*meeting.MeetingResponse {
	out := make([]*meeting.MeetingResponse, len(ts))
	for i, t := range ts {
		out[i] = ToMeetingResponse(t)
	}
	return out
}

// ToProcessMeetingResponse converts a manual processing result
func ToProcessMeetingResponse(out *meetingUsecase.ProcessOutput) *meeting.ProcessMeetingResponse {
	return &meeting.ProcessMeetingResponse{
		Outcome:        string(out.Outcome),
		SummaryUpdated: out.SummaryUpdated,
		ArchivedAs:     out.ArchivedAs,
		Meeting:        ToMeetingDetailResponse(out.Meeting),
	}
}
