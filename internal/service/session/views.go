package session

import (
	"github.com/ruslan-korneev/lingooru-sub000/internal/domain"
	"github.com/ruslan-korneev/lingooru-sub000/internal/service"
)

// ViewType tags the view-model returned to the presentation boundary.
type ViewType string

// View types
const (
	// ViewItem presents the current item prompt ("item k of n").
	ViewItem ViewType = "item"
	// ViewAnswer presents the revealed answer for a review item.
	ViewAnswer ViewType = "answer"
	// ViewAttemptResult presents the evaluator's verdict on an attempt.
	ViewAttemptResult ViewType = "attempt_result"
	// ViewCompleted presents the completion summary.
	ViewCompleted ViewType = "completed"
	// ViewEmpty reports that no items were eligible, so no session started.
	ViewEmpty ViewType = "empty"
	// ViewSessionEnded reports that the addressed session no longer exists.
	ViewSessionEnded ViewType = "session_ended"
	// ViewNotice reports a recovered user error; the session is unchanged.
	ViewNotice ViewType = "notice"
)

// AttemptResult is the evaluator's verdict shown after a pronunciation
// attempt.
type AttemptResult struct {
	Transcribed string `json:"transcribed"`
	Rating      int    `json:"rating"`
	Feedback    string `json:"feedback"`
}

// View is the tagged view-model handed to the presentation boundary.
// Fields beyond Type are populated per type.
type View struct {
	Type ViewType `json:"type"`

	// Position/Total locate the current item within the batch (1-based),
	// set for ViewItem, ViewAnswer and ViewAttemptResult.
	Position int `json:"position,omitempty"`
	Total    int `json:"total,omitempty"`

	Item   *domain.SessionItem    `json:"item,omitempty"`
	Result *AttemptResult         `json:"result,omitempty"`
	Stats  *service.SessionStats  `json:"stats,omitempty"`
	Notice string                 `json:"notice,omitempty"`
}

func itemView(state *domain.SessionState) *View {
	item, ok := state.CurrentItem()
	if !ok {
		return &View{Type: ViewSessionEnded}
	}
	return &View{
		Type:     ViewItem,
		Position: state.Cursor + 1,
		Total:    len(state.Items),
		Item:     &item,
	}
}

func answerView(state *domain.SessionState) *View {
	item, ok := state.CurrentItem()
	if !ok {
		return &View{Type: ViewSessionEnded}
	}
	return &View{
		Type:     ViewAnswer,
		Position: state.Cursor + 1,
		Total:    len(state.Items),
		Item:     &item,
	}
}

func attemptResultView(state *domain.SessionState, result *AttemptResult) *View {
	item, ok := state.CurrentItem()
	if !ok {
		return &View{Type: ViewSessionEnded}
	}
	return &View{
		Type:     ViewAttemptResult,
		Position: state.Cursor + 1,
		Total:    len(state.Items),
		Item:     &item,
		Result:   result,
	}
}
