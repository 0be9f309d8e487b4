package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type itemRequest struct {
	Text     string  `validate:"required"`
	Priority string  `validate:"omitempty,priority"`
	Status   string  `validate:"omitempty,item_status"`
	Meeting  *string `validate:"omitempty,meeting_status"`
}

func TestValidate_DomainTags(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(itemRequest{Text: "ship it", Priority: "High", Status: "To Do"}))
	assert.NoError(t, v.Validate(itemRequest{Text: "defaults"}))

	assert.Error(t, v.Validate(itemRequest{Text: "x", Priority: "urgent"}))
	assert.Error(t, v.Validate(itemRequest{Text: "x", Status: "done"}))
	assert.Error(t, v.Validate(itemRequest{Priority: "Low"}))

	bad := "archived"
	assert.Error(t, v.Validate(itemRequest{Text: "x", Meeting: &bad}))
	ok := "completed"
	assert.NoError(t, v.Validate(itemRequest{Text: "x", Meeting: &ok}))
}
