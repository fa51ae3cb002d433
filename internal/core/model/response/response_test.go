package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/romansndlr/remix-todos/internal/core/domain"
)

func TestNewListResponse_EmptyIsArray(t *testing.T) {
	body, err := json.Marshal(NewListResponse(nil))

	assert.NoError(t, err)
	assert.JSONEq(t, `{"todos":[]}`, string(body))
}

func TestNewListResponse(t *testing.T) {
	body, _ := json.Marshal(NewListResponse([]domain.Todo{{ID: 1, Title: "Buy milk", Done: true}}))

	assert.JSONEq(t, `{"todos":[{"id":1,"title":"Buy milk","done":true}]}`, string(body))
}

func TestActionResponses(t *testing.T) {
	tests := []struct {
		name     string
		body     ActionResponse
		expected string
	}{
		{"succeeded", Succeeded(), `{"success":true,"errors":{}}`},
		{"failed", Failed(), `{"success":false,"errors":{}}`},
		{"rejected", Rejected(map[string][]string{"title": {"Title is required"}}), `{"success":false,"errors":{"title":["Title is required"]}}`},
		{"rejected without fields", Rejected(nil), `{"success":false,"errors":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.body)

			assert.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(body))
		})
	}
}
