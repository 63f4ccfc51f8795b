package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailyseven/dailyseven-api/internal/api/shared"
	"github.com/dailyseven/dailyseven-api/internal/domain"
	"github.com/dailyseven/dailyseven-api/internal/domain/selection"
	"github.com/dailyseven/dailyseven-api/internal/service/task_selection"
)

// mockSelectionService implements task_selection.SelectionService with
// overridable functions.
type mockSelectionService struct {
	getSelectionFn func(ctx context.Context, userID int64) (*task_selection.Result, error)
	tickTaskFn     func(ctx context.Context, userID int64, params task_selection.TaskParams) error
	changeTaskFn   func(ctx context.Context, userID int64, params task_selection.TaskParams) (*selection.Item, error)
}

var _ task_selection.SelectionService = (*mockSelectionService)(nil)

func (m *mockSelectionService) GetSelection(ctx context.Context, userID int64) (*task_selection.Result, error) {
	return m.getSelectionFn(ctx, userID)
}

func (m *mockSelectionService) TickTask(ctx context.Context, userID int64, params task_selection.TaskParams) error {
	return m.tickTaskFn(ctx, userID, params)
}

func (m *mockSelectionService) ChangeTask(
	ctx context.Context,
	userID int64,
	params task_selection.TaskParams,
) (*selection.Item, error) {
	return m.changeTaskFn(ctx, userID, params)
}

// authedRequest builds a request whose context carries the given user id,
// as the auth middleware would.
func authedRequest(method, target string, body []byte, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) shared.Envelope {
	t.Helper()
	var env shared.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func TestGetSelectionHandler(t *testing.T) {
	t.Parallel()

	t.Run("returns rendered selection", func(t *testing.T) {
		svc := &mockSelectionService{
			getSelectionFn: func(ctx context.Context, userID int64) (*task_selection.Result, error) {
				assert.Equal(t, int64(7), userID)
				return &task_selection.Result{
					Type: selection.TypeNew,
					Items: []selection.Item{
						{
							ID:       3,
							Status:   selection.StatusNotCompleted,
							Title:    "Water the plants",
							Category: domain.Category{ID: 10, Slug: "household", Title: "Household"},
						},
					},
				}, nil
			},
		}
		handler := NewSelectionHandler(svc)

		rec := httptest.NewRecorder()
		handler.GetSelection(rec, authedRequest(http.MethodGet, "/api/get_selection", nil, 7))

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, shared.StatusSuccess, env.Status)

		items, ok := env.Data.([]interface{})
		require.True(t, ok)
		require.Len(t, items, 1)
		item := items[0].(map[string]interface{})
		assert.Equal(t, float64(3), item["id"])
		assert.Equal(t, "not completed", item["status"])
	})

	t.Run("missing auth context is denied", func(t *testing.T) {
		handler := NewSelectionHandler(&mockSelectionService{})

		rec := httptest.NewRecorder()
		handler.GetSelection(rec, httptest.NewRequest(http.MethodGet, "/api/get_selection", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, shared.StatusError, env.Status)
		assert.Equal(t, "Access denied", env.Message)
	})

	t.Run("error mapping", func(t *testing.T) {
		tests := []struct {
			name        string
			err         error
			wantStatus  int
			wantMessage string
		}{
			{"empty catalog", task_selection.ErrTasksNotFound, http.StatusNotFound, "Tasks not found"},
			{"corrupt categories", task_selection.ErrCategoriesNotFound, http.StatusNotFound, "Categories not found"},
			{"everything completed", task_selection.ErrAllTasksDone, http.StatusNoContent, ""},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				svc := &mockSelectionService{
					getSelectionFn: func(ctx context.Context, userID int64) (*task_selection.Result, error) {
						return nil, tc.err
					},
				}
				handler := NewSelectionHandler(svc)

				rec := httptest.NewRecorder()
				handler.GetSelection(rec, authedRequest(http.MethodGet, "/api/get_selection", nil, 7))

				assert.Equal(t, tc.wantStatus, rec.Code)
				if tc.wantStatus == http.StatusNoContent {
					assert.Zero(t, rec.Body.Len())
				} else {
					env := decodeEnvelope(t, rec)
					assert.Equal(t, tc.wantMessage, env.Message)
				}
			})
		}
	})
}

func TestTickTaskHandler(t *testing.T) {
	t.Parallel()

	t.Run("success is a bare 204", func(t *testing.T) {
		svc := &mockSelectionService{
			tickTaskFn: func(ctx context.Context, userID int64, params task_selection.TaskParams) error {
				assert.Equal(t, int64(7), userID)
				assert.Equal(t, task_selection.TaskParams{UserID: 7, TaskID: 3}, params)
				return nil
			},
		}
		handler := NewSelectionHandler(svc)

		body := []byte(`{"userId":7,"taskId":3}`)
		rec := httptest.NewRecorder()
		handler.TickTask(rec, authedRequest(http.MethodPost, "/api/tick_task", body, 7))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Zero(t, rec.Body.Len())
	})

	t.Run("invalid payload is a 400", func(t *testing.T) {
		handler := NewSelectionHandler(&mockSelectionService{})

		tests := []struct {
			name string
			body string
		}{
			{"malformed json", `{"userId":`},
			{"missing task id", `{"userId":7}`},
			{"zero task id", `{"userId":7,"taskId":0}`},
			{"negative task id", `{"userId":7,"taskId":-2}`},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				rec := httptest.NewRecorder()
				handler.TickTask(rec, authedRequest(http.MethodPost, "/api/tick_task", []byte(tc.body), 7))
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			})
		}
	})

	t.Run("foreign user id maps to 401", func(t *testing.T) {
		svc := &mockSelectionService{
			tickTaskFn: func(ctx context.Context, userID int64, params task_selection.TaskParams) error {
				return task_selection.ErrAccessDenied
			},
		}
		handler := NewSelectionHandler(svc)

		body := []byte(`{"userId":8,"taskId":3}`)
		rec := httptest.NewRecorder()
		handler.TickTask(rec, authedRequest(http.MethodPost, "/api/tick_task", body, 7))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Access denied", env.Message)
	})

	t.Run("task outside selection maps to 400", func(t *testing.T) {
		svc := &mockSelectionService{
			tickTaskFn: func(ctx context.Context, userID int64, params task_selection.TaskParams) error {
				return task_selection.ErrTaskNotInSelection
			},
		}
		handler := NewSelectionHandler(svc)

		body := []byte(`{"userId":7,"taskId":99}`)
		rec := httptest.NewRecorder()
		handler.TickTask(rec, authedRequest(http.MethodPost, "/api/tick_task", body, 7))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Requested task id not in selection list", env.Message)
	})
}

func TestChangeTaskHandler(t *testing.T) {
	t.Parallel()

	t.Run("returns replacement item", func(t *testing.T) {
		svc := &mockSelectionService{
			changeTaskFn: func(ctx context.Context, userID int64, params task_selection.TaskParams) (*selection.Item, error) {
				return &selection.Item{
					ID:       9,
					Status:   selection.StatusNotCompleted,
					Title:    "Jog",
					Category: domain.Category{ID: 20, Slug: "outdoors", Title: "Outdoors"},
				}, nil
			},
		}
		handler := NewSelectionHandler(svc)

		body := []byte(`{"userId":7,"taskId":3}`)
		rec := httptest.NewRecorder()
		handler.ChangeTask(rec, authedRequest(http.MethodPost, "/api/change_task", body, 7))

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		item, ok := env.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(9), item["id"])
		assert.Equal(t, "not completed", item["status"])
	})

	t.Run("exhausted replacements", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
		}{
			{"nothing to draw and no completions", task_selection.ErrTaskNotFound, http.StatusNotFound},
			{"nothing left to draw", task_selection.ErrNoTasksToReplace, http.StatusNoContent},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				svc := &mockSelectionService{
					changeTaskFn: func(ctx context.Context, userID int64, params task_selection.TaskParams) (*selection.Item, error) {
						return nil, tc.err
					},
				}
				handler := NewSelectionHandler(svc)

				body := []byte(`{"userId":7,"taskId":3}`)
				rec := httptest.NewRecorder()
				handler.ChangeTask(rec, authedRequest(http.MethodPost, "/api/change_task", body, 7))

				assert.Equal(t, tc.wantStatus, rec.Code)
			})
		}
	})
}
