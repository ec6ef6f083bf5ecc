package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/dto"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/logic"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"
	"github.com/thirusolai/gym-backend-h4fitness2/pkg/pagination"
)

type mockFollowupManager struct {
	mock.Mock
}

func (m *mockFollowupManager) ListFollowups(ctx context.Context, page *pagination.PageRequest) (*pagination.PageResult, error) {
	args := m.Called(ctx, page)
	if r := args.Get(0); r != nil {
		return r.(*pagination.PageResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFollowupManager) UpdateStatus(ctx context.Context, req *dto.UpdateFollowupStatusRequest) (*models.Followup, error) {
	args := m.Called(ctx, req)
	if f := args.Get(0); f != nil {
		return f.(*models.Followup), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFollowupManager) DeleteFollowup(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newFollowupsMux(m *mockFollowupManager) *http.ServeMux {
	h := NewFollowupsHandler(m, zap.NewNop())
	mux := http.NewServeMux()
	mux.HandleFunc("GET /followups", h.ListFollowups)
	mux.HandleFunc("PUT /followups/{id}/status", h.UpdateStatus)
	mux.HandleFunc("DELETE /followups/{id}", h.DeleteFollowup)
	return mux
}

func TestFollowupsHandler_List(t *testing.T) {
	m := &mockFollowupManager{}
	page := pagination.NewPageRequest(2, 5)
	m.On("ListFollowups", mock.Anything, page).Return(pagination.NewPageResult([]*models.Followup{}, 6, page), nil).Once()

	rec := httptest.NewRecorder()
	newFollowupsMux(m).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/followups?page=2&page_size=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[],"total":6,"page":2,"pageSize":5,"totalPages":2}`, rec.Body.String())
}

func TestFollowupsHandler_UpdateStatus(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("unknown status", func(t *testing.T) {
		m := &mockFollowupManager{}
		m.On("UpdateStatus", mock.Anything, &dto.UpdateFollowupStatusRequest{ID: id, Status: "Later"}).
			Return(nil, logic.ErrInvalidInput).Once()

		rec := httptest.NewRecorder()
		newFollowupsMux(m).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/followups/"+id.Hex()+"/status", strings.NewReader(`{"status":"Later"}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("completed", func(t *testing.T) {
		m := &mockFollowupManager{}
		m.On("UpdateStatus", mock.Anything, &dto.UpdateFollowupStatusRequest{ID: id, Status: "Completed"}).
			Return(&models.Followup{ID: id, Status: "Completed"}, nil).Once()

		rec := httptest.NewRecorder()
		newFollowupsMux(m).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/followups/"+id.Hex()+"/status", strings.NewReader(`{"status":"Completed"}`)))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"Completed"`)
	})
}

func TestFollowupsHandler_Delete(t *testing.T) {
	id := primitive.NewObjectID()
	m := &mockFollowupManager{}
	m.On("DeleteFollowup", mock.Anything, id).Return(logic.ErrFollowupNotFound).Once()

	rec := httptest.NewRecorder()
	newFollowupsMux(m).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/followups/"+id.Hex(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
