package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vpvn/bugreports/internal/modules/model"
	"github.com/vpvn/bugreports/internal/modules/service"
)

func occasionRouter(svc *MockOccasionService) http.Handler {
	h := NewOccasionHandler(svc)
	r := setupRouter()
	r.GET("/api/occusian/", h.ListOccasions)
	r.POST("/api/occusian/", h.CreateOccasion)
	r.GET("/api/occusian/:id/", h.GetOccasion)
	r.PUT("/api/occusian/:id/", h.UpdateOccasion)
	r.PATCH("/api/occusian/:id/", h.PatchOccasion)
	r.DELETE("/api/occusian/:id/", h.DeleteOccasion)
	return r
}

func TestOccasionHandler(t *testing.T) {
	occ := &model.Occasion{ID: 3, BugID: 1}

	tests := []struct {
		name           string
		method, path   string
		body           string
		setup          func(*MockOccasionService)
		expectedStatus int
	}{
		{
			name: "list filtered", method: http.MethodGet, path: "/api/occusian/?os=linux&bug__project=test",
			setup: func(s *MockOccasionService) {
				s.On("List", mock.Anything, service.ListOccasionsInput{OS: "linux", ProjectID: "test"}).
					Return(&service.ListOccasionsOutput{Items: []*model.Occasion{occ}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "create forces ip", method: http.MethodPost, path: "/api/occusian/",
			body: `{"bug":1,"ip":"8.8.8.8","os":"win"}`,
			setup: func(s *MockOccasionService) {
				s.On("RecordOccasion", mock.Anything, mock.MatchedBy(func(in service.RecordOccasionInput) bool {
					return in.BugID == 1 && *in.IP == "192.0.2.1" && *in.OS == "win"
				})).Return(occ, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "create invalid os", method: http.MethodPost, path: "/api/occusian/",
			body: `{"bug":1,"os":"beos"}`,
			setup: func(s *MockOccasionService) {
				s.On("RecordOccasion", mock.Anything, mock.Anything).Return(nil, &service.ValidationError{Field: "os", Msg: "bad"})
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "get missing", method: http.MethodGet, path: "/api/occusian/4/",
			setup: func(s *MockOccasionService) {
				s.On("Get", mock.Anything, int64(4)).Return(nil, service.ErrOccasionNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "put clears omitted", method: http.MethodPut, path: "/api/occusian/3/",
			body: `{"os":"linux"}`,
			setup: func(s *MockOccasionService) {
				s.On("Update", mock.Anything, mock.MatchedBy(func(in service.UpdateOccasionInput) bool {
					return *in.OS == "linux" && *in.Email == "" && *in.Details == ""
				})).Return(occ, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "patch keeps omitted", method: http.MethodPatch, path: "/api/occusian/3/",
			body: `{"details":"more"}`,
			setup: func(s *MockOccasionService) {
				s.On("Update", mock.Anything, service.UpdateOccasionInput{ID: 3, Details: strPtr("more")}).Return(occ, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "delete", method: http.MethodDelete, path: "/api/occusian/3/",
			setup: func(s *MockOccasionService) {
				s.On("Delete", mock.Anything, int64(3)).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockOccasionService{}
			tt.setup(svc)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			occasionRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
