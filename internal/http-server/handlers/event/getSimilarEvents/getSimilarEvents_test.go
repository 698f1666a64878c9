package getSimilarEvents

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"devEvents/internal/http-server/handlers/event/getSimilarEvents/mocks"
	"devEvents/internal/lib/logger/handlers/slogdiscard"
	"devEvents/internal/models"
	"devEvents/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetSimilarEventsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		slug           string
		mockSetup      func(m *mocks.SimilarEventsGetter)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "Success",
			slug: "react-conf-2026",
			mockSetup: func(m *mocks.SimilarEventsGetter) {
				m.On("SimilarEvents", mock.Anything, "react-conf-2026").
					Return([]models.Event{{ID: 2, Slug: "javascript-global-conf"}}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"OK"`)
				assert.Contains(t, body, `"slug":"javascript-global-conf"`)
			},
		},
		{
			name: "No matches",
			slug: "unknown",
			mockSetup: func(m *mocks.SimilarEventsGetter) {
				m.On("SimilarEvents", mock.Anything, "unknown").Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"OK","events":[]}`, body)
			},
		},
		{
			name: "Invalid slug",
			slug: "%20",
			mockSetup: func(m *mocks.SimilarEventsGetter) {
				m.On("SimilarEvents", mock.Anything, " ").Return(nil, services.ErrInvalidSlug)
			},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"Error","error":"invalid or missing slug parameter"}`, body)
			},
		},
		{
			name: "Store error",
			slug: "react-conf-2026",
			mockSetup: func(m *mocks.SimilarEventsGetter) {
				m.On("SimilarEvents", mock.Anything, "react-conf-2026").Return(nil, errors.New("timeout"))
			},
			expectedStatus: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"Error","error":"failed to get similar events"}`, body)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			getter := mocks.NewSimilarEventsGetter(t)
			tc.mockSetup(getter)

			router := chi.NewRouter()
			router.Get("/events/{slug}/similar", New(logger, getter))

			req := httptest.NewRequest(http.MethodGet, "/events/"+tc.slug+"/similar", nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			tc.checkBody(t, rr.Body.String())
		})
	}
}
