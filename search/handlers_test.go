package search

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestSearchHandlerRejectsUnknownEntityType(t *testing.T) {
	for _, entityType := range []string{"bogus", "booking", "user", ""} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/search/"+entityType+"?q=yoga", nil)
		ps := httprouter.Params{{Key: "entityType", Value: entityType}}

		SearchHandler(w, r, ps)

		assert.Equal(t, http.StatusBadRequest, w.Code, entityType)
	}
}

func TestSearchHandlerRequiresQuery(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/search/activity", nil)
	ps := httprouter.Params{{Key: "entityType", Value: "activity"}}

	SearchHandler(w, r, ps)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
