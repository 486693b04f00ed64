package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/tidepool/internal/domain"
	"github.com/osse101/tidepool/internal/economy"
	"github.com/osse101/tidepool/internal/provider"
)

func TestHandleSetStamina(t *testing.T) {
	tracker := provider.NewStaminaTracker(provider.DefaultStaminaPercent)
	r := chi.NewRouter()
	r.Put("/actors/{actorID}/stamina", HandleSetStamina(tracker))

	t.Run("Updates tracker", func(t *testing.T) {
		w := serve(t, r, http.MethodPut, "/actors/diver-1/stamina", `{"percent":0.25}`)

		assert.Equal(t, http.StatusOK, w.Code)
		got, err := tracker.StaminaPercentFor(context.Background(), "diver-1")
		require.NoError(t, err)
		assert.Equal(t, 0.25, got)
	})

	t.Run("Zero is a valid value", func(t *testing.T) {
		w := serve(t, r, http.MethodPut, "/actors/diver-2/stamina", `{"percent":0}`)

		assert.Equal(t, http.StatusOK, w.Code)
		got, _ := tracker.StaminaPercentFor(context.Background(), "diver-2")
		assert.Equal(t, 0.0, got)
	})

	t.Run("Out of range", func(t *testing.T) {
		w := serve(t, r, http.MethodPut, "/actors/diver-1/stamina", `{"percent":2}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing percent", func(t *testing.T) {
		w := serve(t, r, http.MethodPut, "/actors/diver-1/stamina", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "percent")
	})
}

func TestHandleGetEconomy(t *testing.T) {
	w := httptest.NewRecorder()
	HandleGetEconomy(economy.Default()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/economy", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp EconomyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Len(t, resp.RarityTiers, 3)
	require.Len(t, resp.Resources, 4)
	// Sorted by resource type
	assert.Equal(t, domain.ResourceCoral, resp.Resources[0].ResourceType)
	assert.Equal(t, "Coral", resp.Resources[0].DisplayName)
	assert.Equal(t, 3, resp.Resources[1].BaseYield[domain.RarityCommon], "kelp common yield")
}

func TestHandleVersion(t *testing.T) {
	w := httptest.NewRecorder()
	HandleVersion("1.4.2").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var info VersionInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "1.4.2", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)

	assert.Equal(t, "dev", resolveVersion(""))
}

func TestRespondJSON_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()
	respondJSON(w, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), ErrMsgGenericServerError))
}
