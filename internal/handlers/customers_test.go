package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/models"
	"backend/internal/store"
)

func TestCustomerProfileEndpoint(t *testing.T) {
	r := newTestServer(store.NewMemory(), &recordingNotifier{})

	w := doJSON(r, http.MethodGet, "/customers/tannu-client-id/profile", "")
	require.Equal(t, http.StatusOK, w.Code)

	var profile models.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "tannu-client-id", profile.CustomerID)
	assert.Equal(t, "Café App User", profile.Name)
	assert.Equal(t, "Latte", profile.Preferences.DefaultDrink)
}

func TestUpdatePreferencesEndpoint(t *testing.T) {
	t.Run("updates an existing profile", func(t *testing.T) {
		mem := store.NewMemory()
		r := newTestServer(mem, &recordingNotifier{})

		// Seed the profile via first access.
		w := doJSON(r, http.MethodGet, "/customers/tannu-client-id/profile", "")
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(r, http.MethodPut, "/customers/tannu-client-id/preferences",
			`{"name":"Tannu","email":"tannu@company.com","defaultDrink":"Matcha","defaultSugar":"Less","defaultQuantity":2}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Customer models.Customer `json:"customer"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Tannu", resp.Customer.Name)
		assert.Equal(t, "Matcha", resp.Customer.Preferences.DefaultDrink)
		assert.Equal(t, 2, resp.Customer.Preferences.DefaultQuantity)
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		r := newTestServer(store.NewMemory(), &recordingNotifier{})
		w := doJSON(r, http.MethodPut, "/customers/tannu-client-id/preferences",
			`{"name":"Tannu"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown customer returns 404", func(t *testing.T) {
		r := newTestServer(store.NewMemory(), &recordingNotifier{})
		w := doJSON(r, http.MethodPut, "/customers/never-seen/preferences",
			`{"name":"X","email":"x@company.com","defaultDrink":"Latte","defaultSugar":"Normal","defaultQuantity":1}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
