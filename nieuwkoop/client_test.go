package nieuwkoop

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFetchChangedItemsSendsCutoffAndAuth(t *testing.T) {
	var gotQuery, gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("sysmodified")
		gotUser, gotPass, _ = r.BasicAuth()
		json.NewEncoder(w).Encode([]Item{{Itemcode: "PL-001", ItemDescription: "Monstera"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "user", "pass")
	since := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	items, err := client.FetchChangedItems(context.Background(), since)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, since.Format(time.RFC3339), gotQuery)
	assert.Equal(t, "user", gotUser)
	assert.Equal(t, "pass", gotPass)
}

func TestFetchPriceNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "u", "p")
	_, err := client.FetchPrice(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "u", "p")
	_, err := client.FetchStock(context.Background(), "PL-001")
	assert.Error(t, err)

	var fe *FetchError
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusBadGateway, fe.Status)
}

func TestItemTagAccessors(t *testing.T) {
	item := Item{Tags: []ItemTag{
		{Code: TagBrand, Values: []string{"Nieuwkoop"}},
		{Code: TagHeight, Values: []string{"120cm"}},
		{Code: TagColour, Values: nil},
	}}

	assert.Equal(t, "Nieuwkoop", item.Brand())
	assert.Equal(t, "120cm", item.Tag(TagHeight))
	assert.Equal(t, "", item.Tag(TagColour))
	assert.Equal(t, "", item.Tag(TagMaterial))
}
