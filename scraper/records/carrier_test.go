package records

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arcepPage = `<html><body>
<div class="alert"><span class="red">Attention</span> service en maintenance</div>
<p>Le numéro 0612345678 a été attribué à <span class="red">ORANGE</span>.</p>
</body></html>`

func TestCarrierLookup(t *testing.T) {
	var gotNumber, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotNumber = r.URL.Query().Get(carrierNumberParam)
		_, _ = w.Write([]byte(arcepPage))
	}))
	defer srv.Close()

	lookup := NewCarrierLookup(NewHTTPFetcher(0, ""), srv.URL+"/base-numerotation.html")
	carrier, err := lookup.Lookup(context.Background(), "06 12 34 56 78")

	require.NoError(t, err)
	assert.Equal(t, "ORANGE", carrier)
	assert.Equal(t, "0612345678", gotNumber)
	assert.Equal(t, http.MethodPost, gotMethod)
}

func TestCarrierLookup_NotFound(t *testing.T) {
	carrier, err := parseCarrier(`<html><body><p>Aucun résultat</p></body></html>`)

	require.NoError(t, err)
	assert.Equal(t, "", carrier)
}

func TestCarrierLookup_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	lookup := NewCarrierLookup(NewHTTPFetcher(0, ""), srv.URL)
	_, err := lookup.Lookup(context.Background(), "0612345678")

	assert.ErrorIs(t, err, ErrBadStatus)
}
