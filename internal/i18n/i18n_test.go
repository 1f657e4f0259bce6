//go:build !integration

package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/barcode"
	"github.com/stretchr/testify/assert"
)

func TestGetTranslator_Shared(t *testing.T) {
	assert.Same(t, GetTranslator(), GetTranslator())
}

func TestTranslator_Translate(t *testing.T) {
	tr := NewTranslator()

	tests := []struct {
		name, key, locale, want string
	}{
		{"english", ErrKeyPickingNotFound, "en", "Transfer not found"},
		{"portuguese", ErrKeyInvalidRequest, "pt", "Requisição inválida"},
		{"dutch", ErrKeyInvalidRequest, "nl", "Ongeldig verzoek"},
		{"empty locale", ErrKeyInvalidRequest, "", "Invalid request"},
		{"unsupported locale", ErrKeyInvalidRequest, "fr", "Invalid request"},
		{"unknown key", "unknown.key", "pt", "unknown.key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Translate(tt.key, tt.locale))
		})
	}
}

func TestTranslator_Negotiate(t *testing.T) {
	tr := NewTranslator()

	tests := []struct {
		header string
		want   string
	}{
		{"nl", "nl"},
		{"pt-BR", "pt"},
		{"EN", "en"},
		{"fr", DefaultLocale},
		{"fr-FR, nl;q=0.5", "nl"},
		{"en;q=0.4, pt;q=0.9", "pt"},
		{"pt;q=0, nl;q=0.1", "nl"},
		{"nl;q=0.8, pt;q=0.8", "nl"},
		{"pt;q=abc, nl", "nl"},
		{" , ;q=1", DefaultLocale},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Negotiate(tt.header))
		})
	}
}

func TestGetLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for header, want := range map[string]string{
		"":                        DefaultLocale,
		"nl-BE,nl;q=0.9,en;q=0.8": "nl",
		"de":                      DefaultLocale,
	} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			c.Request.Header.Set(AcceptLanguageHeader, header)
		}
		assert.Equal(t, want, GetLocale(c), header)
	}
}

func TestTranslator_Format(t *testing.T) {
	tr := NewTranslator()

	tests := []struct {
		name, key, locale string
		args              map[string]string
		want              string
	}{
		{"fills placeholders", barcode.MsgIncompatibleUoM, "en", map[string]string{"from": "kg", "to": "Units"}, "Cannot convert kg to Units"},
		{"translated template", barcode.MsgDestinationChanged, "pt", map[string]string{"location": "WH/Stock/Shelf 1"}, "Destino alterado para WH/Stock/Shelf 1"},
		{"missing argument keeps placeholder", barcode.MsgBarcodeNotFound, "en", nil, "No record found for barcode {barcode}"},
		{"extra arguments are ignored", barcode.MsgSaved, "nl", map[string]string{"error": "boom"}, "Wijzigingen opgeslagen"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Format(tt.key, tt.locale, tt.args))
		})
	}
}

func TestCatalogs(t *testing.T) {
	tr := NewTranslator()

	t.Run("engine notifications are translated", func(t *testing.T) {
		for locale := range tr.catalogs {
			for _, key := range barcode.MessageKeys {
				assert.NotEqual(t, key, tr.Translate(key, locale), "%s has no %s message", key, locale)
			}
		}
		assert.True(t, tr.Has(barcode.MsgSaved))
		assert.False(t, tr.Has("barcode.unknown"))
	})

	t.Run("every locale has the same keys", func(t *testing.T) {
		for locale, catalog := range tr.catalogs {
			assert.Len(t, catalog, len(english), locale)
			for key := range english {
				assert.Contains(t, catalog, key, locale)
			}
		}
	})

	t.Run("error keys have messages", func(t *testing.T) {
		for _, key := range []string{
			ErrKeyInternalError, ErrKeyRequestInProgress, ErrKeySessionNotFound,
			ErrKeyPickingClosed, ErrKeyBackendUnavailable, ErrKeyTimeout,
		} {
			assert.True(t, tr.Has(key), key)
		}
	})

	assert.True(t, tr.Supports("pt"))
	assert.False(t, tr.Supports("fr"))
}
