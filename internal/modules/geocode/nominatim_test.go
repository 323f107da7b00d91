// README: Nominatim client tests (field extraction, NotFound, transport).
package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func stubNominatim(t *testing.T, body string, status int) *Nominatim {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("path = %q, want /reverse", r.URL.Path)
		}
		if got := r.Header.Get("Accept-Language"); got != "en" {
			t.Errorf("Accept-Language = %q, want en", got)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewNominatim(srv.URL, "en", zerolog.Nop())
}

func TestNominatimFieldExtraction(t *testing.T) {
	cases := []struct {
		name string
		body string
		want Address
	}{
		{
			name: "full address",
			body: `{"display_name":"MG Road, Bengaluru, Karnataka, 560001, India",
				"address":{"city":"Bengaluru","state":"Karnataka","country":"India","postcode":"560001"}}`,
			want: Address{
				City: "Bengaluru", State: "Karnataka", Country: "India",
				PostalCode: "560001", DisplayName: "MG Road, Bengaluru, Karnataka, 560001, India",
			},
		},
		{
			name: "town preferred when city absent",
			body: `{"display_name":"somewhere","address":{"town":"Alton","country":"UK"}}`,
			want: Address{City: "Alton", Country: "UK", DisplayName: "somewhere"},
		},
		{
			name: "village as last resort",
			body: `{"display_name":"somewhere","address":{"village":"Wye"}}`,
			want: Address{City: "Wye", DisplayName: "somewhere"},
		},
		{
			name: "optional fields default to empty strings",
			body: `{"display_name":"middle of nowhere","address":{}}`,
			want: Address{DisplayName: "middle of nowhere"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := stubNominatim(t, tc.body, http.StatusOK)
			got, err := n.Reverse(context.Background(), 12.9716, 77.5946)
			if err != nil {
				t.Fatalf("reverse: %v", err)
			}
			if got != tc.want {
				t.Fatalf("address = %+v, want %+v", got, tc.want)
			}
			if got.DisplayName == "" {
				t.Fatal("DisplayName empty on success")
			}
		})
	}
}

func TestNominatimNotFound(t *testing.T) {
	// A response lacking an address object is NotFound, not a transport error.
	n := stubNominatim(t, `{"error":"Unable to geocode"}`, http.StatusOK)
	_, err := n.Reverse(context.Background(), 0, 0)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestNominatimTransportErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"server error", `{}`, http.StatusServiceUnavailable},
		{"bad json", `{"display_name":`, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := stubNominatim(t, tc.body, tc.status)
			_, err := n.Reverse(context.Background(), 1, 1)
			if !errors.Is(err, ErrTransport) {
				t.Fatalf("err = %v, want ErrTransport", err)
			}
		})
	}
}

func TestNominatimUnreachable(t *testing.T) {
	n := NewNominatim("http://127.0.0.1:1", "en", zerolog.Nop())
	_, err := n.Reverse(context.Background(), 1, 1)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", err)
	}
}
