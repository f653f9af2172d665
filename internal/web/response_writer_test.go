package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w, false)

	rw.WriteHeader(http.StatusNotFound)

	if rw.Status() != http.StatusNotFound {
		t.Errorf("Status() = %d, want %d", rw.Status(), http.StatusNotFound)
	}
	if w.Code != http.StatusNotFound {
		t.Errorf("underlying status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if !rw.Written() {
		t.Error("Written() = false, want true")
	}
}

func TestResponseWriter_WriteHeader_HTMX(t *testing.T) {
	tests := []struct {
		name         string
		inputCode    int
		expectedCode int
	}{
		{"200 stays 200", http.StatusOK, http.StatusOK},
		{"286 stays 286", 286, 286},
		{"204 stays 204", http.StatusNoContent, http.StatusNoContent},
		{"409 becomes 200", http.StatusConflict, http.StatusOK},
		{"422 becomes 200", http.StatusUnprocessableEntity, http.StatusOK},
		{"429 becomes 200", http.StatusTooManyRequests, http.StatusOK},
		{"500 becomes 200", http.StatusInternalServerError, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			rw := NewResponseWriter(w, true)

			rw.WriteHeader(tt.inputCode)

			if rw.Status() != tt.inputCode {
				t.Errorf("Status() = %d, want %d", rw.Status(), tt.inputCode)
			}
			if w.Code != tt.expectedCode {
				t.Errorf("underlying status = %d, want %d", w.Code, tt.expectedCode)
			}
		})
	}
}

func TestResponseWriter_WriteHeader_OnlyOnce(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w, false)

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusInternalServerError)

	if w.Code != http.StatusCreated {
		t.Errorf("underlying status = %d, want %d", w.Code, http.StatusCreated)
	}
}

func TestResponseWriter_HooksRunOnce(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w, false)

	calls := 0
	rw.OnBeforeWrite(func() {
		calls++
		rw.Header().Set("X-Hook", "ran")
	})

	_, _ = rw.Write([]byte("a"))
	_, _ = rw.Write([]byte("b"))

	if calls != 1 {
		t.Errorf("hook ran %d times, want 1", calls)
	}
	if got := w.Header().Get("X-Hook"); got != "ran" {
		t.Errorf("X-Hook = %q, want %q", got, "ran")
	}
	if rw.Size() != 2 {
		t.Errorf("Size() = %d, want 2", rw.Size())
	}
}
