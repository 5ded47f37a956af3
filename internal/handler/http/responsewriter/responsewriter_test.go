package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrap_DefaultsTo200(t *testing.T) {
	w := Wrap(httptest.NewRecorder())
	if w.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode() = %d, want %d", w.StatusCode(), http.StatusOK)
	}
}

func TestWriteHeader_RecordsStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := Wrap(rr)

	w.WriteHeader(http.StatusNotFound)
	if w.StatusCode() != http.StatusNotFound {
		t.Errorf("StatusCode() = %d, want %d", w.StatusCode(), http.StatusNotFound)
	}
	if rr.Code != http.StatusNotFound {
		t.Errorf("recorder code = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestWriteHeader_OnlyFirstCallCounts(t *testing.T) {
	rr := httptest.NewRecorder()
	w := Wrap(rr)

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)

	if w.StatusCode() != http.StatusCreated {
		t.Errorf("StatusCode() = %d, want %d", w.StatusCode(), http.StatusCreated)
	}
}

func TestWrite_TracksBytesAndImplicitHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	w := Wrap(rr)

	n, err := w.Write([]byte("hello"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != 5 {
		t.Errorf("n = %d, want 5", n)
	}

	_, _ = w.Write([]byte(" world"))

	if w.BytesWritten() != 11 {
		t.Errorf("BytesWritten() = %d, want 11", w.BytesWritten())
	}
	if w.StatusCode() != http.StatusOK {
		t.Errorf("implicit status = %d, want %d", w.StatusCode(), http.StatusOK)
	}
}
