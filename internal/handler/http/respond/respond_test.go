package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		data         any
		expectedCode int
		expectedBody string
	}{
		{
			name:         "success with map",
			code:         http.StatusOK,
			data:         map[string]string{"message": "success"},
			expectedCode: http.StatusOK,
			expectedBody: `{"message":"success"}`,
		},
		{
			name:         "created with nil body",
			code:         http.StatusCreated,
			data:         nil,
			expectedCode: http.StatusCreated,
			expectedBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			JSON(rr, tt.code, tt.data)

			if rr.Code != tt.expectedCode {
				t.Errorf("status code = %d, want %d", rr.Code, tt.expectedCode)
			}
			if got := strings.TrimSpace(rr.Body.String()); got != tt.expectedBody {
				t.Errorf("body = %q, want %q", got, tt.expectedBody)
			}
			if tt.data != nil && rr.Header().Get("Content-Type") != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", rr.Header().Get("Content-Type"))
			}
		})
	}
}

func TestSafeError(t *testing.T) {
	tests := []struct {
		name        string
		code        int
		err         error
		wantLiteral bool
	}{
		{
			name:        "validation error passes through",
			code:        http.StatusBadRequest,
			err:         errors.New("title is required"),
			wantLiteral: true,
		},
		{
			name:        "not found passes through",
			code:        http.StatusNotFound,
			err:         errors.New("article not found"),
			wantLiteral: true,
		},
		{
			name:        "duplicate passes through",
			code:        http.StatusConflict,
			err:         errors.New("slug already exists"),
			wantLiteral: true,
		},
		{
			name:        "internal detail masked",
			code:        http.StatusBadGateway,
			err:         errors.New("dial tcp 10.0.0.3:5432: connection refused"),
			wantLiteral: false,
		},
		{
			name:        "5xx always masked even if phrased safely",
			code:        http.StatusInternalServerError,
			err:         errors.New("category not found in cache shard 3"),
			wantLiteral: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			SafeError(rr, tt.code, tt.err)

			if rr.Code != tt.code {
				t.Fatalf("status code = %d, want %d", rr.Code, tt.code)
			}

			var body map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}

			if tt.wantLiteral {
				if body["error"] != tt.err.Error() {
					t.Errorf("error = %q, want %q", body["error"], tt.err.Error())
				}
			} else {
				if body["error"] != "internal server error" {
					t.Errorf("error = %q, want masked message", body["error"])
				}
			}
		})
	}
}

func TestSafeError_NilError(t *testing.T) {
	rr := httptest.NewRecorder()
	SafeError(rr, http.StatusInternalServerError, nil)

	if rr.Code != http.StatusOK {
		t.Errorf("nil error should write nothing, got status %d", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("nil error should write nothing, got body %q", rr.Body.String())
	}
}

func TestFieldErrors(t *testing.T) {
	rr := httptest.NewRecorder()
	FieldErrors(rr, map[string]string{
		"username": "Tên đăng nhập đã tồn tại",
		"password": "Password must not be empty",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Errors["username"] != "Tên đăng nhập đã tồn tại" {
		t.Errorf("username message = %q", body.Errors["username"])
	}
}
