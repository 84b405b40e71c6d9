package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(fn func(c *gin.Context)) map[string]any {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	body["_status"] = float64(w.Code)
	return body
}

func TestSuccessListKeepsEmptyArray(t *testing.T) {
	body := record(func(c *gin.Context) { SuccessList(c, []string{}, 0) })

	if body["success"] != true {
		t.Errorf("success = %v", body["success"])
	}
	if data, ok := body["data"].([]any); !ok || len(data) != 0 {
		t.Errorf("data = %#v, want empty array", body["data"])
	}
	if body["count"] != float64(0) {
		t.Errorf("count = %v", body["count"])
	}
}

func TestSuccessWithMergesFields(t *testing.T) {
	body := record(func(c *gin.Context) {
		SuccessWith(c, http.StatusOK, gin.H{"id": 1, "message": "done"})
	})
	if body["success"] != true || body["id"] != float64(1) || body["message"] != "done" {
		t.Errorf("body = %v", body)
	}
}

func TestFailWithFields(t *testing.T) {
	body := record(func(c *gin.Context) {
		FailWithFields(c, http.StatusBadRequest, ErrValidation, []FieldError{{Field: "email", Message: "bad"}})
	})

	if body["_status"] != float64(http.StatusBadRequest) || body["success"] != false {
		t.Errorf("body = %v", body)
	}
	if body["code"] != string(ErrValidation) || body["message"] != GetMessage(ErrValidation) {
		t.Errorf("code/message = %v / %v", body["code"], body["message"])
	}
	errs := body["errors"].([]any)
	if first := errs[0].(map[string]any); first["field"] != "email" {
		t.Errorf("errors = %v", errs)
	}
	if _, present := body["data"]; present {
		t.Error("data should be omitted on failure")
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing generated X-Request-ID")
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc" {
		t.Errorf("X-Request-ID = %q, want abc", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "bad id")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got == "" || got == "bad id" {
		t.Errorf("malformed X-Request-ID should be replaced, got %q", got)
	}
}
