package net

import (
	"net/http"
	"testing"

	perr "tunepipe/internal/platform/errors"
)

func TestFailure(t *testing.T) {
	t.Parallel()

	status, body := Failure(perr.InvalidReff("not a recognized video url"), "rid-1")
	if status != http.StatusBadRequest {
		t.Fatalf("status: got %d", status)
	}
	if body.Status {
		t.Fatalf("Fail.Status must be false")
	}
	if body.Error != "not a recognized video url" || body.RequestID != "rid-1" {
		t.Fatalf("bad body: %+v", body)
	}
	if body.Code != perr.ErrorCodeInvalidReference {
		t.Fatalf("code: got %d", body.Code)
	}
}

func TestFailureForeignError(t *testing.T) {
	t.Parallel()

	status, body := Failure(http.ErrBodyNotAllowed, "")
	if status != http.StatusInternalServerError {
		t.Fatalf("foreign errors map to 500, got %d", status)
	}
	if body.Status || body.Error == "" {
		t.Fatalf("bad body: %+v", body)
	}
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	if HTTPStatus(nil) != http.StatusOK {
		t.Fatalf("nil should be 200")
	}
	if HTTPStatus(perr.Exhaustedf("x")) != http.StatusInternalServerError {
		t.Fatalf("exhausted should be 500")
	}
}
