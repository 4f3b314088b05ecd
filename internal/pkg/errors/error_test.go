package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNewAppError(t *testing.T) {
	err := New(ErrMediaNotFound)

	if err.Code != ErrMediaNotFound {
		t.Errorf("expected code %d, got %d", ErrMediaNotFound, err.Code)
	}
	if err.Message != "Media not found" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.HTTPStatus() != http.StatusNotFound {
		t.Errorf("expected 404, got %d", err.HTTPStatus())
	}
}

func TestWrapKeepsCauseInternal(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Wrap(cause, ErrInternalServer)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause must be reachable via errors.Is")
	}

	// 内部原因只进日志链，不进响应细节
	if got := GetDetails(err); got != "" {
		t.Errorf("details must not expose the wrapped cause, got %q", got)
	}
	if got := ExtractCode(err); got != ErrInternalServer {
		t.Errorf("expected code %d, got %d", ErrInternalServer, got)
	}
}

func TestWrapfFormatsDetails(t *testing.T) {
	cause := errors.New("too big")
	err := Wrapf(cause, ErrMediaFileTooLarge, "actual=%d bytes, max=%d bytes", 9000, 8000)

	if got := GetDetails(err); got != "actual=9000 bytes, max=8000 bytes" {
		t.Errorf("unexpected details %q", got)
	}
	if err.HTTPStatus() != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", err.HTTPStatus())
	}
}

func TestWrapPreservesExistingAppError(t *testing.T) {
	inner := New(ErrMediaNotFound, "id=abc")
	err := Wrap(inner, ErrInternalServer)

	if err.Code != ErrMediaNotFound {
		t.Errorf("wrapping must not override an existing code, got %d", err.Code)
	}
	if got := GetDetails(err); got != "id=abc" {
		t.Errorf("unexpected details %q", got)
	}
}

func TestWrapNilReturnsNil(t *testing.T) {
	if err := Wrap(nil, ErrInternalServer); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := NewForbiddenError()

	if !Is(err, ErrForbidden) {
		t.Error("expected Is to match the code")
	}
	if Is(err, ErrUnauthorized) {
		t.Error("Is must not match a different code")
	}
	if Is(errors.New("plain"), ErrForbidden) {
		t.Error("Is must not match a non-AppError")
	}
}

func TestExtractCodeFallsBackToInternal(t *testing.T) {
	if got := ExtractCode(errors.New("plain")); got != ErrInternalServer {
		t.Errorf("expected fallback to %d, got %d", ErrInternalServer, got)
	}
}

func TestCodeClassification(t *testing.T) {
	if !IsSuccess(Success) || IsSuccess(ErrInternalServer) {
		t.Error("IsSuccess misclassifies")
	}
	if !IsClientError(ErrMediaNotFound) || IsClientError(ErrMediaStorageFailed) {
		t.Error("IsClientError misclassifies")
	}
	if !IsServerError(ErrMediaMetadataFailed) || IsServerError(ErrMediaInvalidPayload) {
		t.Error("IsServerError misclassifies")
	}

	// 未知码兜底到内部错误
	if got := GetHTTPStatus(99999); got != http.StatusInternalServerError {
		t.Errorf("expected fallback 500, got %d", got)
	}
}

func TestGetDetailsNonAppError(t *testing.T) {
	if got := GetDetails(errors.New("plain failure")); got != "plain failure" {
		t.Errorf("unexpected details %q", got)
	}
	if got := GetDetails(nil); got != "" {
		t.Errorf("expected empty details for nil, got %q", got)
	}
}
