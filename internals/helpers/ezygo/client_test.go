package ezygo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "kt123", req["username"])

		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-abc", "token_type": "Bearer"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	token, err := c.Login(context.Background(), "kt123", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}

func TestClient_LoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "kt123", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_AttendanceReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/attendancereports/institutionuser/detailed", r.URL.Path)
		require.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		require.Equal(t, "2026-27", r.URL.Query().Get("academic_year"))
		require.Equal(t, "odd", r.URL.Query().Get("semester"))

		_ = json.NewEncoder(w).Encode(AttendanceReport{
			Courses: map[string]Course{
				"4021": {ID: 4021, Code: "CS301", Name: "Data Structures"},
			},
			Report: map[string]map[string]AttendanceSlot{
				"2026-08-24": {
					"1st Hour": {Course: 4021, Attendance: 111},
					"3rd Hour": {Course: 4021, Attendance: 110},
				},
			},
		})
	}))
	defer srv.Close()

	report, err := NewClient(srv.URL).AttendanceReport(context.Background(), "tok-abc", "2026-27", "odd")
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Len(t, report.Courses, 1)
	assert.Equal(t, 111, report.Report["2026-08-24"]["1st Hour"].Attendance)
}

func TestClient_BreakerTripsOnServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	for i := 0; i < breakerFailureThreshold; i++ {
		_, err := c.Courses(context.Background(), "tok")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrCircuitOpen)
	}

	_, err := c.Courses(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestClient_UnauthorizedDoesNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	for i := 0; i < breakerFailureThreshold+2; i++ {
		_, err := c.Courses(context.Background(), "stale")
		require.ErrorIs(t, err, ErrUnauthorized)
	}
}
