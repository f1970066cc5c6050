package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// testClient points a Client at an httptest server.
func testClient(srv *httptest.Server) *Client {
	c := NewClient("127.0.0.1")
	c.BaseURL = srv.URL
	c.StreamURL = "ws" + strings.TrimPrefix(srv.URL, "http")
	return c
}

func TestAuthClient_GetToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if creds.Username != "admin" || creds.Password != "password" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-123"})
	}))
	defer srv.Close()

	auth := NewAuthClient(testClient(srv))

	token, err := auth.GetToken(context.Background(), "admin", "password")
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("token = %q, want tok-123", token)
	}

	_, err = auth.GetToken(context.Background(), "admin", "wrong")
	if !errors.Is(err, ErrInvalidLogin) {
		t.Errorf("rejected credentials returned %v, want ErrInvalidLogin", err)
	}
}

func TestClient_SetToken_AddsBearerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(RobotState{})
	}))
	defer srv.Close()

	c := testClient(srv)
	c.SetToken("tok-xyz")

	if _, err := NewStateClient(c).GetRobotState(context.Background()); err != nil {
		t.Fatalf("GetRobotState failed: %v", err)
	}
	if gotAuth != "Bearer tok-xyz" {
		t.Errorf("Authorization header = %q, want Bearer tok-xyz", gotAuth)
	}
}

func TestLeaseClient_AcquireConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	lease := NewLeaseClient(testClient(srv))

	_, err := lease.Acquire(context.Background())
	if !errors.Is(err, ErrLeaseInUse) {
		t.Errorf("conflict returned %v, want ErrLeaseInUse", err)
	}
}

func TestLeaseClient_AcquireRetainReturn(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		switch r.URL.Path {
		case "/api/lease/acquire":
			json.NewEncoder(w).Encode(Lease{Resource: "body", Token: "lease-1"})
		default:
			var lease Lease
			if err := json.NewDecoder(r.Body).Decode(&lease); err != nil || lease.Token != "lease-1" {
				t.Errorf("%s carried wrong lease: %+v (err %v)", r.URL.Path, lease, err)
			}
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	lc := NewLeaseClient(testClient(srv))
	ctx := context.Background()

	lease, err := lc.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := lc.Retain(ctx, lease); err != nil {
		t.Fatalf("Retain failed: %v", err)
	}
	if err := lc.Return(ctx, lease); err != nil {
		t.Fatalf("Return failed: %v", err)
	}

	want := []string{"/api/lease/acquire", "/api/lease/retain", "/api/lease/return"}
	if len(calls) != len(want) {
		t.Fatalf("got calls %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, calls[i], want[i])
		}
	}
}

func TestCommandClient_SubmitTrajectoryPoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req TrajectoryPointRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.FrameName != VisionFrameName {
			t.Errorf("frame = %q, want %q", req.FrameName, VisionFrameName)
		}
		if req.RequestID == "" {
			t.Error("request ID was not assigned")
		}
		json.NewEncoder(w).Encode(map[string]string{"command_id": "cmd-7"})
	}))
	defer srv.Close()

	cc := NewCommandClient(testClient(srv))

	id, err := cc.SubmitTrajectoryPoint(context.Background(), TrajectoryPointRequest{
		Goal:      SE2Pose{X: 1, Y: 2, Angle: 0.5},
		FrameName: VisionFrameName,
		EndTime:   1e9,
	})
	if err != nil {
		t.Fatalf("SubmitTrajectoryPoint failed: %v", err)
	}
	if id != "cmd-7" {
		t.Errorf("command ID = %q, want cmd-7", id)
	}
}

func TestCommandClient_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "cmd-7" {
			t.Errorf("status query id = %q, want cmd-7", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "at_goal"})
	}))
	defer srv.Close()

	cc := NewCommandClient(testClient(srv))

	status, err := cc.Status(context.Background(), "cmd-7")
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status != CommandAtGoal {
		t.Errorf("status = %q, want %q", status, CommandAtGoal)
	}
}

func TestTimeSyncClient_Establish(t *testing.T) {
	skew := 3 * time.Second
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int64{
			"unix_nanos": time.Now().Add(skew).UnixNano(),
		})
	}))
	defer srv.Close()

	ts := NewTimeSyncClient(testClient(srv))

	got, err := ts.Establish(context.Background())
	if err != nil {
		t.Fatalf("Establish failed: %v", err)
	}
	if diff := got - skew; diff < -time.Second || diff > time.Second {
		t.Errorf("skew = %v, want about %v", got, skew)
	}
}

func TestStateStream_Next(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/robot/state/stream" {
			t.Errorf("unexpected stream path %s", r.URL.Path)
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		// A ping the client must answer, then a state frame.
		conn.WriteJSON(streamMessage{Type: streamTypePing, Timestamp: time.Now().UnixMilli()})

		data, _ := json.Marshal(RobotState{Standing: true, MotorsPoweredOn: true})
		conn.WriteJSON(streamMessage{Type: streamTypeState, Data: data})

		// Consume the pong so the write above is not lost.
		var msg streamMessage
		conn.ReadJSON(&msg)
		if msg.Type != streamTypePong {
			t.Errorf("client answered ping with %q, want %q", msg.Type, streamTypePong)
		}
	}))
	defer srv.Close()

	sc := NewStateClient(testClient(srv))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stream, err := sc.Stream(ctx)
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	defer stream.Close()

	state, err := stream.Next(ctx)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if !state.Standing || !state.MotorsPoweredOn {
		t.Errorf("state = %+v, want standing and powered", state)
	}
}
