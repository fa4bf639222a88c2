package room

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	echo "github.com/labstack/echo/v4"
	"github.com/syncroom/sync-server/pkg/controller/room"
)

func newTestRoomController(t *testing.T) (*roomController, *echo.Echo) {
	t.Helper()
	notifier := NewRoomNotifier()
	ctrl := &roomController{
		roomService: NewRoomService(NewRoomServiceParams{
			Logger:       newTestLogger(),
			RoomNotifier: notifier,
		}),
		roomNotifier: notifier,
		logger:       newTestLogger(),
	}

	router := echo.New()
	if err := ctrl.Resolve(router); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return ctrl, router
}

func restGet(t *testing.T, router *echo.Echo, path string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
	}
	return rec.Code
}

func TestRestRoomListPageParam(t *testing.T) {
	ctrl, router := newTestRoomController(t)
	for _, id := range []string{"first", "second"} {
		createTestRoom(t, ctrl.roomService, id, "vid", "", "host-"+id)
	}

	var page room.RoomListResponse
	if code := restGet(t, router, "/rooms?page=1", &page); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(page.Rooms) != 2 || page.Rooms[0].RoomId != "second" {
		t.Fatalf("page = %+v, want [second first]", page)
	}
	if page.HasNextPage {
		t.Fatal("two rooms fit one page")
	}

	// The bound query parameter selects the page, not a default.
	if code := restGet(t, router, "/rooms?page=2", &page); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(page.Rooms) != 0 {
		t.Fatalf("page 2 = %+v, want empty", page.Rooms)
	}

	if code := restGet(t, router, "/rooms?page=abc", nil); code != http.StatusBadRequest {
		t.Fatalf("non-numeric page: status = %d, want 400", code)
	}
}

func TestRestRoomInfoLockStatus(t *testing.T) {
	ctrl, router := newTestRoomController(t)
	createTestRoom(t, ctrl.roomService, "locked", "vid", "pw", "host")

	var status room.RoomLockStatusResponse
	if code := restGet(t, router, "/rooms/locked", &status); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !status.IsLocked {
		t.Fatal("expected isLocked for a password room")
	}

	if code := restGet(t, router, "/rooms/missing", nil); code != http.StatusNotFound {
		t.Fatalf("unknown room: status = %d, want 404", code)
	}
}

func TestEmbeddedSpecMatchesRoutes(t *testing.T) {
	spec, err := room.GetSwagger()
	if err != nil {
		t.Fatalf("GetSwagger: %v", err)
	}
	for _, path := range []string{"/rooms", "/rooms-notifier", "/rooms/{roomId}"} {
		if spec.Paths.Find(path) == nil {
			t.Fatalf("spec is missing path %s", path)
		}
	}
}
