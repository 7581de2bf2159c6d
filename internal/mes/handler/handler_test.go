package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bitfantasy/nimo-mes/internal/mes/testutil"
)

func setupHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter(db)

	h := NewHandlers(testutil.TestConfig(), zap.NewNop(), db, nil)

	api := router.Group("/api/v1")
	{
		api.GET("/departments", h.Org.ListDepartments)
		api.GET("/departments/:id", h.Org.GetDepartment)
		api.POST("/departments", h.Org.CreateDepartment)
		api.PUT("/departments/:id", h.Org.UpdateDepartment)
		api.DELETE("/departments/:id", h.Org.DeleteDepartment)

		api.POST("/parts", h.Part.CreatePart)
		api.POST("/work-orders", h.Production.CreateWorkOrder)
		api.GET("/work-orders/:id", h.Production.GetWorkOrder)

		api.POST("/floors", h.Floor.CreateFloor)
		api.DELETE("/floors/:id", h.Floor.DeleteFloor)
		api.POST("/floor-zones", h.Floor.CreateFloorZone)
		api.GET("/floor-zones/:id", h.Floor.GetFloorZone)
	}

	return router, db
}

func TestCreateDepartmentHTTP(t *testing.T) {
	router, _ := setupHandlerTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/departments",
		map[string]interface{}{"title": "Assembly"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["code"] != "OK" {
		t.Errorf("expected code OK, got %v", resp["code"])
	}
	data := resp["data"].(map[string]interface{})
	if data["title"] != "Assembly" {
		t.Errorf("unexpected payload: %v", data)
	}
}

func TestDuplicateDepartmentMapsToConflict(t *testing.T) {
	router, _ := setupHandlerTest(t)

	body := map[string]interface{}{"title": "Assembly"}
	if w := testutil.DoRequest(router, http.MethodPost, "/api/v1/departments", body); w.Code != http.StatusCreated {
		t.Fatalf("first create: expected 201, got %d", w.Code)
	}

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/departments", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if resp := testutil.ParseResponse(w); resp["code"] != "CONFLICT" {
		t.Errorf("expected code CONFLICT, got %v", resp["code"])
	}
}

func TestGetMissingDepartmentMapsToNotFound(t *testing.T) {
	router, _ := setupHandlerTest(t)

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/departments/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if resp := testutil.ParseResponse(w); resp["code"] != "NOT_FOUND" {
		t.Errorf("expected code NOT_FOUND, got %v", resp["code"])
	}
}

func TestBindFailureMapsToBadRequest(t *testing.T) {
	router, _ := setupHandlerTest(t)

	// Missing required title
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/departments",
		map[string]interface{}{"description": "no title"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp := testutil.ParseResponse(w); resp["code"] != "BAD_REQUEST" {
		t.Errorf("expected code BAD_REQUEST, got %v", resp["code"])
	}

	// Non-numeric path id
	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/departments/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad id, got %d", w.Code)
	}
}

func TestWorkOrderInheritsDepartmentHTTP(t *testing.T) {
	router, _ := setupHandlerTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/departments",
		map[string]interface{}{"title": "Machining"})
	deptID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(float64)

	w = testutil.DoRequest(router, http.MethodPost, "/api/v1/parts",
		map[string]interface{}{"name": "Bolt", "department_id": deptID})
	if w.Code != http.StatusCreated {
		t.Fatalf("create part: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	partID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(float64)

	w = testutil.DoRequest(router, http.MethodPost, "/api/v1/work-orders",
		map[string]interface{}{"number": "WO-1", "part_id": partID, "quantity": 10})
	if w.Code != http.StatusCreated {
		t.Fatalf("create work order: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["department_id"] != deptID {
		t.Errorf("expected inherited department %v, got %v", deptID, data["department_id"])
	}
	if data["status"] != "open" {
		t.Errorf("expected default status open, got %v", data["status"])
	}
}

// A failed create must leave no row behind: the request transaction rolls back.
func TestFailedRequestRollsBack(t *testing.T) {
	router, _ := setupHandlerTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/work-orders",
		map[string]interface{}{"number": "WO-9", "part_id": 999, "quantity": 1})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing part, got %d", w.Code)
	}

	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/work-orders/1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected no work order persisted, got %d: %s", w.Code, w.Body.String())
	}
}

func TestFloorCascadeHTTP(t *testing.T) {
	router, _ := setupHandlerTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/floors",
		map[string]interface{}{"name": "Plant A"})
	floorID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(float64)

	w = testutil.DoRequest(router, http.MethodPost, "/api/v1/floor-zones",
		map[string]interface{}{"floor_id": floorID, "name": "Zone 1", "polygon": "0,0 10,0 10,10 0,10"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create zone: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	zoneID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(float64)

	w = testutil.DoRequest(router, http.MethodDelete, "/api/v1/floors/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete floor: expected 200, got %d", w.Code)
	}

	path := "/api/v1/floor-zones/" + strconv.Itoa(int(zoneID))
	w = testutil.DoRequest(router, http.MethodGet, path, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected zone removed by cascade, got %d", w.Code)
	}
}
