package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bitfantasy/nimo-mes/internal/config"
	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/middleware"
)

// TestEnv holds test environment resources
type TestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	T      *testing.T
}

var dbSeq atomic.Int64

// SetupTestDB creates an isolated in-memory sqlite database with all tables
// migrated. TranslateError is enabled so unique violations surface as
// gorm.ErrDuplicatedKey, same as the postgres setup in production.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:mes_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(entity.All()...); err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})

	return db
}

// TestPolicy returns the default uniqueness policy used in tests
func TestPolicy() config.PolicyConfig {
	return config.PolicyConfig{
		UniqueDefectCategoryTitle: true,
		UniqueWorkCenterCode:      true,
	}
}

// TestConfig returns a minimal config for handler construction in tests
func TestConfig() *config.Config {
	return &config.Config{Policy: TestPolicy()}
}

// SetupRouter creates a gin test router with the per-request transaction
// middleware bound to the given database.
func SetupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.UnitOfWork(db, zap.NewNop()))
	return r
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a generic map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedDepartment creates a department row directly, bypassing validation
func SeedDepartment(t *testing.T, db *gorm.DB, title string) *entity.Department {
	t.Helper()
	dept := &entity.Department{Title: title}
	if err := db.Create(dept).Error; err != nil {
		t.Fatalf("Failed to seed department: %v", err)
	}
	return dept
}

// SeedPart creates a part row directly, bypassing validation
func SeedPart(t *testing.T, db *gorm.DB, name string, departmentID *uint) *entity.Part {
	t.Helper()
	part := &entity.Part{Name: name, DepartmentID: departmentID}
	if err := db.Create(part).Error; err != nil {
		t.Fatalf("Failed to seed part: %v", err)
	}
	return part
}

// SeedUser creates a user row directly, bypassing validation
func SeedUser(t *testing.T, db *gorm.DB, username string, departmentID *uint) *entity.User {
	t.Helper()
	user := &entity.User{Username: username, DepartmentID: departmentID}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}

// SeedWorkOrder creates a work order row directly, bypassing validation
func SeedWorkOrder(t *testing.T, db *gorm.DB, number string, partID uint) *entity.WorkOrder {
	t.Helper()
	wo := &entity.WorkOrder{Number: number, Status: entity.WOStatusOpen, Quantity: 1, PartID: partID}
	if err := db.Create(wo).Error; err != nil {
		t.Fatalf("Failed to seed work order: %v", err)
	}
	return wo
}

// SeedFloor creates a floor row directly, bypassing validation
func SeedFloor(t *testing.T, db *gorm.DB, name string) *entity.Floor {
	t.Helper()
	floor := &entity.Floor{Name: name}
	if err := db.Create(floor).Error; err != nil {
		t.Fatalf("Failed to seed floor: %v", err)
	}
	return floor
}
