package lifecycle

import (
	"fmt"
	"testing"
	"time"

	dbpkg "tramita/db"
	"tramita/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Un solo conn: cada conexión de sqlite ":memory:" es una base distinta.
	gdb.DB().SetMaxOpenConns(1)
	if err := dbpkg.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := dbpkg.Seed(gdb); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return gdb
}

func insertUser(t *testing.T, gdb *gorm.DB, phone string) models.User {
	t.Helper()
	user := models.User{
		ID:             uuid.NewString(),
		Name:           "Luz",
		Surname:        "Pérez",
		Email:          fmt.Sprintf("luz+%s@test.com", uuid.NewString()[:8]),
		WhatsAppPhone:  phone,
		DocumentNumber: uuid.NewString()[:10],
		Password:       "hashed",
		RoleID:         models.ROLE_STUDENT,
		Active:         true,
	}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return user
}

func statusIDByCode(t *testing.T, gdb *gorm.DB, code string) int64 {
	t.Helper()
	var status models.Status
	if err := gdb.Where("code = ?", code).First(&status).Error; err != nil {
		t.Fatalf("status %s: %v", code, err)
	}
	return status.ID
}

func TestNewManagerRequiresPendingStatus(t *testing.T) {
	gdb, err := gorm.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer gdb.Close()
	gdb.DB().SetMaxOpenConns(1)
	if err := dbpkg.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// Sin seed no existe PENDIENTE: el constructor debe fallar.
	if _, err := NewManager(gdb); err == nil {
		t.Fatalf("expected error with empty status catalog")
	}
}

func TestCreateAssignsPendingStatusAndSequentialCodes(t *testing.T) {
	gdb := openTestDB(t)
	defer gdb.Close()
	user := insertUser(t, gdb, "573101234567")

	manager, err := NewManager(gdb)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	year := time.Now().Year()
	for i := 1; i <= 3; i++ {
		request, err := manager.Create(user.ID, 1, "necesito el certificado", models.CHANNEL_WEB)
		if err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
		wantCode := fmt.Sprintf("SOL-%d-%05d", year, i)
		if request.ReferenceCode != wantCode {
			t.Fatalf("reference code = %q, want %q", request.ReferenceCode, wantCode)
		}
		if request.StatusID != manager.PendingStatusID() {
			t.Fatalf("status = %d, want pending %d", request.StatusID, manager.PendingStatusID())
		}
		if request.Status.Code != models.STATUS_CODE_PENDING {
			t.Fatalf("status code = %q, want PENDIENTE", request.Status.Code)
		}
	}
}

func TestCreateValidation(t *testing.T) {
	gdb := openTestDB(t)
	defer gdb.Close()
	user := insertUser(t, gdb, "573101234567")

	manager, err := NewManager(gdb)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if _, err := manager.Create(user.ID, 1, "   ", models.CHANNEL_WEB); err == nil {
		t.Fatalf("expected error for empty description")
	}
	if _, err := manager.Create(user.ID, 999, "algo", models.CHANNEL_WEB); err == nil {
		t.Fatalf("expected error for unknown type")
	}

	if err := gdb.Model(&models.RequestType{}).Where("id = ?", 2).Update("active", false).Error; err != nil {
		t.Fatalf("deactivate type: %v", err)
	}
	if _, err := manager.Create(user.ID, 2, "algo", models.CHANNEL_WEB); err == nil {
		t.Fatalf("expected error for inactive type")
	}

	// Nada de lo anterior debe haber gastado secuencia.
	request, err := manager.Create(user.ID, 1, "válida", models.CHANNEL_WEB)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	wantCode := fmt.Sprintf("SOL-%d-00001", time.Now().Year())
	if request.ReferenceCode != wantCode {
		t.Fatalf("reference code = %q, want %q", request.ReferenceCode, wantCode)
	}
}

func TestTransitionWritesHistoryAtomically(t *testing.T) {
	gdb := openTestDB(t)
	defer gdb.Close()
	student := insertUser(t, gdb, "573101234567")
	staff := insertUser(t, gdb, "")

	manager, err := NewManager(gdb)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	request, err := manager.Create(student.ID, 3, "certificado de notas", models.CHANNEL_WHATSAPP)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	history, err := manager.History(request.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("fresh request history = %d entries, want 0", len(history))
	}

	inReview := statusIDByCode(t, gdb, models.STATUS_CODE_IN_REVIEW)
	approved := statusIDByCode(t, gdb, models.STATUS_CODE_APPROVED)

	updated, err := manager.Transition(request.ID, inReview, staff.ID, "revisando")
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if updated.StatusID != inReview {
		t.Fatalf("status after transition = %d, want %d", updated.StatusID, inReview)
	}

	history, err = manager.History(request.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history = %d entries, want 1", len(history))
	}
	if history[0].PreviousStatusID != manager.PendingStatusID() {
		t.Fatalf("previous status = %d, want pending %d", history[0].PreviousStatusID, manager.PendingStatusID())
	}
	if history[0].NewStatusID != inReview {
		t.Fatalf("new status = %d, want %d", history[0].NewStatusID, inReview)
	}
	if history[0].UserID != staff.ID {
		t.Fatalf("acting user = %q, want %q", history[0].UserID, staff.ID)
	}
	if history[0].Comment != "revisando" {
		t.Fatalf("comment = %q", history[0].Comment)
	}

	if _, err := manager.Transition(request.ID, approved, staff.ID, ""); err != nil {
		t.Fatalf("second Transition: %v", err)
	}
	history, _ = manager.History(request.ID)
	if len(history) != 2 {
		t.Fatalf("history = %d entries, want 2", len(history))
	}
	// La cadena de estados nuevos es la línea de tiempo completa.
	if history[0].NewStatusID != inReview || history[1].NewStatusID != approved {
		t.Fatalf("history chain out of order: %d then %d", history[0].NewStatusID, history[1].NewStatusID)
	}
	if history[1].PreviousStatusID != inReview {
		t.Fatalf("second previous status = %d, want %d", history[1].PreviousStatusID, inReview)
	}
}

func TestTransitionNotFoundWritesNothing(t *testing.T) {
	gdb := openTestDB(t)
	defer gdb.Close()
	staff := insertUser(t, gdb, "")

	manager, err := NewManager(gdb)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	inReview := statusIDByCode(t, gdb, models.STATUS_CODE_IN_REVIEW)
	if _, err := manager.Transition(uuid.NewString(), inReview, staff.ID, ""); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	var count int
	if err := gdb.Model(&models.StatusHistory{}).Count(&count).Error; err != nil {
		t.Fatalf("count history: %v", err)
	}
	if count != 0 {
		t.Fatalf("history rows = %d after failed transition, want 0", count)
	}
}

func TestQueriesAndSearchFilters(t *testing.T) {
	gdb := openTestDB(t)
	defer gdb.Close()
	alice := insertUser(t, gdb, "573100000001")
	bob := insertUser(t, gdb, "573100000002")
	staff := insertUser(t, gdb, "")

	manager, err := NewManager(gdb)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	first, err := manager.Create(alice.ID, 1, "matrícula", models.CHANNEL_WEB)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := manager.Create(alice.ID, 3, "notas", models.CHANNEL_WHATSAPP)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := manager.Create(bob.ID, 3, "notas también", models.CHANNEL_WHATSAPP); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byCode, err := manager.GetByCode(first.ReferenceCode)
	if err != nil {
		t.Fatalf("GetByCode: %v", err)
	}
	if byCode.ID != first.ID {
		t.Fatalf("GetByCode returned %q, want %q", byCode.ID, first.ID)
	}
	if _, err := manager.GetByCode("SOL-1999-00001"); err != ErrNotFound {
		t.Fatalf("GetByCode unknown = %v, want ErrNotFound", err)
	}

	mine, err := manager.GetByRequester(alice.ID)
	if err != nil {
		t.Fatalf("GetByRequester: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("alice requests = %d, want 2", len(mine))
	}

	all, err := manager.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all requests = %d, want 3", len(all))
	}

	// Sin filtros: sin restricción.
	results, err := manager.Search(0, 0, "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("unfiltered search = %d, want 3", len(results))
	}

	// Filtros combinados con AND.
	results, err = manager.Search(0, 3, models.CHANNEL_WHATSAPP)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("type+channel search = %d, want 2", len(results))
	}

	inReview := statusIDByCode(t, gdb, models.STATUS_CODE_IN_REVIEW)
	if _, err := manager.Transition(second.ID, inReview, staff.ID, ""); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	results, err = manager.Search(inReview, 3, models.CHANNEL_WHATSAPP)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != second.ID {
		t.Fatalf("status+type+channel search = %d results", len(results))
	}

	results, err = manager.Search(0, 0, models.CHANNEL_WEB)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != first.ID {
		t.Fatalf("channel-only search = %d results", len(results))
	}
}
