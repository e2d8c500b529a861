package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crm/backend/internal/application/directory"
	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/tenant"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/interfaces/http/dto"
)

type apiFixture struct {
	engine  *gin.Engine
	jwt     *auth.JWTService
	head    tenant.Tenant
	branchA tenant.Tenant
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	f := &apiFixture{
		head:    tenant.Tenant{ID: uuid.New(), Name: "Head Office", Kind: tenant.KindHead, Active: true},
		branchA: tenant.Tenant{ID: uuid.New(), Name: "Branch A", Kind: tenant.KindFranchise, Active: true},
	}
	registry, err := tenant.NewStaticRegistry([]tenant.Tenant{f.head, f.branchA})
	require.NoError(t, err)

	blobs := persistence.NewMemoryBlobStore()
	clock := shared.SystemClock()
	log := zap.NewNop()

	vendors := directory.NewVendorService(
		persistence.NewPartitionStore[*crm.Vendor](shared.ModuleVendors, blobs, nil, log),
		persistence.NewPartitionStore[*crm.Enquiry](shared.ModuleEnquiries, blobs, nil, log),
		registry, clock, log,
	)
	leads := directory.NewLeadService(
		persistence.NewPartitionStore[*crm.Lead](shared.ModuleLeads, blobs, nil, log),
		registry, clock, log,
	)
	staff := directory.NewStaffService(
		persistence.NewPartitionStore[*crm.StaffMember](shared.ModuleStaff, blobs, nil, log),
		registry, clock, log,
	)
	dialer := directory.NewDialerService(
		persistence.NewPartitionStore[*crm.DialerContact](shared.ModuleDialer, blobs, nil, log),
		registry, clock, log,
	)
	exports := directory.NewExportService(vendors, leads, log)

	f.jwt = auth.NewJWTService(config.JWTConfig{Secret: "test-secret", Issuer: "crm-test", Expiration: time.Hour})
	f.engine = New(Services{
		Vendors: vendors,
		Leads:   leads,
		Staff:   staff,
		Dialer:  dialer,
		Exports: exports,
	}, f.jwt, log)
	return f
}

func (f *apiFixture) token(t *testing.T, viewer tenant.Viewer) string {
	t.Helper()
	token, err := f.jwt.GenerateToken(viewer)
	require.NoError(t, err)
	return token
}

func (f *apiFixture) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthNeedsNoToken(t *testing.T) {
	f := newAPIFixture(t)
	w := f.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"), "every response carries a request id")
}

func TestAPIRejectsMissingOrBadToken(t *testing.T) {
	f := newAPIFixture(t)

	w := f.request(t, http.MethodGet, "/api/v1/vendors", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.request(t, http.MethodGet, "/api/v1/vendors", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVendorCreateAndListOverHTTP(t *testing.T) {
	f := newAPIFixture(t)
	scoped := f.token(t, tenant.Viewer{TenantID: f.branchA.ID, Role: tenant.RoleScoped})
	privileged := f.token(t, tenant.Viewer{TenantID: f.head.ID, Role: tenant.RolePrivileged})

	w := f.request(t, http.MethodPost, "/api/v1/vendors", scoped, gin.H{
		"name":  "Sharma Plumbing",
		"phone": "9876500000",
		"city":  "Mumbai",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	w = f.request(t, http.MethodGet, "/api/v1/vendors", privileged, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeResponse(t, w)
	records, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, records, 1)
	entry := records[0].(map[string]interface{})
	assert.Equal(t, "Branch A", entry["tenant_tag"])
}

func TestVendorCreateValidatesBody(t *testing.T) {
	f := newAPIFixture(t)
	token := f.token(t, tenant.Viewer{TenantID: f.branchA.ID, Role: tenant.RoleScoped})

	w := f.request(t, http.MethodPost, "/api/v1/vendors", token, gin.H{"phone": "9876500000"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
}

func TestDispositionErrorsMapToStatuses(t *testing.T) {
	f := newAPIFixture(t)
	token := f.token(t, tenant.Viewer{TenantID: f.branchA.ID, Role: tenant.RoleScoped})

	w := f.request(t, http.MethodPost,
		fmt.Sprintf("/api/v1/vendors/%s/disposition", uuid.New()), token,
		gin.H{"status": "Interested"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.request(t, http.MethodPost, "/api/v1/vendors", token, gin.H{
		"name":  "Sharma Plumbing",
		"phone": "9876500000",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeResponse(t, w).Data.(map[string]interface{})
	id := created["id"].(string)

	// Callback without a follow-up date is a client error
	w = f.request(t, http.MethodPost,
		fmt.Sprintf("/api/v1/vendors/%s/disposition", id), token,
		gin.H{"status": "Callback"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_FOLLOW_UP", resp.Error.Code)
}

func TestJumpWithoutSessionIsConflictNotMissing(t *testing.T) {
	f := newAPIFixture(t)
	token := f.token(t, tenant.Viewer{TenantID: f.branchA.ID, Role: tenant.RoleScoped})

	w := f.request(t, http.MethodPost,
		fmt.Sprintf("/api/v1/dialer/session/jump/%s", uuid.New()), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NO_SESSION", resp.Error.Code)
}

func TestDialerSessionOverHTTP(t *testing.T) {
	f := newAPIFixture(t)
	token := f.token(t, tenant.Viewer{TenantID: f.branchA.ID, Role: tenant.RoleScoped})

	w := f.request(t, http.MethodPost, "/api/v1/dialer/contacts", token, gin.H{
		"contacts": []gin.H{
			{"name": "Asha", "phone": "9876500000"},
			{"name": "Binod", "phone": "9876500001"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = f.request(t, http.MethodPost, "/api/v1/dialer/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	session := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, true, session["active"])

	w = f.request(t, http.MethodPost, "/api/v1/dialer/session/disposition", token, gin.H{
		"status": "No Answer",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.request(t, http.MethodPost, "/api/v1/dialer/session/disposition", token, gin.H{
		"status": "Done",
	})
	require.Equal(t, http.StatusOK, w.Code)
	session = decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, false, session["active"])

	w = f.request(t, http.MethodPost, "/api/v1/dialer/session/disposition", token, gin.H{
		"status": "Done",
	})
	assert.Equal(t, http.StatusConflict, w.Code, "disposition without a session is refused")
}
