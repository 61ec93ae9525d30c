package handler

import (
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptforge/internal/auth"
	"promptforge/internal/logger"
	"promptforge/internal/repository"
	"promptforge/internal/service"
)

func newResolveRouter(t *testing.T) (*chi.Mux, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	sqlxDB := sqlx.NewDb(db, "sqlmock")

	authSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(auth.UserInfo{ID: "user-1", Username: "alice"})
	}))
	t.Cleanup(authSrv.Close)
	auth.InitClient(auth.NewClient(authSrv.URL))

	resolveService := service.NewResolveService(
		repository.NewPackageRepository(sqlxDB),
		repository.NewTemplateRepository(sqlxDB),
		repository.NewVersionRepository(sqlxDB),
		nil,
		time.Minute,
		logger.NewTestLogger(t),
	)
	h := NewResolveHandler(resolveService, logger.NewTestLogger(t))

	r := chi.NewRouter()
	r.Route("/v1/prompts/{username}/{packageName}/{templateName}", func(r chi.Router) {
		r.Get("/", h.ResolvePrompt)
		r.Post("/render", h.RenderPrompt)
	})
	return r, mock
}

func TestResolveHandler_RenderPrompt(t *testing.T) {
	router, mock := newResolveRouter(t)

	packageID := uuid.New()
	templateID := uuid.New()
	versionID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM packages WHERE owner_id = \$1 AND name = \$2`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "owner_id", "name", "description", "created_at", "updated_at"}).
			AddRow(packageID.String(), "user-1", "marketing", "", now, now))
	mock.ExpectQuery(`SELECT \* FROM templates WHERE package_id = \$1 AND name = \$2 AND owner_id = \$3`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "owner_id", "package_id", "name", "description", "model_type",
				"preview_version_id", "release_version_id", "created_at", "updated_at"}).
			AddRow(templateID.String(), "user-1", packageID.String(), "greeting", "", "TEXT2TEXT",
				nil, nil, now, now))
	mock.ExpectQuery(`SELECT \* FROM versions\s+WHERE template_id = \$1 AND owner_id = \$2 AND version = \$3`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "owner_id", "package_id", "template_id", "version", "template",
				"llm_provider", "llm_model", "llm_config", "forked_from_id",
				"changelog", "published_at", "created_at", "updated_at"}).
			AddRow(versionID.String(), "user-1", packageID.String(), templateID.String(),
				"0.0.1", "I am looking at the {@OBJECT}",
				"llama2", "7b", []byte(`{}`), nil, "", driver.Value(nil), now, now))

	req := httptest.NewRequest(http.MethodPost,
		"/v1/prompts/alice/marketing/greeting/render?version=0.0.1",
		strings.NewReader(`{"data":{"OBJECT":"moon"}}`))
	req.Header.Set("Authorization", "Bearer token-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Prompt    string   `json:"prompt"`
		Variables []string `json:"variables"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "I am looking at the moon", resp.Prompt)
	assert.Equal(t, []string{"OBJECT"}, resp.Variables)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveHandler_ForeignUsernameLooksLikeNotFound(t *testing.T) {
	router, mock := newResolveRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/prompts/bob/marketing/greeting", nil)
	req.Header.Set("Authorization", "Bearer token-1")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// До базы дело не доходит
	assert.NoError(t, mock.ExpectationsWereMet())
}
