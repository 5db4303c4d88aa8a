//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	server "estate_inquiry/internal/adapters/http_server"
	"estate_inquiry/internal/adapters/mailer"
	redisad "estate_inquiry/internal/adapters/redis"
	"estate_inquiry/internal/app"
	"estate_inquiry/internal/catalog"
	mysqlrepo "estate_inquiry/internal/storage/mysql"
)

// ---------- helpers ----------

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = filepath.Join("..", "..", "migrations")
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=estate",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/estate?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	applyMigrations(t, db)
	return db
}

// ---------- the test ----------

func TestHTTP_EndToEnd_Inquiry(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	c := catalog.MustLoad()
	for _, a := range c.Agents() {
		require.NoError(t, repo.UpsertAgent(ctx, a))
	}
	for _, r := range c.Residences() {
		require.NoError(t, repo.UpsertResidence(ctx, r))
	}

	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	mail, err := mailer.New(mailer.Options{Driver: mailer.DriverRedis, Domain: "mg.example.com"}, cache.Client())
	require.NoError(t, err)

	srv := server.New(server.Options{RequestTimeout: 5 * time.Second})
	srv.MountHandlers(&server.Handlers{
		Catalog:   app.NewCatalogService(repo, cache, time.Minute),
		Inquiries: app.NewInquiryService(repo, mail, app.MailSettings{Domain: "mg.example.com"}),
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	// catalog
	res, err := http.Get(ts.URL + "/v1/residences?city=New%20York")
	require.NoError(t, err)
	var list []map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&list))
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, list, 2)

	// inquiry on residence 3 -> stored mail for its agent
	res, err = http.Post(ts.URL+"/v1/inquiries", "application/json",
		strings.NewReader(`{"name":"Jane","email":"jane@x.com","message":"Interested","residence":3}`))
	require.NoError(t, err)
	var body struct {
		Receipt struct {
			ID string `json:"id"`
		} `json:"receipt"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	res.Body.Close()
	require.Equal(t, http.StatusAccepted, res.StatusCode)

	raw, err := mr.Get(mailer.MailKey("claire.martin@immo.example", body.Receipt.ID))
	require.NoError(t, err)
	assert.Contains(t, raw, "#3")
	assert.Contains(t, raw, "Luxury Penthouse Suite")

	// residence 8 has no agent
	res, err = http.Post(ts.URL+"/v1/inquiries", "application/json", strings.NewReader(`{"name":"Jane","residence":8}`))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// unknown residence
	res, err = http.Post(ts.URL+"/v1/inquiries", "application/json", strings.NewReader(`{"name":"Jane","residence":404}`))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// exactly one stored mail
	assert.Len(t, mr.Keys(), 2, "one list cache entry and one mail: %v", mr.Keys())
}
