package post

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stub driver simulating an ownership mismatch: the caller has a profile,
// but the double key-check (id AND user_id AND profile_id) matches no post
// row, so updates return no rows and deletes affect zero rows.

type stubDriver struct{}

func (stubDriver) Open(name string) (driver.Conn, error) { return &stubConn{}, nil }

type stubConn struct{}

func (c *stubConn) Prepare(query string) (driver.Stmt, error) {
	return &stubStmt{query: query}, nil
}
func (c *stubConn) Close() error              { return nil }
func (c *stubConn) Begin() (driver.Tx, error) { return nil, driver.ErrSkip }

type stubStmt struct{ query string }

func (s *stubStmt) Close() error  { return nil }
func (s *stubStmt) NumInput() int { return -1 }

func (s *stubStmt) Exec(args []driver.Value) (driver.Result, error) {
	return driver.RowsAffected(0), nil
}

func (s *stubStmt) Query(args []driver.Value) (driver.Rows, error) {
	if strings.Contains(s.query, "FROM profiles") {
		return &stubRows{
			cols: []string{"id"},
			rows: [][]driver.Value{{"caller-profile-id"}},
		}, nil
	}
	return &stubRows{cols: []string{"id"}}, nil
}

type stubRows struct {
	cols []string
	rows [][]driver.Value
	idx  int
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }
func (r *stubRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}

var registerStubDriver sync.Once

func openMismatchDB(t *testing.T) *sql.DB {
	t.Helper()
	registerStubDriver.Do(func() {
		sql.Register("post-ownership-stub", stubDriver{})
	})
	db, err := sql.Open("post-ownership-stub", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUpdatePostOwnershipMismatchAffectsZeroRows(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	db := openMismatchDB(t)

	body := `{"role_summary":"Seeking backend co-founder","content":"Building a fintech MVP together.","category":"fintech"}`
	req := authedRequest(t, http.MethodPut, "/api/posts/someone-elses-post", body)
	rec := httptest.NewRecorder()

	r := mux.NewRouter()
	r.HandleFunc("/api/posts/{id}", UpdatePostHandler(db)).Methods("PUT")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "No post updated.", resp["error"])
}

func TestDeletePostOwnershipMismatchAffectsZeroRows(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	db := openMismatchDB(t)

	req := authedRequest(t, http.MethodDelete, "/api/posts/someone-elses-post", "")
	rec := httptest.NewRecorder()

	r := mux.NewRouter()
	r.HandleFunc("/api/posts/{id}", DeletePostHandler(db)).Methods("DELETE")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "No post deleted.", resp["error"])
}
